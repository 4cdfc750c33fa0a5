package ocr

import (
	"regexp"
	"strings"
)

var (
	reDayToken  = regexp.MustCompile(`(?i)\b(mon|tue|wed|thu|fri|sat|sun)[a-z]*\b`)
	reTimeRange = regexp.MustCompile(`\d{1,2}:\d{2}\s*[-–]\s*\d{1,2}:\d{2}`)
	reBareTime  = regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)
)

// TextConfidence is a cheap heuristic for how timetable-like a blob of OCR
// output is. Day tokens, time ranges and enough content each add to a small
// base score; capped at 1.
func TextConfidence(txt string) float32 {
	score := float32(0.2)
	if reDayToken.MatchString(txt) {
		score += 0.2
	}
	if len(reTimeRange.FindAllString(txt, 3)) >= 2 {
		score += 0.2
	} else if reBareTime.MatchString(txt) {
		score += 0.1
	}
	if len(txt) > 120 {
		score += 0.1
	}
	if strings.Count(txt, "\n") >= 5 {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
