// Package parser contains the deterministic text parsers that reconstruct
// timetable entries from OCR or PDF text without any model call. Three
// layouts are handled: inline "day time range subject" lines, grid rows under
// a time-slot header, and OCR output where every cell lands on its own line.
package parser

import (
	"regexp"
	"strings"

	"github.com/schedulely/timetable-extractor/internal/timetable"
)

var (
	timeRangeRe = regexp.MustCompile(`(\d{1,2}:\d{2})\s*[-–]\s*(\d{1,2}:\d{2})`)
	bareRangeRe = regexp.MustCompile(`^(\d{1,2}:\d{2})\s*[-–]\s*(\d{1,2}:\d{2})$`)
	roomRe      = regexp.MustCompile(`(?i)\b(room|rm|lab)\s*([a-z0-9-]+)\b`)
	dayPrefixRe = regexp.MustCompile(`(?i)^(monday|mon|tuesday|tue|wednesday|wed|thursday|thu|friday|fri|saturday|sat|sunday|sun)\b`)
	fullDayRe   = regexp.MustCompile(`(?i)^(monday|tuesday|wednesday|thursday|friday|saturday|sunday)$`)
	timeTokenRe = regexp.MustCompile(`^\d{1,2}:\d{2}`)
	spacesRe    = regexp.MustCompile(`\s+`)
	cellSplitRe = regexp.MustCompile(`\s{2,}|\t+`)
)

// weekDays is the fixed weekly sequence used when a garbled day label has to
// be inferred from position.
var weekDays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

var breakCells = map[string]struct{}{
	"break": {}, "lunch": {}, "recess": {}, "free": {}, "-": {},
}

// ParseAny tries the three parsers in priority order (vertical, grid, inline)
// and returns the first non-empty entry list.
func ParseAny(text string) []timetable.RawEntry {
	if entries := ParseVerticalLines(text); len(entries) > 0 {
		return entries
	}
	if entries := ParseGridRows(text); len(entries) > 0 {
		return entries
	}
	return ParseInlineLines(text)
}

// expandDay widens a day abbreviation to its full name; unrecognized tokens
// pass through title-cased so normalization can make the final call.
func expandDay(token string) string {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "mon", "monday":
		return "Monday"
	case "tue", "tues", "tuesday":
		return "Tuesday"
	case "wed", "wednesday":
		return "Wednesday"
	case "thu", "thur", "thurs", "thursday":
		return "Thursday"
	case "fri", "friday":
		return "Friday"
	case "sat", "saturday":
		return "Saturday"
	case "sun", "sunday":
		return "Sunday"
	default:
		return titleCase(strings.TrimSpace(token))
	}
}

// titleCase uppercases the first letter of an ASCII word.
func titleCase(s string) string {
	s = strings.ToLower(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// splitSubjectRoom separates trailing room labels ("Room 204", "Lab B1")
// from the subject text.
func splitSubjectRoom(text string) (subject, room string) {
	cleaned := strings.Trim(spacesRe.ReplaceAllString(text, " "), " -:")
	if cleaned == "" {
		return "", ""
	}
	loc := roomRe.FindStringSubmatchIndex(cleaned)
	if loc == nil {
		return cleaned, ""
	}
	m := roomRe.FindStringSubmatch(cleaned)
	room = titleCase(m[1]) + " " + m[2]
	subject = strings.Trim(cleaned[:loc[0]], " -:")
	if subject == "" {
		subject = cleaned
	}
	return subject, room
}

func isBreakCell(cell string) bool {
	_, ok := breakCells[strings.ToLower(strings.TrimSpace(cell))]
	return ok
}

func nonEmptyLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			out = append(out, s)
		}
	}
	return out
}
