package parser

import (
	"regexp"

	"github.com/schedulely/timetable-extractor/internal/timetable"
)

// inlineRe matches a day token followed eventually by a time range and
// trailing subject text, e.g. "Mon 9:00 - 10:00 Physics Room 12".
var inlineRe = regexp.MustCompile(
	`(?i)\b(mon(?:day)?|tue(?:s|sday)?|wed(?:nesday)?|thu(?:rs|rsday)?|fri(?:day)?|sat(?:urday)?|sun(?:day)?)\b` +
		`.*?(\d{1,2}:\d{2})\s*[-–]\s*(\d{1,2}:\d{2})\s*(.*)`)

// ParseInlineLines scans text line by line for inline day-time entries.
// Break lines are discarded; the trailing text is split into subject and an
// optional room token.
func ParseInlineLines(text string) []timetable.RawEntry {
	var entries []timetable.RawEntry
	for _, line := range nonEmptyLines(text) {
		m := inlineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		subject, room := splitSubjectRoom(m[4])
		if subject == "" || isBreakCell(subject) {
			continue
		}
		entries = append(entries, timetable.RawEntry{
			Subject:   subject,
			Day:       expandDay(m[1]),
			StartTime: m[2],
			EndTime:   m[3],
			Room:      room,
		})
	}
	return entries
}
