package parser

import (
	"strings"

	"github.com/schedulely/timetable-extractor/internal/timetable"
)

// ParseGridRows reconstructs a grid timetable where days are rows and time
// slots are columns:
//
//	         8:00-9:00  9:00-10:00  10:00-11:00  12:00-1:00  1:00-2:00
//	Monday   Maths      Biology     Chemistry    Break       Physics
//	Tuesday  Biology    Chemistry   English      Break       Social
//
// The header is the first line carrying at least two time ranges; those
// ranges become the column slots in left-to-right order. Day rows are split
// into cells on runs of two or more whitespace characters, falling back to
// single-space splitting when that yields too few cells, and each non-break
// cell is paired positionally with its column's range.
func ParseGridRows(text string) []timetable.RawEntry {
	normalized := strings.ReplaceAll(text, "|", " ")
	var lines []string
	for _, line := range strings.Split(normalized, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			lines = append(lines, s)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	var slots []timetable.TimeSlot
	headerIdx := -1
	for i, line := range lines {
		found := timeRangeRe.FindAllStringSubmatch(line, -1)
		if len(found) >= 2 {
			for _, m := range found {
				slots = append(slots, timetable.TimeSlot{Start: m[1], End: m[2]})
			}
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil
	}

	var entries []timetable.RawEntry
	for _, line := range lines[headerIdx+1:] {
		m := dayPrefixRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		rest := strings.TrimSpace(line[len(m[0]):])
		if rest == "" {
			continue
		}

		cells := splitCells(rest)
		for i, cell := range cells {
			if i >= len(slots) {
				break
			}
			if cell == "" || isBreakCell(cell) {
				continue
			}
			entries = append(entries, timetable.RawEntry{
				Subject:   cell,
				Day:       expandDay(m[1]),
				StartTime: slots[i].Start,
				EndTime:   slots[i].End,
			})
		}
	}
	return entries
}

// splitCells splits a day row into cell values. Wide-whitespace splitting
// wins when it finds multiple cells; otherwise single spaces are tried with
// time-like tokens filtered out.
func splitCells(rest string) []string {
	var cells []string
	for _, c := range cellSplitRe.Split(rest, -1) {
		if c = strings.TrimSpace(c); c != "" {
			cells = append(cells, c)
		}
	}
	if len(cells) > 1 {
		return cells
	}

	var tokens []string
	for _, t := range strings.Split(rest, " ") {
		t = strings.TrimSpace(t)
		if t == "" || timeTokenRe.MatchString(t) {
			continue
		}
		tokens = append(tokens, t)
	}
	if len(tokens) >= 2 {
		return tokens
	}
	return cells
}
