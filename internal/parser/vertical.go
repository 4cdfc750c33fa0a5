package parser

import (
	"strings"

	"github.com/schedulely/timetable-extractor/internal/timetable"
)

// skipWords are header/furniture lines that are neither days nor subjects.
var skipWords = map[string]struct{}{
	"timetable": {}, "weekly": {}, "school": {}, "weeklyschooltimetable": {},
	"schedule": {}, "class": {}, "period": {}, "time": {}, "subject": {},
	"room": {}, "day": {}, "slot": {}, "lecture": {}, "lab": {},
}

// knownSubjects distinguishes real subject cells from garbled day names when
// the slot counter says the current day is already full.
var knownSubjects = map[string]struct{}{
	"maths": {}, "math": {}, "mathematics": {}, "biology": {}, "physics": {},
	"chemistry": {}, "english": {}, "social": {}, "history": {}, "geography": {},
	"computer": {}, "science": {}, "art": {}, "music": {}, "pe": {},
	"french": {}, "spanish": {}, "german": {}, "hindi": {}, "economics": {},
	"commerce": {}, "accounting": {}, "civics": {}, "literature": {},
}

// ParseVerticalLines handles OCR output where every grid cell lands on its
// own line (the usual artifact for boxed grids): all bare time ranges first
// become the ordered slot list, then a (day, slot index) walk assigns each
// remaining line to a slot. OCR garbles day labels but preserves positional
// structure, so when the slot counter overflows on a line that is not a known
// subject, the line is treated as a misread day name and the next day in the
// weekly sequence is inferred.
func ParseVerticalLines(text string) []timetable.RawEntry {
	lines := nonEmptyLines(text)
	if len(lines) == 0 {
		return nil
	}

	var slots []timetable.TimeSlot
	for _, line := range lines {
		if m := bareRangeRe.FindStringSubmatch(line); m != nil {
			slots = append(slots, timetable.TimeSlot{Start: m[1], End: m[2]})
		}
	}
	if len(slots) < 2 {
		return nil
	}

	// Skip past the header region to where day blocks start.
	dataStart := 0
	for i, line := range lines {
		if fullDayRe.MatchString(line) {
			dataStart = i
			break
		}
	}

	walk := dayWalk{slots: slots}
	for _, line := range lines[dataStart:] {
		walk.step(line)
	}
	return walk.entries
}

// dayWalk is the (day, slot index) state machine behind the vertical parser.
// Two transitions move the day forward: a recognized day label resets the
// slot counter, and a slot-counter overflow on a non-subject line advances to
// the next day in the weekly sequence.
type dayWalk struct {
	slots      []timetable.TimeSlot
	currentDay string
	daysSeen   []string
	slotIndex  int
	entries    []timetable.RawEntry
}

func (w *dayWalk) step(line string) {
	low := strings.ToLower(line)

	if m := fullDayRe.FindStringSubmatch(line); m != nil {
		w.openDay(expandDay(m[1]))
		return
	}

	if bareRangeRe.MatchString(line) {
		return
	}
	if _, skip := skipWords[low]; skip {
		return
	}

	_, isSubject := knownSubjects[low]

	// Day block full and this is no subject: a garbled day label.
	if w.slotIndex >= len(w.slots) && !isSubject {
		if next := w.inferNextDay(); next != "" {
			w.openDay(next)
			return
		}
	}

	if w.currentDay == "" {
		// Nothing recognized yet; an unknown token before the first day
		// label is taken as a garbled first day.
		if !isSubject && len(w.daysSeen) == 0 {
			w.openDay(weekDays[0])
		}
		return
	}

	if w.slotIndex < len(w.slots) {
		subject := strings.TrimSpace(line)
		if !isBreakCell(subject) {
			slot := w.slots[w.slotIndex]
			w.entries = append(w.entries, timetable.RawEntry{
				Subject:   subject,
				Day:       w.currentDay,
				StartTime: slot.Start,
				EndTime:   slot.End,
			})
		}
		w.slotIndex++
	}
}

func (w *dayWalk) openDay(day string) {
	w.currentDay = day
	w.daysSeen = append(w.daysSeen, day)
	w.slotIndex = 0
}

// inferNextDay returns the day after the last one seen in the fixed weekly
// sequence, or "" when the week is exhausted.
func (w *dayWalk) inferNextDay() string {
	if len(w.daysSeen) == 0 {
		return weekDays[0]
	}
	last := w.daysSeen[len(w.daysSeen)-1]
	for i, d := range weekDays {
		if d == last && i+1 < len(weekDays) {
			return weekDays[i+1]
		}
	}
	return ""
}
