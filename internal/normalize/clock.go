package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/schedulely/timetable-extractor/internal/timetable"
)

// Fix12HourTimes resolves 12-hour ambiguity across a whole entry list. A grid
// uses one AM/PM convention per column, so the correction works on distinct
// (start, end) slot pairs in first-appearance order rather than per entry:
//
//   - once a slot starting at or after 12:00 has been seen, any later slot
//     starting before 8:00 is an afternoon column and its start gets +12h;
//   - an end hour of 1-7 never happens in a school-day grid, so such end
//     times always get +12h (12:00-1:00 becomes 12:00-13:00).
//
// The adjustment applies uniformly to every entry sharing the slot key.
// Idempotent: corrected times land at or after 12:00 and are never shifted
// again.
func Fix12HourTimes(entries []timetable.Entry) []timetable.Entry {
	if len(entries) == 0 {
		return entries
	}

	var slots []timetable.TimeSlot
	seen := make(map[timetable.TimeSlot]struct{})
	for _, e := range entries {
		key := e.SlotKey()
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			slots = append(slots, key)
		}
	}

	needsPMStart := make(map[timetable.TimeSlot]struct{})
	needsPMEnd := make(map[timetable.TimeSlot]struct{})
	sawNoon := false

	for _, slot := range slots {
		startHour, okS := hourOf(slot.Start)
		endHour, okE := hourOf(slot.End)

		if okS && startHour >= 12 {
			sawNoon = true
		}
		if okS && startHour < 8 && sawNoon {
			needsPMStart[slot] = struct{}{}
		}
		if okE && endHour > 0 && endHour < 8 {
			needsPMEnd[slot] = struct{}{}
		}
	}

	for i := range entries {
		key := entries[i].SlotKey()
		if _, ok := needsPMStart[key]; ok {
			entries[i].StartTime = addTwelve(entries[i].StartTime)
		}
		if _, ok := needsPMEnd[key]; ok {
			entries[i].EndTime = addTwelve(entries[i].EndTime)
		}
	}
	return entries
}

func hourOf(t string) (int, bool) {
	idx := strings.IndexByte(t, ':')
	if idx <= 0 {
		return 0, false
	}
	h, err := strconv.Atoi(t[:idx])
	if err != nil {
		return 0, false
	}
	return h, true
}

func addTwelve(t string) string {
	idx := strings.IndexByte(t, ':')
	if idx <= 0 {
		return t
	}
	h, err := strconv.Atoi(t[:idx])
	if err != nil {
		return t
	}
	if h < 12 {
		h += 12
	}
	return fmt.Sprintf("%02d:%s", h, t[idx+1:])
}
