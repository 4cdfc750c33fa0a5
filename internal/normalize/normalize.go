// Package normalize converts raw strategy output into canonical timetable
// entries: day tokens to weekday indexes, time strings to zero-padded 24-hour
// form, and break/filler rows dropped.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/schedulely/timetable-extractor/internal/timetable"
)

// dayIndex maps every supported day token to 0-6 (Monday = 0): full names,
// 3-letter abbreviations with or without a trailing period, and 2-letter
// codes. Anything else is rejected, never defaulted.
var dayIndex = map[string]int{
	"monday": 0, "tuesday": 1, "wednesday": 2,
	"thursday": 3, "friday": 4, "saturday": 5, "sunday": 6,

	"mon": 0, "mon.": 0,
	"tue": 1, "tue.": 1, "tues": 1, "tues.": 1,
	"wed": 2, "wed.": 2,
	"thu": 3, "thu.": 3, "thur": 3, "thur.": 3, "thurs": 3, "thurs.": 3,
	"fri": 4, "fri.": 4,
	"sat": 5, "sat.": 5,
	"sun": 6, "sun.": 6,

	"mo": 0, "tu": 1, "we": 2, "th": 3, "fr": 4, "sa": 5, "su": 6,
}

var breakTokens = map[string]struct{}{
	"break": {}, "lunch": {}, "recess": {}, "free": {}, "free period": {},
	"-": {}, "—": {},
}

var timeRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})`)

// DayIndex resolves a free-form day token to its weekday index.
func DayIndex(token string) (int, bool) {
	idx, ok := dayIndex[strings.ToLower(strings.TrimSpace(token))]
	return idx, ok
}

// IsBreakToken reports whether a subject is a break/lunch/filler cell rather
// than a class.
func IsBreakToken(subject string) bool {
	_, ok := breakTokens[strings.ToLower(strings.TrimSpace(subject))]
	return ok
}

// ValidateTime accepts H:MM or HH:MM with hour 0-23 and minute 0-59 and
// returns the zero-padded HH:MM form. The second return is false when the
// string is not a usable time.
func ValidateTime(s string) (string, bool) {
	m := timeRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", false
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

// Canonicalize validates and normalizes raw entries, dropping rows with an
// unknown day, an invalid time, or a break subject, then runs the 12-hour
// correction pass over the surviving list. Re-running it on its own output
// yields the identical list.
func Canonicalize(raw []timetable.RawEntry) []timetable.Entry {
	out := make([]timetable.Entry, 0, len(raw))
	for _, r := range raw {
		day, ok := DayIndex(r.Day)
		if !ok {
			continue
		}
		start, ok := ValidateTime(r.StartTime)
		if !ok {
			continue
		}
		end, ok := ValidateTime(r.EndTime)
		if !ok {
			continue
		}
		subject := strings.TrimSpace(r.Subject)
		if subject == "" || IsBreakToken(subject) {
			continue
		}

		var room *string
		if s := strings.TrimSpace(r.Room); s != "" {
			room = &s
		}
		out = append(out, timetable.Entry{
			Subject:   subject,
			DayOfWeek: day,
			StartTime: start,
			EndTime:   end,
			Room:      room,
		})
	}
	return Fix12HourTimes(out)
}
