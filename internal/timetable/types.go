// Package timetable holds the domain types every stage of the extraction
// pipeline trades in.
package timetable

import "github.com/schedulely/timetable-extractor/constants"

// RawEntry is one unvalidated row as a strategy produced it. Any field may be
// malformed; normalization decides what survives.
type RawEntry struct {
	Subject   string `json:"subject"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Room      string `json:"room,omitempty"`
}

// Entry is a validated, normalized timetable row ready for the caller to
// persist. DayOfWeek is 0-6 with Monday = 0; times are zero-padded 24-hour
// HH:MM strings.
type Entry struct {
	Subject   string  `json:"subject"`
	DayOfWeek int     `json:"day_of_week"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Room      *string `json:"room"`
}

// SlotKey identifies the grid column an entry belongs to, by the literal
// time pair the entry carries.
func (e Entry) SlotKey() TimeSlot {
	return TimeSlot{Start: e.StartTime, End: e.EndTime}
}

// TimeSlot is one column of a timetable grid, identified by its header
// time range as extracted (not yet validated).
type TimeSlot struct {
	Start string
	End   string
}

// Result is the terminal outcome of one extraction call. It is immutable
// after construction and owned by the caller.
type Result struct {
	Status     constants.ExtractionStatus `json:"status"`
	LayoutType string                     `json:"layout_type,omitempty"`
	Entries    []Entry                    `json:"entries"`
	Confidence float64                    `json:"confidence"`
	Notes      string                     `json:"notes,omitempty"`
	Error      string                     `json:"error,omitempty"`
}

// Failed reports whether the extraction produced no usable entries.
func (r Result) Failed() bool {
	return r.Status == constants.StatusFailed
}
