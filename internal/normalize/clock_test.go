package normalize

import (
	"testing"

	"github.com/schedulely/timetable-extractor/internal/timetable"
)

func entry(day int, start, end string) timetable.Entry {
	return timetable.Entry{Subject: "X", DayOfWeek: day, StartTime: start, EndTime: end}
}

func TestFix12HourTimes_AfternoonColumns(t *testing.T) {
	in := []timetable.Entry{
		entry(0, "08:00", "09:00"),
		entry(0, "12:00", "1:00"),
		entry(0, "1:00", "2:00"),
	}
	got := Fix12HourTimes(in)

	want := [][2]string{
		{"08:00", "09:00"},
		{"12:00", "13:00"},
		{"13:00", "14:00"},
	}
	for i, w := range want {
		if got[i].StartTime != w[0] || got[i].EndTime != w[1] {
			t.Fatalf("entry %d = %s-%s, want %s-%s",
				i, got[i].StartTime, got[i].EndTime, w[0], w[1])
		}
	}
}

func TestFix12HourTimes_MorningOnlyUntouched(t *testing.T) {
	in := []timetable.Entry{
		entry(0, "08:00", "09:00"),
		entry(0, "09:00", "10:00"),
		entry(0, "10:00", "11:00"),
	}
	got := Fix12HourTimes(in)
	for i, e := range got {
		if e.StartTime != in[i].StartTime || e.EndTime != in[i].EndTime {
			t.Fatalf("entry %d changed: %s-%s", i, e.StartTime, e.EndTime)
		}
	}
}

func TestFix12HourTimes_EarlyStartBeforeNoonStays(t *testing.T) {
	// A 7:00 slot before any noon slot appears is genuinely early morning.
	in := []timetable.Entry{
		entry(0, "7:30", "08:30"),
		entry(0, "08:30", "09:30"),
	}
	got := Fix12HourTimes(in)
	if got[0].StartTime != "7:30" {
		t.Fatalf("early-morning start changed to %s", got[0].StartTime)
	}
}

func TestFix12HourTimes_SharedSlotAppliesToAllDays(t *testing.T) {
	in := []timetable.Entry{
		entry(0, "12:00", "1:00"),
		entry(1, "1:00", "2:00"),
		entry(0, "1:00", "2:00"),
	}
	got := Fix12HourTimes(in)
	if got[1].StartTime != "13:00" || got[2].StartTime != "13:00" {
		t.Fatalf("shared slot not corrected on every day: %+v", got)
	}
}

func TestFix12HourTimes_Idempotent(t *testing.T) {
	in := []timetable.Entry{
		entry(0, "12:00", "1:00"),
		entry(0, "1:00", "2:00"),
	}
	once := Fix12HourTimes(in)
	copied := make([]timetable.Entry, len(once))
	copy(copied, once)
	twice := Fix12HourTimes(copied)
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("second pass changed entry %d: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestFix12HourTimes_Empty(t *testing.T) {
	if got := Fix12HourTimes(nil); len(got) != 0 {
		t.Fatalf("expected empty, got %+v", got)
	}
}
