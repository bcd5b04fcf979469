package schedule

import (
	"time"
)

// isoWeekday maps time.Weekday to ISO numbering (1=Monday .. 7=Sunday).
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// dateOnly truncates t to midnight in its own location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts whole calendar days between the dates of a and b,
// ignoring time of day. The result is always non-negative.
func daysBetween(a, b time.Time) int {
	d := int(dateOnly(a).Sub(dateOnly(b)).Hours() / 24)
	if d < 0 {
		return -d
	}
	return d
}

// addMinutes shifts an "HH:MM" time-of-day forward, clamping at midnight.
func addMinutes(hhmm string, minutes int) string {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return hhmm
	}
	out := t.Add(time.Duration(minutes) * time.Minute)
	if out.Day() != t.Day() {
		return "23:59"
	}
	return out.Format("15:04")
}
