package report

import "time"

// PreviousWeek returns the Monday and Sunday of the previous full week
// relative to today. Both bounds are inclusive calendar dates with no
// time-of-day component.
func PreviousWeek(today time.Time) (time.Time, time.Time) {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	monday := day.AddDate(0, 0, -(int(day.Weekday()) + 6))
	sunday := monday.AddDate(0, 0, 6)
	return monday, sunday
}

// DaysInRange counts calendar days between start and end, inclusive
func DaysInRange(start, end time.Time) int {
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}

// DateString formats a date as YYYY-MM-DD, the storage format for entry dates
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseDate parses a YYYY-MM-DD date string
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
