package subscriptions

import "time"

// All windowing in this package is calendar-day granular. Day strips the
// time-of-day so that every comparison site works on the same normalization.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from one day to another,
// negative when to precedes from.
func DaysBetween(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)) / (24 * time.Hour))
}

// NextMonth advances a due date by one calendar month, with Go's date
// normalization for month-end overflow (Jan 31 -> Mar 2/3).
func NextMonth(t time.Time) time.Time {
	return Day(t).AddDate(0, 1, 0)
}
