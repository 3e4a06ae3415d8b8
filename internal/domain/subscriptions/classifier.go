package subscriptions

import (
	"fmt"
	"time"
)

const (
	// Overdue records older than this are no longer surfaced in the pending
	// view. They stay in the store; the cutoff only bounds stale-item
	// accumulation on screen.
	overdueDisplayWindowDays = 7

	// Completed records are shown for this many days after payment.
	completedLookbackDays = 3

	// Upper bound of the "due soon" bucket, and the half-width of the
	// three-day pending filter window.
	dueSoonWindowDays = 3
)

// SelectPending returns the unordered set of recurring expense records that
// should appear in the "to pay" view for the given day: overdue occurrences
// no older than a week, and pending occurrences due within the next month
// (inclusive).
func SelectPending(records []Record, today time.Time) []Record {
	day := Day(today)
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if !r.IsRecurring || r.Type != TypeExpense || r.DueDate == nil {
			continue
		}
		due := Day(*r.DueDate)
		switch r.Status {
		case StatusOverdue:
			if !due.Before(day.AddDate(0, 0, -overdueDisplayWindowDays)) && due.Before(day) {
				out = append(out, r)
			}
		case StatusPending:
			if !due.Before(day) && !due.After(day.AddDate(0, 1, 0)) {
				out = append(out, r)
			}
		}
	}
	return out
}

// SelectCompleted returns the owner's recurring payments completed within the
// last three days, inclusive of the boundary day.
func SelectCompleted(records []Record, today time.Time, ownerID string) []Record {
	day := Day(today)
	from := day.AddDate(0, 0, -completedLookbackDays)
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.OwnerID != ownerID || !r.IsRecurring || r.Type != TypeExpense {
			continue
		}
		if r.Status != StatusCompleted || r.ActualDate == nil {
			continue
		}
		actual := Day(*r.ActualDate)
		if !actual.Before(from) && !actual.After(day) {
			out = append(out, r)
		}
	}
	return out
}

// DueStatusOf derives the display status of a single record relative to
// today. It reads nothing but its arguments.
func DueStatusOf(r Record, today time.Time) DueStatus {
	delta := 0
	if r.DueDate != nil {
		delta = DaysBetween(today, *r.DueDate)
	}

	if r.Status == StatusOverdue {
		n := delta
		if n < 0 {
			n = -n
		}
		return DueStatus{
			Severity:  SeverityOverdue,
			DaysDelta: delta,
			Label:     fmt.Sprintf("%d %s overdue", n, daysWord(n)),
		}
	}

	switch {
	case delta == 0:
		return DueStatus{Severity: SeverityDueToday, DaysDelta: 0, Label: "today"}
	case delta > 0 && delta <= dueSoonWindowDays:
		return DueStatus{
			Severity:  SeverityDueSoon,
			DaysDelta: delta,
			Label:     fmt.Sprintf("%d %s from now", delta, daysWord(delta)),
		}
	default:
		return DueStatus{
			Severity:  SeverityDueLater,
			DaysDelta: delta,
			Label:     fmt.Sprintf("%d %s from now", delta, daysWord(delta)),
		}
	}
}

func daysWord(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}
