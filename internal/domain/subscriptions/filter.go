package subscriptions

import "time"

// ApplyPendingFilter narrows an already-windowed pending set. FilterAll is the
// identity. FilterThreeDayWindow keeps pending items due within three days of
// today in either direction; overdue items are always retained.
func ApplyPendingFilter(set []Record, mode FilterMode, today time.Time) []Record {
	if mode != FilterThreeDayWindow {
		return set
	}

	day := Day(today)
	from := day.AddDate(0, 0, -dueSoonWindowDays)
	to := day.AddDate(0, 0, dueSoonWindowDays)

	out := make([]Record, 0, len(set))
	for _, r := range set {
		if r.Status == StatusOverdue {
			out = append(out, r)
			continue
		}
		if r.DueDate == nil {
			continue
		}
		due := Day(*r.DueDate)
		if !due.Before(from) && !due.After(to) {
			out = append(out, r)
		}
	}
	return out
}
