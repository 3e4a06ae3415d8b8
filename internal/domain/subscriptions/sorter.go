package subscriptions

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortPending orders a filtered pending set for display. Overdue items always
// precede pending items regardless of key, and are ordered among themselves
// by ascending due date. The pending remainder is ordered by the chosen key;
// SortByNameAsc collates descriptions per the given locale tag. The result is
// recomputed on every render, never stored.
func SortPending(set []Record, key SortKey, locale language.Tag) []Record {
	overdue := make([]Record, 0, len(set))
	pending := make([]Record, 0, len(set))
	for _, r := range set {
		if r.Status == StatusOverdue {
			overdue = append(overdue, r)
		} else {
			pending = append(pending, r)
		}
	}

	sort.SliceStable(overdue, func(i, j int) bool {
		return dueBefore(overdue[i], overdue[j])
	})

	switch key {
	case SortByAmountDesc:
		sort.SliceStable(pending, func(i, j int) bool {
			return pending[i].Amount > pending[j].Amount
		})
	case SortByNameAsc:
		// collate.Collator buffers internally, so build one per call rather
		// than sharing across goroutines.
		c := collate.New(locale)
		sort.SliceStable(pending, func(i, j int) bool {
			return c.CompareString(pending[i].Description, pending[j].Description) < 0
		})
	default:
		sort.SliceStable(pending, func(i, j int) bool {
			return dueBefore(pending[i], pending[j])
		})
	}

	return append(overdue, pending...)
}

func dueBefore(a, b Record) bool {
	if a.DueDate == nil {
		return false
	}
	if b.DueDate == nil {
		return true
	}
	return Day(*a.DueDate).Before(Day(*b.DueDate))
}
