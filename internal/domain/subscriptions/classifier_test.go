package subscriptions

import (
	"testing"
	"time"
)

var testToday = time.Date(2025, 7, 15, 10, 30, 0, 0, time.UTC)

func datePtr(t time.Time) *time.Time {
	d := Day(t)
	return &d
}

func pendingRecord(desc string, amount int64, due time.Time) Record {
	return Record{
		ID:          desc,
		OwnerID:     "owner-1",
		Amount:      amount,
		Description: desc,
		Type:        TypeExpense,
		IsRecurring: true,
		Status:      StatusPending,
		DueDate:     datePtr(due),
		CategoryID:  "cat-1",
	}
}

func overdueRecord(desc string, amount int64, due time.Time) Record {
	r := pendingRecord(desc, amount, due)
	r.Status = StatusOverdue
	return r
}

func completedRecord(desc string, amount int64, actual time.Time) Record {
	return Record{
		ID:          desc,
		OwnerID:     "owner-1",
		Amount:      amount,
		Description: desc,
		Type:        TypeExpense,
		IsRecurring: true,
		Status:      StatusCompleted,
		ActualDate:  datePtr(actual),
		CategoryID:  "cat-1",
	}
}

func TestSelectPendingSkipsNonRecurring(t *testing.T) {
	oneOff := pendingRecord("one-off", 100, testToday)
	oneOff.IsRecurring = false
	income := pendingRecord("salary", 100, testToday)
	income.Type = TypeIncome

	got := SelectPending([]Record{oneOff, income}, testToday)
	if len(got) != 0 {
		t.Fatalf("expected non-recurring and income records excluded, got %d", len(got))
	}
}

func TestSelectPendingOverdueWindow(t *testing.T) {
	cases := []struct {
		name     string
		daysAgo  int
		included bool
	}{
		{"eight days overdue dropped", 8, false},
		{"seven days overdue kept", 7, true},
		{"six days overdue kept", 6, true},
		{"one day overdue kept", 1, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := overdueRecord("netflix", 17000, testToday.AddDate(0, 0, -tc.daysAgo))
			got := SelectPending([]Record{r}, testToday)
			if (len(got) == 1) != tc.included {
				t.Fatalf("dueDate today-%dd: included=%v, want %v", tc.daysAgo, len(got) == 1, tc.included)
			}
		})
	}
}

func TestSelectPendingUpcomingWindow(t *testing.T) {
	exactlyOneMonth := pendingRecord("a", 100, testToday.AddDate(0, 1, 0))
	oneMonthAndADay := pendingRecord("b", 100, testToday.AddDate(0, 1, 1))
	today := pendingRecord("c", 100, testToday)

	got := SelectPending([]Record{exactlyOneMonth, oneMonthAndADay, today}, testToday)
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	for _, r := range got {
		if r.Description == "b" {
			t.Fatalf("record one month and a day out must be excluded")
		}
	}
}

func TestSelectCompletedLookbackBoundary(t *testing.T) {
	today := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	threeDaysAgo := completedRecord("in", 100, time.Date(2025, 7, 12, 0, 0, 0, 0, time.UTC))
	fourDaysAgo := completedRecord("out", 100, time.Date(2025, 7, 11, 0, 0, 0, 0, time.UTC))

	got := SelectCompleted([]Record{threeDaysAgo, fourDaysAgo}, today, "owner-1")
	if len(got) != 1 || got[0].Description != "in" {
		t.Fatalf("expected only the 3-days-ago record, got %v", got)
	}
}

func TestSelectCompletedScopesByOwner(t *testing.T) {
	mine := completedRecord("mine", 100, testToday)
	other := completedRecord("other", 100, testToday)
	other.OwnerID = "owner-2"

	got := SelectCompleted([]Record{mine, other}, testToday, "owner-1")
	if len(got) != 1 || got[0].Description != "mine" {
		t.Fatalf("expected only owner-1 records, got %v", got)
	}
}

func TestDueStatusOf(t *testing.T) {
	cases := []struct {
		name     string
		record   Record
		severity Severity
		label    string
	}{
		{"overdue two days", overdueRecord("a", 1, testToday.AddDate(0, 0, -2)), SeverityOverdue, "2 days overdue"},
		{"overdue one day", overdueRecord("a", 1, testToday.AddDate(0, 0, -1)), SeverityOverdue, "1 day overdue"},
		{"due today", pendingRecord("a", 1, testToday), SeverityDueToday, "today"},
		{"due soon", pendingRecord("a", 1, testToday.AddDate(0, 0, 3)), SeverityDueSoon, "3 days from now"},
		{"due later", pendingRecord("a", 1, testToday.AddDate(0, 0, 4)), SeverityDueLater, "4 days from now"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DueStatusOf(tc.record, testToday)
			if got.Severity != tc.severity {
				t.Fatalf("severity = %s, want %s", got.Severity, tc.severity)
			}
			if got.Label != tc.label {
				t.Fatalf("label = %q, want %q", got.Label, tc.label)
			}
		})
	}
}

func TestDueStatusOfIsPure(t *testing.T) {
	r := overdueRecord("netflix", 17000, testToday.AddDate(0, 0, -2))
	first := DueStatusOf(r, testToday)
	second := DueStatusOf(r, testToday)
	if first != second {
		t.Fatalf("expected identical results, got %v and %v", first, second)
	}
}

func TestDueStatusIgnoresTimeOfDay(t *testing.T) {
	r := pendingRecord("a", 1, time.Date(2025, 7, 16, 1, 0, 0, 0, time.UTC))
	lateToday := time.Date(2025, 7, 15, 23, 59, 0, 0, time.UTC)

	got := DueStatusOf(r, lateToday)
	if got.DaysDelta != 1 {
		t.Fatalf("daysDelta = %d, want 1 (calendar-day granularity)", got.DaysDelta)
	}
}
