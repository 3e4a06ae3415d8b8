package subscriptions

import (
	"testing"

	"golang.org/x/text/language"
)

func TestSortPendingOverdueAlwaysFirst(t *testing.T) {
	set := []Record{
		pendingRecord("spotify", 10900, testToday.AddDate(0, 0, 1)),
		overdueRecord("netflix", 17000, testToday.AddDate(0, 0, -2)),
		pendingRecord("drive", 2900, testToday.AddDate(0, 0, 20)),
		overdueRecord("gym", 50000, testToday.AddDate(0, 0, -5)),
	}

	for _, key := range []SortKey{SortByDueDate, SortByAmountDesc, SortByNameAsc} {
		got := SortPending(set, key, language.English)
		if len(got) != 4 {
			t.Fatalf("key %s: expected 4 items, got %d", key, len(got))
		}
		if got[0].Status != StatusOverdue || got[1].Status != StatusOverdue {
			t.Fatalf("key %s: overdue items must precede pending items", key)
		}
		if got[0].Description != "gym" || got[1].Description != "netflix" {
			t.Fatalf("key %s: overdue items must be ascending by due date, got %s, %s",
				key, got[0].Description, got[1].Description)
		}
	}
}

func TestSortPendingByDueDate(t *testing.T) {
	set := []Record{
		pendingRecord("drive", 2900, testToday.AddDate(0, 0, 20)),
		pendingRecord("spotify", 10900, testToday.AddDate(0, 0, 1)),
	}

	got := SortPending(set, SortByDueDate, language.English)
	if got[0].Description != "spotify" || got[1].Description != "drive" {
		t.Fatalf("expected [spotify drive], got [%s %s]", got[0].Description, got[1].Description)
	}
}

func TestSortPendingByAmountDescIsStable(t *testing.T) {
	set := []Record{
		pendingRecord("first", 100, testToday.AddDate(0, 0, 5)),
		pendingRecord("big", 999, testToday.AddDate(0, 0, 9)),
		pendingRecord("second", 100, testToday.AddDate(0, 0, 1)),
	}

	got := SortPending(set, SortByAmountDesc, language.English)
	for i := 1; i < len(got); i++ {
		if got[i].Amount > got[i-1].Amount {
			t.Fatalf("amounts must be non-increasing, got %d after %d", got[i].Amount, got[i-1].Amount)
		}
	}
	if got[1].Description != "first" || got[2].Description != "second" {
		t.Fatalf("ties must keep original relative order, got [%s %s]", got[1].Description, got[2].Description)
	}
}

func TestSortPendingByNameUsesCollation(t *testing.T) {
	set := []Record{
		pendingRecord("Ödeme", 100, testToday.AddDate(0, 0, 1)),
		pendingRecord("apple", 100, testToday.AddDate(0, 0, 2)),
		pendingRecord("Banana", 100, testToday.AddDate(0, 0, 3)),
	}

	got := SortPending(set, SortByNameAsc, language.English)

	// Collation orders case-insensitively and places diacritics next to their
	// base letter, unlike byte comparison which would push "Ödeme" last only
	// after uppercase letters.
	if got[0].Description != "apple" || got[1].Description != "Banana" || got[2].Description != "Ödeme" {
		t.Fatalf("unexpected collation order: [%s %s %s]",
			got[0].Description, got[1].Description, got[2].Description)
	}
}

func TestSortPendingScenario(t *testing.T) {
	set := SelectPending([]Record{
		overdueRecord("Netflix", 17000, testToday.AddDate(0, 0, -2)),
		pendingRecord("Spotify", 10900, testToday.AddDate(0, 0, 1)),
		pendingRecord("Drive", 2900, testToday.AddDate(0, 0, 20)),
	}, testToday)

	got := SortPending(set, SortByDueDate, language.English)

	want := []string{"Netflix", "Spotify", "Drive"}
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got))
	}
	for i, desc := range want {
		if got[i].Description != desc {
			t.Fatalf("position %d: got %s, want %s", i, got[i].Description, desc)
		}
	}
	if total := TotalAmount(got); total != 30800 {
		t.Fatalf("total = %d, want 30800", total)
	}
}
