package subscriptions

import "testing"

func TestTotalAmountAndOverdueCount(t *testing.T) {
	set := []Record{
		overdueRecord("netflix", 17000, testToday.AddDate(0, 0, -2)),
		pendingRecord("spotify", 10900, testToday.AddDate(0, 0, 1)),
		pendingRecord("drive", 2900, testToday.AddDate(0, 0, 20)),
	}

	if total := TotalAmount(set); total != 30800 {
		t.Fatalf("total = %d, want 30800", total)
	}
	if count := OverdueCount(set); count != 1 {
		t.Fatalf("overdue count = %d, want 1", count)
	}
}

func TestTotalAmountEmpty(t *testing.T) {
	if total := TotalAmount(nil); total != 0 {
		t.Fatalf("total of empty set = %d, want 0", total)
	}
}

func TestCategoryTotals(t *testing.T) {
	red := "#ff0000"
	blue := "#0000ff"
	categories := []Category{
		{ID: "cat-media", Name: "Media", Color: &red},
		{ID: "cat-cloud", Name: "Cloud", Color: &blue},
	}

	a := completedRecord("netflix", 17000, testToday)
	a.CategoryID = "cat-media"
	b := completedRecord("spotify", 10900, testToday)
	b.CategoryID = "cat-media"
	c := completedRecord("drive", 2900, testToday)
	c.CategoryID = "cat-cloud"

	got := CategoryTotals([]Record{a, b, c}, categories)
	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(got))
	}

	if got[0].CategoryID != "cat-media" || got[0].Amount != 27900 {
		t.Fatalf("first group = %+v, want cat-media 27900", got[0])
	}
	if got[0].Color == nil || *got[0].Color != red {
		t.Fatalf("expected media group annotated with %s", red)
	}
	if got[1].CategoryID != "cat-cloud" || got[1].Amount != 2900 {
		t.Fatalf("second group = %+v, want cat-cloud 2900", got[1])
	}
}

func TestCategoryTotalsUnknownCategory(t *testing.T) {
	r := completedRecord("mystery", 500, testToday)
	r.CategoryID = "cat-gone"

	got := CategoryTotals([]Record{r}, nil)
	if len(got) != 1 || got[0].Name != "" || got[0].Amount != 500 {
		t.Fatalf("expected an unnamed group for a missing category, got %+v", got)
	}
}
