package subscriptions

import "sort"

// The reductions below are pure and recomputed from the current record set on
// every read; aggregate results are never cached.

func TotalAmount(set []Record) int64 {
	var total int64
	for _, r := range set {
		total += r.Amount
	}
	return total
}

func OverdueCount(set []Record) int {
	count := 0
	for _, r := range set {
		if r.Status == StatusOverdue {
			count++
		}
	}
	return count
}

// CategoryTotals groups a completed set by category and sums amounts per
// group, annotating each with the category's display name and color for chart
// rendering. Groups are ordered by descending amount, ties by name.
func CategoryTotals(set []Record, categories []Category) []CategoryTotal {
	byID := make(map[string]Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	sums := make(map[string]int64)
	for _, r := range set {
		sums[r.CategoryID] += r.Amount
	}

	out := make([]CategoryTotal, 0, len(sums))
	for id, amount := range sums {
		total := CategoryTotal{CategoryID: id, Amount: amount}
		if c, ok := byID[id]; ok {
			total.Name = c.Name
			total.Color = c.Color
		}
		out = append(out, total)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Name < out[j].Name
	})

	return out
}
