package report

import (
	"testing"
	"time"

	"finbot/internal/core"
)

func tx(typ core.Type, cents int64, category string, day time.Time) core.Transaction {
	return core.Transaction{
		User:     "alice",
		Type:     typ,
		Amount:   core.Money{Cents: cents},
		Category: category,
		Date:     day,
	}
}

func TestBuildRangeDataset(t *testing.T) {
	d1 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)

	ds := BuildRangeDataset([]core.Transaction{
		tx(core.Income, 10000, "Salary", d1),
		tx(core.Expense, 3000, "Dining", d1),
		tx(core.Expense, 500, "Transportation", d2),
	})

	if len(ds.Labels) != 2 || ds.Labels[0] != "2025-03-10" || ds.Labels[1] != "2025-03-11" {
		t.Fatalf("unexpected labels: %v", ds.Labels)
	}
	if len(ds.Series) != 2 {
		t.Fatalf("expected income and expense series, got %d", len(ds.Series))
	}

	byLabel := map[string][]float64{}
	for _, s := range ds.Series {
		byLabel[s.Label] = s.Values
	}
	if got := byLabel["income"]; got[0] != 100 || got[1] != 0 {
		t.Fatalf("unexpected income values: %v", got)
	}
	if got := byLabel["expense"]; got[0] != 30 || got[1] != 5 {
		t.Fatalf("unexpected expense values: %v", got)
	}
}

func TestBuildRangeDatasetEmpty(t *testing.T) {
	ds := BuildRangeDataset(nil)
	if len(ds.Labels) != 0 {
		t.Fatalf("expected no labels, got %v", ds.Labels)
	}
}

func TestBuildCategoryDatasetOrdering(t *testing.T) {
	totals := []core.CategoryTotal{
		{Type: core.Expense, Category: "Mystery Box", Total: core.Money{Cents: 100}},
		{Type: core.Expense, Category: "Transportation", Total: core.Money{Cents: 2000}},
		{Type: core.Income, Category: "Pocket Money", Total: core.Money{Cents: 5000}},
		{Type: core.Expense, Category: "Dining", Total: core.Money{Cents: 1500}},
		{Type: core.Income, Category: "Mystery Box", Total: core.Money{Cents: 700}},
	}

	ds := BuildCategoryDataset(totals)

	// Vocabulary order first, unknown category appended once at the end
	want := []string{"Dining", "Transportation", "Pocket Money", "Mystery Box"}
	if len(ds.Labels) != len(want) {
		t.Fatalf("expected labels %v, got %v", want, ds.Labels)
	}
	for i, l := range want {
		if ds.Labels[i] != l {
			t.Fatalf("label %d: expected %q, got %q in %v", i, l, ds.Labels[i], ds.Labels)
		}
	}

	byLabel := map[string][]float64{}
	for _, s := range ds.Series {
		byLabel[s.Label] = s.Values
	}
	if got := byLabel["expense"]; got[0] != 15 || got[1] != 20 || got[2] != 0 || got[3] != 1 {
		t.Fatalf("unexpected expense values: %v", got)
	}
	if got := byLabel["income"]; got[0] != 0 || got[2] != 50 || got[3] != 7 {
		t.Fatalf("unexpected income values: %v", got)
	}
}

func TestSummaryTotals(t *testing.T) {
	totals := []core.CategoryTotal{
		{Type: core.Income, Category: "Salary", Total: core.Money{Cents: 10000}},
		{Type: core.Income, Category: "Pocket Money", Total: core.Money{Cents: 2000}},
		{Type: core.Expense, Category: "Dining", Total: core.Money{Cents: 3000}},
	}
	got := SummaryTotals(totals)
	if got.Income.Cents != 12000 || got.Expense.Cents != 3000 {
		t.Fatalf("unexpected totals: %+v", got)
	}
	if got.Net().Cents != 9000 {
		t.Fatalf("expected net 9000, got %d", got.Net().Cents)
	}
}

func TestDayBounds(t *testing.T) {
	day := time.Date(2025, 3, 10, 17, 45, 3, 0, time.UTC)
	start, end := DayBounds(day)
	if start != time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected start: %v", start)
	}
	if end != time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC) {
		t.Fatalf("unexpected end: %v", end)
	}
}
