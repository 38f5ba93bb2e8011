// Package report turns raw ledger rows into chart-ready datasets and
// renders them as stacked bar images. Aggregation here is pure: nothing
// is cached or persisted, every report is recomputed from the rows it
// is given.
package report

import (
	"time"

	"finbot/internal/core"
)

// DefaultCategories is the known category vocabulary. It fixes dataset
// ordering; categories outside this list are still aggregated as their
// own group and appended after it, in first-encountered order.
var DefaultCategories = []string{
	"Entertainment & Shopping",
	"Dining",
	"Transportation",
	"Daily Necessities",
	"Shipping Cost",
	"Gambling",
	"Sell Price",
	"Pocket Money",
	"Gambling (Friends)",
}

type (
	// Series is one stacked component, e.g. all income values per label.
	Series struct {
		Label  string
		Values []float64
	}

	// Dataset is the tabular input to the renderer: one value per
	// (label, series) pair, zero-filled where no rows exist.
	Dataset struct {
		Title  string
		Labels []string
		Series []Series
	}
)

// BuildRangeDataset groups transactions by calendar date (labels) and
// type (series). Rows are expected in date-ascending order from
// storage; labels keep first-encountered order and are not re-sorted.
func BuildRangeDataset(rows []core.Transaction) Dataset {
	var labels []string
	index := make(map[string]int)
	var income, expense []float64

	for _, tx := range rows {
		day := tx.Date.UTC().Format("2006-01-02")
		i, ok := index[day]
		if !ok {
			i = len(labels)
			index[day] = i
			labels = append(labels, day)
			income = append(income, 0)
			expense = append(expense, 0)
		}
		switch tx.Type {
		case core.Income:
			income[i] += tx.Amount.Float()
		case core.Expense:
			expense[i] += tx.Amount.Float()
		}
	}

	return Dataset{
		Title:  "Income and expenses by date",
		Labels: labels,
		Series: []Series{
			{Label: string(core.Income), Values: income},
			{Label: string(core.Expense), Values: expense},
		},
	}
}

// BuildCategoryDataset shapes lifetime (type, category) totals into one
// bar per category with an income and an expense component. Known
// categories come first in vocabulary order, then any others in
// first-encountered order.
func BuildCategoryDataset(totals []core.CategoryTotal) Dataset {
	known := make(map[string]bool, len(DefaultCategories))
	for _, c := range DefaultCategories {
		known[c] = true
	}

	present := make(map[string]bool)
	for _, ct := range totals {
		present[ct.Category] = true
	}

	var labels []string
	for _, c := range DefaultCategories {
		if present[c] {
			labels = append(labels, c)
		}
	}
	appended := make(map[string]bool)
	for _, ct := range totals {
		if known[ct.Category] || appended[ct.Category] {
			continue
		}
		appended[ct.Category] = true
		labels = append(labels, ct.Category)
	}

	index := make(map[string]int, len(labels))
	for i, c := range labels {
		index[c] = i
	}
	income := make([]float64, len(labels))
	expense := make([]float64, len(labels))
	for _, ct := range totals {
		i, ok := index[ct.Category]
		if !ok {
			continue
		}
		switch ct.Type {
		case core.Income:
			income[i] += ct.Total.Float()
		case core.Expense:
			expense[i] += ct.Total.Float()
		}
	}

	return Dataset{
		Title:  "Income and expenses by category",
		Labels: labels,
		Series: []Series{
			{Label: string(core.Income), Values: income},
			{Label: string(core.Expense), Values: expense},
		},
	}
}

// SummaryTotals sums category totals per type for the weekly report text.
func SummaryTotals(totals []core.CategoryTotal) core.DateTotals {
	var out core.DateTotals
	for _, ct := range totals {
		switch ct.Type {
		case core.Income:
			out.Income = out.Income.Add(ct.Total)
		case core.Expense:
			out.Expense = out.Expense.Add(ct.Total)
		}
	}
	return out
}

// DayBounds returns the closed full-day range for a calendar day in UTC.
func DayBounds(day time.Time) (time.Time, time.Time) {
	y, m, d := day.UTC().Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	end := time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
	return start, end
}
