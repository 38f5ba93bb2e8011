package core

// DateTotals holds the income and expense sums for a window of time.
// A type with no rows in the window contributes zero, not absence.
type DateTotals struct {
	Income  Money
	Expense Money
}

// Net returns income minus expense.
func (t DateTotals) Net() Money {
	return t.Income.Sub(t.Expense)
}

// CategoryTotal is an amount aggregated by (type, category).
type CategoryTotal struct {
	Type     Type
	Category string
	Total    Money
}
