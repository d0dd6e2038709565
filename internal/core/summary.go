package core

import "github.com/shopspring/decimal"

// CategoryTotal is the summed amount of every record in one category.
type CategoryTotal struct {
	Category Category
	Total    decimal.Decimal
}

// Amount returns the total as a float for JSON and charts.
func (c CategoryTotal) Amount() float64 {
	f, _ := c.Total.Float64()
	return f
}

// Summary holds the aggregates derived from a ledger snapshot.
type Summary struct {
	Total      decimal.Decimal
	ByCategory []CategoryTotal
	Count      int
}

// Summarize derives the running total and per-category totals.
//
// Each amount enters the sum through its shortest decimal representation, so
// the result does not depend on record order and the category totals add up
// to Total exactly. ByCategory lists only categories with at least one record,
// in order of first appearance in expenses.
func Summarize(expenses []Expense) Summary {
	s := Summary{Total: decimal.Zero, Count: len(expenses)}
	index := make(map[Category]int)
	for _, e := range expenses {
		amt := decimal.NewFromFloat(e.Amount)
		s.Total = s.Total.Add(amt)
		i, ok := index[e.Category]
		if !ok {
			i = len(s.ByCategory)
			index[e.Category] = i
			s.ByCategory = append(s.ByCategory, CategoryTotal{Category: e.Category, Total: decimal.Zero})
		}
		s.ByCategory[i].Total = s.ByCategory[i].Total.Add(amt)
	}
	return s
}

// TotalAmount returns the total as a float.
func (s Summary) TotalAmount() float64 {
	f, _ := s.Total.Float64()
	return f
}

// HasCategories reports whether the per-category block has anything to show.
func (s Summary) HasCategories() bool {
	return len(s.ByCategory) > 0
}

// CategoryMap returns the per-category totals keyed by category.
func (s Summary) CategoryMap() map[Category]decimal.Decimal {
	m := make(map[Category]decimal.Decimal, len(s.ByCategory))
	for _, ct := range s.ByCategory {
		m[ct.Category] = ct.Total
	}
	return m
}
