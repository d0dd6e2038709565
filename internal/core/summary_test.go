package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSummarizeScenario(t *testing.T) {
	// newest-first, as the ledger holds them
	expenses := []Expense{
		{ID: 2, Description: "Bus", Amount: 2.00, Category: Transport},
		{ID: 1, Description: "Coffee", Amount: 4.50, Category: Food},
	}
	s := Summarize(expenses)

	if FormatDecimal(s.Total) != "6.50" {
		t.Fatalf("total = %s, want 6.50", s.Total)
	}
	if s.Count != 2 {
		t.Fatalf("count = %d", s.Count)
	}
	m := s.CategoryMap()
	if len(m) != 2 || FormatDecimal(m[Food]) != "4.50" || FormatDecimal(m[Transport]) != "2.00" {
		t.Fatalf("unexpected category totals: %v", m)
	}
	// first appearance order
	if s.ByCategory[0].Category != Transport || s.ByCategory[1].Category != Food {
		t.Fatalf("unexpected order: %v", s.ByCategory)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if !s.Total.IsZero() || s.HasCategories() || s.Count != 0 {
		t.Fatalf("expected empty summary, got %+v", s)
	}
	if FormatMoneyDecimal("$", s.Total) != "$0.00" {
		t.Fatalf("unexpected formatting: %s", FormatMoneyDecimal("$", s.Total))
	}
}

func TestSummarizeOrderInvariant(t *testing.T) {
	a := Expense{Amount: 0.1, Category: Food}
	b := Expense{Amount: 0.2, Category: Bills}
	c := Expense{Amount: 0.3, Category: Food}
	perms := [][]Expense{
		{a, b, c}, {a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a},
	}
	want := decimal.RequireFromString("0.6")
	for i, p := range perms {
		s := Summarize(p)
		if !s.Total.Equal(want) {
			t.Fatalf("perm %d: total %s, want %s", i, s.Total, want)
		}
	}
}

func TestSummarizeCategoryTotalsSumToTotal(t *testing.T) {
	expenses := []Expense{
		{Amount: 12.34, Category: Food},
		{Amount: 0.07, Category: Health},
		{Amount: 99.99, Category: Bills},
		{Amount: 1.01, Category: Food},
		{Amount: 3.333, Category: Other},
	}
	s := Summarize(expenses)
	sum := decimal.Zero
	seen := map[Category]bool{}
	for _, ct := range s.ByCategory {
		if seen[ct.Category] {
			t.Fatalf("category %s listed twice", ct.Category)
		}
		seen[ct.Category] = true
		if !ct.Total.IsPositive() {
			t.Fatalf("category %s has non-positive total", ct.Category)
		}
		sum = sum.Add(ct.Total)
	}
	if !sum.Equal(s.Total) {
		t.Fatalf("category sum %s != total %s", sum, s.Total)
	}
	if len(s.ByCategory) != 4 {
		t.Fatalf("expected 4 categories, got %d", len(s.ByCategory))
	}
}
