package core

import (
	"math"
	"testing"
)

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in  string
		out Category
		ok  bool
	}{
		{"Food", Food, true},
		{"transport", Transport, true},
		{"  HEALTH ", Health, true},
		{"", DefaultCategory, true},
		{"Groceries", "", false},
	}
	for _, tc := range cases {
		got, err := ParseCategory(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %q, got %q (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err != ErrInvalidCategory {
			t.Fatalf("%q expected ErrInvalidCategory, got %v", tc.in, err)
		}
	}
}

func TestCategoriesOrderAndCopy(t *testing.T) {
	cats := Categories()
	want := []Category{Food, Transport, Shopping, Bills, Entertainment, Health, Other}
	if len(cats) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(cats))
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Fatalf("category %d: expected %q, got %q", i, want[i], cats[i])
		}
	}
	cats[0] = "mutated"
	if Categories()[0] != Food {
		t.Fatalf("Categories must return a copy")
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{ID: 1, Description: "Coffee", Amount: 4.5, Category: Food, Date: "1/2/2025"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		e   Expense
		err error
	}{
		{Expense{Description: "  ", Amount: 1, Category: Food}, ErrEmptyDescription},
		{Expense{Description: "a", Amount: 0, Category: Food}, ErrInvalidAmount},
		{Expense{Description: "a", Amount: -2, Category: Food}, ErrInvalidAmount},
		{Expense{Description: "a", Amount: math.Inf(1), Category: Food}, ErrInvalidAmount},
		{Expense{Description: "a", Amount: 1, Category: "Rent"}, ErrInvalidCategory},
	}
	for i, tc := range bads {
		if err := tc.e.Validate(); err != tc.err {
			t.Fatalf("case %d expected %v, got %v", i, tc.err, err)
		}
	}
}
