package core

import (
	"errors"
	"math"
	"strings"
)

const (
	Food          Category = "Food"
	Transport     Category = "Transport"
	Shopping      Category = "Shopping"
	Bills         Category = "Bills"
	Entertainment Category = "Entertainment"
	Health        Category = "Health"
	Other         Category = "Other"

	// DefaultCategory is preselected in the form until the user picks another one.
	DefaultCategory = Food
)

type (
	Category string

	// Expense is one ledger record. The JSON shape is the persisted blob format.
	Expense struct {
		ID          int64    `json:"id"`
		Description string   `json:"description"`
		Amount      float64  `json:"amount"`
		Category    Category `json:"category"`
		Date        string   `json:"date"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidCategory  = errors.New("invalid category")
)

var categories = []Category{Food, Transport, Shopping, Bills, Entertainment, Health, Other}

// Categories returns the selectable categories in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// ParseCategory matches s against the known categories, ignoring case and
// surrounding whitespace. An empty string yields DefaultCategory.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultCategory, nil
	}
	for _, c := range categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

func (c Category) IsValid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// Validate checks a record built from user input. Records loaded from storage
// are never validated: the ledger keeps whatever was persisted.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if e.Amount <= 0 || math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) {
		return ErrInvalidAmount
	}
	if !e.Category.IsValid() {
		return ErrInvalidCategory
	}
	return nil
}
