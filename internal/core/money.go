// Package core provides money parsing and handling utilities.
//
// This file contains functions for parsing amounts typed into the form and
// formatting them for display. Amounts are stored with full float precision;
// rounding only happens when a value is rendered.
package core

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrencySymbol prefixes every rendered amount unless configured otherwise.
const DefaultCurrencySymbol = "$"

// ParseAmount converts user input to a positive amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. The value is
// not rounded. Returns ErrInvalidAmount for empty input, anything that does not
// parse as a finite number, and values that are zero or negative.
//
// Examples:
//
//	ParseAmount("4.50")   -> 4.5, nil
//	ParseAmount("4,50")   -> 4.5, nil
//	ParseAmount("0.125")  -> 0.125, nil
//	ParseAmount("")       -> 0, ErrInvalidAmount
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// FormatAmount renders v with exactly two decimal places ("4.5" -> "4.50").
// Rounding is half away from zero on the shortest decimal form of v.
func FormatAmount(v float64) string {
	return FormatDecimal(decimal.NewFromFloat(v))
}

// FormatDecimal renders d with exactly two decimal places.
func FormatDecimal(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatMoney renders v as symbol + two-decimal amount, e.g. "$6.50".
// Negative values keep the sign in front of the symbol.
func FormatMoney(symbol string, v float64) string {
	return formatSigned(symbol, decimal.NewFromFloat(v))
}

// FormatMoneyDecimal is FormatMoney for an exact decimal total.
func FormatMoneyDecimal(symbol string, d decimal.Decimal) string {
	return formatSigned(symbol, d)
}

func formatSigned(symbol string, d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + symbol + FormatDecimal(d.Neg())
	}
	return symbol + FormatDecimal(d)
}
