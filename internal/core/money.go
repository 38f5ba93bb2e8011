// Package core provides the ledger domain types and money handling.
//
// Amounts are held as integer cents so that sums never accumulate
// floating-point drift; conversion to a decimal string happens only at
// the display boundary.
package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a monetary amount in integer cents.
type Money struct {
	Cents int64
}

var maxCents = decimal.NewFromInt(math.MaxInt64)

// ParseAmount converts a user-supplied decimal string to Money.
//
// Negative amounts and anything that is not a plain decimal number are
// rejected with ErrInvalidAmount. A third decimal digit is rounded
// half-up.
//
// Examples:
//
//	ParseAmount("10")     -> 1000 cents
//	ParseAmount("10.5")   -> 1050 cents
//	ParseAmount("10.555") -> 1056 cents
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	if d.IsNegative() {
		return Money{}, ErrInvalidAmount
	}
	cents := d.Shift(2).Round(0)
	if cents.GreaterThan(maxCents) {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents.IntPart()}, nil
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

// Sub returns m minus other. The result may be negative (net balances).
func (m Money) Sub(other Money) Money {
	return Money{Cents: m.Cents - other.Cents}
}

// Format renders the amount as a plain decimal string with two digits,
// e.g. "70.00" or "-12.34".
func (m Money) Format() string {
	c := m.Cents
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// Float returns the amount in major units for chart rendering.
// Use cents for all arithmetic; this is a display-only conversion.
func (m Money) Float() float64 {
	return float64(m.Cents) / 100.0
}
