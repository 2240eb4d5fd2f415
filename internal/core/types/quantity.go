// Package types provides common type aliases for domain values.
package types

import (
	"github.com/shopspring/decimal"
)

// Quantity represents a stock quantity with full precision.
// Uses decimal.Decimal to avoid floating-point drift when balances are
// reconstructed over long transaction histories.
type Quantity = decimal.Decimal

// Qty creates a Quantity from an integer amount.
func Qty(n int64) Quantity {
	return decimal.NewFromInt(n)
}

// QtyFromFloat creates a Quantity from a float.
// Prefer QtyFromString when the value originates from text.
func QtyFromFloat(f float64) Quantity {
	return decimal.NewFromFloat(f)
}

// QtyFromString parses a Quantity from its decimal representation.
func QtyFromString(s string) (Quantity, error) {
	return decimal.NewFromString(s)
}

// MustQty parses a Quantity from a string, panics on error.
// Use only for constants and tests.
func MustQty(s string) Quantity {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ZeroQty returns the zero Quantity.
func ZeroQty() Quantity {
	return decimal.Zero
}
