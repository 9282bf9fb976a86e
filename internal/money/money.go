// Package money holds fixed-point helpers for token prices and payouts.
package money

import (
	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits stored for prices and amounts.
const Scale = 2

// FitsScale reports whether d has at most Scale fractional digits.
func FitsScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(Scale))
}

// Times returns price × quantity.
func Times(price decimal.Decimal, quantity int64) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(quantity))
}

// Sum adds a list of amounts.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Positive reports whether d is strictly greater than zero.
func Positive(d decimal.Decimal) bool {
	return d.GreaterThan(decimal.Zero)
}

// Format renders d with exactly Scale fractional digits.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Scale)
}
