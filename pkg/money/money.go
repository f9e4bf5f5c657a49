// Package money formats full-precision amounts for display. It is the only place
// where amounts are rounded.
package money

import "github.com/shopspring/decimal"

// Round returns amount rounded half away from zero to two decimal places.
func Round(amount float64) float64 {
	f, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return f
}

// Format renders amount with exactly two decimals, e.g. "1234.50".
func Format(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

// FormatCurrency renders amount as "$1234.50".
func FormatCurrency(amount float64) string {
	d := decimal.NewFromFloat(amount)
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// FormatQuantity renders a quantity without trailing zeros, e.g. "2" or "1.5".
func FormatQuantity(q float64) string {
	return decimal.NewFromFloat(q).String()
}

// FormatPercent renders a fractional rate as a percentage, e.g. 0.165 -> "16.5%".
func FormatPercent(rate float64) string {
	return decimal.NewFromFloat(rate).Shift(2).String() + "%"
}
