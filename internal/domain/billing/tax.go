// Package billing holds the pure tax and total arithmetic shared by invoices and receipts.
//
// Rates are fractions everywhere in this package (0.20 means 20%). Amounts keep full
// float64 precision; rounding to cents is a presentation concern.
package billing

// TaxLine is one named tax applied to a line item.
type TaxLine struct {
	Name   string
	Rate   float64
	Amount float64
}

// ComputeTaxAmount returns the tax owed on base at the given fractional rate.
func ComputeTaxAmount(base, rate float64) float64 {
	return base * rate
}

// RateFromPercent converts a 0-100 percentage into a fraction.
func RateFromPercent(percent float64) float64 {
	return percent / 100
}

// RateToPercent converts a fraction into a 0-100 percentage.
func RateToPercent(rate float64) float64 {
	return rate * 100
}
