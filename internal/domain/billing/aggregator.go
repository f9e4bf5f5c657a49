package billing

import (
	"fmt"

	"github.com/sangkips/invoicely-api/pkg/apperror"
)

// Totals are the document level figures. Total is always Subtotal + TotalTax.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	TotalTax float64 `json:"total_tax"`
	Total    float64 `json:"total"`
}

// Aggregate sums already calculated line items into document totals.
func Aggregate(items []LineItem) (Totals, error) {
	if len(items) == 0 {
		return Totals{}, apperror.NewFieldError("items", "at least one item is required")
	}

	var t Totals
	for _, item := range items {
		t.Subtotal += item.Subtotal()
		t.TotalTax += item.TaxTotal()
	}
	t.Total = t.Subtotal + t.TotalTax
	return t, nil
}

// CalculateDocument validates every item, calculates each one and aggregates the
// result. All item problems are reported together, prefixed with items[i].
func CalculateDocument(items []LineItem) ([]LineItem, Totals, error) {
	if len(items) == 0 {
		return nil, Totals{}, apperror.NewFieldError("items", "at least one item is required")
	}

	var errs []apperror.FieldError
	for i, item := range items {
		for _, fe := range ValidateLineItem(item) {
			fe.Field = fmt.Sprintf("items[%d].%s", i, fe.Field)
			errs = append(errs, fe)
		}
	}
	if len(errs) > 0 {
		return nil, Totals{}, apperror.NewValidationError(errs)
	}

	calculated := make([]LineItem, len(items))
	for i, item := range items {
		calculated[i] = calculate(item)
	}

	totals, err := Aggregate(calculated)
	if err != nil {
		return nil, Totals{}, err
	}
	return calculated, totals, nil
}
