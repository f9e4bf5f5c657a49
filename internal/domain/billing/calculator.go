package billing

import (
	"fmt"
	"math"
	"strings"

	"github.com/sangkips/invoicely-api/pkg/apperror"
)

// LineItem is the calculation view of an invoice or receipt row.
type LineItem struct {
	ProductName string
	Description string
	Quantity    float64
	UnitPrice   float64
	Taxes       []TaxLine
	LineTotal   float64
}

// Subtotal returns the pre-tax amount of the item.
func (li LineItem) Subtotal() float64 {
	return li.Quantity * li.UnitPrice
}

// TaxTotal sums the tax amounts currently set on the item.
func (li LineItem) TaxTotal() float64 {
	var sum float64
	for _, t := range li.Taxes {
		sum += t.Amount
	}
	return sum
}

// ValidateLineItem returns one field error per problem found. Field names are
// relative to the item; callers add their own prefix.
func ValidateLineItem(item LineItem) []apperror.FieldError {
	var errs []apperror.FieldError

	if strings.TrimSpace(item.ProductName) == "" {
		errs = append(errs, apperror.FieldError{Field: "product_name", Message: "is required"})
	}
	switch {
	case !isFinite(item.Quantity):
		errs = append(errs, apperror.FieldError{Field: "quantity", Message: "must be a finite number"})
	case item.Quantity <= 0:
		errs = append(errs, apperror.FieldError{Field: "quantity", Message: "must be greater than 0"})
	}
	switch {
	case !isFinite(item.UnitPrice):
		errs = append(errs, apperror.FieldError{Field: "unit_price", Message: "must be a finite number"})
	case item.UnitPrice < 0:
		errs = append(errs, apperror.FieldError{Field: "unit_price", Message: "must not be negative"})
	}

	for i, t := range item.Taxes {
		prefix := fmt.Sprintf("taxes[%d].", i)
		if strings.TrimSpace(t.Name) == "" {
			errs = append(errs, apperror.FieldError{Field: prefix + "tax_name", Message: "is required"})
		}
		switch {
		case !isFinite(t.Rate):
			errs = append(errs, apperror.FieldError{Field: prefix + "tax_rate", Message: "must be a finite number"})
		case t.Rate < 0:
			errs = append(errs, apperror.FieldError{Field: prefix + "tax_rate", Message: "must not be negative"})
		}
	}

	return errs
}

// CalculateLineItem fills in every tax amount and the line total. Amounts and
// totals already present on the input are ignored. The input is not modified.
func CalculateLineItem(item LineItem) (LineItem, error) {
	if errs := ValidateLineItem(item); len(errs) > 0 {
		return LineItem{}, apperror.NewValidationError(errs)
	}
	return calculate(item), nil
}

func calculate(item LineItem) LineItem {
	out := item
	out.Taxes = make([]TaxLine, len(item.Taxes))

	subtotal := item.Subtotal()
	var taxSum float64
	for i, t := range item.Taxes {
		t.Amount = ComputeTaxAmount(subtotal, t.Rate)
		taxSum += t.Amount
		out.Taxes[i] = t
	}
	out.LineTotal = subtotal + taxSum
	return out
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
