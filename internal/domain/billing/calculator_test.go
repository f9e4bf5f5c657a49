package billing

import (
	"math"
	"math/rand/v2"
	"net/http"
	"testing"

	"github.com/sangkips/invoicely-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-9

func TestComputeTaxAmount(t *testing.T) {
	assert.InDelta(t, 40.0, ComputeTaxAmount(200, 0.20), epsilon)
	assert.InDelta(t, 0.0, ComputeTaxAmount(200, 0), epsilon)
	assert.InDelta(t, 0.0, ComputeTaxAmount(0, 0.16), epsilon)
	// No rounding on fractional cents.
	assert.InDelta(t, 0.0165, ComputeTaxAmount(0.11, 0.15), epsilon)
}

func TestRatePercentConversion(t *testing.T) {
	assert.InDelta(t, 0.16, RateFromPercent(16), epsilon)
	assert.InDelta(t, 7.5, RateToPercent(0.075), epsilon)
}

func TestCalculateLineItem_SingleTax(t *testing.T) {
	item, err := CalculateLineItem(LineItem{
		ProductName: "Consulting",
		Quantity:    2,
		UnitPrice:   100,
		Taxes:       []TaxLine{{Name: "VAT", Rate: 0.20}},
	})
	require.NoError(t, err)

	require.Len(t, item.Taxes, 1)
	assert.InDelta(t, 40.0, item.Taxes[0].Amount, epsilon)
	assert.InDelta(t, 240.0, item.LineTotal, epsilon)
}

func TestCalculateLineItem_MultipleTaxes(t *testing.T) {
	item, err := CalculateLineItem(LineItem{
		ProductName: "Consulting",
		Quantity:    2,
		UnitPrice:   100,
		Taxes: []TaxLine{
			{Name: "VAT", Rate: 0.20},
			{Name: "CityTax", Rate: 0.05},
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, 40.0, item.Taxes[0].Amount, epsilon)
	assert.InDelta(t, 10.0, item.Taxes[1].Amount, epsilon)
	assert.InDelta(t, 250.0, item.LineTotal, epsilon)
}

func TestCalculateLineItem_NoTaxes(t *testing.T) {
	item, err := CalculateLineItem(LineItem{ProductName: "Widget", Quantity: 3, UnitPrice: 9.5})
	require.NoError(t, err)

	assert.Empty(t, item.Taxes)
	assert.InDelta(t, 28.5, item.LineTotal, epsilon)
}

func TestCalculateLineItem_IgnoresSuppliedDerivedValues(t *testing.T) {
	input := LineItem{
		ProductName: "Widget",
		Quantity:    1,
		UnitPrice:   50,
		Taxes:       []TaxLine{{Name: "VAT", Rate: 0.10, Amount: 999}},
		LineTotal:   12345,
	}

	item, err := CalculateLineItem(input)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, item.Taxes[0].Amount, epsilon)
	assert.InDelta(t, 55.0, item.LineTotal, epsilon)
	// Input slice is untouched.
	assert.Equal(t, 999.0, input.Taxes[0].Amount)
}

func TestCalculateLineItem_RateAboveOneIsAccepted(t *testing.T) {
	item, err := CalculateLineItem(LineItem{
		ProductName: "Widget",
		Quantity:    1,
		UnitPrice:   10,
		Taxes:       []TaxLine{{Name: "VAT", Rate: 16}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 170.0, item.LineTotal, epsilon)
}

func TestCalculateLineItem_Validation(t *testing.T) {
	tests := []struct {
		name  string
		item  LineItem
		field string
	}{
		{"zero quantity", LineItem{ProductName: "x", Quantity: 0, UnitPrice: 1}, "quantity"},
		{"negative quantity", LineItem{ProductName: "x", Quantity: -1, UnitPrice: 1}, "quantity"},
		{"nan quantity", LineItem{ProductName: "x", Quantity: math.NaN(), UnitPrice: 1}, "quantity"},
		{"negative price", LineItem{ProductName: "x", Quantity: 1, UnitPrice: -0.01}, "unit_price"},
		{"infinite price", LineItem{ProductName: "x", Quantity: 1, UnitPrice: math.Inf(1)}, "unit_price"},
		{"missing product name", LineItem{ProductName: "  ", Quantity: 1, UnitPrice: 1}, "product_name"},
		{"negative rate", LineItem{ProductName: "x", Quantity: 1, UnitPrice: 1, Taxes: []TaxLine{{Name: "VAT", Rate: -0.1}}}, "taxes[0].tax_rate"},
		{"empty tax name", LineItem{ProductName: "x", Quantity: 1, UnitPrice: 1, Taxes: []TaxLine{{Name: "VAT", Rate: 0.1}, {Name: "", Rate: 0.1}}}, "taxes[1].tax_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateLineItem(tt.item)
			require.Error(t, err)

			appErr := apperror.GetAppError(err)
			assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
			require.NotEmpty(t, appErr.Errors)
			assert.Equal(t, tt.field, appErr.Errors[0].Field)
		})
	}
}

func TestCalculateLineItem_LineTotalProperty(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for i := 0; i < 500; i++ {
		item := randomLineItem(rng)

		got, err := CalculateLineItem(item)
		require.NoError(t, err)

		expected := item.Quantity * item.UnitPrice
		for _, tax := range got.Taxes {
			expected += tax.Amount
		}
		assert.InDelta(t, expected, got.LineTotal, epsilon*math.Max(1, expected))
		for j, tax := range got.Taxes {
			assert.InDelta(t, item.Quantity*item.UnitPrice*item.Taxes[j].Rate, tax.Amount, epsilon*math.Max(1, tax.Amount))
		}
	}
}

func randomLineItem(rng *rand.Rand) LineItem {
	item := LineItem{
		ProductName: "Item",
		Quantity:    float64(rng.IntN(50)+1) / float64(rng.IntN(4)+1),
		UnitPrice:   float64(rng.IntN(100000)) / 100,
	}
	for n := rng.IntN(4); n > 0; n-- {
		item.Taxes = append(item.Taxes, TaxLine{Name: "Tax", Rate: float64(rng.IntN(3000)) / 10000})
	}
	return item
}
