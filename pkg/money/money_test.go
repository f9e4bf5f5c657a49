package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "240.00", Format(240))
	assert.Equal(t, "0.02", Format(0.0165))
	assert.Equal(t, "1.01", Format(1.005))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$12.50", FormatCurrency(12.5))
	assert.Equal(t, "-$3.00", FormatCurrency(-3))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.3, Round(0.1+0.2))
	assert.Equal(t, 2.68, Round(2.675))
}

func TestFormatQuantityAndPercent(t *testing.T) {
	assert.Equal(t, "2", FormatQuantity(2))
	assert.Equal(t, "1.5", FormatQuantity(1.5))
	assert.Equal(t, "16%", FormatPercent(0.16))
	assert.Equal(t, "7.5%", FormatPercent(0.075))
}
