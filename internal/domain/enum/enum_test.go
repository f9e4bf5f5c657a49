package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceStatusJSON(t *testing.T) {
	var s InvoiceStatus
	require.NoError(t, json.Unmarshal([]byte(`"Paid"`), &s))
	assert.Equal(t, InvoiceStatusPaid, s)

	require.NoError(t, json.Unmarshal([]byte(`3`), &s))
	assert.Equal(t, InvoiceStatusOverdue, s)

	assert.Error(t, json.Unmarshal([]byte(`"void"`), &s))
	assert.Error(t, json.Unmarshal([]byte(`9`), &s))

	out, err := json.Marshal(InvoiceStatusSent)
	require.NoError(t, err)
	assert.JSONEq(t, `"sent"`, string(out))
}

func TestPaymentMethodParse(t *testing.T) {
	m, err := ParsePaymentMethod(" Transfer ")
	require.NoError(t, err)
	assert.Equal(t, PaymentMethodTransfer, m)

	_, err = ParsePaymentMethod("cheque")
	assert.Error(t, err)

	assert.Equal(t, "unknown", PaymentMethod(7).String())
}

func TestScanDefaults(t *testing.T) {
	var s InvoiceStatus
	require.NoError(t, s.Scan(nil))
	assert.Equal(t, InvoiceStatusDraft, s)

	var k DocumentKind
	require.NoError(t, k.Scan(int64(1)))
	assert.Equal(t, DocumentKindReceipt, k)
	assert.Equal(t, "Receipt", k.Title())
}
