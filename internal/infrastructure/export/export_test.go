package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sangkips/invoicely-api/internal/domain/entity"
	"github.com/sangkips/invoicely-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleRecord(kind enum.DocumentKind) *entity.ExportRecord {
	rec := &entity.ExportRecord{
		Kind:      kind,
		Title:     kind.Title(),
		Number:    "INV-001",
		IssueDate: "2024-03-15",
		From:      entity.ExportParty{Name: "Acme Ltd", Address: "1 Main St"},
		Fields: []entity.ExportField{
			{Label: kind.Title() + " Number", Value: "INV-001"},
			{Label: "Issue Date", Value: "2024-03-15"},
			{},
			{Label: "Total", Value: 22.4},
		},
		Items: []entity.ExportItem{
			{
				ProductName: "Widget", Description: "Blue", Quantity: 2, UnitPrice: 10, TaxAmount: 2.4, LineTotal: 22.4,
				Taxes: []entity.ExportTax{{Name: "VAT", Rate: 0.12, Amount: 2.4}},
			},
		},
		Subtotal: 20,
		TotalTax: 2.4,
		Total:    22.4,
		Notes:    "Thanks",
	}
	if kind == enum.DocumentKindInvoice {
		rec.Status = "draft"
		rec.DueDate = "2024-04-15"
		rec.To = &entity.ExportParty{Name: "Globex"}
	} else {
		rec.PaymentMethod = "card"
	}
	return rec
}

func TestPDFRenderer(t *testing.T) {
	for _, kind := range []enum.DocumentKind{enum.DocumentKindInvoice, enum.DocumentKindReceipt} {
		t.Run(kind.String(), func(t *testing.T) {
			data, err := NewPDFRenderer().Render(sampleRecord(kind))
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
		})
	}
}

func TestExcelRenderer(t *testing.T) {
	rec := sampleRecord(enum.DocumentKindReceipt)
	data, err := NewExcelRenderer().Render(rec)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Receipt Details", ItemsSheet}, f.GetSheetList())

	label, err := f.GetCellValue("Receipt Details", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Receipt Number", label)

	blank, err := f.GetCellValue("Receipt Details", "A3")
	require.NoError(t, err)
	assert.Empty(t, blank)

	total, err := f.GetCellValue("Receipt Details", "B4", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "22.4", total)

	rows, err := f.GetRows(ItemsSheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, ItemHeaders, rows[0])
	assert.Equal(t, []string{"Widget", "Blue", "2", "10", "2.4", "22.4"}, rows[1])
}

func TestThermalRenderer(t *testing.T) {
	data, err := NewThermalRenderer(32).Render(sampleRecord(enum.DocumentKindReceipt))
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte{esc, '@'}))
	assert.True(t, bytes.HasSuffix(data, []byte{gs, 'V', 0x01}))

	text := string(data)
	assert.Contains(t, text, "RECEIPT INV-001")
	assert.Contains(t, text, "2x Widget"+strings.Repeat(" ", 32-len("2x Widget")-len("22.40"))+"22.40\n")
	assert.Contains(t, text, "   @ 10.00\n")
	assert.Contains(t, text, "   VAT 12%"+strings.Repeat(" ", 32-len("   VAT 12%")-len("2.40"))+"2.40\n")
	assert.Contains(t, text, "Paid by")
	assert.NotContains(t, text, "Status")
}

func TestSlipPairTruncatesLongKeys(t *testing.T) {
	s := newSlip(16)
	s.pair("A very long product name", "9.99")
	lines := strings.Split(strings.TrimSuffix(string(s.bytes()[2:]), "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, "A very long 9.99", lines[0])
	assert.Len(t, lines[0], 16)
}
