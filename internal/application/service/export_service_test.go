package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/sangkips/invoicely-api/internal/domain/entity"
	"github.com/sangkips/invoicely-api/internal/domain/enum"
	"github.com/sangkips/invoicely-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	got *entity.ExportRecord
	err error
}

func (r *stubRenderer) Render(rec *entity.ExportRecord) ([]byte, error) {
	r.got = rec
	return []byte("rendered"), r.err
}

func TestToExportModel(t *testing.T) {
	due := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)
	doc := &entity.Document{
		Kind:       enum.DocumentKindInvoice,
		Number:     "INV-007",
		IssuerName: "Acme Ltd",
		ClientName: strPtr("Globex"),
		IssueDate:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		DueDate:    &due,
		Status:     enum.InvoiceStatusSent,
		Subtotal:   20,
		TotalTax:   2.5,
		Total:      22.5,
		Items:      []entity.LineItem{{
			ProductName: "Widget",
			Quantity:    2,
			UnitPrice:   10,
			LineTotal:   22.5,
			Taxes:       []entity.TaxLine{{TaxName: "VAT", TaxRate: 0.1, TaxAmount: 2}, {TaxName: "Levy", TaxRate: 0.025, TaxAmount: 0.5}},
		}},
	}

	rec := ToExportModel(doc)
	assert.Equal(t, "Invoice", rec.Title)
	assert.Equal(t, "2024-04-15", rec.DueDate)
	assert.Equal(t, "sent", rec.Status)
	require.NotNil(t, rec.To)
	assert.Equal(t, "Globex", rec.To.Name)
	assert.Equal(t, entity.ExportField{Label: "Invoice Number", Value: "INV-007"}, rec.Fields[0])
	assert.Contains(t, rec.Fields, entity.ExportField{Label: "Total", Value: 22.5})
	assert.Equal(t, []entity.ExportItem{{
		ProductName: "Widget",
		Quantity:    2,
		UnitPrice:   10,
		TaxAmount:   2.5,
		LineTotal:   22.5,
		Taxes: []entity.ExportTax{
			{Name: "VAT", Rate: 0.1, Amount: 2},
			{Name: "Levy", Rate: 0.025, Amount: 0.5},
		},
	}}, rec.Items)

	receipt := ToExportModel(&entity.Document{Kind: enum.DocumentKindReceipt, Number: "REC-1", PaymentMethod: enum.PaymentMethodTransfer})
	assert.Equal(t, "transfer", receipt.PaymentMethod)
	assert.Nil(t, receipt.To)
	assert.Empty(t, receipt.Status)
}

func TestExportService_Export(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doc, err := env.invoices.Create(ctx, invoiceInput("INV-001", item("A", 1, 10)))
	require.NoError(t, err)

	pdf := &stubRenderer{}
	exports := NewExportService(pdf, nil, nil, env.metrics)

	file, err := exports.Export(ctx, env.invoices, doc.ID, ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "invoice-INV-001.pdf", file.Filename)
	assert.Equal(t, "application/pdf", file.MimeType)
	assert.Equal(t, []byte("rendered"), file.Data)
	assert.InDelta(t, 10.0, pdf.got.Total, 1e-9)

	_, err = exports.Export(ctx, env.invoices, doc.ID, ExportFormatXLSX)
	assert.True(t, apperror.HasCode(err, http.StatusBadRequest))

	_, err = exports.Export(ctx, env.receipts, doc.ID, ExportFormatPDF)
	assert.True(t, apperror.HasCode(err, http.StatusNotFound))

	pdf.err = errors.New("font missing")
	_, err = exports.Export(ctx, env.invoices, doc.ID, ExportFormatPDF)
	assert.True(t, apperror.HasCode(err, http.StatusInternalServerError))
}

func TestExportService_Register(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doc, err := env.receipts.Create(ctx, receiptInput("REC-001", item("A", 1, 10)))
	require.NoError(t, err)

	exports := NewExportService(nil, nil, nil, nil)
	_, err = exports.Export(ctx, env.receipts, doc.ID, ExportFormatESCPOS)
	assert.True(t, apperror.HasCode(err, http.StatusBadRequest))

	exports.Register(ExportFormatESCPOS, &stubRenderer{})
	file, err := exports.Export(ctx, env.receipts, doc.ID, ExportFormatESCPOS)
	require.NoError(t, err)
	assert.Equal(t, "receipt-REC-001.escpos", file.Filename)
	assert.Equal(t, "application/octet-stream", file.MimeType)

	exports.Register(ExportFormatESCPOS, nil)
	_, err = exports.Export(ctx, env.receipts, doc.ID, ExportFormatESCPOS)
	assert.True(t, apperror.HasCode(err, http.StatusBadRequest))
}
