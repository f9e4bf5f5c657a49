package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/sangkips/invoicely-api/internal/domain/enum"
	infraRepo "github.com/sangkips/invoicely-api/internal/infrastructure/repository"
	"github.com/sangkips/invoicely-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Summary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	dashboard := NewDashboardService(infraRepo.NewAnalyticsRepository(env.db), nil)

	_, err := env.products.CreateProduct(ctx, &ProductInput{Name: "Widget", DefaultPrice: 10})
	require.NoError(t, err)

	jan := invoiceInput("INV-001", item("Widget", 2, 10, TaxInput{Name: "VAT", Rate: 0.1}))
	jan.IssueDate = time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	_, err = env.invoices.Create(ctx, jan)
	require.NoError(t, err)

	feb := invoiceInput("INV-002", item("Gadget", 1, 100))
	feb.IssueDate = time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)
	paid := enum.InvoiceStatusPaid
	feb.Status = &paid
	_, err = env.invoices.Create(ctx, feb)
	require.NoError(t, err)

	rec := receiptInput("REC-001", item("Widget", 1, 10))
	rec.IssueDate = time.Date(2024, 2, 6, 0, 0, 0, 0, time.UTC)
	_, err = env.receipts.Create(ctx, rec)
	require.NoError(t, err)

	stats, err := dashboard.Summary(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.InDelta(t, 132.0, stats.TotalRevenue, 1e-9)
	assert.InDelta(t, 122.0, stats.InvoiceRevenue, 1e-9)
	assert.InDelta(t, 10.0, stats.ReceiptRevenue, 1e-9)
	assert.InDelta(t, 2.0, stats.TotalTax, 1e-9)
	assert.Equal(t, int64(2), stats.InvoiceCount)
	assert.Equal(t, int64(1), stats.ReceiptCount)
	assert.Equal(t, int64(1), stats.ProductCount)
	require.Len(t, stats.RevenueByMonth, 2)
	assert.Equal(t, "2024-01", stats.RevenueByMonth[0].Month)
	require.Len(t, stats.TopProducts, 2)
	assert.Equal(t, "Gadget", stats.TopProducts[0].ProductName)
	assert.Equal(t, map[string]int64{"draft": 1, "sent": 0, "paid": 1, "overdue": 0}, stats.InvoiceStatuses)

	february, err := dashboard.Summary(ctx,
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	assert.InDelta(t, 110.0, february.TotalRevenue, 1e-9)
	assert.Equal(t, "2024-02-01", february.From)

	_, err = dashboard.Summary(ctx, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	assert.True(t, apperror.HasCode(err, http.StatusUnprocessableEntity))
}
