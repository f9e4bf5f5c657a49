package repository

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/invoicely-api/internal/domain/entity"
	"github.com/sangkips/invoicely-api/internal/domain/enum"
	domainRepo "github.com/sangkips/invoicely-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAnalytics(t *testing.T, repo domainRepo.DocumentRepository) {
	t.Helper()
	ctx := context.Background()

	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)

	inv1 := newDocument(enum.DocumentKindInvoice, "INV-001", jan, newItem("Widget", 2, 10, vat(0.1)))
	inv2 := newDocument(enum.DocumentKindInvoice, "INV-002", feb, newItem("Gadget", 1, 100), newItem("Widget", 1, 10))
	inv2.Status = enum.InvoiceStatusPaid
	rec1 := newDocument(enum.DocumentKindReceipt, "REC-001", feb, newItem("Widget", 3, 10, vat(0.1)))

	for _, d := range []*entity.Document{inv1, inv2, rec1} {
		require.NoError(t, repo.Create(ctx, d))
	}
}

func TestAnalyticsRepository(t *testing.T) {
	db := newTestDB(t)
	seedAnalytics(t, NewDocumentRepository(db))
	repo := NewAnalyticsRepository(db)
	ctx := context.Background()

	t.Run("kind totals", func(t *testing.T) {
		totals, err := repo.GetKindTotals(ctx, domainRepo.DateRange{})
		require.NoError(t, err)
		require.Len(t, totals, 2)
		assert.Equal(t, enum.DocumentKindInvoice, totals[0].Kind)
		assert.Equal(t, int64(2), totals[0].Count)
		assert.InDelta(t, 132.0, totals[0].Revenue, 1e-9)
		assert.InDelta(t, 2.0, totals[0].TotalTax, 1e-9)
		assert.Equal(t, enum.DocumentKindReceipt, totals[1].Kind)
		assert.InDelta(t, 33.0, totals[1].Revenue, 1e-9)
	})

	t.Run("monthly revenue", func(t *testing.T) {
		months, err := repo.GetMonthlyRevenue(ctx, domainRepo.DateRange{})
		require.NoError(t, err)
		require.Len(t, months, 2)
		assert.Equal(t, "2024-01", months[0].Month)
		assert.InDelta(t, 22.0, months[0].Revenue, 1e-9)
		assert.Equal(t, "2024-02", months[1].Month)
		assert.InDelta(t, 143.0, months[1].Revenue, 1e-9)
	})

	t.Run("range end covers the whole day", func(t *testing.T) {
		r := domainRepo.DateRange{
			From: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		}
		totals, err := repo.GetKindTotals(ctx, r)
		require.NoError(t, err)
		require.Len(t, totals, 2)
		assert.Equal(t, int64(1), totals[0].Count)
	})

	t.Run("top products", func(t *testing.T) {
		top, err := repo.GetTopProducts(ctx, domainRepo.DateRange{}, 5)
		require.NoError(t, err)
		require.Len(t, top, 2)
		assert.Equal(t, "Gadget", top[0].ProductName)
		assert.InDelta(t, 100.0, top[0].Revenue, 1e-9)
		assert.Equal(t, "Widget", top[1].ProductName)
		assert.InDelta(t, 6.0, top[1].QuantitySold, 1e-9)
		assert.InDelta(t, 65.0, top[1].Revenue, 1e-9)
	})

	t.Run("invoice status counts", func(t *testing.T) {
		counts, err := repo.GetInvoiceStatusCounts(ctx, domainRepo.DateRange{})
		require.NoError(t, err)
		assert.ElementsMatch(t, []domainRepo.StatusCountResult{
			{Status: enum.InvoiceStatusDraft, Count: 1},
			{Status: enum.InvoiceStatusPaid, Count: 1},
		}, counts)
	})
}

func TestDataResetter(t *testing.T) {
	db := newTestDB(t)
	seedAnalytics(t, NewDocumentRepository(db))
	require.NoError(t, NewProductRepository(db).Create(context.Background(), newProduct("Widget", 10)))

	require.NoError(t, NewDataResetter(db).ResetAll(context.Background()))

	for _, model := range []interface{}{&entity.Document{}, &entity.LineItem{}, &entity.TaxLine{}, &entity.Product{}, &entity.ProductTax{}} {
		assert.Zero(t, countRows(t, db, model))
	}
}
