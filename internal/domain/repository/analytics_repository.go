package repository

import (
	"context"
	"time"

	"github.com/sangkips/invoicely-api/internal/domain/enum"
)

// DateRange bounds analytics queries on issue date. Zero values are unbounded.
// To is inclusive of the whole day.
type DateRange struct {
	From time.Time
	To   time.Time
}

// KindTotalsResult aggregates the documents of one kind
type KindTotalsResult struct {
	Kind     enum.DocumentKind
	Count    int64
	Revenue  float64
	TotalTax float64
}

// MonthlyRevenueResult is the revenue issued in one calendar month
type MonthlyRevenueResult struct {
	Month   string // YYYY-MM
	Revenue float64
}

// TopProductResult represents a product's sales performance
type TopProductResult struct {
	ProductName  string
	QuantitySold float64
	Revenue      float64
}

// StatusCountResult counts invoices in one status
type StatusCountResult struct {
	Status enum.InvoiceStatus
	Count  int64
}

// AnalyticsRepository defines interface for analytics/aggregation queries
type AnalyticsRepository interface {
	// GetKindTotals returns count, revenue and tax per document kind
	GetKindTotals(ctx context.Context, r DateRange) ([]KindTotalsResult, error)
	// GetMonthlyRevenue returns revenue per month, ascending
	GetMonthlyRevenue(ctx context.Context, r DateRange) ([]MonthlyRevenueResult, error)
	// GetTopProducts returns products with the highest summed line totals
	GetTopProducts(ctx context.Context, r DateRange, limit int) ([]TopProductResult, error)
	// GetInvoiceStatusCounts returns the number of invoices per status
	GetInvoiceStatusCounts(ctx context.Context, r DateRange) ([]StatusCountResult, error)
	// CountProducts returns the size of the catalog
	CountProducts(ctx context.Context) (int64, error)
}
