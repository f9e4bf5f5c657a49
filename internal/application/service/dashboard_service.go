package service

import (
	"context"
	"time"

	"github.com/sangkips/invoicely-api/internal/domain/enum"
	"github.com/sangkips/invoicely-api/internal/domain/repository"
	"github.com/sangkips/invoicely-api/pkg/apperror"
	"github.com/sangkips/invoicely-api/pkg/logger"
	"go.uber.org/zap"
)

const topProductsLimit = 5

// DashboardService provides dashboard statistics
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	log           *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository, log *zap.Logger) *DashboardService {
	if log == nil {
		log = zap.NewNop()
	}
	return &DashboardService{
		analyticsRepo: analyticsRepo,
		log:           log,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	From            string           `json:"from,omitempty"`
	To              string           `json:"to,omitempty"`
	TotalRevenue    float64          `json:"total_revenue"`
	InvoiceRevenue  float64          `json:"invoice_revenue"`
	ReceiptRevenue  float64          `json:"receipt_revenue"`
	TotalTax        float64          `json:"total_tax"`
	InvoiceCount    int64            `json:"invoice_count"`
	ReceiptCount    int64            `json:"receipt_count"`
	ProductCount    int64            `json:"product_count"`
	RevenueByMonth  []MonthlyRevenue `json:"revenue_by_month"`
	TopProducts     []TopProduct     `json:"top_products"`
	InvoiceStatuses map[string]int64 `json:"invoice_statuses"`
}

// MonthlyRevenue represents the revenue issued in one month
type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// TopProduct represents a best-selling product
type TopProduct struct {
	ProductName  string  `json:"product_name"`
	QuantitySold float64 `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}

// Summary aggregates documents issued between from and to, both inclusive. Zero bounds are open.
func (s *DashboardService) Summary(ctx context.Context, from, to time.Time) (*DashboardStats, error) {
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return nil, apperror.NewFieldError("to", "must not be before from")
	}
	dr := repository.DateRange{From: from, To: to}

	stats := &DashboardStats{
		RevenueByMonth:  []MonthlyRevenue{},
		TopProducts:     []TopProduct{},
		InvoiceStatuses: make(map[string]int64),
	}
	if !from.IsZero() {
		stats.From = from.Format("2006-01-02")
	}
	if !to.IsZero() {
		stats.To = to.Format("2006-01-02")
	}

	kindTotals, err := s.analyticsRepo.GetKindTotals(ctx, dr)
	if err != nil {
		return nil, s.storageError(ctx, err)
	}
	for _, kt := range kindTotals {
		switch kt.Kind {
		case enum.DocumentKindInvoice:
			stats.InvoiceRevenue = kt.Revenue
			stats.InvoiceCount = kt.Count
		case enum.DocumentKindReceipt:
			stats.ReceiptRevenue = kt.Revenue
			stats.ReceiptCount = kt.Count
		}
		stats.TotalTax += kt.TotalTax
	}
	stats.TotalRevenue = stats.InvoiceRevenue + stats.ReceiptRevenue

	months, err := s.analyticsRepo.GetMonthlyRevenue(ctx, dr)
	if err != nil {
		return nil, s.storageError(ctx, err)
	}
	for _, m := range months {
		stats.RevenueByMonth = append(stats.RevenueByMonth, MonthlyRevenue{Month: m.Month, Revenue: m.Revenue})
	}

	top, err := s.analyticsRepo.GetTopProducts(ctx, dr, topProductsLimit)
	if err != nil {
		return nil, s.storageError(ctx, err)
	}
	for _, p := range top {
		stats.TopProducts = append(stats.TopProducts, TopProduct{
			ProductName:  p.ProductName,
			QuantitySold: p.QuantitySold,
			Revenue:      p.Revenue,
		})
	}

	// Every status is reported, zero when absent.
	for _, st := range []enum.InvoiceStatus{enum.InvoiceStatusDraft, enum.InvoiceStatusSent, enum.InvoiceStatusPaid, enum.InvoiceStatusOverdue} {
		stats.InvoiceStatuses[st.String()] = 0
	}
	counts, err := s.analyticsRepo.GetInvoiceStatusCounts(ctx, dr)
	if err != nil {
		return nil, s.storageError(ctx, err)
	}
	for _, c := range counts {
		stats.InvoiceStatuses[c.Status.String()] = c.Count
	}

	stats.ProductCount, err = s.analyticsRepo.CountProducts(ctx)
	if err != nil {
		return nil, s.storageError(ctx, err)
	}

	return stats, nil
}

func (s *DashboardService) storageError(ctx context.Context, err error) error {
	logger.WithContext(ctx, s.log).Error("dashboard query failed", zap.Error(err))
	return apperror.NewPersistenceError(err)
}
