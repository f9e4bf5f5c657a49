package repository

import (
	"context"
	"sort"
	"time"

	"github.com/sangkips/invoicely-api/internal/domain/entity"
	"github.com/sangkips/invoicely-api/internal/domain/enum"
	domainRepo "github.com/sangkips/invoicely-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// issuedWithin restricts column to the date range. To covers its whole day.
func issuedWithin(query *gorm.DB, column string, r domainRepo.DateRange) *gorm.DB {
	if !r.From.IsZero() {
		query = query.Where(column+" >= ?", r.From)
	}
	if !r.To.IsZero() {
		end := time.Date(r.To.Year(), r.To.Month(), r.To.Day(), 0, 0, 0, 0, r.To.Location()).AddDate(0, 0, 1)
		query = query.Where(column+" < ?", end)
	}
	return query
}

func (r *analyticsRepository) GetKindTotals(ctx context.Context, dr domainRepo.DateRange) ([]domainRepo.KindTotalsResult, error) {
	var results []domainRepo.KindTotalsResult

	query := r.db.WithContext(ctx).Model(&entity.Document{}).
		Select(`kind,
			COUNT(*) AS count,
			COALESCE(SUM(total), 0) AS revenue,
			COALESCE(SUM(total_tax), 0) AS total_tax`)
	err := issuedWithin(query, "issue_date", dr).
		Group("kind").
		Order("kind").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetMonthlyRevenue buckets in Go; month extraction differs between postgres and sqlite
func (r *analyticsRepository) GetMonthlyRevenue(ctx context.Context, dr domainRepo.DateRange) ([]domainRepo.MonthlyRevenueResult, error) {
	var rows []struct {
		IssueDate time.Time
		Total     float64
	}

	query := r.db.WithContext(ctx).Model(&entity.Document{}).Select("issue_date, total")
	if err := issuedWithin(query, "issue_date", dr).Scan(&rows).Error; err != nil {
		return nil, err
	}

	byMonth := make(map[string]float64)
	for _, row := range rows {
		byMonth[row.IssueDate.UTC().Format("2006-01")] += row.Total
	}

	results := make([]domainRepo.MonthlyRevenueResult, 0, len(byMonth))
	for month, revenue := range byMonth {
		results = append(results, domainRepo.MonthlyRevenueResult{Month: month, Revenue: revenue})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Month < results[j].Month })
	return results, nil
}

func (r *analyticsRepository) GetTopProducts(ctx context.Context, dr domainRepo.DateRange, limit int) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult

	query := r.db.WithContext(ctx).Table("line_items AS li").
		Select(`li.product_name AS product_name,
			COALESCE(SUM(li.quantity), 0) AS quantity_sold,
			COALESCE(SUM(li.line_total), 0) AS revenue`).
		Joins("JOIN documents d ON d.id = li.document_id")
	err := issuedWithin(query, "d.issue_date", dr).
		Group("li.product_name").
		Order("revenue DESC").
		Order("li.product_name ASC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *analyticsRepository) GetInvoiceStatusCounts(ctx context.Context, dr domainRepo.DateRange) ([]domainRepo.StatusCountResult, error) {
	var results []domainRepo.StatusCountResult

	query := r.db.WithContext(ctx).Model(&entity.Document{}).
		Select("status, COUNT(*) AS count").
		Where("kind = ?", enum.DocumentKindInvoice)
	err := issuedWithin(query, "issue_date", dr).
		Group("status").
		Order("status").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *analyticsRepository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Product{}).Count(&count).Error
	return count, err
}
