package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/invoicely-api/internal/domain/entity"
	domainRepo "github.com/sangkips/invoicely-api/internal/domain/repository"
	"github.com/sangkips/invoicely-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).
		Preload("Taxes", orderByPosition).
		First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetByIDs retrieves multiple products by their IDs in a single query
func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	if len(ids) == 0 {
		return []entity.Product{}, nil
	}
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Preload("Taxes", orderByPosition).
		Where("id IN ?", ids).
		Find(&products).Error
	return products, err
}

// Update saves the product columns and replaces its taxes in one transaction
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entity.Product
		err := tx.Select("id", "created_at").First(&existing, "id = ?", product.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainRepo.ErrProductNotFound
		}
		if err != nil {
			return err
		}

		if err := tx.Where("product_id = ?", product.ID).Delete(&entity.ProductTax{}).Error; err != nil {
			return err
		}

		product.CreatedAt = existing.CreatedAt
		if err := tx.Omit(clause.Associations).Save(product).Error; err != nil {
			return err
		}

		for i := range product.Taxes {
			product.Taxes[i].ProductID = product.ID
		}
		if len(product.Taxes) > 0 {
			return tx.Create(&product.Taxes).Error
		}
		return nil
	})
}

// Delete removes the product and its taxes. Line items keep their snapshot.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.LineItem{}).
			Where("product_id = ?", id).
			Update("product_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&entity.ProductTax{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&entity.Product{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainRepo.ErrProductNotFound
		}
		return nil
	})
}

var productSortColumns = map[string]string{
	"name":          "name",
	"default_price": "default_price",
	"created_at":    "created_at",
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Product{})

	if params.Search != "" {
		pattern := likePattern(params.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "name"
	if col, ok := productSortColumns[params.SortBy]; ok {
		sortBy = col
	}
	sortOrder := "ASC"
	if strings.EqualFold(params.SortOrder, "desc") {
		sortOrder = "DESC"
	}

	page := params.Pagination
	if page == nil {
		page = pagination.DefaultPagination()
	}
	page.Validate()
	err := query.Offset(page.Offset()).Limit(page.PerPage).
		Preload("Taxes", orderByPosition).
		Order(sortBy + " " + sortOrder).
		Order("id ASC").
		Find(&products).Error

	return products, total, err
}
