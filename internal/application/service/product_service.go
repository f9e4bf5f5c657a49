package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/invoicely-api/internal/domain/entity"
	"github.com/sangkips/invoicely-api/internal/domain/repository"
	"github.com/sangkips/invoicely-api/pkg/apperror"
	"github.com/sangkips/invoicely-api/pkg/logger"
	"github.com/sangkips/invoicely-api/pkg/pagination"
	"go.uber.org/zap"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo repository.ProductRepository
	log         *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, log *zap.Logger) *ProductService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductService{
		productRepo: productRepo,
		log:         log,
	}
}

// ProductTaxInput is one configured tax. Rate is a fraction.
type ProductTaxInput struct {
	Name      string
	Rate      float64
	IsDefault bool
}

// ProductInput represents the create and update product input
type ProductInput struct {
	Name         string
	Description  *string
	DefaultPrice float64
	Taxes        []ProductTaxInput
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	product, err := buildProduct(input)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, s.storageError(ctx, err)
	}
	logger.WithContext(ctx, s.log).Info("product created", zap.String("id", product.ID.String()), zap.String("name", product.Name))
	return product, nil
}

// GetProductByID retrieves a product by ID
func (s *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.storageError(ctx, err)
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, s.storageError(ctx, err)
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProduct replaces the product fields and its tax set
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error) {
	product, err := buildProduct(input)
	if err != nil {
		return nil, err
	}
	product.ID = id

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, s.storageError(ctx, err)
	}
	return s.GetProductByID(ctx, id)
}

// DeleteProduct deletes a product. Existing line items keep their copied name and price.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return s.storageError(ctx, err)
	}
	logger.WithContext(ctx, s.log).Info("product deleted", zap.String("id", id.String()))
	return nil
}

func buildProduct(input *ProductInput) (*entity.Product, error) {
	if input == nil {
		return nil, apperror.NewBadRequestError("Request body is required")
	}

	var errs []apperror.FieldError
	name := strings.TrimSpace(input.Name)
	if name == "" {
		errs = append(errs, apperror.FieldError{Field: "name", Message: "is required"})
	}
	if math.IsNaN(input.DefaultPrice) || math.IsInf(input.DefaultPrice, 0) || input.DefaultPrice < 0 {
		errs = append(errs, apperror.FieldError{Field: "default_price", Message: "must not be negative"})
	}

	product := &entity.Product{
		Name:         name,
		Description:  input.Description,
		DefaultPrice: input.DefaultPrice,
		Taxes:        make([]entity.ProductTax, len(input.Taxes)),
	}

	defaults := 0
	for i, t := range input.Taxes {
		prefix := fmt.Sprintf("taxes[%d].", i)
		if strings.TrimSpace(t.Name) == "" {
			errs = append(errs, apperror.FieldError{Field: prefix + "tax_name", Message: "is required"})
		}
		if math.IsNaN(t.Rate) || math.IsInf(t.Rate, 0) || t.Rate < 0 {
			errs = append(errs, apperror.FieldError{Field: prefix + "tax_rate", Message: "must not be negative"})
		}
		if t.IsDefault {
			defaults++
		}
		product.Taxes[i] = entity.ProductTax{
			Position:  i,
			TaxName:   strings.TrimSpace(t.Name),
			TaxRate:   t.Rate,
			IsDefault: t.IsDefault,
		}
	}
	if defaults > 1 {
		errs = append(errs, apperror.FieldError{Field: "taxes", Message: "at most one tax can be the default"})
	}

	if len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}
	return product, nil
}

func (s *ProductService) storageError(ctx context.Context, err error) error {
	if errors.Is(err, repository.ErrProductNotFound) {
		return apperror.NewNotFoundError("Product")
	}
	logger.WithContext(ctx, s.log).Error("product storage failed", zap.Error(err))
	return apperror.NewPersistenceError(err)
}
