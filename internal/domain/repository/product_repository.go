package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/invoicely-api/internal/domain/entity"
	"github.com/sangkips/invoicely-api/pkg/pagination"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	// Create inserts the product with its taxes
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	// Update saves the product and replaces its tax set. Returns ErrProductNotFound.
	Update(ctx context.Context, product *entity.Product) error
	// Delete removes the product and its taxes. Line items that referenced it keep
	// their snapshot and lose the reference. Returns ErrProductNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	SortBy     string
	SortOrder  string
}
