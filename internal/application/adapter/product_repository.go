package adapter

import (
	"context"
	"time"

	"github.com/ledger-backoffice/backend/internal/domain/entity"
)

// ProductFilter defines filter options for listing products.
type ProductFilter struct {
	Keyword        string // Case-insensitive match on name or unit
	IncludeDeleted bool
}

// ProductListResult represents the result of listing products.
type ProductListResult struct {
	Products []*entity.Product
	Total    int64
}

// ProductRepository defines the interface for product catalog persistence operations.
type ProductRepository interface {
	// Create creates a new product in the database.
	Create(ctx context.Context, product *entity.Product) error

	// FindActiveByID retrieves a non-deleted product by its ID.
	FindActiveByID(ctx context.Context, id string) (*entity.Product, error)

	// FindByFilter retrieves products based on filter criteria with pagination.
	FindByFilter(ctx context.Context, filter ProductFilter, pagination Pagination) (*ProductListResult, error)

	// Update updates an existing product in the database.
	Update(ctx context.Context, product *entity.Product) error

	// Delete soft-deletes a product.
	Delete(ctx context.Context, id string, deletedAt time.Time) error
}
