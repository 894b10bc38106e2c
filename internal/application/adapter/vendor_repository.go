package adapter

import (
	"context"
	"time"

	"github.com/ledger-backoffice/backend/internal/domain/entity"
)

// VendorFilter defines filter options for listing vendors.
type VendorFilter struct {
	Keyword        string // Case-insensitive match on name, representative name or phone
	IncludeDeleted bool
}

// VendorListResult represents the result of listing vendors.
type VendorListResult struct {
	Vendors     []*entity.Vendor
	Total       int64
	ActiveCount int64
}

// VendorRepository defines the interface for vendor persistence operations.
type VendorRepository interface {
	// Create creates a new vendor in the database.
	Create(ctx context.Context, vendor *entity.Vendor) error

	// FindActiveByID retrieves a non-deleted vendor by its ID.
	FindActiveByID(ctx context.Context, id string) (*entity.Vendor, error)

	// FindByIDs retrieves vendors by ID including soft-deleted ones, keyed by ID.
	FindByIDs(ctx context.Context, ids []string) (map[string]*entity.Vendor, error)

	// FindIDsByName returns the IDs of vendors whose name contains keyword.
	FindIDsByName(ctx context.Context, keyword string) ([]string, error)

	// ExistsByName checks whether an active vendor other than excludeID uses name.
	ExistsByName(ctx context.Context, name string, excludeID string) (bool, error)

	// FindByFilter retrieves vendors based on filter criteria with pagination.
	FindByFilter(ctx context.Context, filter VendorFilter, pagination Pagination) (*VendorListResult, error)

	// Update updates an existing vendor in the database.
	Update(ctx context.Context, vendor *entity.Vendor) error

	// Delete soft-deletes a vendor.
	Delete(ctx context.Context, id string, deletedAt time.Time) error
}
