package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledger-backoffice/backend/internal/domain/entity"
	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	VendorID       string
	ProductName    string   // Exact match
	Keyword        string   // Case-insensitive match on product name, unit or the vendor IDs below
	KeywordVendors []string // Vendors whose display name matched Keyword
	Range          *valueobject.DateRange
	IncludeDeleted bool
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*entity.Transaction
	Total        int64
	PeriodTotal  decimal.Decimal // Sum over the whole filtered set, not just the page
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindActiveByID retrieves a non-deleted transaction by its ID.
	FindActiveByID(ctx context.Context, id string) (*entity.Transaction, error)

	// FindByFilter retrieves transactions newest first with pagination and a period total.
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination Pagination) (*TransactionListResult, error)

	// FindAllByFilter retrieves every matching transaction newest first.
	FindAllByFilter(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)

	// FindActiveByVendor retrieves all non-deleted transactions for a vendor.
	FindActiveByVendor(ctx context.Context, vendorID string) ([]*entity.Transaction, error)

	// FindActiveByVendorAndDate retrieves one vendor's non-deleted rows for a day,
	// ordered by registered time then creation time.
	FindActiveByVendorAndDate(ctx context.Context, vendorID string, dateKey string) ([]*entity.Transaction, error)

	// SumByVendors sums non-deleted amounts per vendor within a date range.
	SumByVendors(ctx context.Context, vendorIDs []string, period valueobject.DateRange) (map[string]decimal.Decimal, error)

	// Update updates an existing transaction in the database.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete soft-deletes a transaction.
	Delete(ctx context.Context, id string, deletedAt time.Time) error
}
