package adapter

import (
	"context"

	"github.com/ledger-backoffice/backend/internal/domain/entity"
	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
)

// SettlementFilter defines filter options for listing settlements.
type SettlementFilter struct {
	VendorID   string
	IssueRange *valueobject.DateRange
}

// SettlementListResult represents the result of listing settlements.
type SettlementListResult struct {
	Settlements []*entity.Settlement
	Total       int64
}

// SettlementBuilder turns the candidate transactions of an issue into a settlement.
// Returning an error aborts the issue without writing anything.
type SettlementBuilder func(transactions []*entity.Transaction) (*entity.Settlement, error)

// SettlementRepository defines the interface for settlement persistence operations.
type SettlementRepository interface {
	// Issue loads the vendor's non-deleted transactions within period ordered by
	// (dateKey, registeredTimeKST, createdAt), hands them to build and persists the
	// result, all inside one database transaction.
	Issue(ctx context.Context, vendorID string, period valueobject.DateRange, build SettlementBuilder) (*entity.Settlement, error)

	// FindByID retrieves a settlement by its ID.
	FindByID(ctx context.Context, id string) (*entity.Settlement, error)

	// FindByFilter retrieves settlements newest first with pagination.
	FindByFilter(ctx context.Context, filter SettlementFilter, pagination Pagination) (*SettlementListResult, error)
}
