package settlement

import (
	"context"
	"fmt"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
	"github.com/ledger-backoffice/backend/internal/domain/entity"
	domainerror "github.com/ledger-backoffice/backend/internal/domain/error"
	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
)

// ListSettlementsInput represents the input for listing settlements.
type ListSettlementsInput struct {
	VendorID      string
	IssueStartKey string
	IssueEndKey   string
	Page          int
	Limit         int
}

// ListSettlementsOutput represents the output of listing settlements.
type ListSettlementsOutput struct {
	Settlements []*entity.SettlementWithVendor
	Total       int64
	Page        int
	Limit       int
	TotalPages  int
}

// ListSettlementsUseCase handles settlement listing.
type ListSettlementsUseCase struct {
	settlementRepo adapter.SettlementRepository
	vendorRepo     adapter.VendorRepository
}

// NewListSettlementsUseCase creates a new ListSettlementsUseCase instance.
func NewListSettlementsUseCase(settlementRepo adapter.SettlementRepository, vendorRepo adapter.VendorRepository) *ListSettlementsUseCase {
	return &ListSettlementsUseCase{settlementRepo: settlementRepo, vendorRepo: vendorRepo}
}

// Execute lists settlements newest first, filtered on the issue date key.
func (uc *ListSettlementsUseCase) Execute(ctx context.Context, input ListSettlementsInput) (*ListSettlementsOutput, error) {
	filter := adapter.SettlementFilter{}
	if input.VendorID != "" {
		id, err := valueobject.ParseID(input.VendorID)
		if err != nil {
			return nil, domainerror.AsValidationError(err)
		}
		filter.VendorID = id
	}

	issueRange, err := valueobject.NormalizeRange(input.IssueStartKey, input.IssueEndKey)
	if err != nil {
		return nil, domainerror.AsValidationError(err)
	}
	filter.IssueRange = issueRange

	pagination := adapter.NewPagination(input.Page, input.Limit)
	result, err := uc.settlementRepo.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}

	names, err := vendorNames(ctx, uc.vendorRepo, result.Settlements)
	if err != nil {
		return nil, err
	}

	rows := make([]*entity.SettlementWithVendor, len(result.Settlements))
	for i, s := range result.Settlements {
		rows[i] = &entity.SettlementWithVendor{Settlement: s, VendorName: names[s.VendorID]}
	}

	return &ListSettlementsOutput{
		Settlements: rows,
		Total:       result.Total,
		Page:        pagination.Page,
		Limit:       pagination.Limit,
		TotalPages:  pagination.TotalPages(result.Total),
	}, nil
}
