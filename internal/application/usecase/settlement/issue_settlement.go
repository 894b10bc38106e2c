// Package settlement contains settlement issuance and the settlement manage views.
package settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
	"github.com/ledger-backoffice/backend/internal/application/usecase/audit"
	"github.com/ledger-backoffice/backend/internal/domain/entity"
	domainerror "github.com/ledger-backoffice/backend/internal/domain/error"
	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
)

// IssueSettlementInput represents the input for issuing a settlement.
type IssueSettlementInput struct {
	VendorID      string
	IssueDateKey  string // Defaults to today in KST
	RangeStartKey string
	RangeEndKey   string
}

// IssueSettlementOutput represents the issued settlement.
type IssueSettlementOutput struct {
	Settlement *entity.Settlement
}

// IssueSettlementUseCase freezes a vendor's in-range transactions into a settlement.
type IssueSettlementUseCase struct {
	settlementRepo adapter.SettlementRepository
	vendorRepo     adapter.VendorRepository
	recorder       *audit.Recorder
	clock          valueobject.Clock
}

// NewIssueSettlementUseCase creates a new IssueSettlementUseCase instance.
func NewIssueSettlementUseCase(
	settlementRepo adapter.SettlementRepository,
	vendorRepo adapter.VendorRepository,
	recorder *audit.Recorder,
	clock valueobject.Clock,
) *IssueSettlementUseCase {
	return &IssueSettlementUseCase{
		settlementRepo: settlementRepo,
		vendorRepo:     vendorRepo,
		recorder:       recorder,
		clock:          clock,
	}
}

// Execute issues the settlement. The candidate read and the insert share one
// store transaction; no exclusivity is enforced across settlements, so two
// issues over overlapping ranges may snapshot the same transaction.
func (uc *IssueSettlementUseCase) Execute(ctx context.Context, input IssueSettlementInput) (*IssueSettlementOutput, error) {
	vendorID, err := valueobject.ParseID(input.VendorID)
	if err != nil {
		return nil, domainerror.AsValidationError(err)
	}

	issueDateKey := input.IssueDateKey
	if issueDateKey == "" {
		issueDateKey = uc.clock.NowDateKey()
	} else if _, err := valueobject.EnsureDateKey(issueDateKey); err != nil {
		return nil, domainerror.AsValidationError(err)
	}

	period, err := issueRange(input.RangeStartKey, input.RangeEndKey)
	if err != nil {
		return nil, err
	}

	if _, err := uc.vendorRepo.FindActiveByID(ctx, vendorID); err != nil {
		if errors.Is(err, domainerror.ErrVendorNotFound) {
			return nil, domainerror.NewSettlementError(
				domainerror.ErrCodeSettlementVendorNotFound,
				"vendor not found",
				domainerror.ErrVendorNotFoundForSettlement,
			)
		}
		return nil, fmt.Errorf("failed to find vendor: %w", err)
	}

	now := uc.clock.Now()
	settlement, err := uc.settlementRepo.Issue(ctx, vendorID, period, func(transactions []*entity.Transaction) (*entity.Settlement, error) {
		if len(transactions) == 0 {
			return nil, domainerror.NewSettlementError(
				domainerror.ErrCodeNoTransactionsInRange,
				"no transactions in the requested range",
				domainerror.ErrNoTransactionsInRange,
			)
		}
		return entity.NewSettlement(issueDateKey, vendorID, period, transactions, now), nil
	})
	if err != nil {
		var settlementErr *domainerror.SettlementError
		if errors.As(err, &settlementErr) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to issue settlement: %w", err)
	}

	uc.recorder.Record(ctx, audit.Entry{
		Action:     entity.AuditActionIssue,
		EntityType: entity.AuditEntitySettlement,
		EntityID:   settlement.ID,
		After:      settlement,
	})

	return &IssueSettlementOutput{Settlement: settlement}, nil
}

// issueRange requires both bounds, unlike list filters which collapse a single bound.
func issueRange(startKey, endKey string) (valueobject.DateRange, error) {
	if startKey == "" || endKey == "" {
		return valueobject.DateRange{}, domainerror.NewSettlementError(
			domainerror.ErrCodeSettlementInvalidRange,
			"range start and end are required",
			domainerror.ErrInvalidRange,
		)
	}

	period, err := valueobject.NormalizeRange(startKey, endKey)
	if err != nil {
		if errors.Is(err, domainerror.ErrInvalidRange) {
			return valueobject.DateRange{}, domainerror.NewSettlementError(
				domainerror.ErrCodeSettlementInvalidRange,
				"range start must not be after range end",
				err,
			)
		}
		return valueobject.DateRange{}, domainerror.AsValidationError(err)
	}
	return *period, nil
}
