package settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
	"github.com/ledger-backoffice/backend/internal/domain/entity"
	domainerror "github.com/ledger-backoffice/backend/internal/domain/error"
	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
)

// GetSettlementUseCase reads back an issued settlement.
type GetSettlementUseCase struct {
	settlementRepo adapter.SettlementRepository
	vendorRepo     adapter.VendorRepository
}

// NewGetSettlementUseCase creates a new GetSettlementUseCase instance.
func NewGetSettlementUseCase(settlementRepo adapter.SettlementRepository, vendorRepo adapter.VendorRepository) *GetSettlementUseCase {
	return &GetSettlementUseCase{settlementRepo: settlementRepo, vendorRepo: vendorRepo}
}

// Execute returns the settlement with its vendor name resolved at read time.
func (uc *GetSettlementUseCase) Execute(ctx context.Context, settlementID string) (*entity.SettlementWithVendor, error) {
	id, err := valueobject.ParseID(settlementID)
	if err != nil {
		return nil, domainerror.AsValidationError(err)
	}

	settlement, err := uc.settlementRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrSettlementNotFound) {
			return nil, domainerror.NewSettlementError(
				domainerror.ErrCodeSettlementNotFound,
				"settlement not found",
				domainerror.ErrSettlementNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find settlement: %w", err)
	}

	names, err := vendorNames(ctx, uc.vendorRepo, []*entity.Settlement{settlement})
	if err != nil {
		return nil, err
	}

	return &entity.SettlementWithVendor{
		Settlement: settlement,
		VendorName: names[settlement.VendorID],
	}, nil
}

func vendorNames(ctx context.Context, vendorRepo adapter.VendorRepository, settlements []*entity.Settlement) (map[string]string, error) {
	ids := make([]string, 0, len(settlements))
	for _, s := range settlements {
		ids = append(ids, s.VendorID)
	}

	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	vendors, err := vendorRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve vendor names: %w", err)
	}
	for _, id := range ids {
		names[id] = vendors[id].DisplayName()
	}
	return names, nil
}
