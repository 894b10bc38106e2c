package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
	"github.com/ledger-backoffice/backend/internal/application/usecase/audit"
	"github.com/ledger-backoffice/backend/internal/domain/entity"
	domainerror "github.com/ledger-backoffice/backend/internal/domain/error"
	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
)

// UpdateTransactionInput represents the input for transaction update.
type UpdateTransactionInput struct {
	TransactionID     string
	DateKey           *string
	VendorID          *string
	ProductName       *string
	ProductUnit       *string
	UnitPrice         *decimal.Decimal
	Qty               *decimal.Decimal
	RegisteredTimeKST *string
}

func (in UpdateTransactionInput) empty() bool {
	return in.DateKey == nil && in.VendorID == nil && in.ProductName == nil && in.ProductUnit == nil &&
		in.UnitPrice == nil && in.Qty == nil && in.RegisteredTimeKST == nil
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
}

// UpdateTransactionUseCase handles transaction edits.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	vendorRepo      adapter.VendorRepository
	recorder        *audit.Recorder
	clock           valueobject.Clock
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	vendorRepo adapter.VendorRepository,
	recorder *audit.Recorder,
	clock valueobject.Clock,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		vendorRepo:      vendorRepo,
		recorder:        recorder,
		clock:           clock,
	}
}

// Execute applies a partial update and re-derives the amount unconditionally.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	id, err := valueobject.ParseID(input.TransactionID)
	if err != nil {
		return nil, domainerror.AsValidationError(err)
	}
	if input.empty() {
		return nil, domainerror.AsValidationError(domainerror.ErrNoFieldsToUpdate)
	}

	// Find the existing transaction
	transaction, err := uc.transactionRepo.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, transactionNotFound()
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	before := transaction.Clone()

	if input.DateKey != nil {
		dateKey, err := valueobject.EnsureDateKey(*input.DateKey)
		if err != nil {
			return nil, domainerror.AsValidationError(err)
		}
		transaction.DateKey = dateKey
	}

	if input.VendorID != nil {
		vendorID, err := valueobject.ParseID(*input.VendorID)
		if err != nil {
			return nil, domainerror.AsValidationError(err)
		}
		if vendorID != transaction.VendorID {
			if _, err := uc.vendorRepo.FindActiveByID(ctx, vendorID); err != nil {
				if errors.Is(err, domainerror.ErrVendorNotFound) {
					return nil, vendorNotFound()
				}
				return nil, fmt.Errorf("failed to find vendor: %w", err)
			}
		}
		transaction.VendorID = vendorID
	}

	if input.ProductName != nil {
		name, err := normalizeProductName(*input.ProductName)
		if err != nil {
			return nil, err
		}
		transaction.ProductName = name
	}

	if input.ProductUnit != nil {
		unit, err := normalizeProductUnit(*input.ProductUnit)
		if err != nil {
			return nil, err
		}
		transaction.ProductUnit = unit
	}

	if input.UnitPrice != nil {
		if err := validateUnitPrice(*input.UnitPrice); err != nil {
			return nil, err
		}
		transaction.UnitPrice = *input.UnitPrice
	}

	if input.Qty != nil {
		if err := validateQty(*input.Qty); err != nil {
			return nil, err
		}
		transaction.Qty = *input.Qty
	}

	if input.RegisteredTimeKST != nil {
		timeKey, err := valueobject.EnsureTimeKey(*input.RegisteredTimeKST)
		if err != nil {
			return nil, domainerror.AsValidationError(err)
		}
		transaction.RegisteredTimeKST = timeKey
	}

	// Amount is never taken from input
	transaction.RecomputeAmount()
	transaction.UpdatedAt = uc.clock.Now()

	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, transactionNotFound()
		}
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	uc.recorder.Record(ctx, audit.Entry{
		Action:     entity.AuditActionUpdate,
		EntityType: entity.AuditEntityTransaction,
		EntityID:   transaction.ID,
		Before:     before,
		After:      transaction,
	})

	return &UpdateTransactionOutput{Transaction: transaction}, nil
}
