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

// CreateTransactionInput represents the input for transaction entry.
type CreateTransactionInput struct {
	DateKey           string
	VendorID          string
	ProductName       string
	ProductUnit       string
	UnitPrice         decimal.Decimal
	Qty               decimal.Decimal
	RegisteredTimeKST string // Defaults to now in KST
}

// CreateTransactionOutput represents the output of transaction entry.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles manual transaction entry.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	vendorRepo      adapter.VendorRepository
	recorder        *audit.Recorder
	clock           valueobject.Clock
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	vendorRepo adapter.VendorRepository,
	recorder *audit.Recorder,
	clock valueobject.Clock,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		vendorRepo:      vendorRepo,
		recorder:        recorder,
		clock:           clock,
	}
}

// Execute records a transaction for an active vendor with a derived amount.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	// Validate input
	dateKey, err := valueobject.EnsureDateKey(input.DateKey)
	if err != nil {
		return nil, domainerror.AsValidationError(err)
	}
	vendorID, err := valueobject.ParseID(input.VendorID)
	if err != nil {
		return nil, domainerror.AsValidationError(err)
	}
	productName, err := normalizeProductName(input.ProductName)
	if err != nil {
		return nil, err
	}
	productUnit, err := normalizeProductUnit(input.ProductUnit)
	if err != nil {
		return nil, err
	}
	if err := validateUnitPrice(input.UnitPrice); err != nil {
		return nil, err
	}
	if err := validateQty(input.Qty); err != nil {
		return nil, err
	}

	registeredTime := input.RegisteredTimeKST
	if registeredTime == "" {
		registeredTime = uc.clock.NowTimeKey()
	} else if _, err := valueobject.EnsureTimeKey(registeredTime); err != nil {
		return nil, domainerror.AsValidationError(err)
	}

	// The vendor must exist and not be tombstoned
	if _, err := uc.vendorRepo.FindActiveByID(ctx, vendorID); err != nil {
		if errors.Is(err, domainerror.ErrVendorNotFound) {
			return nil, vendorNotFound()
		}
		return nil, fmt.Errorf("failed to find vendor: %w", err)
	}

	transaction := entity.NewTransaction(
		dateKey,
		vendorID,
		productName,
		productUnit,
		input.UnitPrice,
		input.Qty,
		registeredTime,
		uc.clock.Now(),
	)

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	uc.recorder.Record(ctx, audit.Entry{
		Action:     entity.AuditActionCreate,
		EntityType: entity.AuditEntityTransaction,
		EntityID:   transaction.ID,
		After:      transaction,
	})

	return &CreateTransactionOutput{Transaction: transaction}, nil
}
