package transaction

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

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	TransactionID string
}

// DeleteTransactionUseCase handles transaction soft deletion.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	recorder        *audit.Recorder
	clock           valueobject.Clock
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	recorder *audit.Recorder,
	clock valueobject.Clock,
) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionRepo: transactionRepo,
		recorder:        recorder,
		clock:           clock,
	}
}

// Execute marks the transaction deleted. The row stays stored for audit and
// for explicit includeDeleted reads.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) error {
	id, err := valueobject.ParseID(input.TransactionID)
	if err != nil {
		return domainerror.AsValidationError(err)
	}

	transaction, err := uc.transactionRepo.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return transactionNotFound()
		}
		return fmt.Errorf("failed to find transaction: %w", err)
	}

	now := uc.clock.Now()
	if err := uc.transactionRepo.Delete(ctx, id, now); err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return transactionNotFound()
		}
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	after := transaction.Clone()
	after.DeletedAt = &now
	after.UpdatedAt = now

	uc.recorder.Record(ctx, audit.Entry{
		Action:     entity.AuditActionDelete,
		EntityType: entity.AuditEntityTransaction,
		EntityID:   transaction.ID,
		Before:     transaction,
		After:      after,
	})

	return nil
}
