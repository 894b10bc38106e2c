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

// CreateReturnInput represents the input for recording a return.
type CreateReturnInput struct {
	SourceTransactionID string
}

// CreateReturnOutput represents the output of recording a return.
type CreateReturnOutput struct {
	Source *entity.Transaction
	Return *entity.Transaction
}

// CreateReturnUseCase records a return as an additional mirror transaction.
type CreateReturnUseCase struct {
	transactionRepo adapter.TransactionRepository
	recorder        *audit.Recorder
	clock           valueobject.Clock
}

// NewCreateReturnUseCase creates a new CreateReturnUseCase instance.
func NewCreateReturnUseCase(
	transactionRepo adapter.TransactionRepository,
	recorder *audit.Recorder,
	clock valueobject.Clock,
) *CreateReturnUseCase {
	return &CreateReturnUseCase{
		transactionRepo: transactionRepo,
		recorder:        recorder,
		clock:           clock,
	}
}

// Execute creates the mirror row. A positive source quantity is negated; a
// source that is already negative is mirrored with the same sign. The source
// row is never modified.
func (uc *CreateReturnUseCase) Execute(ctx context.Context, input CreateReturnInput) (*CreateReturnOutput, error) {
	id, err := valueobject.ParseID(input.SourceTransactionID)
	if err != nil {
		return nil, domainerror.AsValidationError(err)
	}

	source, err := uc.transactionRepo.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, transactionNotFound()
		}
		return nil, fmt.Errorf("failed to find source transaction: %w", err)
	}

	ret := source.NewReturn(uc.clock.NowTimeKey(), uc.clock.Now())
	if err := uc.transactionRepo.Create(ctx, ret); err != nil {
		return nil, fmt.Errorf("failed to create return transaction: %w", err)
	}

	uc.recorder.Record(ctx, audit.Entry{
		Action:     entity.AuditActionReturn,
		EntityType: entity.AuditEntityTransaction,
		EntityID:   ret.ID,
		Before:     source,
		After:      ret,
	})

	return &CreateReturnOutput{Source: source, Return: ret}, nil
}
