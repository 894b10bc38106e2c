package transaction

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
	"github.com/ledger-backoffice/backend/internal/domain/entity"
	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	FilterInput
	Page  int
	Limit int
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions      []*entity.TransactionWithVendor
	PeriodTotalAmount decimal.Decimal
	Range             *valueobject.DateRange
	Total             int64
	Page              int
	Limit             int
	TotalPages        int
}

// ListTransactionsUseCase handles transaction listing.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	vendorRepo      adapter.VendorRepository
	clock           valueobject.Clock
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(
	transactionRepo adapter.TransactionRepository,
	vendorRepo adapter.VendorRepository,
	clock valueobject.Clock,
) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
		vendorRepo:      vendorRepo,
		clock:           clock,
	}
}

// Execute lists transactions newest first with the period total of the whole filtered set.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	filter, err := resolveFilter(ctx, uc.vendorRepo, uc.clock, input.FilterInput)
	if err != nil {
		return nil, err
	}
	pagination := adapter.NewPagination(input.Page, input.Limit)

	result, err := uc.transactionRepo.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	rows, err := withVendorNames(ctx, uc.vendorRepo, result.Transactions)
	if err != nil {
		return nil, err
	}

	return &ListTransactionsOutput{
		Transactions:      rows,
		PeriodTotalAmount: result.PeriodTotal,
		Range:             filter.Range,
		Total:             result.Total,
		Page:              pagination.Page,
		Limit:             pagination.Limit,
		TotalPages:        pagination.TotalPages(result.Total),
	}, nil
}
