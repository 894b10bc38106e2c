package statement

import (
	"context"
	"errors"
	"fmt"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
	"github.com/ledger-backoffice/backend/internal/domain/entity"
	domainerror "github.com/ledger-backoffice/backend/internal/domain/error"
	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
)

// GetVendorStatementInput represents the input for building a vendor statement.
type GetVendorStatementInput struct {
	VendorID string
	Page     int
	Limit    int
}

// GetVendorStatementOutput represents a vendor statement page.
type GetVendorStatementOutput struct {
	Vendor     *entity.Vendor
	Metrics    entity.StatementMetrics
	History    []entity.StatementEvent
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// GetVendorStatementUseCase builds a vendor's running-balance statement.
type GetVendorStatementUseCase struct {
	vendorRepo      adapter.VendorRepository
	transactionRepo adapter.TransactionRepository
	paymentRepo     adapter.PaymentRepository
	clock           valueobject.Clock
}

// NewGetVendorStatementUseCase creates a new GetVendorStatementUseCase instance.
func NewGetVendorStatementUseCase(
	vendorRepo adapter.VendorRepository,
	transactionRepo adapter.TransactionRepository,
	paymentRepo adapter.PaymentRepository,
	clock valueobject.Clock,
) *GetVendorStatementUseCase {
	return &GetVendorStatementUseCase{
		vendorRepo:      vendorRepo,
		transactionRepo: transactionRepo,
		paymentRepo:     paymentRepo,
		clock:           clock,
	}
}

// Execute loads the vendor's whole history, folds the balance over it and
// returns one page in newest-first order.
func (uc *GetVendorStatementUseCase) Execute(ctx context.Context, input GetVendorStatementInput) (*GetVendorStatementOutput, error) {
	id, err := valueobject.ParseID(input.VendorID)
	if err != nil {
		return nil, domainerror.AsValidationError(err)
	}
	pagination := adapter.NewPagination(input.Page, input.Limit)

	vendor, err := uc.vendorRepo.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrVendorNotFound) {
			return nil, domainerror.NewVendorError(
				domainerror.ErrCodeVendorNotFound,
				"vendor not found",
				domainerror.ErrVendorNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find vendor: %w", err)
	}

	// Balance is folded over the full history, never a single page
	transactions, err := uc.transactionRepo.FindActiveByVendor(ctx, vendor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load vendor transactions: %w", err)
	}
	payments, err := uc.paymentRepo.FindByVendor(ctx, vendor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load vendor payments: %w", err)
	}

	history := BuildHistory(transactions, payments)
	total := int64(len(history))

	return &GetVendorStatementOutput{
		Vendor:     vendor,
		Metrics:    ComputeMetrics(transactions, payments, valueobject.MonthRange(uc.clock.Now())),
		History:    PresentationPage(history, pagination.Offset(), pagination.Limit),
		Total:      total,
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: pagination.TotalPages(total),
	}, nil
}
