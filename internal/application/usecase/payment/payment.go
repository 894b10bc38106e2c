// Package payment contains vendor payment use cases. Payments are append-only.
package payment

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

func vendorNotFound() error {
	return domainerror.NewPaymentError(
		domainerror.ErrCodePaymentVendorNotFound,
		"vendor not found",
		domainerror.ErrVendorNotFoundForPayment,
	)
}

// CreatePaymentInput represents the input for recording a payment.
type CreatePaymentInput struct {
	VendorID string
	DateKey  string // Defaults to today in KST
	Amount   decimal.Decimal
}

// CreatePaymentUseCase records money received from a vendor.
type CreatePaymentUseCase struct {
	paymentRepo adapter.PaymentRepository
	vendorRepo  adapter.VendorRepository
	recorder    *audit.Recorder
	clock       valueobject.Clock
}

// NewCreatePaymentUseCase creates a new CreatePaymentUseCase instance.
func NewCreatePaymentUseCase(
	paymentRepo adapter.PaymentRepository,
	vendorRepo adapter.VendorRepository,
	recorder *audit.Recorder,
	clock valueobject.Clock,
) *CreatePaymentUseCase {
	return &CreatePaymentUseCase{
		paymentRepo: paymentRepo,
		vendorRepo:  vendorRepo,
		recorder:    recorder,
		clock:       clock,
	}
}

// Execute stores a positive payment for an active vendor.
func (uc *CreatePaymentUseCase) Execute(ctx context.Context, input CreatePaymentInput) (*entity.Payment, error) {
	vendorID, err := valueobject.ParseID(input.VendorID)
	if err != nil {
		return nil, domainerror.AsValidationError(err)
	}

	dateKey := input.DateKey
	if dateKey == "" {
		dateKey = uc.clock.NowDateKey()
	} else if _, err := valueobject.EnsureDateKey(dateKey); err != nil {
		return nil, domainerror.AsValidationError(err)
	}

	// Checked at stored precision so a sub-cent amount cannot become a zero payment
	amount := input.Amount.Round(valueobject.AmountPlaces)
	if !amount.IsPositive() {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidPaymentAmount,
			"payment amount must be at least 0.01",
			domainerror.ErrInvalidPaymentAmount,
		)
	}

	if _, err := uc.vendorRepo.FindActiveByID(ctx, vendorID); err != nil {
		if errors.Is(err, domainerror.ErrVendorNotFound) {
			return nil, vendorNotFound()
		}
		return nil, fmt.Errorf("failed to find vendor: %w", err)
	}

	payment := entity.NewPayment(vendorID, dateKey, amount, uc.clock.Now())
	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	uc.recorder.Record(ctx, audit.Entry{
		Action:     entity.AuditActionCreate,
		EntityType: entity.AuditEntityPayment,
		EntityID:   payment.ID,
		After:      payment,
	})

	return payment, nil
}

// ListPaymentsUseCase lists a vendor's payments.
type ListPaymentsUseCase struct {
	paymentRepo adapter.PaymentRepository
	vendorRepo  adapter.VendorRepository
}

// NewListPaymentsUseCase creates a new ListPaymentsUseCase instance.
func NewListPaymentsUseCase(paymentRepo adapter.PaymentRepository, vendorRepo adapter.VendorRepository) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{paymentRepo: paymentRepo, vendorRepo: vendorRepo}
}

// Execute returns payments newest first by date key then creation time.
func (uc *ListPaymentsUseCase) Execute(ctx context.Context, vendorID string) ([]*entity.Payment, error) {
	id, err := valueobject.ParseID(vendorID)
	if err != nil {
		return nil, domainerror.AsValidationError(err)
	}

	if _, err := uc.vendorRepo.FindActiveByID(ctx, id); err != nil {
		if errors.Is(err, domainerror.ErrVendorNotFound) {
			return nil, vendorNotFound()
		}
		return nil, fmt.Errorf("failed to find vendor: %w", err)
	}

	payments, err := uc.paymentRepo.FindByVendor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
