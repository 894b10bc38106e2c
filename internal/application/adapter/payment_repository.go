package adapter

import (
	"context"

	"github.com/ledger-backoffice/backend/internal/domain/entity"
)

// PaymentRepository defines the interface for payment persistence operations.
// Payments are append-only.
type PaymentRepository interface {
	// Create records a new payment.
	Create(ctx context.Context, payment *entity.Payment) error

	// FindByVendor retrieves a vendor's payments ordered by date key then creation time, newest first.
	FindByVendor(ctx context.Context, vendorID string) ([]*entity.Payment, error)
}
