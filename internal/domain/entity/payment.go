package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
)

// Payment is money received from a vendor. Amount is always stored as a positive magnitude.
type Payment struct {
	ID        string          `json:"id"`
	VendorID  string          `json:"vendor_id"`
	DateKey   string          `json:"date_key"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewPayment creates a new Payment entity, normalizing the amount to its absolute value.
func NewPayment(vendorID, dateKey string, amount decimal.Decimal, now time.Time) *Payment {
	return &Payment{
		ID:        valueobject.NewID(),
		VendorID:  vendorID,
		DateKey:   dateKey,
		Amount:    amount.Abs().Round(valueobject.AmountPlaces),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
