package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
)

// Transaction is a dated sales line for a vendor. A negative quantity records a
// return or adjustment.
type Transaction struct {
	ID                string          `json:"id"`
	DateKey           string          `json:"date_key"`
	VendorID          string          `json:"vendor_id"`
	ProductName       string          `json:"product_name"`
	ProductUnit       string          `json:"product_unit"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Qty               decimal.Decimal `json:"qty"`
	Amount            decimal.Decimal `json:"amount"`
	RegisteredTimeKST string          `json:"registered_time_kst"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         *time.Time      `json:"deleted_at,omitempty"`
}

// NewTransaction creates a new Transaction entity with its amount derived from price and quantity.
func NewTransaction(
	dateKey string,
	vendorID string,
	productName string,
	productUnit string,
	unitPrice decimal.Decimal,
	qty decimal.Decimal,
	registeredTimeKST string,
	now time.Time,
) *Transaction {
	t := &Transaction{
		ID:                valueobject.NewID(),
		DateKey:           dateKey,
		VendorID:          vendorID,
		ProductName:       productName,
		ProductUnit:       productUnit,
		UnitPrice:         unitPrice,
		Qty:               qty,
		RegisteredTimeKST: registeredTimeKST,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	t.RecomputeAmount()
	return t
}

// RecomputeAmount rounds UnitPrice and Qty to their stored scale and
// re-derives Amount from them, so the amount always matches the persisted
// operands.
func (t *Transaction) RecomputeAmount() {
	t.UnitPrice = t.UnitPrice.Round(valueobject.QuantityPlaces)
	t.Qty = t.Qty.Round(valueobject.QuantityPlaces)
	t.Amount = valueobject.ComputeAmount(t.UnitPrice, t.Qty)
}

// IsDeleted reports whether the transaction has been soft-deleted.
func (t *Transaction) IsDeleted() bool {
	return t.DeletedAt != nil
}

// NewReturn builds the mirror line for a return of t. The source is not modified.
func (t *Transaction) NewReturn(registeredTimeKST string, now time.Time) *Transaction {
	return NewTransaction(
		t.DateKey,
		t.VendorID,
		t.ProductName,
		t.ProductUnit,
		t.UnitPrice,
		valueobject.ReturnQty(t.Qty),
		registeredTimeKST,
		now,
	)
}

// Clone returns a copy that can be mutated without touching t.
func (t *Transaction) Clone() *Transaction {
	c := *t
	if t.DeletedAt != nil {
		deletedAt := *t.DeletedAt
		c.DeletedAt = &deletedAt
	}
	return &c
}

// TransactionWithVendor is a transaction row joined with its vendor's display name.
type TransactionWithVendor struct {
	Transaction *Transaction
	VendorName  string
}
