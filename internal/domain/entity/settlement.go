package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
)

// SettlementItem is a frozen copy of one transaction line at issue time.
type SettlementItem struct {
	TransactionID     string          `json:"transaction_id"`
	DateKey           string          `json:"date_key"`
	ProductName       string          `json:"product_name"`
	ProductUnit       string          `json:"product_unit"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Qty               decimal.Decimal `json:"qty"`
	Amount            decimal.Decimal `json:"amount"`
	RegisteredTimeKST string          `json:"registered_time_kst"`
}

// Settlement is an issued invoice. Its items are never regenerated from live transactions.
type Settlement struct {
	ID            string           `json:"id"`
	IssueDateKey  string           `json:"issue_date_key"`
	VendorID      string           `json:"vendor_id"`
	RangeStartKey string           `json:"range_start_key"`
	RangeEndKey   string           `json:"range_end_key"`
	Items         []SettlementItem `json:"items_snapshot"`
	TotalAmount   decimal.Decimal  `json:"total_amount"`
	CreatedAt     time.Time        `json:"created_at"`
}

// NewSettlement snapshots transactions into a new Settlement with a computed total.
func NewSettlement(issueDateKey, vendorID string, period valueobject.DateRange, transactions []*Transaction, now time.Time) *Settlement {
	items := make([]SettlementItem, len(transactions))
	amounts := make([]decimal.Decimal, len(transactions))
	for i, t := range transactions {
		items[i] = SettlementItem{
			TransactionID:     t.ID,
			DateKey:           t.DateKey,
			ProductName:       t.ProductName,
			ProductUnit:       t.ProductUnit,
			UnitPrice:         t.UnitPrice,
			Qty:               t.Qty,
			Amount:            t.Amount,
			RegisteredTimeKST: t.RegisteredTimeKST,
		}
		amounts[i] = t.Amount
	}

	return &Settlement{
		ID:            valueobject.NewID(),
		IssueDateKey:  issueDateKey,
		VendorID:      vendorID,
		RangeStartKey: period.StartKey,
		RangeEndKey:   period.EndKey,
		Items:         items,
		TotalAmount:   valueobject.SumAmounts(amounts...),
		CreatedAt:     now,
	}
}

// SettlementWithVendor is a settlement joined with its vendor's display name at read time.
type SettlementWithVendor struct {
	Settlement *Settlement
	VendorName string
}
