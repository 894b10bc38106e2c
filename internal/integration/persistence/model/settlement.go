package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/ledger-backoffice/backend/internal/domain/entity"
)

// SettlementModel represents the settlements table in the database. The items
// snapshot is stored as a JSON document and never rewritten.
type SettlementModel struct {
	ID            string          `gorm:"type:varchar(24);primaryKey"`
	IssueDateKey  string          `gorm:"type:varchar(10);not null;index"`
	VendorID      string          `gorm:"type:varchar(24);not null;index"`
	RangeStartKey string          `gorm:"type:varchar(10);not null"`
	RangeEndKey   string          `gorm:"type:varchar(10);not null"`
	ItemsSnapshot datatypes.JSON  `gorm:"not null"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt     time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for the SettlementModel.
func (SettlementModel) TableName() string {
	return "settlements"
}

// ToEntity converts a SettlementModel to a domain Settlement entity.
func (m *SettlementModel) ToEntity() (*entity.Settlement, error) {
	var items []entity.SettlementItem
	if len(m.ItemsSnapshot) > 0 {
		if err := json.Unmarshal(m.ItemsSnapshot, &items); err != nil {
			return nil, fmt.Errorf("failed to decode settlement items: %w", err)
		}
	}

	return &entity.Settlement{
		ID:            m.ID,
		IssueDateKey:  m.IssueDateKey,
		VendorID:      m.VendorID,
		RangeStartKey: m.RangeStartKey,
		RangeEndKey:   m.RangeEndKey,
		Items:         items,
		TotalAmount:   m.TotalAmount,
		CreatedAt:     m.CreatedAt,
	}, nil
}

// SettlementFromEntity creates a SettlementModel from a domain Settlement entity.
func SettlementFromEntity(settlement *entity.Settlement) (*SettlementModel, error) {
	items, err := json.Marshal(settlement.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode settlement items: %w", err)
	}

	return &SettlementModel{
		ID:            settlement.ID,
		IssueDateKey:  settlement.IssueDateKey,
		VendorID:      settlement.VendorID,
		RangeStartKey: settlement.RangeStartKey,
		RangeEndKey:   settlement.RangeEndKey,
		ItemsSnapshot: datatypes.JSON(items),
		TotalAmount:   settlement.TotalAmount,
		CreatedAt:     settlement.CreatedAt,
	}, nil
}
