package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ledger-backoffice/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID                string          `gorm:"type:varchar(24);primaryKey"`
	DateKey           string          `gorm:"type:varchar(10);not null;index:idx_transactions_vendor_date,priority:2;index"`
	VendorID          string          `gorm:"type:varchar(24);not null;index:idx_transactions_vendor_date,priority:1"`
	ProductName       string          `gorm:"type:varchar(200);not null"`
	ProductUnit       string          `gorm:"type:varchar(50);not null;default:''"`
	UnitPrice         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Qty               decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount            decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	RegisteredTimeKST string          `gorm:"column:registered_time_kst;type:varchar(8);not null;default:''"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
	DeletedAt         gorm.DeletedAt  `gorm:"index"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:                m.ID,
		DateKey:           m.DateKey,
		VendorID:          m.VendorID,
		ProductName:       m.ProductName,
		ProductUnit:       m.ProductUnit,
		UnitPrice:         m.UnitPrice,
		Qty:               m.Qty,
		Amount:            m.Amount,
		RegisteredTimeKST: m.RegisteredTimeKST,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
		DeletedAt:         deletedAtPtr(m.DeletedAt),
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:                transaction.ID,
		DateKey:           transaction.DateKey,
		VendorID:          transaction.VendorID,
		ProductName:       transaction.ProductName,
		ProductUnit:       transaction.ProductUnit,
		UnitPrice:         transaction.UnitPrice,
		Qty:               transaction.Qty,
		Amount:            transaction.Amount,
		RegisteredTimeKST: transaction.RegisteredTimeKST,
		CreatedAt:         transaction.CreatedAt,
		UpdatedAt:         transaction.UpdatedAt,
		DeletedAt:         toDeletedAt(transaction.DeletedAt),
	}
}
