package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/ledger-backoffice/backend/internal/domain/entity"
)

// AuditLogModel represents the audit_logs table in the database.
type AuditLogModel struct {
	ID         string         `gorm:"type:varchar(24);primaryKey"`
	Action     string         `gorm:"type:varchar(20);not null;index"`
	EntityType string         `gorm:"type:varchar(20);not null;index:idx_audit_entity,priority:1"`
	EntityID   string         `gorm:"type:varchar(24);not null;index:idx_audit_entity,priority:2"`
	Actor      string         `gorm:"type:varchar(120);not null"`
	Before     datatypes.JSON `gorm:"not null"`
	After      datatypes.JSON `gorm:"not null"`
	CreatedAt  time.Time      `gorm:"not null;index"`
}

// TableName returns the table name for the AuditLogModel.
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// ToEntity converts an AuditLogModel to a domain AuditLog entity.
func (m *AuditLogModel) ToEntity() *entity.AuditLog {
	return &entity.AuditLog{
		ID:         m.ID,
		Action:     entity.AuditAction(m.Action),
		EntityType: entity.AuditEntityType(m.EntityType),
		EntityID:   m.EntityID,
		Actor:      m.Actor,
		Before:     rawJSON(m.Before),
		After:      rawJSON(m.After),
		CreatedAt:  m.CreatedAt,
	}
}

// AuditLogFromEntity creates an AuditLogModel from a domain AuditLog entity.
func AuditLogFromEntity(log *entity.AuditLog) *AuditLogModel {
	return &AuditLogModel{
		ID:         log.ID,
		Action:     string(log.Action),
		EntityType: string(log.EntityType),
		EntityID:   log.EntityID,
		Actor:      log.Actor,
		Before:     storedJSON(log.Before),
		After:      storedJSON(log.After),
		CreatedAt:  log.CreatedAt,
	}
}

// Absent states are stored as a JSON null so the columns never hold SQL NULL.
func storedJSON(v json.RawMessage) datatypes.JSON {
	if len(v) == 0 {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(v)
}

func rawJSON(v datatypes.JSON) json.RawMessage {
	if len(v) == 0 || string(v) == "null" {
		return nil
	}
	return json.RawMessage(v)
}

// All returns every model for auto-migration.
func All() []any {
	return []any{
		&VendorModel{},
		&ProductModel{},
		&TransactionModel{},
		&PaymentModel{},
		&SettlementModel{},
		&AuditLogModel{},
	}
}
