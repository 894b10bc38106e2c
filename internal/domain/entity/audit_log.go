package entity

import (
	"encoding/json"
	"time"

	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
)

// AuditAction names the kind of mutation recorded.
type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionIssue  AuditAction = "issue"
	AuditActionReturn AuditAction = "return"
)

// AuditEntityType names the kind of entity a mutation touched.
type AuditEntityType string

const (
	AuditEntityVendor      AuditEntityType = "vendor"
	AuditEntityProduct     AuditEntityType = "product"
	AuditEntityTransaction AuditEntityType = "transaction"
	AuditEntitySettlement  AuditEntityType = "settlement"
	AuditEntityPayment     AuditEntityType = "payment"
)

// AuditLog is an append-only record of one mutation with full before/after state.
type AuditLog struct {
	ID         string          `json:"id"`
	Action     AuditAction     `json:"action"`
	EntityType AuditEntityType `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Actor      string          `json:"actor"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NewAuditLog creates a new AuditLog entity.
func NewAuditLog(action AuditAction, entityType AuditEntityType, entityID, actor string, before, after json.RawMessage, now time.Time) *AuditLog {
	return &AuditLog{
		ID:         valueobject.NewID(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Actor:      actor,
		Before:     before,
		After:      after,
		CreatedAt:  now,
	}
}
