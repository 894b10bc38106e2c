package dto

import (
	"encoding/json"
	"time"

	"github.com/ledger-backoffice/backend/internal/application/usecase/audit"
)

// ListAuditLogsQuery represents the query parameters for listing audit entries.
type ListAuditLogsQuery struct {
	PageQuery
	EntityType string `form:"entity_type"`
	Action     string `form:"action"`
}

// AuditLogResponse represents one audit entry.
type AuditLogResponse struct {
	ID         string          `json:"id"`
	Action     string          `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Actor      string          `json:"actor"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// AuditLogListResponse represents the response for listing audit entries.
type AuditLogListResponse struct {
	Logs []AuditLogResponse `json:"logs"`
	Meta PaginationMeta     `json:"meta"`
}

// ToAuditLogListResponse converts the list output to an AuditLogListResponse DTO.
func ToAuditLogListResponse(output *audit.ListAuditLogsOutput) AuditLogListResponse {
	logs := make([]AuditLogResponse, len(output.Logs))
	for i, log := range output.Logs {
		logs[i] = AuditLogResponse{
			ID:         log.ID,
			Action:     string(log.Action),
			EntityType: string(log.EntityType),
			EntityID:   log.EntityID,
			Actor:      log.Actor,
			Before:     log.Before,
			After:      log.After,
			CreatedAt:  log.CreatedAt.UTC(),
		}
	}
	return AuditLogListResponse{
		Logs: logs,
		Meta: newMeta(output.Page, output.Limit, output.Total, output.TotalPages),
	}
}
