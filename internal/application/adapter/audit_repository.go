package adapter

import (
	"context"

	"github.com/ledger-backoffice/backend/internal/domain/entity"
)

// AuditSink accepts audit entries. Implementations may buffer.
type AuditSink interface {
	// Record stores or enqueues a single audit entry.
	Record(ctx context.Context, log *entity.AuditLog) error
}

// AuditLogFilter defines filter options for listing audit entries.
type AuditLogFilter struct {
	EntityType string
	Action     string
}

// AuditLogListResult represents the result of listing audit entries.
type AuditLogListResult struct {
	Logs  []*entity.AuditLog
	Total int64
}

// AuditLogRepository defines the interface for audit log persistence operations.
type AuditLogRepository interface {
	AuditSink

	// CreateBatch stores several audit entries at once.
	CreateBatch(ctx context.Context, logs []*entity.AuditLog) error

	// FindByFilter retrieves audit entries newest first with pagination.
	FindByFilter(ctx context.Context, filter AuditLogFilter, pagination Pagination) (*AuditLogListResult, error)
}
