package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
	"github.com/ledger-backoffice/backend/internal/domain/entity"
	"github.com/ledger-backoffice/backend/internal/integration/persistence/model"
)

// auditLogRepository implements the adapter.AuditLogRepository interface.
type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new audit log repository instance.
func NewAuditLogRepository(db *gorm.DB) adapter.AuditLogRepository {
	return &auditLogRepository{
		db: db,
	}
}

// Record stores a single audit entry.
func (r *auditLogRepository) Record(ctx context.Context, log *entity.AuditLog) error {
	return r.db.WithContext(ctx).Create(model.AuditLogFromEntity(log)).Error
}

// CreateBatch stores several audit entries in one insert.
func (r *auditLogRepository) CreateBatch(ctx context.Context, logs []*entity.AuditLog) error {
	if len(logs) == 0 {
		return nil
	}

	auditModels := make([]*model.AuditLogModel, len(logs))
	for i, log := range logs {
		auditModels[i] = model.AuditLogFromEntity(log)
	}
	return r.db.WithContext(ctx).Create(&auditModels).Error
}

// FindByFilter retrieves audit entries newest first with pagination.
func (r *auditLogRepository) FindByFilter(ctx context.Context, filter adapter.AuditLogFilter, pagination adapter.Pagination) (*adapter.AuditLogListResult, error) {
	query := r.db.WithContext(ctx).Model(&model.AuditLogModel{})
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var auditModels []model.AuditLogModel
	if err := paginate(query.Order("created_at DESC, id DESC"), pagination).Find(&auditModels).Error; err != nil {
		return nil, err
	}

	logs := make([]*entity.AuditLog, len(auditModels))
	for i := range auditModels {
		logs[i] = auditModels[i].ToEntity()
	}

	return &adapter.AuditLogListResult{
		Logs:  logs,
		Total: total,
	}, nil
}
