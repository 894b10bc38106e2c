package audit

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
	"github.com/ledger-backoffice/backend/internal/domain/entity"
	domainerror "github.com/ledger-backoffice/backend/internal/domain/error"
)

var (
	knownEntityTypes = []entity.AuditEntityType{
		entity.AuditEntityVendor,
		entity.AuditEntityProduct,
		entity.AuditEntityTransaction,
		entity.AuditEntitySettlement,
		entity.AuditEntityPayment,
	}
	knownActions = []entity.AuditAction{
		entity.AuditActionCreate,
		entity.AuditActionUpdate,
		entity.AuditActionDelete,
		entity.AuditActionIssue,
		entity.AuditActionReturn,
	}
)

// ListAuditLogsInput represents the input for listing audit entries.
type ListAuditLogsInput struct {
	EntityType string
	Action     string
	Page       int
	Limit      int
}

// ListAuditLogsOutput represents the output of listing audit entries.
type ListAuditLogsOutput struct {
	Logs       []*entity.AuditLog
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ListAuditLogsUseCase handles audit log listing.
type ListAuditLogsUseCase struct {
	auditRepo adapter.AuditLogRepository
}

// NewListAuditLogsUseCase creates a new ListAuditLogsUseCase instance.
func NewListAuditLogsUseCase(auditRepo adapter.AuditLogRepository) *ListAuditLogsUseCase {
	return &ListAuditLogsUseCase{
		auditRepo: auditRepo,
	}
}

// Execute lists audit entries newest first.
func (uc *ListAuditLogsUseCase) Execute(ctx context.Context, input ListAuditLogsInput) (*ListAuditLogsOutput, error) {
	pagination := adapter.NewPagination(input.Page, input.Limit)
	filter := adapter.AuditLogFilter{
		EntityType: strings.ToLower(strings.TrimSpace(input.EntityType)),
		Action:     strings.ToLower(strings.TrimSpace(input.Action)),
	}

	if filter.EntityType != "" && !slices.Contains(knownEntityTypes, entity.AuditEntityType(filter.EntityType)) {
		return nil, domainerror.NewAuditError(
			domainerror.ErrCodeInvalidAuditEntityType,
			"unknown entity type",
			domainerror.ErrInvalidAuditEntityType,
		)
	}
	if filter.Action != "" && !slices.Contains(knownActions, entity.AuditAction(filter.Action)) {
		return nil, domainerror.NewAuditError(
			domainerror.ErrCodeInvalidAuditAction,
			"unknown action",
			domainerror.ErrInvalidAuditAction,
		)
	}

	result, err := uc.auditRepo.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}

	return &ListAuditLogsOutput{
		Logs:       result.Logs,
		Total:      result.Total,
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: pagination.TotalPages(result.Total),
	}, nil
}
