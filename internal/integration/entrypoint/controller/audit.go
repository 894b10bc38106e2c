package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledger-backoffice/backend/internal/application/usecase/audit"
	"github.com/ledger-backoffice/backend/internal/integration/entrypoint/dto"
)

// AuditController handles audit trail endpoints.
type AuditController struct {
	listUseCase *audit.ListAuditLogsUseCase
}

// NewAuditController creates a new audit controller instance.
func NewAuditController(listUseCase *audit.ListAuditLogsUseCase) *AuditController {
	return &AuditController{
		listUseCase: listUseCase,
	}
}

// List handles GET /audit-logs requests.
func (c *AuditController) List(ctx *gin.Context) {
	var query dto.ListAuditLogsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBindingError(ctx, err)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), audit.ListAuditLogsInput{
		EntityType: query.EntityType,
		Action:     query.Action,
		Page:       query.Page,
		Limit:      query.Limit,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAuditLogListResponse(output))
}
