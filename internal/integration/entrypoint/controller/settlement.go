package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledger-backoffice/backend/internal/application/usecase/settlement"
	"github.com/ledger-backoffice/backend/internal/integration/entrypoint/dto"
)

// SettlementController handles settlement endpoints.
type SettlementController struct {
	issueUseCase       *settlement.IssueSettlementUseCase
	listUseCase        *settlement.ListSettlementsUseCase
	getUseCase         *settlement.GetSettlementUseCase
	exportUseCase      *settlement.ExportSettlementUseCase
	dailyUseCase       *settlement.GetDailySheetUseCase
	dailyExportUseCase *settlement.ExportDailySheetUseCase
	printConfigUseCase *settlement.GetPrintConfigUseCase
}

// NewSettlementController creates a new settlement controller instance.
func NewSettlementController(
	issueUseCase *settlement.IssueSettlementUseCase,
	listUseCase *settlement.ListSettlementsUseCase,
	getUseCase *settlement.GetSettlementUseCase,
	exportUseCase *settlement.ExportSettlementUseCase,
	dailyUseCase *settlement.GetDailySheetUseCase,
	dailyExportUseCase *settlement.ExportDailySheetUseCase,
	printConfigUseCase *settlement.GetPrintConfigUseCase,
) *SettlementController {
	return &SettlementController{
		issueUseCase:       issueUseCase,
		listUseCase:        listUseCase,
		getUseCase:         getUseCase,
		exportUseCase:      exportUseCase,
		dailyUseCase:       dailyUseCase,
		dailyExportUseCase: dailyExportUseCase,
		printConfigUseCase: printConfigUseCase,
	}
}

// Issue handles POST /settlements requests.
func (c *SettlementController) Issue(ctx *gin.Context) {
	var req dto.IssueSettlementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	output, err := c.issueUseCase.Execute(ctx.Request.Context(), req.ToInput())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSettlementResponse(output.Settlement, ""))
}

// List handles GET /settlements requests.
func (c *SettlementController) List(ctx *gin.Context) {
	var query dto.ListSettlementsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBindingError(ctx, err)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), settlement.ListSettlementsInput{
		VendorID:      query.VendorID,
		IssueStartKey: query.IssueStartKey,
		IssueEndKey:   query.IssueEndKey,
		Page:          query.Page,
		Limit:         query.Limit,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettlementListResponse(output))
}

// Get handles GET /settlements/:id requests.
func (c *SettlementController) Get(ctx *gin.Context) {
	found, err := c.getUseCase.Execute(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettlementResponse(found.Settlement, found.VendorName))
}

// Export handles GET /settlements/:id/export requests.
func (c *SettlementController) Export(ctx *gin.Context) {
	output, err := c.exportUseCase.Execute(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Header(TotalAmountHeader, output.TotalAmount.String())
	sendFile(ctx, output.FileName, output.ContentType, output.Content)
}

// Daily handles GET /settlements/daily requests.
func (c *SettlementController) Daily(ctx *gin.Context) {
	var query dto.DailySheetQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBindingError(ctx, err)
		return
	}

	sheet, err := c.dailyUseCase.Execute(ctx.Request.Context(), settlement.DailySheetInput{
		VendorID: query.VendorID,
		DateKey:  query.DateKey,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDailySheetResponse(sheet))
}

// DailyExport handles GET /settlements/daily/export requests.
func (c *SettlementController) DailyExport(ctx *gin.Context) {
	var query dto.DailySheetQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBindingError(ctx, err)
		return
	}

	output, err := c.dailyExportUseCase.Execute(ctx.Request.Context(), settlement.DailySheetInput{
		VendorID: query.VendorID,
		DateKey:  query.DateKey,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Header(TotalAmountHeader, output.TotalAmount.String())
	sendFile(ctx, output.FileName, output.ContentType, output.Content)
}

// PrintConfig handles GET /settlements/print-config requests.
func (c *SettlementController) PrintConfig(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.printConfigUseCase.Execute())
}
