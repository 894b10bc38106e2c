package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledger-backoffice/backend/internal/application/usecase/payment"
	"github.com/ledger-backoffice/backend/internal/application/usecase/statement"
	"github.com/ledger-backoffice/backend/internal/application/usecase/vendor"
	"github.com/ledger-backoffice/backend/internal/integration/entrypoint/dto"
)

// VendorController handles vendor, statement and payment endpoints.
type VendorController struct {
	listUseCase          *vendor.ListVendorsUseCase
	createUseCase        *vendor.CreateVendorUseCase
	updateUseCase        *vendor.UpdateVendorUseCase
	deleteUseCase        *vendor.DeleteVendorUseCase
	statementUseCase     *statement.GetVendorStatementUseCase
	listPaymentsUseCase  *payment.ListPaymentsUseCase
	createPaymentUseCase *payment.CreatePaymentUseCase
}

// NewVendorController creates a new vendor controller instance.
func NewVendorController(
	listUseCase *vendor.ListVendorsUseCase,
	createUseCase *vendor.CreateVendorUseCase,
	updateUseCase *vendor.UpdateVendorUseCase,
	deleteUseCase *vendor.DeleteVendorUseCase,
	statementUseCase *statement.GetVendorStatementUseCase,
	listPaymentsUseCase *payment.ListPaymentsUseCase,
	createPaymentUseCase *payment.CreatePaymentUseCase,
) *VendorController {
	return &VendorController{
		listUseCase:          listUseCase,
		createUseCase:        createUseCase,
		updateUseCase:        updateUseCase,
		deleteUseCase:        deleteUseCase,
		statementUseCase:     statementUseCase,
		listPaymentsUseCase:  listPaymentsUseCase,
		createPaymentUseCase: createPaymentUseCase,
	}
}

// List handles GET /vendors requests.
func (c *VendorController) List(ctx *gin.Context) {
	var query dto.ListVendorsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBindingError(ctx, err)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), vendor.ListVendorsInput{
		Keyword:        query.Keyword,
		IncludeDeleted: query.IncludeDeleted,
		Page:           query.Page,
		Limit:          query.Limit,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToVendorListResponse(output))
}

// Create handles POST /vendors requests.
func (c *VendorController) Create(ctx *gin.Context) {
	var req dto.CreateVendorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), req.ToInput())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToVendorResponse(output.Vendor))
}

// Statement handles GET /vendors/:id requests.
// It returns the vendor with its metrics and one page of balance history.
func (c *VendorController) Statement(ctx *gin.Context) {
	var query dto.PageQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBindingError(ctx, err)
		return
	}

	output, err := c.statementUseCase.Execute(ctx.Request.Context(), statement.GetVendorStatementInput{
		VendorID: ctx.Param("id"),
		Page:     query.Page,
		Limit:    query.Limit,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToVendorStatementResponse(output))
}

// Update handles PATCH /vendors/:id requests.
func (c *VendorController) Update(ctx *gin.Context) {
	var req dto.UpdateVendorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), req.ToInput(ctx.Param("id")))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToVendorResponse(output.Vendor))
}

// Delete handles DELETE /vendors/:id requests.
func (c *VendorController) Delete(ctx *gin.Context) {
	err := c.deleteUseCase.Execute(ctx.Request.Context(), vendor.DeleteVendorInput{VendorID: ctx.Param("id")})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ListPayments handles GET /vendors/:id/payments requests.
func (c *VendorController) ListPayments(ctx *gin.Context) {
	payments, err := c.listPaymentsUseCase.Execute(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentListResponse(payments))
}

// CreatePayment handles POST /vendors/:id/payments requests.
func (c *VendorController) CreatePayment(ctx *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	created, err := c.createPaymentUseCase.Execute(ctx.Request.Context(), payment.CreatePaymentInput{
		VendorID: ctx.Param("id"),
		DateKey:  req.DateKey,
		Amount:   *req.Amount,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPaymentResponse(created))
}
