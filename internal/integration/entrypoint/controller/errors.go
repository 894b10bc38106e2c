package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/ledger-backoffice/backend/internal/domain/error"
	"github.com/ledger-backoffice/backend/internal/integration/entrypoint/dto"
)

// respondError maps domain errors to HTTP responses. Anything uncoded is
// logged and answered with an opaque 500.
func respondError(ctx *gin.Context, err error) {
	status, code, message := classify(err)
	if status == http.StatusInternalServerError {
		slog.Error("Request failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
		ctx.JSON(status, dto.ErrorResponse{Error: "An internal error occurred"})
		return
	}

	ctx.JSON(status, dto.ErrorResponse{Error: message, Code: code})
}

// respondBindingError answers a request that failed binding or validation.
func respondBindingError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request",
		Code:    string(domainerror.ErrCodeInvalidRequest),
		Details: dto.ValidationDetails(err),
	})
}

func classify(err error) (int, string, string) {
	var (
		validationErr  *domainerror.ValidationError
		vendorErr      *domainerror.VendorError
		productErr     *domainerror.ProductError
		transactionErr *domainerror.TransactionError
		paymentErr     *domainerror.PaymentError
		settlementErr  *domainerror.SettlementError
		auditErr       *domainerror.AuditError
		authErr        *domainerror.AuthError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, string(validationErr.Code), validationErr.Message
	case errors.As(err, &vendorErr):
		return vendorStatus(vendorErr.Code), string(vendorErr.Code), vendorErr.Message
	case errors.As(err, &productErr):
		return productStatus(productErr.Code), string(productErr.Code), productErr.Message
	case errors.As(err, &transactionErr):
		return transactionStatus(transactionErr.Code), string(transactionErr.Code), transactionErr.Message
	case errors.As(err, &paymentErr):
		return paymentStatus(paymentErr.Code), string(paymentErr.Code), paymentErr.Message
	case errors.As(err, &settlementErr):
		return settlementStatus(settlementErr.Code), string(settlementErr.Code), settlementErr.Message
	case errors.As(err, &auditErr):
		return http.StatusBadRequest, string(auditErr.Code), auditErr.Message
	case errors.As(err, &authErr):
		return authStatus(authErr.Code), string(authErr.Code), authErr.Message
	}
	return http.StatusInternalServerError, "", ""
}

func vendorStatus(code domainerror.VendorErrorCode) int {
	switch code {
	case domainerror.ErrCodeVendorNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeVendorNameTaken:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidVendorName,
		domainerror.ErrCodeInvalidVendorPhone,
		domainerror.ErrCodeInvalidRepresentativeName:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func productStatus(code domainerror.ProductErrorCode) int {
	switch code {
	case domainerror.ErrCodeProductNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidProductName,
		domainerror.ErrCodeInvalidProductUnit:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func transactionStatus(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound,
		domainerror.ErrCodeTxnVendorNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidUnitPrice,
		domainerror.ErrCodeInvalidTxnProductName,
		domainerror.ErrCodeInvalidTxnProductUnit,
		domainerror.ErrCodeMissingTransactionFields,
		domainerror.ErrCodeInvalidQty:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func paymentStatus(code domainerror.PaymentErrorCode) int {
	switch code {
	case domainerror.ErrCodePaymentVendorNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidPaymentAmount:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func settlementStatus(code domainerror.SettlementErrorCode) int {
	switch code {
	case domainerror.ErrCodeSettlementNotFound,
		domainerror.ErrCodeSettlementVendorNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeSettlementInvalidRange,
		domainerror.ErrCodeNoTransactionsInRange:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func authStatus(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeAuthDisabled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
