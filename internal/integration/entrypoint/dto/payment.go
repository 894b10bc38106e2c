package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledger-backoffice/backend/internal/domain/entity"
)

// CreatePaymentRequest represents the request body for recording a payment.
type CreatePaymentRequest struct {
	DateKey string           `json:"date_key" binding:"omitempty,datekey"`
	Amount  *decimal.Decimal `json:"amount" binding:"required"`
}

// PaymentResponse represents a single payment in API responses.
type PaymentResponse struct {
	ID        string          `json:"id"`
	VendorID  string          `json:"vendor_id"`
	DateKey   string          `json:"date_key"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// PaymentListResponse represents the response for listing payments.
type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// ToPaymentResponse converts a domain Payment entity to a PaymentResponse DTO.
func ToPaymentResponse(p *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		VendorID:  p.VendorID,
		DateKey:   p.DateKey,
		Amount:    p.Amount,
		CreatedAt: p.CreatedAt.UTC(),
	}
}

// ToPaymentListResponse converts payments to a PaymentListResponse DTO.
func ToPaymentListResponse(payments []*entity.Payment) PaymentListResponse {
	rows := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		rows[i] = ToPaymentResponse(p)
	}
	return PaymentListResponse{Payments: rows}
}
