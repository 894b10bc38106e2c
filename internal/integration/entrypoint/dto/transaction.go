package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledger-backoffice/backend/internal/application/usecase/transaction"
	"github.com/ledger-backoffice/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	DateKey           string           `json:"date_key" binding:"required,datekey"`
	VendorID          string           `json:"vendor_id" binding:"required,objectid"`
	ProductName       string           `json:"product_name" binding:"required"`
	ProductUnit       string           `json:"product_unit"`
	UnitPrice         *decimal.Decimal `json:"unit_price" binding:"required"`
	Qty               *decimal.Decimal `json:"qty" binding:"required"`
	RegisteredTimeKST string           `json:"registered_time_kst" binding:"omitempty,timekey"`
}

// ToInput converts the request to the use case input.
func (r CreateTransactionRequest) ToInput() transaction.CreateTransactionInput {
	return transaction.CreateTransactionInput{
		DateKey:           r.DateKey,
		VendorID:          r.VendorID,
		ProductName:       r.ProductName,
		ProductUnit:       r.ProductUnit,
		UnitPrice:         *r.UnitPrice,
		Qty:               *r.Qty,
		RegisteredTimeKST: r.RegisteredTimeKST,
	}
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	DateKey           *string          `json:"date_key" binding:"omitempty,datekey"`
	VendorID          *string          `json:"vendor_id" binding:"omitempty,objectid"`
	ProductName       *string          `json:"product_name"`
	ProductUnit       *string          `json:"product_unit"`
	UnitPrice         *decimal.Decimal `json:"unit_price"`
	Qty               *decimal.Decimal `json:"qty"`
	RegisteredTimeKST *string          `json:"registered_time_kst" binding:"omitempty,timekey"`
}

// ToInput converts the request to the use case input.
func (r UpdateTransactionRequest) ToInput(transactionID string) transaction.UpdateTransactionInput {
	return transaction.UpdateTransactionInput{
		TransactionID:     transactionID,
		DateKey:           r.DateKey,
		VendorID:          r.VendorID,
		ProductName:       r.ProductName,
		ProductUnit:       r.ProductUnit,
		UnitPrice:         r.UnitPrice,
		Qty:               r.Qty,
		RegisteredTimeKST: r.RegisteredTimeKST,
	}
}

// TransactionFilterQuery represents the filter query parameters shared by list and export.
type TransactionFilterQuery struct {
	VendorID       string `form:"vendor_id" binding:"omitempty,objectid"`
	ProductName    string `form:"product_name"`
	Keyword        string `form:"keyword"`
	StartKey       string `form:"start_key" binding:"omitempty,datekey"`
	EndKey         string `form:"end_key" binding:"omitempty,datekey"`
	Preset         string `form:"preset" binding:"omitempty,oneof=today 1w 1m 3m"`
	IncludeDeleted bool   `form:"include_deleted"`
}

// ToFilter converts the query to the use case filter.
func (q TransactionFilterQuery) ToFilter() transaction.FilterInput {
	return transaction.FilterInput{
		VendorID:       q.VendorID,
		ProductName:    q.ProductName,
		Keyword:        q.Keyword,
		StartKey:       q.StartKey,
		EndKey:         q.EndKey,
		Preset:         q.Preset,
		IncludeDeleted: q.IncludeDeleted,
	}
}

// ListTransactionsQuery represents the query parameters for listing transactions.
type ListTransactionsQuery struct {
	PageQuery
	TransactionFilterQuery
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID                string          `json:"id"`
	DateKey           string          `json:"date_key"`
	VendorID          string          `json:"vendor_id"`
	VendorName        string          `json:"vendor_name,omitempty"`
	ProductName       string          `json:"product_name"`
	ProductUnit       string          `json:"product_unit"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Qty               decimal.Decimal `json:"qty"`
	Amount            decimal.Decimal `json:"amount"`
	RegisteredTimeKST string          `json:"registered_time_kst"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         *time.Time      `json:"deleted_at,omitempty"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions      []TransactionResponse `json:"transactions"`
	PeriodTotalAmount decimal.Decimal       `json:"period_total_amount"`
	Range             *DateRangeResponse    `json:"range,omitempty"`
	Meta              PaginationMeta        `json:"meta"`
}

// ReturnResponse represents the response for a processed return.
type ReturnResponse struct {
	Source TransactionResponse `json:"source"`
	Return TransactionResponse `json:"return"`
}

// ToTransactionResponse converts a domain Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                t.ID,
		DateKey:           t.DateKey,
		VendorID:          t.VendorID,
		ProductName:       t.ProductName,
		ProductUnit:       t.ProductUnit,
		UnitPrice:         t.UnitPrice,
		Qty:               t.Qty,
		Amount:            t.Amount,
		RegisteredTimeKST: t.RegisteredTimeKST,
		CreatedAt:         t.CreatedAt.UTC(),
		UpdatedAt:         t.UpdatedAt.UTC(),
		DeletedAt:         utc(t.DeletedAt),
	}
}

// ToTransactionListResponse converts the list output to a TransactionListResponse DTO.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	rows := make([]TransactionResponse, len(output.Transactions))
	for i, row := range output.Transactions {
		rows[i] = ToTransactionResponse(row.Transaction)
		rows[i].VendorName = row.VendorName
	}

	response := TransactionListResponse{
		Transactions:      rows,
		PeriodTotalAmount: output.PeriodTotalAmount,
		Meta:              newMeta(output.Page, output.Limit, output.Total, output.TotalPages),
	}
	if output.Range != nil {
		response.Range = &DateRangeResponse{StartKey: output.Range.StartKey, EndKey: output.Range.EndKey}
	}
	return response
}

// ToReturnResponse converts the return output to a ReturnResponse DTO.
func ToReturnResponse(output *transaction.CreateReturnOutput) ReturnResponse {
	return ReturnResponse{
		Source: ToTransactionResponse(output.Source),
		Return: ToTransactionResponse(output.Return),
	}
}
