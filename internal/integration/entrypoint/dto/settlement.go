package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledger-backoffice/backend/internal/application/usecase/settlement"
	"github.com/ledger-backoffice/backend/internal/domain/entity"
)

// IssueSettlementRequest represents the request body for issuing a settlement.
type IssueSettlementRequest struct {
	VendorID      string `json:"vendor_id" binding:"required,objectid"`
	IssueDateKey  string `json:"issue_date_key" binding:"omitempty,datekey"`
	RangeStartKey string `json:"range_start_key" binding:"required,datekey"`
	RangeEndKey   string `json:"range_end_key" binding:"required,datekey"`
}

// ToInput converts the request to the use case input.
func (r IssueSettlementRequest) ToInput() settlement.IssueSettlementInput {
	return settlement.IssueSettlementInput{
		VendorID:      r.VendorID,
		IssueDateKey:  r.IssueDateKey,
		RangeStartKey: r.RangeStartKey,
		RangeEndKey:   r.RangeEndKey,
	}
}

// ListSettlementsQuery represents the query parameters for listing settlements.
type ListSettlementsQuery struct {
	PageQuery
	VendorID      string `form:"vendor_id" binding:"omitempty,objectid"`
	IssueStartKey string `form:"issue_start_key" binding:"omitempty,datekey"`
	IssueEndKey   string `form:"issue_end_key" binding:"omitempty,datekey"`
}

// DailySheetQuery represents the query parameters of the daily sheet.
type DailySheetQuery struct {
	VendorID string `form:"vendor_id" binding:"required,objectid"`
	DateKey  string `form:"date_key" binding:"required,datekey"`
}

// SettlementItemResponse represents one frozen line of a settlement.
type SettlementItemResponse struct {
	TransactionID     string          `json:"transaction_id"`
	DateKey           string          `json:"date_key"`
	ProductName       string          `json:"product_name"`
	ProductUnit       string          `json:"product_unit"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Qty               decimal.Decimal `json:"qty"`
	Amount            decimal.Decimal `json:"amount"`
	RegisteredTimeKST string          `json:"registered_time_kst"`
}

// SettlementResponse represents a settlement in API responses. Items are only
// present on single-settlement responses.
type SettlementResponse struct {
	ID            string                   `json:"id"`
	IssueDateKey  string                   `json:"issue_date_key"`
	VendorID      string                   `json:"vendor_id"`
	VendorName    string                   `json:"vendor_name,omitempty"`
	RangeStartKey string                   `json:"range_start_key"`
	RangeEndKey   string                   `json:"range_end_key"`
	ItemsCount    int                      `json:"items_count"`
	Items         []SettlementItemResponse `json:"items_snapshot,omitempty"`
	TotalAmount   decimal.Decimal          `json:"total_amount"`
	CreatedAt     time.Time                `json:"created_at"`
}

// SettlementListResponse represents the response for listing settlements.
type SettlementListResponse struct {
	Settlements []SettlementResponse `json:"settlements"`
	Meta        PaginationMeta       `json:"meta"`
}

// DailySheetResponse represents one vendor's rows for a single day.
type DailySheetResponse struct {
	Vendor       VendorResponse        `json:"vendor"`
	DateKey      string                `json:"date_key"`
	Transactions []TransactionResponse `json:"transactions"`
	TotalAmount  decimal.Decimal       `json:"total_amount"`
}

func toSettlementSummary(s *entity.Settlement, vendorName string) SettlementResponse {
	return SettlementResponse{
		ID:            s.ID,
		IssueDateKey:  s.IssueDateKey,
		VendorID:      s.VendorID,
		VendorName:    vendorName,
		RangeStartKey: s.RangeStartKey,
		RangeEndKey:   s.RangeEndKey,
		ItemsCount:    len(s.Items),
		TotalAmount:   s.TotalAmount,
		CreatedAt:     s.CreatedAt.UTC(),
	}
}

// ToSettlementResponse converts a settlement with its snapshot to a SettlementResponse DTO.
func ToSettlementResponse(s *entity.Settlement, vendorName string) SettlementResponse {
	response := toSettlementSummary(s, vendorName)
	response.Items = make([]SettlementItemResponse, len(s.Items))
	for i, item := range s.Items {
		response.Items[i] = SettlementItemResponse(item)
	}
	return response
}

// ToSettlementListResponse converts the list output to a SettlementListResponse DTO.
func ToSettlementListResponse(output *settlement.ListSettlementsOutput) SettlementListResponse {
	rows := make([]SettlementResponse, len(output.Settlements))
	for i, row := range output.Settlements {
		rows[i] = toSettlementSummary(row.Settlement, row.VendorName)
	}
	return SettlementListResponse{
		Settlements: rows,
		Meta:        newMeta(output.Page, output.Limit, output.Total, output.TotalPages),
	}
}

// ToDailySheetResponse converts a daily sheet to a DailySheetResponse DTO.
func ToDailySheetResponse(sheet *settlement.DailySheet) DailySheetResponse {
	rows := make([]TransactionResponse, len(sheet.Transactions))
	for i, t := range sheet.Transactions {
		rows[i] = ToTransactionResponse(t)
		rows[i].VendorName = sheet.Vendor.DisplayName()
	}
	return DailySheetResponse{
		Vendor:       ToVendorResponse(sheet.Vendor),
		DateKey:      sheet.DateKey,
		Transactions: rows,
		TotalAmount:  sheet.TotalAmount,
	}
}
