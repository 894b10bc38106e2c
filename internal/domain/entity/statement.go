package entity

import (
	"github.com/shopspring/decimal"
)

// StatementEventKind distinguishes sales from deposits in a vendor statement.
type StatementEventKind string

const (
	StatementEventSale    StatementEventKind = "sale"
	StatementEventDeposit StatementEventKind = "deposit"
)

// DepositNote is the note shown on deposit rows.
const DepositNote = "deposit"

// StatementEvent is one signed, balance-annotated row of a vendor statement.
type StatementEvent struct {
	ID       string
	Kind     StatementEventKind
	DateKey  string
	SortTime string
	Amount   decimal.Decimal
	Balance  decimal.Decimal
	Note     string
}

// StatementMetrics summarizes a vendor's sales and payments.
type StatementMetrics struct {
	TotalSalesAmount     decimal.Decimal
	TotalPaymentAmount   decimal.Decimal
	MonthlySalesAmount   decimal.Decimal
	MonthlyPaymentAmount decimal.Decimal
	OutstandingAmount    decimal.Decimal
}
