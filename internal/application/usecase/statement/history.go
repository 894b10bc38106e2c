// Package statement builds vendor statements: the merged, balance-annotated
// history of a vendor's sales and deposits.
package statement

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledger-backoffice/backend/internal/domain/entity"
	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
)

// BuildHistory merges transactions and payments into chronological order and
// folds a running balance over them. The result is oldest first.
func BuildHistory(transactions []*entity.Transaction, payments []*entity.Payment) []entity.StatementEvent {
	events := make([]entity.StatementEvent, 0, len(transactions)+len(payments))

	for _, t := range transactions {
		sortTime := t.RegisteredTimeKST
		if sortTime == "" {
			sortTime = valueobject.MidnightTimeKey
		}
		events = append(events, entity.StatementEvent{
			ID:       t.ID,
			Kind:     entity.StatementEventSale,
			DateKey:  t.DateKey,
			SortTime: sortTime,
			Amount:   t.Amount,
			Note:     t.ProductName,
		})
	}

	for _, p := range payments {
		events = append(events, entity.StatementEvent{
			ID:       p.ID,
			Kind:     entity.StatementEventDeposit,
			DateKey:  p.DateKey,
			SortTime: valueobject.ToTimeKey(p.CreatedAt),
			Amount:   p.Amount.Abs().Neg(),
			Note:     entity.DepositNote,
		})
	}

	slices.SortFunc(events, func(a, b entity.StatementEvent) int {
		return cmp.Or(
			strings.Compare(a.DateKey, b.DateKey),
			strings.Compare(a.SortTime, b.SortTime),
			strings.Compare(a.ID, b.ID),
		)
	})

	balance := decimal.Zero
	for i := range events {
		balance = balance.Add(events[i].Amount)
		events[i].Balance = balance
	}

	return events
}

// ComputeMetrics totals sales and payments overall and within month.
func ComputeMetrics(transactions []*entity.Transaction, payments []*entity.Payment, month valueobject.DateRange) entity.StatementMetrics {
	var sales, paid, monthlySales, monthlyPaid []decimal.Decimal

	for _, t := range transactions {
		sales = append(sales, t.Amount)
		if month.Contains(t.DateKey) {
			monthlySales = append(monthlySales, t.Amount)
		}
	}
	for _, p := range payments {
		paid = append(paid, p.Amount)
		if month.Contains(p.DateKey) {
			monthlyPaid = append(monthlyPaid, p.Amount)
		}
	}

	totalSales := valueobject.SumAmounts(sales...)
	totalPaid := valueobject.SumAmounts(paid...)

	return entity.StatementMetrics{
		TotalSalesAmount:     totalSales,
		TotalPaymentAmount:   totalPaid,
		MonthlySalesAmount:   valueobject.SumAmounts(monthlySales...),
		MonthlyPaymentAmount: valueobject.SumAmounts(monthlyPaid...),
		OutstandingAmount:    totalSales.Sub(totalPaid),
	}
}

// PresentationPage reverses history to newest first and slices one page of it.
// Balances keep the values computed in forward order.
func PresentationPage(history []entity.StatementEvent, offset, limit int) []entity.StatementEvent {
	reversed := slices.Clone(history)
	slices.Reverse(reversed)

	if offset >= len(reversed) {
		return []entity.StatementEvent{}
	}
	end := min(offset+limit, len(reversed))
	return reversed[offset:end]
}
