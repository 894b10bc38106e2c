package valueobject

import (
	"github.com/shopspring/decimal"
)

// AmountPlaces is the number of decimal places every stored amount carries.
const AmountPlaces = 2

// QuantityPlaces is the scale of stored unit prices and quantities.
const QuantityPlaces = 4

// FitsQuantityScale reports whether d can be stored at QuantityPlaces without
// rounding. Trailing zeros do not count.
func FitsQuantityScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(QuantityPlaces))
}

// ComputeAmount derives a line amount from price and quantity, rounded half away
// from zero at the second decimal place.
func ComputeAmount(unitPrice, qty decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(qty).Round(AmountPlaces)
}

// ReturnQty mirrors a source quantity for a return line. Positive quantities are
// negated; quantities that are already zero or negative keep their sign.
func ReturnQty(sourceQty decimal.Decimal) decimal.Decimal {
	if sourceQty.IsPositive() {
		return sourceQty.Neg()
	}
	return sourceQty
}

// SumAmounts adds amounts and rounds the result to AmountPlaces.
func SumAmounts(amounts ...decimal.Decimal) decimal.Decimal {
	if len(amounts) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(decimal.Zero, amounts...).Round(AmountPlaces)
}
