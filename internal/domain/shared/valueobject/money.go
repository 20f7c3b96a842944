package valueobject

import (
	"math"

	"github.com/shopspring/decimal"
)

// RoundRupee rounds a decimal amount to whole currency units, half away
// from zero. All invoice arithmetic (line subtotal, discount, grand total)
// is carried out in whole rupees.
func RoundRupee(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// SanitizeFloat maps NaN and Inf to 0 so that malformed numeric input
// never propagates into decimal arithmetic. A real 0 passes through.
func SanitizeFloat(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
