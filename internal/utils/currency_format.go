package utils

import (
	"github.com/shopspring/decimal"
)

// LotiSymbol prefixes amounts shown to users.
const LotiSymbol = "M"

// FormatWithPrecision formats an amount with the given precision
// Example: amount 12.3456 with precision 2 returns "12.35"
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}

// FormatLoti formats an amount the way bank notifications show it, e.g. "M2,850.00".
func FormatLoti(amount decimal.Decimal) string {
	fixed := FormatWithPrecision(amount.Abs(), 2)
	intPart, frac := fixed[:len(fixed)-3], fixed[len(fixed)-3:]

	grouped := make([]byte, 0, len(intPart)+len(intPart)/3)
	for i := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, intPart[i])
	}

	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	return sign + LotiSymbol + string(grouped) + frac
}
