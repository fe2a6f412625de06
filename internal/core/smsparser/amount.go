package smsparser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// currencyMarker matches the currency prefixes seen in Lesotho bank and
// mobile-money notifications (loti, rand and the occasional dollar sign).
const currencyMarker = `(?:LSL|ZAR|M|R|\$)`

// moneyNumber matches digits with optional comma grouping and a two-digit fraction.
const moneyNumber = `(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d{2})?`

var amountPattern = regexp.MustCompile(`(?i)(?:^|[^A-Za-z0-9])` + currencyMarker + `\s?(-?\s?` + moneyNumber + `)`)

// extractAmount returns the first currency-marked amount in text.
// The bool is false when no such token exists; the value may still be
// zero or negative and must be gated by the caller.
func extractAmount(text string) (decimal.Decimal, bool) {
	m := amountPattern.FindStringSubmatch(text)
	if m == nil {
		return decimal.Zero, false
	}
	return parseMoney(m[1])
}

// parseMoney strips grouping separators and whitespace before conversion.
func parseMoney(raw string) (decimal.Decimal, bool) {
	cleaned := strings.NewReplacer(",", "", " ", "", "\t", "").Replace(raw)
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
