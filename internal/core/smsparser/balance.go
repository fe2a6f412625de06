package smsparser

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// balancePatterns cover "balance: M123.45" and "M123.45 balance" forms, in that order.
var balancePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:avail(?:able)?\.?[ \t]*bal(?:ance)?|balance|bal|available)\.?[ \t]*(?:is[ \t]*|:[ \t]*)?` + currencyMarker + `?[ \t]?(` + moneyNumber + `)`),
	regexp.MustCompile(`(?i)(?:^|[^A-Za-z0-9.,])` + currencyMarker + `?[ \t]?(` + moneyNumber + `)[ \t]*(?:balance|bal)\b`),
}

func extractBalance(text string) *decimal.Decimal {
	for _, re := range balancePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if d, ok := parseMoney(m[1]); ok {
			return &d
		}
	}
	return nil
}
