package smsparser

import (
	"strings"

	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
)

type kindRule struct {
	keywords []string
	kind     domain.TransactionKind
}

// kindRules is evaluated top-down; withdrawal terms win over credit terms.
var kindRules = []kindRule{
	{keywords: []string{"withdraw", "cash out", "atm"}, kind: domain.Withdrawal},
	{keywords: []string{"received", "credited", "deposit"}, kind: domain.Credit},
}

func detectKind(text string) domain.TransactionKind {
	lower := strings.ToLower(text)
	for _, rule := range kindRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.kind
			}
		}
	}
	return domain.Debit
}
