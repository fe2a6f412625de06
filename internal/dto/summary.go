package dto

import (
	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummaryParams selects the month and budget for a summary.
type SummaryParams struct {
	Month  string `form:"month" binding:"omitempty,datetime=2006-01"`
	Budget string `form:"budget" binding:"omitempty,numeric"`
}

// CategorySpending is the spending share of one category.
type CategorySpending struct {
	Category   domain.Category `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// SummaryResponse is the monthly financial overview.
type SummaryResponse struct {
	Month              string             `json:"month"`
	TotalBalance       *decimal.Decimal   `json:"totalBalance,omitempty"`
	MonthlyExpenses    decimal.Decimal    `json:"monthlyExpenses"`
	MonthlyIncome      decimal.Decimal    `json:"monthlyIncome"`
	MonthlySavings     decimal.Decimal    `json:"monthlySavings"`
	MonthlyBudget      decimal.Decimal    `json:"monthlyBudget"`
	HealthScore        int                `json:"healthScore"`
	PendingWithdrawals int                `json:"pendingWithdrawals"`
	CategorySpending   []CategorySpending `json:"categorySpending"`
}
