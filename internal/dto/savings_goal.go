package dto

import (
	"time"

	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
	"github.com/SscSPs/sms_budget_tracker/internal/utils"
	"github.com/shopspring/decimal"
)

// CreateSavingsGoalRequest defines a new savings goal. Deadline is a calendar date.
type CreateSavingsGoalRequest struct {
	Name         string          `json:"name" binding:"required,max=100" example:"Emergency fund"`
	TargetAmount decimal.Decimal `json:"targetAmount" binding:"required"`
	Deadline     string          `json:"deadline" binding:"omitempty,datetime=2006-01-02" example:"2025-12-31"`
}

// SetSavingsGoalAmountRequest overwrites how much has been saved.
type SetSavingsGoalAmountRequest struct {
	CurrentAmount decimal.Decimal `json:"currentAmount"`
}

// ContributeSavingsGoalRequest adds money to a goal.
type ContributeSavingsGoalRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// SavingsGoalResponse defines the data returned for a savings goal.
type SavingsGoalResponse struct {
	GoalID          string          `json:"goalID"`
	Name            string          `json:"name"`
	TargetAmount    decimal.Decimal `json:"targetAmount"`
	CurrentAmount   decimal.Decimal `json:"currentAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	DisplayTarget   string          `json:"displayTarget"`
	DisplayCurrent  string          `json:"displayCurrent"`
	Progress        decimal.Decimal `json:"progress"`
	Completed       bool            `json:"completed"`
	Deadline        *time.Time      `json:"deadline,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ToSavingsGoalResponse converts a domain.SavingsGoal to its response DTO.
// Progress is the saved share of the target in percent, capped at 100.
func ToSavingsGoalResponse(g *domain.SavingsGoal) SavingsGoalResponse {
	progress := decimal.NewFromInt(100)
	if !g.IsCompleted() {
		progress = g.CurrentAmount.Mul(progress).Div(g.TargetAmount).Round(1)
	}
	return SavingsGoalResponse{
		GoalID:          g.GoalID,
		Name:            g.Name,
		TargetAmount:    g.TargetAmount,
		CurrentAmount:   g.CurrentAmount,
		RemainingAmount: g.Remaining(),
		DisplayTarget:   utils.FormatLoti(g.TargetAmount),
		DisplayCurrent:  utils.FormatLoti(g.CurrentAmount),
		Progress:        progress,
		Completed:       g.IsCompleted(),
		Deadline:        g.Deadline,
		CreatedAt:       g.CreatedAt,
		UpdatedAt:       g.UpdatedAt,
	}
}

// ListSavingsGoalsResponse lists the goals with the totals shown on the savings page.
type ListSavingsGoalsResponse struct {
	Goals          []SavingsGoalResponse `json:"goals"`
	TotalSaved     decimal.Decimal       `json:"totalSaved"`
	TotalTarget    decimal.Decimal       `json:"totalTarget"`
	ActiveGoals    int                   `json:"activeGoals"`
	CompletedGoals int                   `json:"completedGoals"`
}
