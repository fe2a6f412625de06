package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SavingsGoal tracks money put aside towards a target.
type SavingsGoal struct {
	GoalID        string          `json:"goalID"`
	OwnerID       string          `json:"ownerID"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// IsCompleted reports whether the saved amount reached the target.
func (g *SavingsGoal) IsCompleted() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// Remaining is what is still missing to reach the target, never negative.
func (g *SavingsGoal) Remaining() decimal.Decimal {
	if g.IsCompleted() {
		return decimal.Zero
	}
	return g.TargetAmount.Sub(g.CurrentAmount)
}

// Validate checks the invariants every stored goal must hold.
func (g *SavingsGoal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("goal name is required")
	}
	if !g.TargetAmount.IsPositive() {
		return fmt.Errorf("target amount must be positive")
	}
	if g.CurrentAmount.IsNegative() {
		return fmt.Errorf("current amount must not be negative")
	}
	return nil
}
