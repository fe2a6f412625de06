package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsGoal is the row shape of the savings_goals table.
type SavingsGoal struct {
	GoalID        string          `json:"goalID" db:"goal_id"`
	OwnerID       string          `json:"ownerID" db:"owner_id"`
	Name          string          `json:"name" db:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount" db:"target_amount"`
	CurrentAmount decimal.Decimal `json:"currentAmount" db:"current_amount"`
	Deadline      *time.Time      `json:"deadline" db:"deadline"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" db:"updated_at"`
}

func (SavingsGoal) TableName() string {
	return "savings_goals"
}
