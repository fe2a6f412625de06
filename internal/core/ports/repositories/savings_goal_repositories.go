package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SavingsGoalReader defines read operations for an owner's savings goals.
type SavingsGoalReader interface {
	// FindSavingsGoalByID retrieves a goal owned by ownerID.
	FindSavingsGoalByID(ctx context.Context, ownerID, goalID string) (*domain.SavingsGoal, error)

	// ListSavingsGoals returns the owner's goals, oldest first.
	ListSavingsGoals(ctx context.Context, ownerID string) ([]domain.SavingsGoal, error)
}

// SavingsGoalWriter defines write operations for savings goals.
type SavingsGoalWriter interface {
	SaveSavingsGoal(ctx context.Context, goal domain.SavingsGoal) error

	// SetSavingsGoalAmount overwrites the saved amount and returns the updated goal.
	SetSavingsGoalAmount(ctx context.Context, ownerID, goalID string, amount decimal.Decimal, at time.Time) (*domain.SavingsGoal, error)

	// AddToSavingsGoal adds amount to the saved amount, capped at the target,
	// in one atomic step and returns the updated goal.
	AddToSavingsGoal(ctx context.Context, ownerID, goalID string, amount decimal.Decimal, at time.Time) (*domain.SavingsGoal, error)
}

// SavingsGoalRepositoryFacade combines all savings goal repository interfaces
type SavingsGoalRepositoryFacade interface {
	SavingsGoalReader
	SavingsGoalWriter
}
