package services

import (
	"context"

	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
	"github.com/SscSPs/sms_budget_tracker/internal/dto"
)

// SavingsGoalReaderSvc defines read operations for savings goals
type SavingsGoalReaderSvc interface {
	GetSavingsGoal(ctx context.Context, ownerID, goalID string) (*domain.SavingsGoal, error)

	// ListSavingsGoals returns the owner's goals with the saved totals.
	ListSavingsGoals(ctx context.Context, ownerID string) (*dto.ListSavingsGoalsResponse, error)
}

// SavingsGoalWriterSvc defines write operations for savings goals
type SavingsGoalWriterSvc interface {
	CreateSavingsGoal(ctx context.Context, ownerID string, req dto.CreateSavingsGoalRequest) (*domain.SavingsGoal, error)

	// SetSavingsGoalAmount overwrites the saved amount of a goal.
	SetSavingsGoalAmount(ctx context.Context, ownerID, goalID string, req dto.SetSavingsGoalAmountRequest) (*domain.SavingsGoal, error)

	// ContributeToSavingsGoal adds to the saved amount without passing the target.
	ContributeToSavingsGoal(ctx context.Context, ownerID, goalID string, req dto.ContributeSavingsGoalRequest) (*domain.SavingsGoal, error)
}

// SavingsGoalSvcFacade combines all savings goal service interfaces
type SavingsGoalSvcFacade interface {
	SavingsGoalReaderSvc
	SavingsGoalWriterSvc
}
