package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/sms_budget_tracker/internal/apperrors"
	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/sms_budget_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/sms_budget_tracker/internal/core/ports/services"
	"github.com/SscSPs/sms_budget_tracker/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type savingsGoalService struct {
	BaseService
	goalRepo portsrepo.SavingsGoalRepositoryFacade
	now      func() time.Time
	newID    func() string
}

// SavingsGoalServiceOption configures the savings goal service.
type SavingsGoalServiceOption func(*savingsGoalService)

func WithSavingsGoalClock(now func() time.Time) SavingsGoalServiceOption {
	return func(s *savingsGoalService) {
		if now != nil {
			s.now = now
		}
	}
}

func WithSavingsGoalIDGenerator(newID func() string) SavingsGoalServiceOption {
	return func(s *savingsGoalService) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewSavingsGoalService creates a new savings goal service.
func NewSavingsGoalService(goalRepo portsrepo.SavingsGoalRepositoryFacade, opts ...SavingsGoalServiceOption) portssvc.SavingsGoalSvcFacade {
	s := &savingsGoalService{
		goalRepo: goalRepo,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSavingsGoal stores a new goal with nothing saved yet.
func (s *savingsGoalService) CreateSavingsGoal(ctx context.Context, ownerID string, req dto.CreateSavingsGoalRequest) (*domain.SavingsGoal, error) {
	now := s.now()
	goal := domain.SavingsGoal{
		GoalID:        s.newID(),
		OwnerID:       ownerID,
		Name:          strings.TrimSpace(req.Name),
		TargetAmount:  req.TargetAmount,
		CurrentAmount: decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.Deadline != "" {
		deadline, err := time.ParseInLocation("2006-01-02", req.Deadline, now.Location())
		if err != nil {
			return nil, fmt.Errorf("%w: invalid deadline: %v", apperrors.ErrValidation, err)
		}
		goal.Deadline = &deadline
	}
	if err := goal.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := s.goalRepo.SaveSavingsGoal(ctx, goal); err != nil {
		s.LogError(ctx, err, "Failed to save savings goal", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to save savings goal in service: %w", err)
	}

	s.LogInfo(ctx, "Savings goal created", slog.String("goal_id", goal.GoalID))
	return &goal, nil
}

func (s *savingsGoalService) GetSavingsGoal(ctx context.Context, ownerID, goalID string) (*domain.SavingsGoal, error) {
	goal, err := s.goalRepo.FindSavingsGoalByID(ctx, ownerID, goalID)
	if err != nil {
		return nil, s.wrapRepoError(ctx, err, "Failed to get savings goal", goalID)
	}
	return goal, nil
}

// ListSavingsGoals returns the goals oldest first together with the saved
// total and the active and completed counts.
func (s *savingsGoalService) ListSavingsGoals(ctx context.Context, ownerID string) (*dto.ListSavingsGoalsResponse, error) {
	goals, err := s.goalRepo.ListSavingsGoals(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list savings goals", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list savings goals in service: %w", err)
	}

	resp := &dto.ListSavingsGoalsResponse{
		Goals:       make([]dto.SavingsGoalResponse, len(goals)),
		TotalSaved:  decimal.Zero,
		TotalTarget: decimal.Zero,
	}
	for i := range goals {
		resp.Goals[i] = dto.ToSavingsGoalResponse(&goals[i])
		resp.TotalSaved = resp.TotalSaved.Add(goals[i].CurrentAmount)
		resp.TotalTarget = resp.TotalTarget.Add(goals[i].TargetAmount)
		if goals[i].IsCompleted() {
			resp.CompletedGoals++
		}
	}
	resp.ActiveGoals = len(goals) - resp.CompletedGoals
	return resp, nil
}

func (s *savingsGoalService) SetSavingsGoalAmount(ctx context.Context, ownerID, goalID string, req dto.SetSavingsGoalAmountRequest) (*domain.SavingsGoal, error) {
	if req.CurrentAmount.IsNegative() {
		return nil, fmt.Errorf("%w: current amount must not be negative", apperrors.ErrValidation)
	}
	goal, err := s.goalRepo.SetSavingsGoalAmount(ctx, ownerID, goalID, req.CurrentAmount, s.now())
	if err != nil {
		return nil, s.wrapRepoError(ctx, err, "Failed to update savings goal", goalID)
	}
	return goal, nil
}

func (s *savingsGoalService) ContributeToSavingsGoal(ctx context.Context, ownerID, goalID string, req dto.ContributeSavingsGoalRequest) (*domain.SavingsGoal, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: contribution must be positive", apperrors.ErrValidation)
	}
	goal, err := s.goalRepo.AddToSavingsGoal(ctx, ownerID, goalID, req.Amount, s.now())
	if err != nil {
		return nil, s.wrapRepoError(ctx, err, "Failed to add to savings goal", goalID)
	}

	if goal.IsCompleted() {
		s.LogInfo(ctx, "Savings goal reached", slog.String("goal_id", goalID))
	}
	return goal, nil
}

func (s *savingsGoalService) wrapRepoError(ctx context.Context, err error, msg, goalID string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	s.LogError(ctx, err, msg, slog.String("goal_id", goalID))
	return fmt.Errorf("%s: %w", strings.ToLower(msg), err)
}
