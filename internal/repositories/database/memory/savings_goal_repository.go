package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/sms_budget_tracker/internal/apperrors"
	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/sms_budget_tracker/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// SavingsGoalRepository keeps savings goals per owner in creation order.
type SavingsGoalRepository struct {
	mu    sync.RWMutex
	goals map[string][]domain.SavingsGoal
}

func NewSavingsGoalRepository() *SavingsGoalRepository {
	return &SavingsGoalRepository{goals: make(map[string][]domain.SavingsGoal)}
}

var _ portsrepo.SavingsGoalRepositoryFacade = (*SavingsGoalRepository)(nil)

func (r *SavingsGoalRepository) find(ownerID, goalID string) int {
	for i := range r.goals[ownerID] {
		if r.goals[ownerID][i].GoalID == goalID {
			return i
		}
	}
	return -1
}

func (r *SavingsGoalRepository) SaveSavingsGoal(ctx context.Context, goal domain.SavingsGoal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.find(goal.OwnerID, goal.GoalID) >= 0 {
		return fmt.Errorf("%w: savings goal %s", apperrors.ErrDuplicate, goal.GoalID)
	}
	r.goals[goal.OwnerID] = append(r.goals[goal.OwnerID], cloneGoal(goal))
	return nil
}

func (r *SavingsGoalRepository) FindSavingsGoalByID(ctx context.Context, ownerID, goalID string) (*domain.SavingsGoal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.find(ownerID, goalID)
	if i < 0 {
		return nil, apperrors.ErrNotFound
	}
	g := cloneGoal(r.goals[ownerID][i])
	return &g, nil
}

func (r *SavingsGoalRepository) ListSavingsGoals(ctx context.Context, ownerID string) ([]domain.SavingsGoal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.SavingsGoal, 0, len(r.goals[ownerID]))
	for _, g := range r.goals[ownerID] {
		out = append(out, cloneGoal(g))
	}
	return out, nil
}

func (r *SavingsGoalRepository) SetSavingsGoalAmount(ctx context.Context, ownerID, goalID string, amount decimal.Decimal, at time.Time) (*domain.SavingsGoal, error) {
	return r.update(ctx, ownerID, goalID, at, func(*domain.SavingsGoal) decimal.Decimal {
		return amount
	})
}

// AddToSavingsGoal never lets the saved amount pass the target.
func (r *SavingsGoalRepository) AddToSavingsGoal(ctx context.Context, ownerID, goalID string, amount decimal.Decimal, at time.Time) (*domain.SavingsGoal, error) {
	return r.update(ctx, ownerID, goalID, at, func(g *domain.SavingsGoal) decimal.Decimal {
		return decimal.Min(g.CurrentAmount.Add(amount), g.TargetAmount)
	})
}

func (r *SavingsGoalRepository) update(ctx context.Context, ownerID, goalID string, at time.Time, next func(*domain.SavingsGoal) decimal.Decimal) (*domain.SavingsGoal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.find(ownerID, goalID)
	if i < 0 {
		return nil, apperrors.ErrNotFound
	}
	g := &r.goals[ownerID][i]
	g.CurrentAmount = next(g)
	g.UpdatedAt = at
	out := cloneGoal(*g)
	return &out, nil
}

func cloneGoal(g domain.SavingsGoal) domain.SavingsGoal {
	if g.Deadline != nil {
		d := *g.Deadline
		g.Deadline = &d
	}
	return g
}
