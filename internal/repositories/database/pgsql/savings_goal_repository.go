package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/sms_budget_tracker/internal/apperrors"
	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/sms_budget_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/sms_budget_tracker/internal/models"
	"github.com/SscSPs/sms_budget_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const savingsGoalColumns = `goal_id, owner_id, name, target_amount, current_amount, deadline, created_at, updated_at`

const insertSavingsGoalQuery = `
	INSERT INTO savings_goals (` + savingsGoalColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`

// The cap is applied in SQL so concurrent contributions cannot overshoot the target.
const addToSavingsGoalQuery = `
	UPDATE savings_goals
	SET current_amount = LEAST(current_amount + $3, target_amount), updated_at = $4
	WHERE owner_id = $1 AND goal_id = $2
	RETURNING ` + savingsGoalColumns + `;`

const setSavingsGoalAmountQuery = `
	UPDATE savings_goals
	SET current_amount = $3, updated_at = $4
	WHERE owner_id = $1 AND goal_id = $2
	RETURNING ` + savingsGoalColumns + `;`

type PgxSavingsGoalRepository struct {
	BaseRepository
}

func newPgxSavingsGoalRepository(pool *pgxpool.Pool) portsrepo.SavingsGoalRepositoryFacade {
	return &PgxSavingsGoalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SavingsGoalRepositoryFacade = (*PgxSavingsGoalRepository)(nil)

func scanSavingsGoal(row rowScanner) (models.SavingsGoal, error) {
	var m models.SavingsGoal
	err := row.Scan(
		&m.GoalID,
		&m.OwnerID,
		&m.Name,
		&m.TargetAmount,
		&m.CurrentAmount,
		&m.Deadline,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func savingsGoalArgs(m models.SavingsGoal) []any {
	return []any{
		m.GoalID,
		m.OwnerID,
		m.Name,
		m.TargetAmount,
		m.CurrentAmount,
		m.Deadline,
		m.CreatedAt,
		m.UpdatedAt,
	}
}

func (r *PgxSavingsGoalRepository) SaveSavingsGoal(ctx context.Context, goal domain.SavingsGoal) error {
	m := mapping.ToModelSavingsGoal(goal)
	if _, err := r.Pool.Exec(ctx, insertSavingsGoalQuery, savingsGoalArgs(m)...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert savings goal "+m.GoalID, err)
	}
	return nil
}

func (r *PgxSavingsGoalRepository) FindSavingsGoalByID(ctx context.Context, ownerID, goalID string) (*domain.SavingsGoal, error) {
	query := `SELECT ` + savingsGoalColumns + ` FROM savings_goals WHERE owner_id = $1 AND goal_id = $2;`
	return r.queryOne(ctx, "failed to find savings goal "+goalID, query, ownerID, goalID)
}

// ListSavingsGoals returns every goal of the owner, oldest first.
func (r *PgxSavingsGoalRepository) ListSavingsGoals(ctx context.Context, ownerID string) ([]domain.SavingsGoal, error) {
	query := `SELECT ` + savingsGoalColumns + ` FROM savings_goals WHERE owner_id = $1 ORDER BY created_at ASC, goal_id ASC;`

	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list savings goals", err)
	}
	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.SavingsGoal, error) {
		return scanSavingsGoal(row)
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan savings goals", err)
	}
	return mapping.ToDomainSavingsGoalSlice(ms), nil
}

func (r *PgxSavingsGoalRepository) SetSavingsGoalAmount(ctx context.Context, ownerID, goalID string, amount decimal.Decimal, at time.Time) (*domain.SavingsGoal, error) {
	return r.queryOne(ctx, "failed to update savings goal "+goalID, setSavingsGoalAmountQuery, ownerID, goalID, amount, at)
}

func (r *PgxSavingsGoalRepository) AddToSavingsGoal(ctx context.Context, ownerID, goalID string, amount decimal.Decimal, at time.Time) (*domain.SavingsGoal, error) {
	return r.queryOne(ctx, "failed to add to savings goal "+goalID, addToSavingsGoalQuery, ownerID, goalID, amount, at)
}

func (r *PgxSavingsGoalRepository) queryOne(ctx context.Context, failMsg, query string, args ...any) (*domain.SavingsGoal, error) {
	m, err := scanSavingsGoal(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, failMsg, err)
	}
	d := mapping.ToDomainSavingsGoal(m)
	return &d, nil
}
