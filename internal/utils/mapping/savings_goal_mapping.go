package mapping

import (
	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
	"github.com/SscSPs/sms_budget_tracker/internal/models"
)

// ToModelSavingsGoal converts a domain SavingsGoal to a model SavingsGoal.
func ToModelSavingsGoal(d domain.SavingsGoal) models.SavingsGoal {
	return models.SavingsGoal{
		GoalID:        d.GoalID,
		OwnerID:       d.OwnerID,
		Name:          d.Name,
		TargetAmount:  d.TargetAmount,
		CurrentAmount: d.CurrentAmount,
		Deadline:      d.Deadline,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// ToDomainSavingsGoal converts a model SavingsGoal to a domain SavingsGoal.
func ToDomainSavingsGoal(m models.SavingsGoal) domain.SavingsGoal {
	return domain.SavingsGoal{
		GoalID:        m.GoalID,
		OwnerID:       m.OwnerID,
		Name:          m.Name,
		TargetAmount:  m.TargetAmount,
		CurrentAmount: m.CurrentAmount,
		Deadline:      m.Deadline,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func ToDomainSavingsGoalSlice(ms []models.SavingsGoal) []domain.SavingsGoal {
	ds := make([]domain.SavingsGoal, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSavingsGoal(m)
	}
	return ds
}
