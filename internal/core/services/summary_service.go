package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/sms_budget_tracker/internal/apperrors"
	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/sms_budget_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/sms_budget_tracker/internal/dto"
	"github.com/shopspring/decimal"
)

// DefaultMonthlyBudget applies when neither the request nor the configuration sets one.
var DefaultMonthlyBudget = decimal.NewFromInt(3500)

const summaryPageSize = 100

var hundred = decimal.NewFromInt(100)

// healthBands maps the spend-to-budget ratio to a score. The first band whose
// ceiling is not exceeded wins; anything above the last ceiling scores 20.
var healthBands = []struct {
	ceiling decimal.Decimal
	score   int
}{
	{decimal.RequireFromString("0.7"), 90},
	{decimal.RequireFromString("0.85"), 75},
	{decimal.RequireFromString("1.0"), 60},
	{decimal.RequireFromString("1.2"), 40},
}

// GetSummary builds the monthly overview. Expenses count debits and the
// withdrawals whose cash spending is still open; a closed withdrawal is
// represented by its spending entries, so it is not counted twice.
func (s *transactionService) GetSummary(ctx context.Context, ownerID string, params dto.SummaryParams) (*dto.SummaryResponse, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if params.Month != "" {
		m, err := time.ParseInLocation("2006-01", params.Month, now.Location())
		if err != nil {
			return nil, fmt.Errorf("%w: invalid month %q", apperrors.ErrValidation, params.Month)
		}
		monthStart = m
	}
	monthEnd := monthStart.AddDate(0, 1, 0)

	budget := s.budget
	if params.Budget != "" {
		b, err := decimal.NewFromString(params.Budget)
		if err != nil || !b.IsPositive() {
			return nil, fmt.Errorf("%w: budget must be a positive number", apperrors.ErrValidation)
		}
		budget = b
	}

	txns, err := s.monthTransactions(ctx, ownerID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	pending, err := s.txnRepo.ListPendingWithdrawals(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list pending withdrawals for summary", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to build summary in service: %w", err)
	}

	var balance *decimal.Decimal
	latest, err := s.txnRepo.FindLatestWithBalance(ctx, ownerID)
	switch {
	case err == nil:
		balance = latest.BalanceAfter
	case errors.Is(err, apperrors.ErrNotFound):
	default:
		s.LogError(ctx, err, "Failed to find latest balance", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to build summary in service: %w", err)
	}

	summary := summarize(txns, budget)
	summary.Month = monthStart.Format("2006-01")
	summary.TotalBalance = balance
	summary.PendingWithdrawals = len(pending)

	s.LogDebug(ctx, "Summary computed",
		slog.String("month", summary.Month),
		slog.Int("transactions", len(txns)),
		slog.Int("health_score", summary.HealthScore))
	return summary, nil
}

func (s *transactionService) monthTransactions(ctx context.Context, ownerID string, from, to time.Time) ([]domain.Transaction, error) {
	filter := portsrepo.TransactionFilter{From: &from, To: &to}
	var all []domain.Transaction
	var token *string
	for {
		page, next, err := s.txnRepo.ListTransactions(ctx, ownerID, filter, summaryPageSize, token)
		if err != nil {
			s.LogError(ctx, err, "Failed to list transactions for summary", slog.String("owner_id", ownerID))
			return nil, fmt.Errorf("failed to build summary in service: %w", err)
		}
		all = append(all, page...)
		if next == nil {
			return all, nil
		}
		token = next
	}
}

func countsAsExpense(t *domain.Transaction) bool {
	switch t.Type {
	case domain.Debit:
		return true
	case domain.Withdrawal:
		return !t.CashSpendingRecorded
	}
	return false
}

func summarize(txns []domain.Transaction, budget decimal.Decimal) *dto.SummaryResponse {
	expenses := decimal.Zero
	income := decimal.Zero
	byCategory := make(map[domain.Category]decimal.Decimal)

	for i := range txns {
		t := &txns[i]
		switch {
		case t.Type == domain.Credit:
			income = income.Add(t.Amount)
		case countsAsExpense(t):
			expenses = expenses.Add(t.Amount)
			byCategory[t.Category] = byCategory[t.Category].Add(t.Amount)
		}
	}

	savings := income.Sub(expenses)
	if savings.IsNegative() {
		savings = decimal.Zero
	}

	spending := make([]dto.CategorySpending, 0, len(byCategory))
	for category, amount := range byCategory {
		spending = append(spending, dto.CategorySpending{
			Category:   category,
			Amount:     amount,
			Percentage: amount.Div(expenses).Mul(hundred).Round(2),
		})
	}
	sort.Slice(spending, func(i, j int) bool {
		if !spending[i].Amount.Equal(spending[j].Amount) {
			return spending[i].Amount.GreaterThan(spending[j].Amount)
		}
		return spending[i].Category < spending[j].Category
	})

	return &dto.SummaryResponse{
		MonthlyExpenses:  expenses,
		MonthlyIncome:    income,
		MonthlySavings:   savings,
		MonthlyBudget:    budget,
		HealthScore:      healthScore(expenses, budget),
		CategorySpending: spending,
	}
}

func healthScore(expenses, budget decimal.Decimal) int {
	ratio := expenses.Div(budget)
	for _, band := range healthBands {
		if ratio.LessThanOrEqual(band.ceiling) {
			return band.score
		}
	}
	return 20
}
