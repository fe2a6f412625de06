package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/sms_budget_tracker/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, ownerID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, ownerID string, filter portsrepo.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, ownerID, filter, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return txns, next, args.Error(2)
}

func (m *MockTransactionRepository) ListRawMessages(ctx context.Context, ownerID string) ([]string, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTransactionRepository) ListPendingWithdrawals(ctx context.Context, ownerID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindLatestWithBalance(ctx context.Context, ownerID string) (*domain.Transaction, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransactionCategory(ctx context.Context, ownerID, transactionID string, category domain.Category) error {
	args := m.Called(ctx, ownerID, transactionID, category)
	return args.Error(0)
}

func (m *MockTransactionRepository) RecordCashSpending(ctx context.Context, ownerID, withdrawalID string, spending []domain.Transaction) error {
	args := m.Called(ctx, ownerID, withdrawalID, spending)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, ownerID, transactionID string) error {
	args := m.Called(ctx, ownerID, transactionID)
	return args.Error(0)
}

// MockSavingsGoalRepository is a mock type for the SavingsGoalRepositoryFacade interface
type MockSavingsGoalRepository struct {
	mock.Mock
}

var _ portsrepo.SavingsGoalRepositoryFacade = (*MockSavingsGoalRepository)(nil)

func (m *MockSavingsGoalRepository) SaveSavingsGoal(ctx context.Context, goal domain.SavingsGoal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockSavingsGoalRepository) FindSavingsGoalByID(ctx context.Context, ownerID, goalID string) (*domain.SavingsGoal, error) {
	args := m.Called(ctx, ownerID, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsGoal), args.Error(1)
}

func (m *MockSavingsGoalRepository) ListSavingsGoals(ctx context.Context, ownerID string) ([]domain.SavingsGoal, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavingsGoal), args.Error(1)
}

func (m *MockSavingsGoalRepository) SetSavingsGoalAmount(ctx context.Context, ownerID, goalID string, amount decimal.Decimal, at time.Time) (*domain.SavingsGoal, error) {
	args := m.Called(ctx, ownerID, goalID, amount, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsGoal), args.Error(1)
}

func (m *MockSavingsGoalRepository) AddToSavingsGoal(ctx context.Context, ownerID, goalID string, amount decimal.Decimal, at time.Time) (*domain.SavingsGoal, error) {
	args := m.Called(ctx, ownerID, goalID, amount, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsGoal), args.Error(1)
}
