package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/sms_budget_tracker/internal/apperrors"
	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/sms_budget_tracker/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type TransactionRepositoryTestSuite struct {
	suite.Suite
	repo *TransactionRepository
	ctx  context.Context
	base time.Time
}

func (s *TransactionRepositoryTestSuite) SetupTest() {
	s.repo = NewTransactionRepository()
	s.ctx = context.Background()
	s.base = time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
}

func TestTransactionRepositorySuite(t *testing.T) {
	suite.Run(t, new(TransactionRepositoryTestSuite))
}

func (s *TransactionRepositoryTestSuite) smsTxn(id, owner, raw string, day int) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		OwnerID:       owner,
		Amount:        decimal.NewFromInt(100),
		Type:          domain.Debit,
		Category:      domain.CategoryOther,
		Merchant:      domain.UnknownMerchant,
		OccurredAt:    s.base.AddDate(0, 0, day),
		SourceChannel: domain.SourceSMS,
		RawMessage:    raw,
		CreatedAt:     s.base.Add(time.Duration(day) * time.Minute),
	}
}

func (s *TransactionRepositoryTestSuite) TestSaveAndFind() {
	txn := s.smsTxn("t1", "owner-1", "Paid M100.00 at Shoprite", 0)
	require.NoError(s.T(), s.repo.SaveTransaction(s.ctx, txn))

	found, err := s.repo.FindTransactionByID(s.ctx, "owner-1", "t1")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), txn, *found)

	_, err = s.repo.FindTransactionByID(s.ctx, "owner-2", "t1")
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
	_, err = s.repo.FindTransactionByID(s.ctx, "owner-1", "missing")
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func (s *TransactionRepositoryTestSuite) TestSaveRejectsNormalizedDuplicate() {
	require.NoError(s.T(), s.repo.SaveTransaction(s.ctx, s.smsTxn("t1", "owner-1", "Paid M100.00 at Shoprite", 0)))

	err := s.repo.SaveTransaction(s.ctx, s.smsTxn("t2", "owner-1", "paid  m100.00 AT shoprite", 1))
	assert.ErrorIs(s.T(), err, apperrors.ErrDuplicate)

	// Another owner's history is separate
	assert.NoError(s.T(), s.repo.SaveTransaction(s.ctx, s.smsTxn("t3", "owner-2", "Paid M100.00 at Shoprite", 0)))
}

func (s *TransactionRepositoryTestSuite) TestSaveRejectsRepeatedID() {
	require.NoError(s.T(), s.repo.SaveTransaction(s.ctx, s.smsTxn("t1", "owner-1", "a M1.00", 0)))
	err := s.repo.SaveTransaction(s.ctx, s.smsTxn("t1", "owner-1", "b M2.00", 0))
	assert.ErrorIs(s.T(), err, apperrors.ErrDuplicate)
}

func (s *TransactionRepositoryTestSuite) TestManualEntriesNeverCollide() {
	manual := s.smsTxn("m1", "owner-1", "", 0)
	manual.SourceChannel = domain.SourceManual
	require.NoError(s.T(), s.repo.SaveTransaction(s.ctx, manual))
	manual.TransactionID = "m2"
	require.NoError(s.T(), s.repo.SaveTransaction(s.ctx, manual))

	messages, err := s.repo.ListRawMessages(s.ctx, "owner-1")
	require.NoError(s.T(), err)
	assert.Empty(s.T(), messages)
}

func (s *TransactionRepositoryTestSuite) TestListPaginatesNewestFirst() {
	for i := 0; i < 5; i++ {
		require.NoError(s.T(), s.repo.SaveTransaction(s.ctx, s.smsTxn(fmt.Sprintf("t%d", i), "owner-1", fmt.Sprintf("msg %d M1.00", i), i)))
	}

	page1, next, err := s.repo.ListTransactions(s.ctx, "owner-1", portsrepo.TransactionFilter{}, 2, nil)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), next)
	assert.Equal(s.T(), []string{"t4", "t3"}, ids(page1))

	page2, next, err := s.repo.ListTransactions(s.ctx, "owner-1", portsrepo.TransactionFilter{}, 2, next)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), next)
	assert.Equal(s.T(), []string{"t2", "t1"}, ids(page2))

	page3, next, err := s.repo.ListTransactions(s.ctx, "owner-1", portsrepo.TransactionFilter{}, 2, next)
	require.NoError(s.T(), err)
	assert.Nil(s.T(), next)
	assert.Equal(s.T(), []string{"t0"}, ids(page3))
}

func (s *TransactionRepositoryTestSuite) TestListBreaksTiesOnSameDay() {
	for _, id := range []string{"a", "b", "c"} {
		txn := s.smsTxn(id, "owner-1", "same day "+id+" M1.00", 0)
		require.NoError(s.T(), s.repo.SaveTransaction(s.ctx, txn))
	}

	seen := []string{}
	var token *string
	for {
		page, next, err := s.repo.ListTransactions(s.ctx, "owner-1", portsrepo.TransactionFilter{}, 1, token)
		require.NoError(s.T(), err)
		seen = append(seen, ids(page)...)
		if next == nil {
			break
		}
		token = next
	}
	assert.Equal(s.T(), []string{"c", "b", "a"}, seen)
}

func (s *TransactionRepositoryTestSuite) TestListFilters() {
	food := s.smsTxn("food", "owner-1", "food M1.00", 0)
	food.Category = domain.CategoryFood
	credit := s.smsTxn("credit", "owner-1", "credit M1.00", 3)
	credit.Type = domain.Credit
	require.NoError(s.T(), s.repo.SaveTransaction(s.ctx, food))
	require.NoError(s.T(), s.repo.SaveTransaction(s.ctx, credit))

	category := domain.CategoryFood
	got, _, err := s.repo.ListTransactions(s.ctx, "owner-1", portsrepo.TransactionFilter{Category: &category}, 10, nil)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"food"}, ids(got))

	kind := domain.Credit
	got, _, err = s.repo.ListTransactions(s.ctx, "owner-1", portsrepo.TransactionFilter{Type: &kind}, 10, nil)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"credit"}, ids(got))

	from := s.base.AddDate(0, 0, 1)
	to := s.base.AddDate(0, 0, 3)
	got, _, err = s.repo.ListTransactions(s.ctx, "owner-1", portsrepo.TransactionFilter{From: &from, To: &to}, 10, nil)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), got, "To is exclusive")
}

func (s *TransactionRepositoryTestSuite) TestListRejectsBadToken() {
	bad := "not-a-token"
	_, _, err := s.repo.ListTransactions(s.ctx, "owner-1", portsrepo.TransactionFilter{}, 10, &bad)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *TransactionRepositoryTestSuite) TestReturnedValuesAreCopies() {
	txn := s.smsTxn("t1", "owner-1", "copy M1.00", 0)
	balance := decimal.NewFromInt(50)
	txn.BalanceAfter = &balance
	require.NoError(s.T(), s.repo.SaveTransaction(s.ctx, txn))

	found, err := s.repo.FindTransactionByID(s.ctx, "owner-1", "t1")
	require.NoError(s.T(), err)
	*found.BalanceAfter = decimal.NewFromInt(1)
	found.Category = domain.CategoryFood

	again, err := s.repo.FindTransactionByID(s.ctx, "owner-1", "t1")
	require.NoError(s.T(), err)
	assert.True(s.T(), again.BalanceAfter.Equal(decimal.NewFromInt(50)))
	assert.Equal(s.T(), domain.CategoryOther, again.Category)
}

func (s *TransactionRepositoryTestSuite) TestUpdateCategory() {
	require.NoError(s.T(), s.repo.SaveTransaction(s.ctx, s.smsTxn("t1", "owner-1", "x M1.00", 0)))
	require.NoError(s.T(), s.repo.UpdateTransactionCategory(s.ctx, "owner-1", "t1", domain.CategoryHealth))

	found, err := s.repo.FindTransactionByID(s.ctx, "owner-1", "t1")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), domain.CategoryHealth, found.Category)

	assert.ErrorIs(s.T(), s.repo.UpdateTransactionCategory(s.ctx, "owner-1", "nope", domain.CategoryHealth), apperrors.ErrNotFound)
}

func (s *TransactionRepositoryTestSuite) TestRecordCashSpending() {
	w := s.smsTxn("w1", "owner-1", "Cash withdrawal of M500.00", 0)
	w.Type = domain.Withdrawal
	w.IsCashWithdrawal = true
	require.NoError(s.T(), s.repo.SaveTransaction(s.ctx, w))

	pending, err := s.repo.ListPendingWithdrawals(s.ctx, "owner-1")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"w1"}, ids(pending))

	withdrawalID := "w1"
	entry := s.smsTxn("s1", "owner-1", "", 0)
	entry.SourceChannel = domain.SourceManual
	entry.WithdrawalID = &withdrawalID
	require.NoError(s.T(), s.repo.RecordCashSpending(s.ctx, "owner-1", "w1", []domain.Transaction{entry}))

	pending, err = s.repo.ListPendingWithdrawals(s.ctx, "owner-1")
	require.NoError(s.T(), err)
	assert.Empty(s.T(), pending)

	stored, err := s.repo.FindTransactionByID(s.ctx, "owner-1", "s1")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "w1", *stored.WithdrawalID)

	// A closed withdrawal cannot be closed again
	entry.TransactionID = "s2"
	err = s.repo.RecordCashSpending(s.ctx, "owner-1", "w1", []domain.Transaction{entry})
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *TransactionRepositoryTestSuite) TestRecordCashSpendingRejectsNonWithdrawal() {
	require.NoError(s.T(), s.repo.SaveTransaction(s.ctx, s.smsTxn("t1", "owner-1", "x M1.00", 0)))
	err := s.repo.RecordCashSpending(s.ctx, "owner-1", "t1", nil)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *TransactionRepositoryTestSuite) TestFindLatestWithBalance() {
	_, err := s.repo.FindLatestWithBalance(s.ctx, "owner-1")
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)

	older := s.smsTxn("old", "owner-1", "old M1.00", 0)
	b1 := decimal.NewFromInt(900)
	older.BalanceAfter = &b1
	newer := s.smsTxn("new", "owner-1", "new M1.00", 2)
	b2 := decimal.NewFromInt(800)
	newer.BalanceAfter = &b2
	newest := s.smsTxn("none", "owner-1", "none M1.00", 5)

	require.NoError(s.T(), s.repo.SaveTransaction(s.ctx, newer))
	require.NoError(s.T(), s.repo.SaveTransaction(s.ctx, older))
	require.NoError(s.T(), s.repo.SaveTransaction(s.ctx, newest))

	latest, err := s.repo.FindLatestWithBalance(s.ctx, "owner-1")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "new", latest.TransactionID)
}

func (s *TransactionRepositoryTestSuite) TestDeleteFreesMessage() {
	raw := "Paid M100.00 at Shoprite"
	require.NoError(s.T(), s.repo.SaveTransaction(s.ctx, s.smsTxn("t1", "owner-1", raw, 0)))
	require.NoError(s.T(), s.repo.DeleteTransaction(s.ctx, "owner-1", "t1"))

	_, err := s.repo.FindTransactionByID(s.ctx, "owner-1", "t1")
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
	assert.NoError(s.T(), s.repo.SaveTransaction(s.ctx, s.smsTxn("t2", "owner-1", raw, 0)))

	assert.ErrorIs(s.T(), s.repo.DeleteTransaction(s.ctx, "owner-1", "t1"), apperrors.ErrNotFound)
}

func (s *TransactionRepositoryTestSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(s.T(), s.repo.SaveTransaction(ctx, s.smsTxn("t1", "owner-1", "x M1.00", 0)), context.Canceled)
}

func TestConcurrentSavesOfSameMessage(t *testing.T) {
	repo := NewTransactionRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- repo.SaveTransaction(ctx, domain.Transaction{
				TransactionID: fmt.Sprintf("t%d", i),
				OwnerID:       "owner-1",
				Amount:        decimal.NewFromInt(1),
				Type:          domain.Debit,
				Category:      domain.CategoryOther,
				SourceChannel: domain.SourceSMS,
				RawMessage:    "Paid M1.00 at Kiosk",
			})
		}(i)
	}
	wg.Wait()
	close(errs)

	saved := 0
	for err := range errs {
		if err == nil {
			saved++
		} else {
			assert.ErrorIs(t, err, apperrors.ErrDuplicate)
		}
	}
	assert.Equal(t, 1, saved, "exactly one copy of a message is stored")
}

func ids(txns []domain.Transaction) []string {
	out := make([]string, len(txns))
	for i := range txns {
		out[i] = txns[i].TransactionID
	}
	return out
}
