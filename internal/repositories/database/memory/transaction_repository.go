// Package memory holds a process-local transaction store used when no
// database is configured, and by service tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/sms_budget_tracker/internal/apperrors"
	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/sms_budget_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/sms_budget_tracker/internal/core/smsparser"
	"github.com/SscSPs/sms_budget_tracker/internal/utils/pagination"
)

const defaultLimit = 20

type ownerHistory struct {
	txns  []domain.Transaction // insertion order
	index *smsparser.DuplicateIndex
}

// TransactionRepository keeps every owner's history in memory. A single
// RWMutex serializes writers, so duplicate checks and inserts are atomic.
type TransactionRepository struct {
	mu      sync.RWMutex
	history map[string]*ownerHistory
}

// NewTransactionRepository creates an empty in-memory store.
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{history: make(map[string]*ownerHistory)}
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

// NewRepositoryProvider wires the in-memory stores into a RepositoryProvider.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo: NewTransactionRepository(),
		SavingsGoalRepo: NewSavingsGoalRepository(),
	}
}

func (r *TransactionRepository) owner(ownerID string) *ownerHistory {
	h, ok := r.history[ownerID]
	if !ok {
		h = &ownerHistory{index: smsparser.NewDuplicateIndexFromMessages(nil)}
		r.history[ownerID] = h
	}
	return h
}

func (h *ownerHistory) find(transactionID string) int {
	for i := range h.txns {
		if h.txns[i].TransactionID == transactionID {
			return i
		}
	}
	return -1
}

// SaveTransaction appends txn to its owner's history.
func (r *TransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	h := r.owner(txn.OwnerID)
	if h.find(txn.TransactionID) >= 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, txn.TransactionID)
	}
	if txn.RawMessage != "" && h.index.Contains(txn.RawMessage) {
		return fmt.Errorf("%w: message already stored", apperrors.ErrDuplicate)
	}
	h.txns = append(h.txns, clone(txn))
	h.index.Add(txn.RawMessage)
	return nil
}

// FindTransactionByID returns a copy of the stored transaction.
func (r *TransactionRepository) FindTransactionByID(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.history[ownerID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	i := h.find(transactionID)
	if i < 0 {
		return nil, apperrors.ErrNotFound
	}
	txn := clone(h.txns[i])
	return &txn, nil
}

// ListTransactions pages through the owner's history, newest first.
func (r *TransactionRepository) ListTransactions(ctx context.Context, ownerID string, filter portsrepo.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		}
		cursor = &c
	}

	r.mu.RLock()
	matched := make([]domain.Transaction, 0)
	if h, ok := r.history[ownerID]; ok {
		for i := range h.txns {
			t := &h.txns[i]
			if !matches(t, filter) {
				continue
			}
			if cursor != nil && !cursor.Before(t.OccurredAt, t.CreatedAt, t.TransactionID) {
				continue
			}
			matched = append(matched, clone(*t))
		}
	}
	r.mu.RUnlock()

	sortNewestFirst(matched)

	var next *string
	if len(matched) > limit {
		last := matched[limit-1]
		token := pagination.EncodeToken(last.OccurredAt, last.CreatedAt, last.TransactionID)
		next = &token
		matched = matched[:limit]
	}
	return matched, next, nil
}

// ListRawMessages returns the raw text of every SMS transaction, in insertion order.
func (r *TransactionRepository) ListRawMessages(ctx context.Context, ownerID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	messages := []string{}
	if h, ok := r.history[ownerID]; ok {
		for i := range h.txns {
			if h.txns[i].RawMessage != "" {
				messages = append(messages, h.txns[i].RawMessage)
			}
		}
	}
	return messages, nil
}

// ListPendingWithdrawals returns open withdrawals, newest first.
func (r *TransactionRepository) ListPendingWithdrawals(ctx context.Context, ownerID string) ([]domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	pending := []domain.Transaction{}
	if h, ok := r.history[ownerID]; ok {
		for i := range h.txns {
			if h.txns[i].IsPendingWithdrawal() {
				pending = append(pending, clone(h.txns[i]))
			}
		}
	}
	r.mu.RUnlock()

	sortNewestFirst(pending)
	return pending, nil
}

// FindLatestWithBalance returns the newest transaction that reported a balance.
func (r *TransactionRepository) FindLatestWithBalance(ctx context.Context, ownerID string) (*domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.history[ownerID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	var latest *domain.Transaction
	for i := range h.txns {
		t := &h.txns[i]
		if t.BalanceAfter == nil {
			continue
		}
		if latest == nil || newer(t, latest) {
			latest = t
		}
	}
	if latest == nil {
		return nil, apperrors.ErrNotFound
	}
	txn := clone(*latest)
	return &txn, nil
}

// UpdateTransactionCategory recategorizes a stored transaction.
func (r *TransactionRepository) UpdateTransactionCategory(ctx context.Context, ownerID, transactionID string, category domain.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.history[ownerID]
	if !ok {
		return apperrors.ErrNotFound
	}
	i := h.find(transactionID)
	if i < 0 {
		return apperrors.ErrNotFound
	}
	h.txns[i].Category = category
	return nil
}

// RecordCashSpending appends the spending entries and closes the withdrawal.
func (r *TransactionRepository) RecordCashSpending(ctx context.Context, ownerID, withdrawalID string, spending []domain.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.history[ownerID]
	if !ok {
		return apperrors.ErrNotFound
	}
	i := h.find(withdrawalID)
	if i < 0 {
		return apperrors.ErrNotFound
	}
	if !h.txns[i].IsPendingWithdrawal() {
		return fmt.Errorf("%w: transaction %s is not a pending withdrawal", apperrors.ErrValidation, withdrawalID)
	}
	for _, s := range spending {
		if h.find(s.TransactionID) >= 0 {
			return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, s.TransactionID)
		}
	}

	h.txns[i].CashSpendingRecorded = true
	for _, s := range spending {
		h.txns = append(h.txns, clone(s))
	}
	return nil
}

// DeleteTransaction removes a transaction and frees its message for re-import.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, ownerID, transactionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.history[ownerID]
	if !ok {
		return apperrors.ErrNotFound
	}
	i := h.find(transactionID)
	if i < 0 {
		return apperrors.ErrNotFound
	}
	if raw := h.txns[i].RawMessage; raw != "" {
		h.index.Remove(raw)
	}
	h.txns = append(h.txns[:i], h.txns[i+1:]...)
	return nil
}

func matches(t *domain.Transaction, f portsrepo.TransactionFilter) bool {
	if f.Category != nil && t.Category != *f.Category {
		return false
	}
	if f.Type != nil && t.Type != *f.Type {
		return false
	}
	if f.From != nil && t.OccurredAt.Before(*f.From) {
		return false
	}
	if f.To != nil && !t.OccurredAt.Before(*f.To) {
		return false
	}
	return true
}

func newer(a, b *domain.Transaction) bool {
	if !a.OccurredAt.Equal(b.OccurredAt) {
		return a.OccurredAt.After(b.OccurredAt)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.TransactionID > b.TransactionID
}

func sortNewestFirst(txns []domain.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		return newer(&txns[i], &txns[j])
	})
}

func clone(t domain.Transaction) domain.Transaction {
	if t.BalanceAfter != nil {
		b := *t.BalanceAfter
		t.BalanceAfter = &b
	}
	if t.WithdrawalID != nil {
		w := *t.WithdrawalID
		t.WithdrawalID = &w
	}
	return t
}
