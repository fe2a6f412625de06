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
	"github.com/SscSPs/sms_budget_tracker/internal/core/smsparser"
	"github.com/SscSPs/sms_budget_tracker/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultListLimit = 20

// transactionService implements portssvc.TransactionSvcFacade.
type transactionService struct {
	BaseService
	txnRepo    portsrepo.TransactionRepositoryFacade
	classifier *smsparser.Classifier
	now        func() time.Time
	newID      func() string
	budget     decimal.Decimal
}

// TransactionServiceOption configures the transaction service.
type TransactionServiceOption func(*transactionService)

// WithTransactionClock overrides the clock used for defaults and summaries.
func WithTransactionClock(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTransactionIDGenerator overrides the id generator for manual entries.
func WithTransactionIDGenerator(newID func() string) TransactionServiceOption {
	return func(s *transactionService) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithDefaultBudget sets the monthly budget used when a summary request has none.
func WithDefaultBudget(budget decimal.Decimal) TransactionServiceOption {
	return func(s *transactionService) {
		if budget.IsPositive() {
			s.budget = budget
		}
	}
}

// WithClassifierRules replaces the keyword table used for manual entries.
func WithClassifierRules(rules []smsparser.KeywordRule) TransactionServiceOption {
	return func(s *transactionService) {
		s.classifier = smsparser.NewClassifier(rules)
	}
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, opts ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	s := &transactionService{
		txnRepo:    txnRepo,
		classifier: smsparser.NewClassifier(smsparser.DefaultKeywordRules()),
		now:        time.Now,
		newID:      uuid.NewString,
		budget:     DefaultMonthlyBudget,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetTransaction retrieves a single transaction.
func (s *transactionService) GetTransaction(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, ownerID, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to get transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to get transaction in service: %w", err)
	}
	return txn, nil
}

// ListTransactions retrieves a page of transactions matching the query filters.
func (s *transactionService) ListTransactions(ctx context.Context, ownerID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	filter, err := s.buildFilter(params)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	txns, nextToken, err := s.txnRepo.ListTransactions(ctx, ownerID, filter, limit, params.NextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to list transactions", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list transactions in service: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

func (s *transactionService) buildFilter(params dto.ListTransactionsParams) (portsrepo.TransactionFilter, error) {
	var filter portsrepo.TransactionFilter
	loc := s.now().Location()

	if params.Category != "" {
		category := domain.Category(params.Category)
		if !category.IsValid() {
			return filter, fmt.Errorf("%w: invalid category %q", apperrors.ErrValidation, params.Category)
		}
		filter.Category = &category
	}
	if params.Type != "" {
		kind := domain.TransactionKind(params.Type)
		if !kind.IsValid() {
			return filter, fmt.Errorf("%w: invalid transaction type %q", apperrors.ErrValidation, params.Type)
		}
		filter.Type = &kind
	}
	if params.From != "" {
		from, err := time.ParseInLocation("2006-01-02", params.From, loc)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid from date: %v", apperrors.ErrValidation, err)
		}
		filter.From = &from
	}
	if params.To != "" {
		to, err := time.ParseInLocation("2006-01-02", params.To, loc)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid to date: %v", apperrors.ErrValidation, err)
		}
		// The query date is inclusive; the filter bound is not.
		to = to.AddDate(0, 0, 1)
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return filter, fmt.Errorf("%w: from must not be after to", apperrors.ErrValidation)
	}
	return filter, nil
}

// ListPendingWithdrawals returns withdrawals still waiting for a cash spending record.
func (s *transactionService) ListPendingWithdrawals(ctx context.Context, ownerID string) ([]domain.Transaction, error) {
	pending, err := s.txnRepo.ListPendingWithdrawals(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list pending withdrawals", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list pending withdrawals in service: %w", err)
	}
	return pending, nil
}

// CreateManualTransaction stores a hand-entered transaction. Without an
// explicit category the merchant and description go through the classifier.
func (s *transactionService) CreateManualTransaction(ctx context.Context, ownerID string, req dto.CreateManualTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.manualTransaction(ownerID, req.Amount, req.Type, req.Category, req.Merchant, req.Description, req.OccurredAt)
	if err != nil {
		return nil, err
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save manual transaction", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to save transaction in service: %w", err)
	}

	s.LogInfo(ctx, "Manual transaction created", slog.String("transaction_id", txn.TransactionID))
	return &txn, nil
}

func (s *transactionService) manualTransaction(ownerID string, amount decimal.Decimal, kind domain.TransactionKind, category domain.Category, merchant, description string, occurredAt *time.Time) (domain.Transaction, error) {
	now := s.now()
	merchant = strings.TrimSpace(merchant)
	description = strings.TrimSpace(description)

	if category == "" {
		category = s.classifier.Classify(merchant + " " + description)
	}
	if merchant == "" {
		merchant = domain.UnknownMerchant
	}
	when := now
	if occurredAt != nil {
		when = *occurredAt
	}

	txn := domain.Transaction{
		TransactionID:      s.newID(),
		OwnerID:            ownerID,
		Amount:             amount,
		Type:               kind,
		Category:           category,
		Merchant:           merchant,
		DescriptionExcerpt: smsparser.Truncate(description, smsparser.MaxExcerptLength),
		OccurredAt:         when,
		SourceChannel:      domain.SourceManual,
		IsCashWithdrawal:   kind == domain.Withdrawal,
		CreatedAt:          now,
	}
	if err := txn.Validate(); err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return txn, nil
}

// RecategorizeTransaction changes the category of a transaction.
func (s *transactionService) RecategorizeTransaction(ctx context.Context, ownerID, transactionID string, category domain.Category) (*domain.Transaction, error) {
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: invalid category %q", apperrors.ErrValidation, category)
	}

	if err := s.txnRepo.UpdateTransactionCategory(ctx, ownerID, transactionID, category); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to recategorize transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to recategorize transaction in service: %w", err)
	}

	s.LogInfo(ctx, "Transaction recategorized",
		slog.String("transaction_id", transactionID),
		slog.String("category", string(category)))
	return s.GetTransaction(ctx, ownerID, transactionID)
}

// RecordCashSpending turns each entry into a manual debit linked to the
// withdrawal and closes the withdrawal. Entries may not add up to more than
// the amount withdrawn.
func (s *transactionService) RecordCashSpending(ctx context.Context, ownerID, withdrawalID string, req dto.RecordCashSpendingRequest) ([]domain.Transaction, error) {
	withdrawal, err := s.GetTransaction(ctx, ownerID, withdrawalID)
	if err != nil {
		return nil, err
	}
	if !withdrawal.IsCashWithdrawal {
		return nil, fmt.Errorf("%w: transaction %s is not a cash withdrawal", apperrors.ErrValidation, withdrawalID)
	}
	if withdrawal.CashSpendingRecorded {
		return nil, fmt.Errorf("%w: cash spending already recorded for withdrawal %s", apperrors.ErrValidation, withdrawalID)
	}
	if len(req.Entries) == 0 {
		return nil, fmt.Errorf("%w: at least one spending entry is required", apperrors.ErrValidation)
	}

	total := decimal.Zero
	spending := make([]domain.Transaction, 0, len(req.Entries))
	for i, entry := range req.Entries {
		when := entry.OccurredAt
		if when == nil {
			when = &withdrawal.OccurredAt
		}
		txn, err := s.manualTransaction(ownerID, entry.Amount, domain.Debit, entry.Category, entry.Merchant, entry.Description, when)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		id := withdrawalID
		txn.WithdrawalID = &id
		total = total.Add(txn.Amount)
		spending = append(spending, txn)
	}
	if total.GreaterThan(withdrawal.Amount) {
		return nil, fmt.Errorf("%w: spending total %s exceeds withdrawal amount %s",
			apperrors.ErrValidation, total.StringFixed(2), withdrawal.Amount.StringFixed(2))
	}

	if err := s.txnRepo.RecordCashSpending(ctx, ownerID, withdrawalID, spending); err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to record cash spending", slog.String("withdrawal_id", withdrawalID))
		return nil, fmt.Errorf("failed to record cash spending in service: %w", err)
	}

	s.LogInfo(ctx, "Cash spending recorded",
		slog.String("withdrawal_id", withdrawalID),
		slog.Int("entries", len(spending)))
	return spending, nil
}

// DeleteTransaction removes a transaction from the history.
func (s *transactionService) DeleteTransaction(ctx context.Context, ownerID, transactionID string) error {
	if err := s.txnRepo.DeleteTransaction(ctx, ownerID, transactionID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction in service: %w", err)
	}
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}
