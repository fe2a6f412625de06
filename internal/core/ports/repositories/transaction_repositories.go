package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
)

// TransactionFilter narrows a transaction listing.
type TransactionFilter struct {
	Category *domain.Category
	Type     *domain.TransactionKind
	From     *time.Time // inclusive, on OccurredAt
	To       *time.Time // exclusive, on OccurredAt
}

// TransactionReader defines read operations for an owner's transaction history.
type TransactionReader interface {
	// FindTransactionByID retrieves a single transaction owned by ownerID.
	FindTransactionByID(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns a page of transactions, newest OccurredAt first,
	// and a token for the next page when there is one.
	ListTransactions(ctx context.Context, ownerID string, filter TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListRawMessages returns the raw SMS bodies of every stored SMS transaction.
	ListRawMessages(ctx context.Context, ownerID string) ([]string, error)

	// ListPendingWithdrawals returns withdrawals whose cash spending is not yet recorded.
	ListPendingWithdrawals(ctx context.Context, ownerID string) ([]domain.Transaction, error)

	// FindLatestWithBalance returns the most recent transaction carrying a balance.
	FindLatestWithBalance(ctx context.Context, ownerID string) (*domain.Transaction, error)
}

// TransactionWriter defines write operations for an owner's transaction history.
type TransactionWriter interface {
	// SaveTransaction appends a new transaction. It returns apperrors.ErrDuplicate
	// when an SMS with the same normalized text is already stored.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransactionCategory recategorizes a transaction.
	UpdateTransactionCategory(ctx context.Context, ownerID, transactionID string, category domain.Category) error

	// RecordCashSpending stores the spending entries and marks the withdrawal
	// as closed in one atomic step.
	RecordCashSpending(ctx context.Context, ownerID, withdrawalID string, spending []domain.Transaction) error

	// DeleteTransaction removes a transaction from the history.
	DeleteTransaction(ctx context.Context, ownerID, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
// This is a facade for clients that need access to all operations
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
