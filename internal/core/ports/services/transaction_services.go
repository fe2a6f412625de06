package services

import (
	"context"

	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
	"github.com/SscSPs/sms_budget_tracker/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransaction retrieves a single transaction.
	GetTransaction(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a paginated list of transactions.
	ListTransactions(ctx context.Context, ownerID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// ListPendingWithdrawals returns withdrawals still waiting for a cash spending record.
	ListPendingWithdrawals(ctx context.Context, ownerID string) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines write operations for transaction data
type TransactionWriterSvc interface {
	// CreateManualTransaction stores a hand-entered transaction.
	CreateManualTransaction(ctx context.Context, ownerID string, req dto.CreateManualTransactionRequest) (*domain.Transaction, error)

	// RecategorizeTransaction changes the category of a transaction.
	RecategorizeTransaction(ctx context.Context, ownerID, transactionID string, category domain.Category) (*domain.Transaction, error)

	// RecordCashSpending logs how the cash of a withdrawal was spent and closes it.
	RecordCashSpending(ctx context.Context, ownerID, withdrawalID string, req dto.RecordCashSpendingRequest) ([]domain.Transaction, error)

	// DeleteTransaction removes a transaction from the history.
	DeleteTransaction(ctx context.Context, ownerID, transactionID string) error
}

// SummarySvc computes the monthly financial summary.
type SummarySvc interface {
	GetSummary(ctx context.Context, ownerID string, params dto.SummaryParams) (*dto.SummaryResponse, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
// This is a facade for clients that need access to all operations
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
	SummarySvc
}
