package dto

import (
	"time"

	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
	"github.com/SscSPs/sms_budget_tracker/internal/utils"
	"github.com/shopspring/decimal"
)

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID        string                 `json:"transactionID"`
	Amount               decimal.Decimal        `json:"amount"`
	DisplayAmount        string                 `json:"displayAmount"`
	Type                 domain.TransactionKind `json:"type"`
	Category             domain.Category        `json:"category"`
	Merchant             string                 `json:"merchant"`
	Description          string                 `json:"description"`
	OccurredAt           time.Time              `json:"occurredAt"`
	BalanceAfter         *decimal.Decimal       `json:"balanceAfter,omitempty"`
	Source               domain.SourceChannel   `json:"source"`
	IsCashWithdrawal     bool                   `json:"isCashWithdrawal"`
	CashSpendingRecorded bool                   `json:"cashSpendingRecorded"`
	WithdrawalID         *string                `json:"withdrawalID,omitempty"`
	CreatedAt            time.Time              `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
// The raw message is kept server-side for duplicate checks and not echoed back.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:        txn.TransactionID,
		Amount:               txn.Amount,
		DisplayAmount:        utils.FormatLoti(txn.Amount),
		Type:                 txn.Type,
		Category:             txn.Category,
		Merchant:             txn.Merchant,
		Description:          txn.DescriptionExcerpt,
		OccurredAt:           txn.OccurredAt,
		BalanceAfter:         txn.BalanceAfter,
		Source:               txn.SourceChannel,
		IsCashWithdrawal:     txn.IsCashWithdrawal,
		CashSpendingRecorded: txn.CashSpendingRecorded,
		WithdrawalID:         txn.WithdrawalID,
		CreatedAt:            txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

// ListTransactionsParams defines the query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
	Category  string  `form:"category" binding:"omitempty,category"`
	Type      string  `form:"type" binding:"omitempty,txnkind"`
	From      string  `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string  `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// CreateManualTransactionRequest defines a hand-entered transaction.
type CreateManualTransactionRequest struct {
	Amount      decimal.Decimal        `json:"amount" binding:"required"`
	Type        domain.TransactionKind `json:"type" binding:"required,txnkind"`
	Category    domain.Category        `json:"category" binding:"omitempty,category"`
	Merchant    string                 `json:"merchant" binding:"max=200"`
	Description string                 `json:"description" binding:"max=500"`
	OccurredAt  *time.Time             `json:"occurredAt"`
}

// RecategorizeRequest changes the category of a transaction.
type RecategorizeRequest struct {
	Category domain.Category `json:"category" binding:"required,category"`
}

// CashSpendingEntry is one way the withdrawn cash was spent.
type CashSpendingEntry struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    domain.Category `json:"category" binding:"required,category"`
	Merchant    string          `json:"merchant" binding:"max=200"`
	Description string          `json:"description" binding:"max=500"`
	OccurredAt  *time.Time      `json:"occurredAt"`
}

// RecordCashSpendingRequest lists how a withdrawal's cash was spent.
type RecordCashSpendingRequest struct {
	Entries []CashSpendingEntry `json:"entries" binding:"required,min=1,dive"`
}
