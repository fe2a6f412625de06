package dto

import (
	"time"

	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Outcome of one message in a batch.
const (
	BatchStatusCreated     = "created"
	BatchStatusDuplicate   = "duplicate"
	BatchStatusUnparseable = "unparseable"
)

// User-facing messages returned by the ingest endpoints.
const (
	MessageAlreadyProcessed  = "This SMS has already been processed."
	MessageCouldNotParse     = "Could not parse transaction from SMS. Please check the format."
	MessageWithdrawalPending = "Cash withdrawal detected. Please record how you spent this cash."
	MessageTransactionAdded  = "Transaction added successfully."
)

// SMSRequest carries one raw SMS body. An empty body is a parse failure, not a bind error.
type SMSRequest struct {
	Message string `json:"message" example:"M-Pesa: Payment of M150.00 to SHOPRITE MASERU completed."`
}

// BatchSMSRequest carries several raw SMS bodies, processed in order.
type BatchSMSRequest struct {
	Messages []string `json:"messages" binding:"required,min=1,max=100"`
}

// ParseSMSResponse is the result of a dry-run parse.
type ParseSMSResponse struct {
	Amount           decimal.Decimal        `json:"amount"`
	Type             domain.TransactionKind `json:"type"`
	Category         domain.Category        `json:"category"`
	Merchant         string                 `json:"merchant"`
	MerchantFound    bool                   `json:"merchantFound"`
	OccurredAt       time.Time              `json:"occurredAt"`
	DateFound        bool                   `json:"dateFound"`
	BalanceAfter     *decimal.Decimal       `json:"balanceAfter,omitempty"`
	IsCashWithdrawal bool                   `json:"isCashWithdrawal"`
}

// ToParseSMSResponse converts parsed fields plus the category into a response.
func ToParseSMSResponse(fields domain.ParsedFields, category domain.Category) ParseSMSResponse {
	return ParseSMSResponse{
		Amount:           fields.Amount,
		Type:             fields.Kind,
		Category:         category,
		Merchant:         fields.Merchant,
		MerchantFound:    fields.MerchantFound,
		OccurredAt:       fields.OccurredAt,
		DateFound:        fields.DateFound,
		BalanceAfter:     fields.BalanceAfter,
		IsCashWithdrawal: fields.IsCashWithdrawal,
	}
}

// IngestResult is returned when a message has been stored.
type IngestResult struct {
	Message     string              `json:"message"`
	Transaction TransactionResponse `json:"transaction"`
}

// BatchItemResult reports the outcome of one message of a batch, in input order.
type BatchItemResult struct {
	Index       int                  `json:"index"`
	Status      string               `json:"status"`
	Message     string               `json:"message"`
	Reason      string               `json:"reason,omitempty"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}

// BatchSMSResponse wraps the per-message results.
type BatchSMSResponse struct {
	Results  []BatchItemResult `json:"results"`
	Created  int               `json:"created"`
	Rejected int               `json:"rejected"`
}

// DuplicateCheckResponse reports whether a message was already processed.
type DuplicateCheckResponse struct {
	Duplicate bool `json:"duplicate"`
}
