package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the row shape of the transactions table. RawMessage and
// NormalizedMessage are NULL for manual entries; NormalizedMessage is unique
// per owner when set.
type Transaction struct {
	TransactionID        string           `json:"transactionID" db:"transaction_id"`
	OwnerID              string           `json:"ownerID" db:"owner_id"`
	Amount               decimal.Decimal  `json:"amount" db:"amount"`
	TransactionType      string           `json:"transactionType" db:"transaction_type"`
	Category             string           `json:"category" db:"category"`
	Merchant             string           `json:"merchant" db:"merchant"`
	DescriptionExcerpt   string           `json:"descriptionExcerpt" db:"description_excerpt"`
	OccurredAt           time.Time        `json:"occurredAt" db:"occurred_at"`
	BalanceAfter         *decimal.Decimal `json:"balanceAfter" db:"balance_after"`
	SourceChannel        string           `json:"sourceChannel" db:"source_channel"`
	RawMessage           *string          `json:"rawMessage" db:"raw_message"`
	NormalizedMessage    *string          `json:"normalizedMessage" db:"normalized_message"`
	IsCashWithdrawal     bool             `json:"isCashWithdrawal" db:"is_cash_withdrawal"`
	CashSpendingRecorded bool             `json:"cashSpendingRecorded" db:"cash_spending_recorded"`
	WithdrawalID         *string          `json:"withdrawalID" db:"withdrawal_id"`
	CreatedAt            time.Time        `json:"createdAt" db:"created_at"`
}

// TableName returns the table backing Transaction.
func (Transaction) TableName() string {
	return "transactions"
}
