package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind indicates the direction of money movement.
type TransactionKind string

const (
	Credit     TransactionKind = "credit"
	Debit      TransactionKind = "debit"
	Withdrawal TransactionKind = "withdrawal"
)

// IsValid reports whether k is one of the known kinds.
func (k TransactionKind) IsValid() bool {
	switch k {
	case Credit, Debit, Withdrawal:
		return true
	}
	return false
}

// SourceChannel records where a transaction came from.
type SourceChannel string

const (
	SourceSMS    SourceChannel = "sms"
	SourceManual SourceChannel = "manual"
)

// Transaction is the durable record derived from one SMS or entered by hand.
type Transaction struct {
	TransactionID        string           `json:"transactionID"`
	OwnerID              string           `json:"ownerID"`
	Amount               decimal.Decimal  `json:"amount"` // Always positive
	Type                 TransactionKind  `json:"type"`
	Category             Category         `json:"category"`
	Merchant             string           `json:"merchant"`
	DescriptionExcerpt   string           `json:"descriptionExcerpt"`
	OccurredAt           time.Time        `json:"occurredAt"`
	BalanceAfter         *decimal.Decimal `json:"balanceAfter,omitempty"`
	SourceChannel        SourceChannel    `json:"sourceChannel"`
	RawMessage           string           `json:"rawMessage,omitempty"` // Empty for manual entries
	IsCashWithdrawal     bool             `json:"isCashWithdrawal"`
	CashSpendingRecorded bool             `json:"cashSpendingRecorded"` // Only meaningful for withdrawals
	WithdrawalID         *string          `json:"withdrawalID,omitempty"`
	CreatedAt            time.Time        `json:"createdAt"`
}

// IsPendingWithdrawal reports whether the user still has to log how the cash was spent.
func (t *Transaction) IsPendingWithdrawal() bool {
	return t.IsCashWithdrawal && !t.CashSpendingRecorded
}

// Validate checks the invariants every stored transaction must hold.
func (t *Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}
	if !t.Type.IsValid() {
		return fmt.Errorf("invalid transaction type %q", t.Type)
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("invalid category %q", t.Category)
	}
	if t.IsCashWithdrawal != (t.Type == Withdrawal) {
		return fmt.Errorf("cash withdrawal flag does not match transaction type")
	}
	switch t.SourceChannel {
	case SourceSMS:
		if t.RawMessage == "" {
			return fmt.Errorf("sms transactions must retain the raw message")
		}
	case SourceManual:
	default:
		return fmt.Errorf("invalid source channel %q", t.SourceChannel)
	}
	if t.BalanceAfter != nil && t.BalanceAfter.IsNegative() {
		return fmt.Errorf("balance after must not be negative")
	}
	return nil
}
