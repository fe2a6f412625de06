package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnknownMerchant is reported when no merchant phrase could be recognised.
const UnknownMerchant = "Unknown"

// ParsedFields holds what the extractors recovered from a raw message.
// MerchantFound and DateFound distinguish real matches from defaults.
type ParsedFields struct {
	Amount           decimal.Decimal
	Kind             TransactionKind
	Merchant         string
	MerchantFound    bool
	OccurredAt       time.Time
	DateFound        bool
	BalanceAfter     *decimal.Decimal
	IsCashWithdrawal bool
}
