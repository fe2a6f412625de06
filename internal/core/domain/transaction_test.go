package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_IsPendingWithdrawal(t *testing.T) {
	tests := []struct {
		name        string
		transaction domain.Transaction
		want        bool
	}{
		{
			name:        "open withdrawal",
			transaction: domain.Transaction{Type: domain.Withdrawal, IsCashWithdrawal: true},
			want:        true,
		},
		{
			name:        "closed withdrawal",
			transaction: domain.Transaction{Type: domain.Withdrawal, IsCashWithdrawal: true, CashSpendingRecorded: true},
			want:        false,
		},
		{
			name:        "debit",
			transaction: domain.Transaction{Type: domain.Debit},
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.transaction.IsPendingWithdrawal())
		})
	}
}

func TestTransaction_Validate(t *testing.T) {
	now := time.Now()
	valid := func() domain.Transaction {
		return domain.Transaction{
			TransactionID: "txn_123",
			Amount:        decimal.NewFromFloat(150.00),
			Type:          domain.Debit,
			Category:      domain.CategoryFood,
			Merchant:      "SHOPRITE",
			OccurredAt:    now,
			SourceChannel: domain.SourceSMS,
			RawMessage:    "Paid M150.00 to SHOPRITE",
			CreatedAt:     now,
		}
	}

	tests := []struct {
		name    string
		mutate  func(tx *domain.Transaction)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid sms transaction",
			mutate: func(tx *domain.Transaction) {},
		},
		{
			name: "valid manual transaction",
			mutate: func(tx *domain.Transaction) {
				tx.SourceChannel = domain.SourceManual
				tx.RawMessage = ""
			},
		},
		{
			name:    "zero amount",
			mutate:  func(tx *domain.Transaction) { tx.Amount = decimal.Zero },
			wantErr: true,
			errMsg:  "amount must be positive",
		},
		{
			name:    "unknown type",
			mutate:  func(tx *domain.Transaction) { tx.Type = "refund" },
			wantErr: true,
			errMsg:  "invalid transaction type",
		},
		{
			name:    "unknown category",
			mutate:  func(tx *domain.Transaction) { tx.Category = "gifts" },
			wantErr: true,
			errMsg:  "invalid category",
		},
		{
			name: "withdrawal flag mismatch",
			mutate: func(tx *domain.Transaction) {
				tx.Type = domain.Withdrawal
			},
			wantErr: true,
			errMsg:  "cash withdrawal flag",
		},
		{
			name:    "sms without raw message",
			mutate:  func(tx *domain.Transaction) { tx.RawMessage = "" },
			wantErr: true,
			errMsg:  "raw message",
		},
		{
			name:    "unknown source",
			mutate:  func(tx *domain.Transaction) { tx.SourceChannel = "email" },
			wantErr: true,
			errMsg:  "invalid source channel",
		},
		{
			name: "negative balance",
			mutate: func(tx *domain.Transaction) {
				b := decimal.NewFromInt(-1)
				tx.BalanceAfter = &b
			},
			wantErr: true,
			errMsg:  "balance after",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid()
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCategory_IsValid(t *testing.T) {
	for _, c := range domain.AllCategories {
		assert.True(t, c.IsValid(), c)
	}
	assert.False(t, domain.Category("gifts").IsValid())
	assert.Len(t, domain.AllCategories, 8)
}
