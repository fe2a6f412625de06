package mapping

import (
	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
	"github.com/SscSPs/sms_budget_tracker/internal/core/smsparser"
	"github.com/SscSPs/sms_budget_tracker/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
// The normalized message backs the per-owner duplicate constraint.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		TransactionID:        d.TransactionID,
		OwnerID:              d.OwnerID,
		Amount:               d.Amount,
		TransactionType:      string(d.Type),
		Category:             string(d.Category),
		Merchant:             d.Merchant,
		DescriptionExcerpt:   d.DescriptionExcerpt,
		OccurredAt:           d.OccurredAt,
		BalanceAfter:         d.BalanceAfter,
		SourceChannel:        string(d.SourceChannel),
		IsCashWithdrawal:     d.IsCashWithdrawal,
		CashSpendingRecorded: d.CashSpendingRecorded,
		WithdrawalID:         d.WithdrawalID,
		CreatedAt:            d.CreatedAt,
	}
	if d.RawMessage != "" {
		raw := d.RawMessage
		normalized := smsparser.Normalize(raw)
		m.RawMessage = &raw
		m.NormalizedMessage = &normalized
	}
	return m
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID:        m.TransactionID,
		OwnerID:              m.OwnerID,
		Amount:               m.Amount,
		Type:                 domain.TransactionKind(m.TransactionType),
		Category:             domain.Category(m.Category),
		Merchant:             m.Merchant,
		DescriptionExcerpt:   m.DescriptionExcerpt,
		OccurredAt:           m.OccurredAt,
		BalanceAfter:         m.BalanceAfter,
		SourceChannel:        domain.SourceChannel(m.SourceChannel),
		IsCashWithdrawal:     m.IsCashWithdrawal,
		CashSpendingRecorded: m.CashSpendingRecorded,
		WithdrawalID:         m.WithdrawalID,
		CreatedAt:            m.CreatedAt,
	}
	if m.RawMessage != nil {
		d.RawMessage = *m.RawMessage
	}
	return d
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
