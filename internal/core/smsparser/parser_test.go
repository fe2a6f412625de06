package smsparser_test

import (
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/sms_budget_tracker/internal/apperrors"
	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
	"github.com/SscSPs/sms_budget_tracker/internal/core/smsparser"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	fnbCredit     = "FNB: You have received M500.00 from PARENT TRANSFER on 10 Jan 2025. Available balance: M3,500.00"
	mpesaPayment  = "M-Pesa: Payment of M150.00 to SHOPRITE MASERU completed. Ref: TXN123456. Balance: M2,850.00"
	ecoWithdrawal = "EcoCash: Cash withdrawal of M200.00 at ATM completed. Balance: M2,650.00"
)

var fixedNow = time.Date(2025, time.March, 15, 14, 30, 0, 0, time.UTC)

func newTestParser(opts ...smsparser.Option) *smsparser.Parser {
	base := []smsparser.Option{
		smsparser.WithClock(func() time.Time { return fixedNow }),
	}
	return smsparser.NewParser(append(base, opts...)...)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "expected %s, got %s", want, got)
}

func TestToTransaction_FNBCredit(t *testing.T) {
	p := newTestParser(smsparser.WithIDGenerator(func() string { return "txn_fixed" }))

	tx, err := p.ToTransaction(fnbCredit)

	require.NoError(t, err)
	assert.Equal(t, "txn_fixed", tx.TransactionID)
	assertDecimal(t, "500.00", tx.Amount)
	assert.Equal(t, domain.Credit, tx.Type)
	require.NotNil(t, tx.BalanceAfter)
	assertDecimal(t, "3500.00", *tx.BalanceAfter)
	assert.Equal(t, domain.CategoryOther, tx.Category)
	assert.False(t, tx.IsCashWithdrawal)
	assert.Equal(t, "PARENT TRANSFER", tx.Merchant)
	assert.Equal(t, time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC), tx.OccurredAt)
	assert.Equal(t, domain.SourceSMS, tx.SourceChannel)
	assert.Equal(t, fnbCredit, tx.RawMessage)
	assert.NoError(t, tx.Validate())
}

func TestToTransaction_MPesaPayment(t *testing.T) {
	p := newTestParser()

	tx, err := p.ToTransaction(mpesaPayment)

	require.NoError(t, err)
	assertDecimal(t, "150.00", tx.Amount)
	assert.Equal(t, domain.Debit, tx.Type)
	assert.Contains(t, tx.Merchant, "SHOPRITE")
	assert.Equal(t, domain.CategoryFood, tx.Category)
	require.NotNil(t, tx.BalanceAfter)
	assertDecimal(t, "2850.00", *tx.BalanceAfter)
	// no date in the message: falls back to the processing day
	assert.Equal(t, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), tx.OccurredAt)
	assert.Equal(t, mpesaPayment, tx.DescriptionExcerpt)
}

func TestToTransaction_EcoCashWithdrawal(t *testing.T) {
	p := newTestParser()

	tx, err := p.ToTransaction(ecoWithdrawal)

	require.NoError(t, err)
	assertDecimal(t, "200.00", tx.Amount)
	assert.Equal(t, domain.Withdrawal, tx.Type)
	assert.True(t, tx.IsCashWithdrawal)
	assert.False(t, tx.CashSpendingRecorded)
	assert.True(t, tx.IsPendingWithdrawal())
	assert.Equal(t, "ATM", tx.Merchant)
	require.NotNil(t, tx.BalanceAfter)
	assertDecimal(t, "2650.00", *tx.BalanceAfter)
}

func TestParse_Unparseable(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason string
	}{
		{name: "empty", input: "", reason: smsparser.ReasonEmptyMessage},
		{name: "whitespace only", input: "  \n\t ", reason: smsparser.ReasonEmptyMessage},
		{name: "no amount", input: "hello world", reason: smsparser.ReasonNoAmount},
		{name: "number without currency marker", input: "Your OTP is 123456", reason: smsparser.ReasonNoAmount},
		{name: "zero amount", input: "Paid M0.00 to Shop", reason: smsparser.ReasonNonPositiveValue},
		{name: "negative amount", input: "Reversal of M-50.00 to Shop", reason: smsparser.ReasonNonPositiveValue},
	}

	p := newTestParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrUnparseable)

			var failure *smsparser.ParseFailure
			require.ErrorAs(t, err, &failure)
			assert.Equal(t, tt.reason, failure.Reason)

			tx, err := p.ToTransaction(tt.input)
			assert.ErrorIs(t, err, apperrors.ErrUnparseable)
			assert.Equal(t, domain.Transaction{}, tx)
		})
	}
}

func TestParse_EmptyInputSkipsExtractors(t *testing.T) {
	clockCalls := 0
	p := smsparser.NewParser(smsparser.WithClock(func() time.Time {
		clockCalls++
		return fixedNow
	}))

	_, err := p.Parse("")

	assert.ErrorIs(t, err, apperrors.ErrUnparseable)
	assert.Zero(t, clockCalls)
}

func TestParse_KindPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  domain.TransactionKind
	}{
		{"ATM deposit of M100.00 credited", domain.Withdrawal},
		{"You have withdrawn M100.00. Amount received by agent", domain.Withdrawal},
		{"EcoCash cash out of M80.00 successful", domain.Withdrawal},
		{"Your account was credited with M250.00", domain.Credit},
		{"Deposit of M75.50 successful", domain.Credit},
		{"Paid M50.00 to Shop", domain.Debit},
	}

	p := newTestParser()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			fields, err := p.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, fields.Kind)
			assert.Equal(t, tt.want == domain.Withdrawal, fields.IsCashWithdrawal)
		})
	}
}

func TestParse_DefaultsAreFlagged(t *testing.T) {
	p := newTestParser()

	fields, err := p.Parse("Debit M42.00 processed")

	require.NoError(t, err)
	assert.False(t, fields.MerchantFound)
	assert.Equal(t, domain.UnknownMerchant, fields.Merchant)
	assert.False(t, fields.DateFound)
	assert.Equal(t, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), fields.OccurredAt)
	assert.Nil(t, fields.BalanceAfter)

	fields, err = p.Parse(fnbCredit)
	require.NoError(t, err)
	assert.True(t, fields.MerchantFound)
	assert.True(t, fields.DateFound)
}

func TestParse_Deterministic(t *testing.T) {
	p := newTestParser()
	for _, msg := range []string{fnbCredit, mpesaPayment, ecoWithdrawal} {
		first, err := p.Parse(msg)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := p.Parse(msg)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}

		a, err := p.ToTransaction(msg)
		require.NoError(t, err)
		b, err := p.ToTransaction(msg)
		require.NoError(t, err)
		assert.NotEqual(t, a.TransactionID, b.TransactionID)
		b.TransactionID = a.TransactionID
		assert.Equal(t, a, b)
	}
}

func TestToTransaction_UniqueIDs(t *testing.T) {
	p := smsparser.NewParser()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		tx, err := p.ToTransaction(fmt.Sprintf("Paid M%d.00 to Shop", i+1))
		require.NoError(t, err)
		require.False(t, seen[tx.TransactionID], "duplicate id %s", tx.TransactionID)
		seen[tx.TransactionID] = true
	}
}

func TestToTransaction_ExcerptBound(t *testing.T) {
	p := newTestParser()
	long := strings.Repeat("Paid M10.00 to Shop. ", 30)

	tx, err := p.ToTransaction(long)

	require.NoError(t, err)
	assert.Equal(t, smsparser.MaxExcerptLength, utf8.RuneCountInString(tx.DescriptionExcerpt))
	assert.True(t, strings.HasPrefix(long, tx.DescriptionExcerpt))
	assert.Equal(t, long, tx.RawMessage)
}

func TestToTransaction_ExcerptLengthOption(t *testing.T) {
	short := newTestParser(smsparser.WithExcerptLength(10))
	tx, err := short.ToTransaction(mpesaPayment)
	require.NoError(t, err)
	assert.Equal(t, "M-Pesa: Pa", tx.DescriptionExcerpt)

	ignored := newTestParser(smsparser.WithExcerptLength(500))
	tx, err = ignored.ToTransaction(strings.Repeat("Paid M10.00 to Shop. ", 30))
	require.NoError(t, err)
	assert.Equal(t, smsparser.MaxExcerptLength, utf8.RuneCountInString(tx.DescriptionExcerpt))
}

func TestTruncate_CountsRunes(t *testing.T) {
	assert.Equal(t, "Malo", smsparser.Truncate("Maloti", 4))
	assert.Equal(t, "ŠŠ", smsparser.Truncate("ŠŠŠ", 2))
	assert.Equal(t, "abc", smsparser.Truncate("abc", 10))
}

func TestWithKeywordRules(t *testing.T) {
	p := newTestParser(smsparser.WithKeywordRules([]smsparser.KeywordRule{
		{Keyword: "  PARENT ", Category: domain.CategoryEducation},
	}))

	tx, err := p.ToTransaction(fnbCredit)

	require.NoError(t, err)
	assert.Equal(t, domain.CategoryEducation, tx.Category)
}

func TestPackageLevelHelpers(t *testing.T) {
	tx, err := smsparser.ToTransaction(mpesaPayment)
	require.NoError(t, err)
	assert.NotEmpty(t, tx.TransactionID)

	fields, err := smsparser.Parse(mpesaPayment)
	require.NoError(t, err)
	assertDecimal(t, "150", fields.Amount)

	assert.True(t, smsparser.IsDuplicate(strings.ToUpper(mpesaPayment), []domain.Transaction{tx}))
}
