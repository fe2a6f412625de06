// Package smsparser turns bank and mobile-money SMS notifications into
// transactions. Everything here is deterministic and free of I/O; the only
// inputs beyond the message are the processing clock and the id generator.
package smsparser

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/sms_budget_tracker/internal/apperrors"
	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
	"github.com/google/uuid"
)

// MaxExcerptLength bounds Transaction.DescriptionExcerpt, in runes.
const MaxExcerptLength = 100

// Failure reasons reported by ParseFailure.
const (
	ReasonEmptyMessage     = "empty message"
	ReasonNoAmount         = "no amount found"
	ReasonNonPositiveValue = "amount must be positive"
)

// ParseFailure explains why a message produced no transaction.
// It matches apperrors.ErrUnparseable under errors.Is.
type ParseFailure struct {
	Reason string
}

func (f *ParseFailure) Error() string {
	return apperrors.ErrUnparseable.Error() + ": " + f.Reason
}

func (f *ParseFailure) Unwrap() error {
	return apperrors.ErrUnparseable
}

// Clock supplies the processing time used as the date fallback.
type Clock func() time.Time

// IDGenerator produces unique transaction ids.
type IDGenerator func() string

// Parser extracts fields and assembles transactions.
type Parser struct {
	now           Clock
	newID         IDGenerator
	classifier    *Classifier
	excerptLength int
}

// Option configures a Parser.
type Option func(*Parser)

// WithClock overrides the processing clock.
func WithClock(c Clock) Option {
	return func(p *Parser) {
		if c != nil {
			p.now = c
		}
	}
}

// WithIDGenerator overrides the id generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(p *Parser) {
		if g != nil {
			p.newID = g
		}
	}
}

// WithKeywordRules replaces the category keyword table.
func WithKeywordRules(rules []KeywordRule) Option {
	return func(p *Parser) {
		p.classifier = NewClassifier(rules)
	}
}

// WithExcerptLength shortens the description excerpt. Values outside
// (0, MaxExcerptLength] are ignored.
func WithExcerptLength(n int) Option {
	return func(p *Parser) {
		if n > 0 && n <= MaxExcerptLength {
			p.excerptLength = n
		}
	}
}

// NewParser creates a Parser using the system clock and random UUIDs unless overridden.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		now:           time.Now,
		newID:         uuid.NewString,
		classifier:    NewClassifier(DefaultKeywordRules()),
		excerptLength: MaxExcerptLength,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse runs the field extractors over raw. The amount is a hard gate: a
// message without a positive currency amount fails with *ParseFailure.
// Every other field falls back to a default.
func (p *Parser) Parse(raw string) (domain.ParsedFields, error) {
	if strings.TrimSpace(raw) == "" {
		return domain.ParsedFields{}, &ParseFailure{Reason: ReasonEmptyMessage}
	}

	amount, ok := extractAmount(raw)
	if !ok {
		return domain.ParsedFields{}, &ParseFailure{Reason: ReasonNoAmount}
	}
	if !amount.IsPositive() {
		return domain.ParsedFields{}, &ParseFailure{Reason: ReasonNonPositiveValue}
	}

	kind := detectKind(raw)
	fields := domain.ParsedFields{
		Amount:           amount,
		Kind:             kind,
		Merchant:         domain.UnknownMerchant,
		BalanceAfter:     extractBalance(raw),
		IsCashWithdrawal: kind == domain.Withdrawal,
	}

	if merchant, found := extractMerchant(raw); found {
		fields.Merchant = merchant
		fields.MerchantFound = true
	}

	now := p.now()
	if date, found := extractDate(raw, now.Location()); found {
		fields.OccurredAt = date
		fields.DateFound = true
	} else {
		fields.OccurredAt = startOfDay(now)
	}

	return fields, nil
}

// Classify returns the category for raw.
func (p *Parser) Classify(raw string) domain.Category {
	return p.classifier.Classify(raw)
}

// ToTransaction runs the full pipeline and returns a ready-to-store record
// with a fresh id. No partial record is ever returned on failure.
func (p *Parser) ToTransaction(raw string) (domain.Transaction, error) {
	fields, err := p.Parse(raw)
	if err != nil {
		return domain.Transaction{}, err
	}

	return domain.Transaction{
		TransactionID:        p.newID(),
		Amount:               fields.Amount,
		Type:                 fields.Kind,
		Category:             p.classifier.Classify(raw),
		Merchant:             fields.Merchant,
		DescriptionExcerpt:   Truncate(raw, p.excerptLength),
		OccurredAt:           fields.OccurredAt,
		BalanceAfter:         fields.BalanceAfter,
		SourceChannel:        domain.SourceSMS,
		RawMessage:           raw,
		IsCashWithdrawal:     fields.IsCashWithdrawal,
		CashSpendingRecorded: false,
		CreatedAt:            p.now(),
	}, nil
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

var defaultParser = NewParser()

// Parse extracts fields from raw using the default parser.
func Parse(raw string) (domain.ParsedFields, error) {
	return defaultParser.Parse(raw)
}

// ToTransaction assembles a transaction from raw using the default parser.
func ToTransaction(raw string) (domain.Transaction, error) {
	return defaultParser.ToTransaction(raw)
}
