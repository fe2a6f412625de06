package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/sms_budget_tracker/internal/apperrors"
	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/sms_budget_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/sms_budget_tracker/internal/core/ports/services"
	"github.com/SscSPs/sms_budget_tracker/internal/core/smsparser"
	"github.com/SscSPs/sms_budget_tracker/internal/dto"
)

// smsService implements portssvc.SMSSvcFacade on top of the parsing engine.
type smsService struct {
	BaseService
	txnRepo portsrepo.TransactionRepositoryFacade
	parser  *smsparser.Parser
}

// SMSServiceOption configures the SMS service.
type SMSServiceOption func(*smsService)

// WithSMSParser replaces the default parser, e.g. to pin the clock in tests.
func WithSMSParser(p *smsparser.Parser) SMSServiceOption {
	return func(s *smsService) {
		if p != nil {
			s.parser = p
		}
	}
}

// NewSMSService creates a new SMS ingestion service.
func NewSMSService(txnRepo portsrepo.TransactionRepositoryFacade, opts ...SMSServiceOption) portssvc.SMSSvcFacade {
	s := &smsService{
		txnRepo: txnRepo,
		parser:  smsparser.NewParser(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ParseSMS runs the extractors and classifier without storing anything.
func (s *smsService) ParseSMS(ctx context.Context, rawMessage string) (*dto.ParseSMSResponse, error) {
	fields, err := s.parser.Parse(rawMessage)
	if err != nil {
		s.LogDebug(ctx, "SMS could not be parsed", slog.String("error", err.Error()))
		return nil, err
	}
	resp := dto.ToParseSMSResponse(fields, s.parser.Classify(rawMessage))
	return &resp, nil
}

// CheckDuplicate reports whether rawMessage is already in the owner's history.
func (s *smsService) CheckDuplicate(ctx context.Context, ownerID, rawMessage string) (bool, error) {
	index, err := s.loadDuplicateIndex(ctx, ownerID)
	if err != nil {
		return false, err
	}
	return index.Contains(rawMessage), nil
}

// IngestSMS rejects duplicates before parsing, then stores the new transaction.
func (s *smsService) IngestSMS(ctx context.Context, ownerID, rawMessage string) (*dto.IngestResult, error) {
	duplicate, err := s.CheckDuplicate(ctx, ownerID, rawMessage)
	if err != nil {
		return nil, err
	}
	if duplicate {
		s.LogInfo(ctx, "Duplicate SMS rejected", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicate, dto.MessageAlreadyProcessed)
	}

	txn, err := s.assemble(ownerID, rawMessage)
	if err != nil {
		s.LogInfo(ctx, "SMS could not be parsed", slog.String("owner_id", ownerID), slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicate, dto.MessageAlreadyProcessed)
		}
		s.LogError(ctx, err, "Failed to save SMS transaction", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to save transaction in service: %w", err)
	}

	s.LogInfo(ctx, "SMS transaction stored",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("category", string(txn.Category)))

	return &dto.IngestResult{
		Message:     ingestMessage(&txn),
		Transaction: dto.ToTransactionResponse(&txn),
	}, nil
}

// IngestBatch processes messages sequentially. Accepted messages are added
// to the duplicate index before the next message is checked.
func (s *smsService) IngestBatch(ctx context.Context, ownerID string, rawMessages []string) ([]dto.BatchItemResult, error) {
	index, err := s.loadDuplicateIndex(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	results := make([]dto.BatchItemResult, 0, len(rawMessages))
	for i, raw := range rawMessages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if index.Contains(raw) {
			results = append(results, duplicateItem(i))
			continue
		}

		txn, err := s.assemble(ownerID, raw)
		if err != nil {
			item := dto.BatchItemResult{Index: i, Status: dto.BatchStatusUnparseable, Message: dto.MessageCouldNotParse}
			var failure *smsparser.ParseFailure
			if errors.As(err, &failure) {
				item.Reason = failure.Reason
			}
			results = append(results, item)
			continue
		}

		if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				results = append(results, duplicateItem(i))
				continue
			}
			s.LogError(ctx, err, "Failed to save batch transaction", slog.Int("index", i))
			return nil, fmt.Errorf("failed to save transaction %d in batch: %w", i, err)
		}
		index.Add(raw)

		resp := dto.ToTransactionResponse(&txn)
		results = append(results, dto.BatchItemResult{
			Index:       i,
			Status:      dto.BatchStatusCreated,
			Message:     ingestMessage(&txn),
			Transaction: &resp,
		})
	}

	s.LogInfo(ctx, "SMS batch processed", slog.Int("messages", len(rawMessages)))
	return results, nil
}

func (s *smsService) assemble(ownerID, rawMessage string) (domain.Transaction, error) {
	txn, err := s.parser.ToTransaction(rawMessage)
	if err != nil {
		return domain.Transaction{}, err
	}
	txn.OwnerID = ownerID
	if err := txn.Validate(); err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return txn, nil
}

func (s *smsService) loadDuplicateIndex(ctx context.Context, ownerID string) (*smsparser.DuplicateIndex, error) {
	messages, err := s.txnRepo.ListRawMessages(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load message history", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to load message history in service: %w", err)
	}
	return smsparser.NewDuplicateIndexFromMessages(messages), nil
}

func duplicateItem(i int) dto.BatchItemResult {
	return dto.BatchItemResult{Index: i, Status: dto.BatchStatusDuplicate, Message: dto.MessageAlreadyProcessed}
}

func ingestMessage(txn *domain.Transaction) string {
	if txn.IsCashWithdrawal {
		return dto.MessageWithdrawalPending
	}
	return dto.MessageTransactionAdded
}
