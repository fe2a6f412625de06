package services

import (
	"context"

	"github.com/SscSPs/sms_budget_tracker/internal/dto"
)

// SMSParserSvc exposes the pure parsing engine.
type SMSParserSvc interface {
	// ParseSMS extracts fields and the category without assigning an id or storing anything.
	ParseSMS(ctx context.Context, rawMessage string) (*dto.ParseSMSResponse, error)
}

// SMSIngestSvc turns messages into stored transactions.
type SMSIngestSvc interface {
	// CheckDuplicate reports whether rawMessage was already processed for ownerID.
	CheckDuplicate(ctx context.Context, ownerID, rawMessage string) (bool, error)

	// IngestSMS checks for duplicates, parses and stores a single message.
	IngestSMS(ctx context.Context, ownerID, rawMessage string) (*dto.IngestResult, error)

	// IngestBatch processes messages in order; each accepted message counts
	// towards duplicate detection for the ones after it.
	IngestBatch(ctx context.Context, ownerID string, rawMessages []string) ([]dto.BatchItemResult, error)
}

// SMSSvcFacade combines all SMS-related service interfaces
type SMSSvcFacade interface {
	SMSParserSvc
	SMSIngestSvc
}
