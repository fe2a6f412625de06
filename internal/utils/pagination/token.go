package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// Cursor identifies the last transaction of a page. Listings are ordered by
// OccurredAt, then CreatedAt, then TransactionID, all descending.
type Cursor struct {
	OccurredAt    time.Time
	CreatedAt     time.Time
	TransactionID string
}

// Before reports whether a row with the given sort key comes after the cursor
// in descending order, i.e. belongs to the next page.
func (c Cursor) Before(occurredAt, createdAt time.Time, transactionID string) bool {
	if !occurredAt.Equal(c.OccurredAt) {
		return occurredAt.Before(c.OccurredAt)
	}
	if !createdAt.Equal(c.CreatedAt) {
		return createdAt.Before(c.CreatedAt)
	}
	return transactionID < c.TransactionID
}

// EncodeToken creates a base64 encoded token from a transaction's sort key.
func EncodeToken(occurredAt time.Time, createdAt time.Time, transactionID string) string {
	tokenStr := fmt.Sprintf("%s|%s|%s", occurredAt.Format(timeFormat), createdAt.Format(timeFormat), transactionID)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded token back into a Cursor.
func DecodeToken(token string) (Cursor, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 3)
	if len(parts) != 3 || parts[2] == "" {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	occurredAt, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (occurred at parse): %w", err)
	}

	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	return Cursor{OccurredAt: occurredAt, CreatedAt: createdAt, TransactionID: parts[2]}, nil
}
