package smsparser

import (
	"strings"
	"unicode"

	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
)

// Normalize lower-cases msg and drops every whitespace rune. Two messages
// are duplicates exactly when their normalized forms are equal.
func Normalize(msg string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, msg)
}

// IsDuplicate reports whether msg matches the raw message of any transaction
// in history. Entries without a raw message never match.
func IsDuplicate(msg string, history []domain.Transaction) bool {
	key := Normalize(msg)
	for i := range history {
		if history[i].RawMessage == "" {
			continue
		}
		if Normalize(history[i].RawMessage) == key {
			return true
		}
	}
	return false
}

// DuplicateIndex is a set of normalized messages. It gives the same answers
// as IsDuplicate over the messages added to it, in constant time.
type DuplicateIndex struct {
	seen map[string]struct{}
}

// NewDuplicateIndex builds an index over the raw messages in history.
func NewDuplicateIndex(history []domain.Transaction) *DuplicateIndex {
	idx := &DuplicateIndex{seen: make(map[string]struct{}, len(history))}
	for i := range history {
		idx.Add(history[i].RawMessage)
	}
	return idx
}

// NewDuplicateIndexFromMessages builds an index over raw messages directly.
func NewDuplicateIndexFromMessages(messages []string) *DuplicateIndex {
	idx := &DuplicateIndex{seen: make(map[string]struct{}, len(messages))}
	for _, m := range messages {
		idx.Add(m)
	}
	return idx
}

// Add records msg. Empty messages are ignored, matching IsDuplicate.
func (d *DuplicateIndex) Add(msg string) {
	if msg == "" {
		return
	}
	d.seen[Normalize(msg)] = struct{}{}
}

// Remove forgets msg, used when a transaction is deleted from history.
func (d *DuplicateIndex) Remove(msg string) {
	delete(d.seen, Normalize(msg))
}

// Contains reports whether msg has been added.
func (d *DuplicateIndex) Contains(msg string) bool {
	_, ok := d.seen[Normalize(msg)]
	return ok
}

// Len returns the number of distinct normalized messages.
func (d *DuplicateIndex) Len() int {
	return len(d.seen)
}
