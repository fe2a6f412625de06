package smsparser_test

import (
	"testing"

	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
	"github.com/SscSPs/sms_budget_tracker/internal/core/smsparser"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "paidm50toshop", smsparser.Normalize("Paid M50 to Shop"))
	assert.Equal(t, "paidm50toshop", smsparser.Normalize("  paid\tm50 \n to shop "))
}

func TestIsDuplicate(t *testing.T) {
	history := []domain.Transaction{
		{TransactionID: "manual", SourceChannel: domain.SourceManual},
		{TransactionID: "sms", SourceChannel: domain.SourceSMS, RawMessage: "Paid M50 to Shop"},
	}

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "exact", input: "Paid M50 to Shop", want: true},
		{name: "case and whitespace", input: "paid m50   to shop", want: true},
		{name: "different amount", input: "Paid M51 to Shop", want: false},
		{name: "empty never matches manual entries", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, smsparser.IsDuplicate(tt.input, history))
			assert.Equal(t, tt.want, smsparser.NewDuplicateIndex(history).Contains(tt.input))
		})
	}
}

func TestIsDuplicate_EmptyHistory(t *testing.T) {
	assert.False(t, smsparser.IsDuplicate("Paid M50 to Shop", nil))
}

func TestDuplicateIndex_AddRemove(t *testing.T) {
	idx := smsparser.NewDuplicateIndexFromMessages([]string{"Paid M50 to Shop", ""})
	assert.Equal(t, 1, idx.Len())

	idx.Add("Paid M60 to Shop")
	assert.True(t, idx.Contains("PAID M60 TO SHOP"))

	idx.Remove("paid m60 to shop")
	assert.False(t, idx.Contains("Paid M60 to Shop"))
	assert.Equal(t, 1, idx.Len())
}

// Only exact normalized equality counts; a resent message with a new
// reference number is not caught.
func TestIsDuplicate_NearDuplicateNotDetected(t *testing.T) {
	history := []domain.Transaction{{RawMessage: "Paid M50 to Shop. Ref: A1"}}
	assert.False(t, smsparser.IsDuplicate("Paid M50 to Shop. Ref: A2", history))
}
