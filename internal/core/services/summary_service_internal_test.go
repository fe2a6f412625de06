package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestHealthScoreBands(t *testing.T) {
	budget := decimal.NewFromInt(1000)
	tests := []struct {
		expenses string
		want     int
	}{
		{"0", 90},
		{"700", 90},
		{"700.01", 75},
		{"850", 75},
		{"851", 60},
		{"1000", 60},
		{"1000.01", 40},
		{"1200", 40},
		{"1200.01", 20},
		{"5000", 20},
	}
	for _, tt := range tests {
		t.Run(tt.expenses, func(t *testing.T) {
			assert.Equal(t, tt.want, healthScore(decimal.RequireFromString(tt.expenses), budget))
		})
	}
}
