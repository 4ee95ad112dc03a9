package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "DESC"},
		{"ASC", "ASC"},
		{"  asc  ", "ASC"},
		{"desc", "DESC"},
		{"ASC; DROP TABLE ledger_transactions;--", "DESC"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "date"},
		{"amount", "amount"},
		{" category ", "category"},
		{"password", "date"},
		{"amount; DROP TABLE materials", "date"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, TransactionSortFields, "date"))
		})
	}
}
