package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    decimal.Decimal
		expected string
	}{
		{name: "whole rupees", input: decimal.NewFromInt(20), expected: "₹ 20.00"},
		{name: "zero", input: decimal.Zero, expected: "₹ 0.00"},
		{name: "paise kept", input: decimal.RequireFromString("99.50"), expected: "₹ 99.50"},
		{name: "thousands grouped", input: decimal.RequireFromString("1234.56"), expected: "₹ 1,234.56"},
		{name: "negative balance", input: decimal.RequireFromString("-450"), expected: "₹ -450.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.input))
		})
	}
}
