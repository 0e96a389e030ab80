package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kiranalabs/pos/internal/common/constants"
	"github.com/kiranalabs/pos/internal/repository"
)

func ledgerRow(status string, amount string) repository.Transaction {
	return repository.Transaction{
		Amount: repository.NumericFromDecimal(decimal.RequireFromString(amount)),
		Status: status,
	}
}

func TestCreditDue(t *testing.T) {
	tests := []struct {
		name     string
		history  []repository.Transaction
		expected string
	}{
		{
			name:     "no history",
			history:  nil,
			expected: "0",
		},
		{
			name: "credit sales accumulate",
			history: []repository.Transaction{
				ledgerRow(constants.StatusCredit, "300"),
				ledgerRow(constants.StatusCredit, "150.50"),
			},
			expected: "450.50",
		},
		{
			name: "payments reduce the balance",
			history: []repository.Transaction{
				ledgerRow(constants.StatusCredit, "300"),
				ledgerRow(constants.StatusPayment, "-100"),
			},
			expected: "200",
		},
		{
			name: "cash and card sales never affect the balance",
			history: []repository.Transaction{
				ledgerRow(constants.StatusCash, "500"),
				ledgerRow(constants.StatusCard, "750"),
				ledgerRow(constants.StatusCredit, "300"),
			},
			expected: "300",
		},
		{
			name: "fully repaid",
			history: []repository.Transaction{
				ledgerRow(constants.StatusCredit, "300"),
				ledgerRow(constants.StatusPayment, "-200"),
				ledgerRow(constants.StatusPayment, "-100"),
			},
			expected: "0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due := CreditDue(tt.history)
			assert.True(
				t,
				decimal.RequireFromString(tt.expected).Equal(due),
				"expected=%s got=%s",
				tt.expected,
				due,
			)
		})
	}
}
