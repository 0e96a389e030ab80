package response

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TransactionSummary struct {
	ID            int64           `json:"id"`
	Timestamp     time.Time       `json:"timestamp"`
	Amount        decimal.Decimal `json:"amount"`
	AmountDisplay string          `json:"amount_display"`
	Status        string          `json:"status"`
}

// Detail combines a customer with their purchase history and the outstanding
// credit computed from it (credit sales minus payments received).
type Detail struct {
	Customer         Customer             `json:"customer"`
	History          []TransactionSummary `json:"history"`
	CreditDue        decimal.Decimal      `json:"credit_due"`
	CreditDueDisplay string               `json:"credit_due_display"`
}
