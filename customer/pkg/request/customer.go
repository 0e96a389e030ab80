package request

import (
	"github.com/shopspring/decimal"
)

type Customer struct {
	Name    string `validate:"required"        json:"name"`
	Phone   string `validate:"required"        json:"phone"`
	Email   string `validate:"omitempty,email" json:"email"`
	Address string `json:"address"`
}

// QuickAdd is the abbreviated customer-creation flow invoked from the sale
// screen without leaving the checkout context.
type QuickAdd struct {
	Name  string `validate:"required" json:"name"`
	Phone string `validate:"required" json:"phone"`
}

type RecordPayment struct {
	Amount decimal.Decimal `validate:"required" json:"payment_amount"`
}
