package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	productResponse "github.com/kiranalabs/pos/product/pkg/response"
)

type CartLine struct {
	ProductID        int64           `json:"product_id"`
	Name             string          `json:"name"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Quantity         int32           `json:"quantity"`
	LineTotal        decimal.Decimal `json:"line_total"`
	LineTotalDisplay string          `json:"line_total_display"`
}

// Cart is the rendered projection of a session cart: every line with its
// total plus the recomputed subtotal and grand total.
type Cart struct {
	ID                uuid.UUID       `json:"id"`
	Lines             []CartLine      `json:"lines"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	SubtotalDisplay   string          `json:"subtotal_display"`
	GrandTotal        decimal.Decimal `json:"grand_total"`
	GrandTotalDisplay string          `json:"grand_total_display"`
}

const (
	KindScanCode = "scan_code"
	KindFreeText = "free_text"
)

// Resolve reports which of the two mutually exclusive behaviors handled the
// input: a committed scan adds a line, a free-text query filters the catalog.
type Resolve struct {
	Kind    string                    `json:"kind"`
	Added   *CartLine                 `json:"added,omitempty"`
	Cart    *Cart                     `json:"cart,omitempty"`
	Matches []productResponse.Product `json:"matches,omitempty"`
}

type CheckoutResult struct {
	TransactionID int64 `json:"transaction_id"`
}

type ReceiptItem struct {
	Name            string          `json:"name"`
	Quantity        int32           `json:"qty"`
	Price           decimal.Decimal `json:"price"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	SubtotalDisplay string          `json:"subtotal_display"`
}

type ReceiptCustomer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type Receipt struct {
	TransactionID int64            `json:"transaction_id"`
	Timestamp     time.Time        `json:"timestamp"`
	PaymentMethod string           `json:"payment_method"`
	Customer      *ReceiptCustomer `json:"customer,omitempty"`
	Items         []ReceiptItem    `json:"items"`
	Total         decimal.Decimal  `json:"total"`
	TotalDisplay  string           `json:"total_display"`
}
