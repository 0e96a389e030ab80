package request

import (
	"github.com/shopspring/decimal"
)

type AddItem struct {
	ProductID int64 `validate:"required" json:"product_id"`
}

// SetQuantity carries the edited quantity for a line. Zero or negative
// removes the line entirely.
type SetQuantity struct {
	Quantity int32 `json:"quantity"`
}

// Resolve is the dual-purpose sale-screen input: a scanner emitting a
// "POS_PRODUCT_<id>" code or a clerk typing a name filter. Commit is true on
// key-confirm or field-change.
type Resolve struct {
	Input  string `validate:"required" json:"input"`
	Commit bool   `json:"commit"`
}

type CheckoutLine struct {
	ID    int64           `validate:"required"       json:"id"`
	Qty   int32           `validate:"required,gte=1" json:"qty"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Checkout is the finalized-sale submission. Cart emptiness is checked
// before validation so an empty sale fails with a local notice rather than a
// field error.
type Checkout struct {
	Cart          []CheckoutLine `validate:"omitempty,dive"                       json:"cart"`
	CustomerID    *int64         `json:"customer_id"`
	PaymentMethod string         `validate:"required,oneof=cash card credit" json:"payment_method"`
}

// SessionCheckout finalizes a server-held session cart; the lines come from
// the session, not the request body.
type SessionCheckout struct {
	CustomerID    *int64 `json:"customer_id"`
	PaymentMethod string `validate:"required,oneof=cash card credit" json:"payment_method"`
}
