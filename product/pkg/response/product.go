package response

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int32           `json:"stock"`
	ScanCode  string          `json:"scan_code"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Import summarizes a catalog CSV import: rows matched by name restock the
// existing product, the rest become new products.
type Import struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}
