package request

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	Name  string          `validate:"required"       json:"name"`
	Price decimal.Decimal `validate:"required"       json:"price"`
	Stock int32           `validate:"omitempty,gte=0" json:"stock"`
}

type FindProducts struct {
	Query string `json:"query"`
}
