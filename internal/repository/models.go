package repository

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type User struct {
	ID        int64
	Username  string
	Password  string
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type Product struct {
	ID        int64
	Name      string
	Price     pgtype.Numeric
	Stock     int32
	ScanCode  pgtype.Text
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type Customer struct {
	ID        int64
	Name      string
	Phone     string
	Email     pgtype.Text
	Address   pgtype.Text
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type Transaction struct {
	ID         int64
	Timestamp  pgtype.Timestamptz
	Amount     pgtype.Numeric
	Cost       pgtype.Numeric
	Status     string
	CustomerID pgtype.Int8
}

type TransactionItem struct {
	ID            int64
	TransactionID int64
	ProductID     pgtype.Int8
	Name          string
	Price         pgtype.Numeric
	Quantity      int32
}
