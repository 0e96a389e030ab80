package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const transactionColumns = `id, timestamp, amount, cost, status, customer_id`

func scanTransaction(row pgx.Row) (Transaction, error) {
	var t Transaction
	err := row.Scan(
		&t.ID,
		&t.Timestamp,
		&t.Amount,
		&t.Cost,
		&t.Status,
		&t.CustomerID,
	)
	return t, err
}

type InsertTransactionParams struct {
	Amount     pgtype.Numeric
	Cost       pgtype.Numeric
	Status     string
	CustomerID pgtype.Int8
}

func (q *Queries) InsertTransaction(
	c context.Context,
	arg InsertTransactionParams,
) (Transaction, error) {
	row := q.db.QueryRow(c, `
		INSERT INTO transactions (amount, cost, status, customer_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+transactionColumns,
		arg.Amount, arg.Cost, arg.Status, arg.CustomerID,
	)
	return scanTransaction(row)
}

type InsertTransactionItemParams struct {
	TransactionID int64
	ProductID     pgtype.Int8
	Name          string
	Price         pgtype.Numeric
	Quantity      int32
}

func (q *Queries) InsertTransactionItem(
	c context.Context,
	arg InsertTransactionItemParams,
) (TransactionItem, error) {
	row := q.db.QueryRow(c, `
		INSERT INTO transaction_items (transaction_id, product_id, name, price, quantity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, transaction_id, product_id, name, price, quantity`,
		arg.TransactionID, arg.ProductID, arg.Name, arg.Price, arg.Quantity,
	)
	var i TransactionItem
	err := row.Scan(
		&i.ID,
		&i.TransactionID,
		&i.ProductID,
		&i.Name,
		&i.Price,
		&i.Quantity,
	)
	return i, err
}

func (q *Queries) FindTransactionById(c context.Context, id int64) (Transaction, error) {
	row := q.db.QueryRow(
		c,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`,
		id,
	)
	return scanTransaction(row)
}

func (q *Queries) FindTransactionItems(
	c context.Context,
	transactionID int64,
) ([]TransactionItem, error) {
	rows, err := q.db.Query(c, `
		SELECT id, transaction_id, product_id, name, price, quantity
		FROM transaction_items
		WHERE transaction_id = $1
		ORDER BY id`,
		transactionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []TransactionItem{}
	for rows.Next() {
		var i TransactionItem
		err := rows.Scan(
			&i.ID,
			&i.TransactionID,
			&i.ProductID,
			&i.Name,
			&i.Price,
			&i.Quantity,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (q *Queries) FindTransactions(c context.Context) ([]Transaction, error) {
	rows, err := q.db.Query(
		c,
		`SELECT `+transactionColumns+` FROM transactions ORDER BY timestamp DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (q *Queries) FindTransactionsByCustomerId(
	c context.Context,
	customerID int64,
) ([]Transaction, error) {
	rows, err := q.db.Query(c, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE customer_id = $1
		ORDER BY timestamp DESC`,
		customerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}
