package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const customerColumns = `id, name, phone, email, address, created_at, updated_at`

func scanCustomer(row pgx.Row) (Customer, error) {
	var cu Customer
	err := row.Scan(
		&cu.ID,
		&cu.Name,
		&cu.Phone,
		&cu.Email,
		&cu.Address,
		&cu.CreatedAt,
		&cu.UpdatedAt,
	)
	return cu, err
}

type InsertCustomerParams struct {
	Name    string
	Phone   string
	Email   pgtype.Text
	Address pgtype.Text
}

func (q *Queries) InsertCustomer(c context.Context, arg InsertCustomerParams) (Customer, error) {
	row := q.db.QueryRow(c, `
		INSERT INTO customers (name, phone, email, address)
		VALUES ($1, $2, $3, $4)
		RETURNING `+customerColumns,
		arg.Name, arg.Phone, arg.Email, arg.Address,
	)
	return scanCustomer(row)
}

func (q *Queries) FindCustomers(c context.Context) ([]Customer, error) {
	rows, err := q.db.Query(c, `SELECT `+customerColumns+` FROM customers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []Customer{}
	for rows.Next() {
		cu, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, cu)
	}
	return customers, rows.Err()
}

func (q *Queries) FindCustomerById(c context.Context, id int64) (Customer, error) {
	row := q.db.QueryRow(c, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	return scanCustomer(row)
}

type UpdateCustomerParams struct {
	ID      int64
	Name    string
	Phone   string
	Email   pgtype.Text
	Address pgtype.Text
}

func (q *Queries) UpdateCustomer(c context.Context, arg UpdateCustomerParams) (Customer, error) {
	row := q.db.QueryRow(c, `
		UPDATE customers
		SET name = $2, phone = $3, email = $4, address = $5, updated_at = now()
		WHERE id = $1
		RETURNING `+customerColumns,
		arg.ID, arg.Name, arg.Phone, arg.Email, arg.Address,
	)
	return scanCustomer(row)
}

func (q *Queries) DeleteCustomer(c context.Context, id int64) (Customer, error) {
	row := q.db.QueryRow(c, `
		DELETE FROM customers
		WHERE id = $1
		RETURNING `+customerColumns,
		id,
	)
	return scanCustomer(row)
}
