package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const productColumns = `id, name, price, stock, scan_code, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&p.Stock,
		&p.ScanCode,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

type InsertProductParams struct {
	Name  string
	Price pgtype.Numeric
	Stock int32
}

func (q *Queries) InsertProduct(c context.Context, arg InsertProductParams) (Product, error) {
	row := q.db.QueryRow(c, `
		INSERT INTO products (name, price, stock)
		VALUES ($1, $2, $3)
		RETURNING `+productColumns,
		arg.Name, arg.Price, arg.Stock,
	)
	return scanProduct(row)
}

func (q *Queries) UpdateProductScanCode(c context.Context, id int64, scanCode string) (Product, error) {
	row := q.db.QueryRow(c, `
		UPDATE products
		SET scan_code = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+productColumns,
		id, scanCode,
	)
	return scanProduct(row)
}

func (q *Queries) FindProducts(c context.Context) ([]Product, error) {
	rows, err := q.db.Query(c, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (q *Queries) FindProductsByName(c context.Context, query string) ([]Product, error) {
	rows, err := q.db.Query(c, `
		SELECT `+productColumns+`
		FROM products
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY id`,
		query,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (q *Queries) FindProductById(c context.Context, id int64) (Product, error) {
	row := q.db.QueryRow(c, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	return scanProduct(row)
}

func (q *Queries) FindProductByName(c context.Context, name string) (Product, error) {
	row := q.db.QueryRow(c, `SELECT `+productColumns+` FROM products WHERE name = $1`, name)
	return scanProduct(row)
}

type UpdateProductParams struct {
	ID    int64
	Name  string
	Price pgtype.Numeric
	Stock int32
}

func (q *Queries) UpdateProduct(c context.Context, arg UpdateProductParams) (Product, error) {
	row := q.db.QueryRow(c, `
		UPDATE products
		SET name = $2, price = $3, stock = $4, updated_at = now()
		WHERE id = $1
		RETURNING `+productColumns,
		arg.ID, arg.Name, arg.Price, arg.Stock,
	)
	return scanProduct(row)
}

type AddProductStockParams struct {
	ID    int64
	Delta int32
}

func (q *Queries) AddProductStock(c context.Context, arg AddProductStockParams) (Product, error) {
	row := q.db.QueryRow(c, `
		UPDATE products
		SET stock = stock + $2, updated_at = now()
		WHERE id = $1
		RETURNING `+productColumns,
		arg.ID, arg.Delta,
	)
	return scanProduct(row)
}

type DecrementProductStockParams struct {
	ID       int64
	Quantity int32
}

// DecrementProductStock takes stock for a sale only when enough is on hand.
// Zero rows affected means insufficient stock.
func (q *Queries) DecrementProductStock(
	c context.Context,
	arg DecrementProductStockParams,
) (int64, error) {
	tag, err := q.db.Exec(c, `
		UPDATE products
		SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2`,
		arg.ID, arg.Quantity,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (q *Queries) DeleteProduct(c context.Context, id int64) (Product, error) {
	row := q.db.QueryRow(c, `
		DELETE FROM products
		WHERE id = $1
		RETURNING `+productColumns,
		id,
	)
	return scanProduct(row)
}
