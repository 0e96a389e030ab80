package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, username, password, created_at, updated_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Password,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

type InsertUserParams struct {
	Username string
	Password string
}

func (q *Queries) InsertUser(c context.Context, arg InsertUserParams) (User, error) {
	row := q.db.QueryRow(c, `
		INSERT INTO users (username, password)
		VALUES ($1, $2)
		RETURNING `+userColumns,
		arg.Username, arg.Password,
	)
	return scanUser(row)
}

func (q *Queries) FindUserByUsername(c context.Context, username string) (User, error) {
	row := q.db.QueryRow(c, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

func (q *Queries) FindUserById(c context.Context, id int64) (User, error) {
	row := q.db.QueryRow(c, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (q *Queries) CountUsers(c context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRow(c, `SELECT count(*) FROM users`).Scan(&count)
	return count, err
}

type UpdateUserPasswordParams struct {
	ID       int64
	Password string
}

func (q *Queries) UpdateUserPassword(c context.Context, arg UpdateUserPasswordParams) (User, error) {
	row := q.db.QueryRow(c, `
		UPDATE users
		SET password = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		arg.ID, arg.Password,
	)
	return scanUser(row)
}
