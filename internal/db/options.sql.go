package db

import (
	"context"
)

const getOption = `-- name: GetOption :one
SELECT name, value, updated_at FROM options WHERE name = ?
`

func (q *Queries) GetOption(ctx context.Context, name string) (Option, error) {
	row := q.db.QueryRowContext(ctx, getOption, name)
	var i Option
	err := row.Scan(&i.Name, &i.Value, &i.UpdatedAt)
	return i, err
}

const upsertOption = `-- name: UpsertOption :exec
INSERT INTO options (name, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`

type UpsertOptionParams struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	UpdatedAt int64  `json:"updated_at"`
}

func (q *Queries) UpsertOption(ctx context.Context, arg UpsertOptionParams) error {
	_, err := q.db.ExecContext(ctx, upsertOption, arg.Name, arg.Value, arg.UpdatedAt)
	return err
}

const deleteOption = `-- name: DeleteOption :exec
DELETE FROM options WHERE name = ?
`

func (q *Queries) DeleteOption(ctx context.Context, name string) error {
	_, err := q.db.ExecContext(ctx, deleteOption, name)
	return err
}

const getTransient = `-- name: GetTransient :one
SELECT name, value, expires_at FROM transients WHERE name = ? AND expires_at > ?
`

type GetTransientParams struct {
	Name string `json:"name"`
	Now  int64  `json:"now"`
}

func (q *Queries) GetTransient(ctx context.Context, arg GetTransientParams) (Transient, error) {
	row := q.db.QueryRowContext(ctx, getTransient, arg.Name, arg.Now)
	var i Transient
	err := row.Scan(&i.Name, &i.Value, &i.ExpiresAt)
	return i, err
}

const setTransient = `-- name: SetTransient :exec
INSERT INTO transients (name, value, expires_at) VALUES (?, ?, ?)
ON CONFLICT(name) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
`

type SetTransientParams struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	ExpiresAt int64  `json:"expires_at"`
}

func (q *Queries) SetTransient(ctx context.Context, arg SetTransientParams) error {
	_, err := q.db.ExecContext(ctx, setTransient, arg.Name, arg.Value, arg.ExpiresAt)
	return err
}

const deleteTransient = `-- name: DeleteTransient :exec
DELETE FROM transients WHERE name = ?
`

func (q *Queries) DeleteTransient(ctx context.Context, name string) error {
	_, err := q.db.ExecContext(ctx, deleteTransient, name)
	return err
}

const purgeExpiredTransients = `-- name: PurgeExpiredTransients :execrows
DELETE FROM transients WHERE expires_at <= ?
`

func (q *Queries) PurgeExpiredTransients(ctx context.Context, now int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, purgeExpiredTransients, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
