package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
)

// Task is a piece of content published under a short public hash.
type Task struct {
	ID        int64           `db:"id" json:"id"`
	Hash      string          `db:"hash" json:"hash"`
	Name      string          `db:"name" json:"name"`
	Type      string          `db:"type" json:"type"`
	Config    json.RawMessage `db:"config" json:"config"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}

type CreateTaskParams struct {
	Hash   string
	Name   string
	Type   string
	Config json.RawMessage
}

const taskColumns = `id, hash, name, type, config, created_at, updated_at`

func (q *Queries) CreateTask(ctx context.Context, p CreateTaskParams) (Task, error) {
	config := p.Config
	if len(config) == 0 {
		config = json.RawMessage(`{}`)
	}

	rows, err := q.db.Query(ctx,
		`INSERT INTO task (hash, name, type, config) VALUES ($1, $2, $3, $4) RETURNING `+taskColumns,
		p.Hash, p.Name, p.Type, []byte(config),
	)
	if err != nil {
		return Task{}, mapErr(err)
	}
	t, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Task])
	return t, mapErr(err)
}

func (q *Queries) TaskByID(ctx context.Context, id int64) (Task, error) {
	rows, err := q.db.Query(ctx, `SELECT `+taskColumns+` FROM task WHERE id = $1`, id)
	if err != nil {
		return Task{}, err
	}
	t, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Task])
	return t, mapErr(err)
}

func (q *Queries) TaskByHash(ctx context.Context, hash string) (Task, error) {
	rows, err := q.db.Query(ctx, `SELECT `+taskColumns+` FROM task WHERE hash = $1`, hash)
	if err != nil {
		return Task{}, err
	}
	t, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Task])
	return t, mapErr(err)
}

// ListTasks returns tasks newest first.
func (q *Queries) ListTasks(ctx context.Context, limit, offset int) ([]Task, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+taskColumns+` FROM task ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Task])
}

func (q *Queries) CountTasks(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, `SELECT count(*) FROM task`).Scan(&n)
	return n, err
}

// DeleteTask removes a task and returns it, so callers can evict its hash.
func (q *Queries) DeleteTask(ctx context.Context, id int64) (Task, error) {
	rows, err := q.db.Query(ctx, `DELETE FROM task WHERE id = $1 RETURNING `+taskColumns, id)
	if err != nil {
		return Task{}, err
	}
	t, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Task])
	return t, mapErr(err)
}
