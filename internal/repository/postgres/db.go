package postgres

import (
	"context"
	"database/sql"
)

// Querier is the subset of database operations the repositories need.
// Satisfied by both *sql.DB and *sql.Tx, so every repository can run either
// standalone or inside a caller-owned transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)
