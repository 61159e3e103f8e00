package db

import (
	"context"
	"database/sql"
)

// DBTX is the querying surface repositories run against. Both *sql.DB
// and *sql.Tx provide it, so the same repository type serves plain
// calls and the supplier write path that runs inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var _ DBTX = (*sql.DB)(nil)
var _ DBTX = (*sql.Tx)(nil)
