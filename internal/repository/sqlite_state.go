package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/andresvaldez/despacho/internal/db"
)

// SQLiteStateRepo implements StateRepo over the app_state table.
// It is the key-value store behind per-screen filter persistence;
// values are opaque bytes (JSON snapshots) owned by the caller.
type SQLiteStateRepo struct {
	db db.DBTX
}

// NewSQLiteStateRepo creates a new SQLiteStateRepo.
func NewSQLiteStateRepo(conn db.DBTX) *SQLiteStateRepo {
	return &SQLiteStateRepo{db: conn}
}

func (r *SQLiteStateRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading app state %q: %w", key, err)
	}
	return []byte(value), nil
}

func (r *SQLiteStateRepo) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO app_state (key, value) VALUES (?, ?)`, key, string(value))
	if err != nil {
		return fmt.Errorf("writing app state %q: %w", key, err)
	}
	return nil
}

func (r *SQLiteStateRepo) Remove(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM app_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("removing app state %q: %w", key, err)
	}
	return nil
}
