package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func countState(t *testing.T, conn *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM app_state").Scan(&n))
	return n
}

func TestOpenDB_AppliesPragmas(t *testing.T) {
	conn := openTestDB(t)

	var fk int
	require.NoError(t, conn.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)

	var timeout int
	require.NoError(t, conn.QueryRow("PRAGMA busy_timeout").Scan(&timeout))
	assert.Equal(t, 5000, timeout)
}

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	conn := openTestDB(t)
	uow := NewSQLiteUnitOfWork(conn)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, "INSERT INTO app_state (key, value) VALUES (?, ?)", "k", "v")
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, 1, countState(t, conn))
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	conn := openTestDB(t)
	uow := NewSQLiteUnitOfWork(conn)

	boom := errors.New("boom")
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO app_state (key, value) VALUES (?, ?)", "k", "v"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	assert.Equal(t, 0, countState(t, conn))
}

func TestWithinTx_RollsBackOnPanic(t *testing.T) {
	conn := openTestDB(t)
	uow := NewSQLiteUnitOfWork(conn)

	require.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
			_, _ = tx.ExecContext(ctx, "INSERT INTO app_state (key, value) VALUES (?, ?)", "k", "v")
			panic("boom")
		})
	})

	assert.Equal(t, 0, countState(t, conn))
}
