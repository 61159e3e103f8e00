package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent
// (CREATE TABLE IF NOT EXISTS) so the full list re-runs on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS suppliers (
		id           TEXT PRIMARY KEY,
		company_name TEXT NOT NULL,
		email        TEXT NOT NULL DEFAULT '',
		phone        TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS areas (
		id   TEXT PRIMARY KEY,
		name TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS supplier_areas (
		supplier_id TEXT NOT NULL REFERENCES suppliers(id) ON DELETE CASCADE,
		area_id     TEXT NOT NULL REFERENCES areas(id) ON DELETE CASCADE,
		PRIMARY KEY (supplier_id, area_id)
	)`,

	`CREATE TABLE IF NOT EXISTS clients (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL DEFAULT '',
		phone      TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS responsibles (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL DEFAULT '',
		phone      TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		client_id      TEXT REFERENCES clients(id) ON DELETE SET NULL,
		responsible_id TEXT REFERENCES responsibles(id) ON DELETE SET NULL,
		start_date     TEXT,
		end_date       TEXT,
		status         TEXT NOT NULL DEFAULT 'active'
		               CHECK(status IN ('active','paused','finished','cancelled')),
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS expenses (
		id          TEXT PRIMARY KEY,
		concept     TEXT NOT NULL,
		date        TEXT NOT NULL,
		amount      REAL NOT NULL DEFAULT 0,
		supplier_id TEXT REFERENCES suppliers(id) ON DELETE SET NULL,
		project_id  TEXT REFERENCES projects(id) ON DELETE SET NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS bills (
		id         TEXT PRIMARY KEY,
		folio      TEXT NOT NULL,
		project_id TEXT REFERENCES projects(id) ON DELETE SET NULL,
		amount     REAL NOT NULL DEFAULT 0,
		issued_at  TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'pending'
		           CHECK(status IN ('pending','paid','overdue','cancelled')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	// Screen-scoped UI state (persisted filter snapshots).
	`CREATE TABLE IF NOT EXISTS app_state (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_supplier ON expenses(supplier_id)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_project ON expenses(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_bills_project ON bills(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_client ON projects(client_id)`,
}
