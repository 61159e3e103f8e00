package repository

import (
	"context"
	"fmt"

	"github.com/andresvaldez/despacho/internal/db"
	"github.com/andresvaldez/despacho/internal/domain"
)

// SQLiteCatalogRepo implements CatalogRepo using a SQLite database.
// Each method returns {id, name} pairs for a typeahead; term-searchable
// catalogs cap results so remote mode never returns the whole table.
type SQLiteCatalogRepo struct {
	db db.DBTX
}

// NewSQLiteCatalogRepo creates a new SQLiteCatalogRepo.
func NewSQLiteCatalogRepo(conn db.DBTX) *SQLiteCatalogRepo {
	return &SQLiteCatalogRepo{db: conn}
}

const catalogLimit = 50

func (r *SQLiteCatalogRepo) Suppliers(ctx context.Context, term string) ([]domain.Catalog, error) {
	return r.searchCatalog(ctx,
		`SELECT id, company_name FROM suppliers WHERE company_name LIKE ? ORDER BY company_name LIMIT ?`,
		term, "suppliers")
}

func (r *SQLiteCatalogRepo) Projects(ctx context.Context, term string) ([]domain.Catalog, error) {
	return r.searchCatalog(ctx,
		`SELECT id, name FROM projects WHERE name LIKE ? ORDER BY name LIMIT ?`,
		term, "projects")
}

func (r *SQLiteCatalogRepo) Clients(ctx context.Context, term string) ([]domain.Catalog, error) {
	return r.searchCatalog(ctx,
		`SELECT id, name FROM clients WHERE name LIKE ? ORDER BY name LIMIT ?`,
		term, "clients")
}

func (r *SQLiteCatalogRepo) Responsibles(ctx context.Context) ([]domain.Catalog, error) {
	return r.searchCatalog(ctx,
		`SELECT id, name FROM responsibles WHERE name LIKE ? ORDER BY name LIMIT ?`,
		"", "responsibles")
}

func (r *SQLiteCatalogRepo) Areas(ctx context.Context) ([]domain.Catalog, error) {
	return r.searchCatalog(ctx,
		`SELECT id, name FROM areas WHERE name LIKE ? ORDER BY name LIMIT ?`,
		"", "areas")
}

func (r *SQLiteCatalogRepo) UpsertArea(ctx context.Context, c domain.Catalog) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO areas (id, name) VALUES (?, ?)`, c.ID, c.Name)
	if err != nil {
		return fmt.Errorf("upserting area: %w", err)
	}
	return nil
}

func (r *SQLiteCatalogRepo) searchCatalog(ctx context.Context, query, term, what string) ([]domain.Catalog, error) {
	rows, err := r.db.QueryContext(ctx, query, likePattern(term), catalogLimit)
	if err != nil {
		return nil, fmt.Errorf("querying %s catalog: %w", what, err)
	}
	defer rows.Close()

	var out []domain.Catalog
	for rows.Next() {
		var c domain.Catalog
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scanning %s catalog row: %w", what, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s catalog: %w", what, err)
	}
	return out, nil
}
