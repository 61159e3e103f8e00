package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/andresvaldez/despacho/internal/db"
	"github.com/andresvaldez/despacho/internal/domain"
)

// SQLiteSupplierRepo implements SupplierRepo using a SQLite database.
// Area assignments live in the supplier_areas join table; Create and
// Update replace the full assignment set, so callers wanting atomicity
// run them inside a UnitOfWork.
type SQLiteSupplierRepo struct {
	db db.DBTX
}

// NewSQLiteSupplierRepo creates a new SQLiteSupplierRepo.
func NewSQLiteSupplierRepo(conn db.DBTX) *SQLiteSupplierRepo {
	return &SQLiteSupplierRepo{db: conn}
}

func (r *SQLiteSupplierRepo) Create(ctx context.Context, s *domain.Supplier) error {
	query := `INSERT INTO suppliers (id, company_name, email, phone, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.CompanyName,
		s.Email,
		s.Phone,
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting supplier: %w", err)
	}
	return r.replaceAreas(ctx, s.ID, s.AreaIDs)
}

func (r *SQLiteSupplierRepo) GetByID(ctx context.Context, id string) (*domain.Supplier, error) {
	query := `SELECT id, company_name, email, phone, created_at, updated_at FROM suppliers WHERE id = ?`
	s, err := scanSupplier(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("supplier: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning supplier: %w", err)
	}
	if err := r.loadAreas(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func supplierWhere(f domain.SupplierFilters) (string, []any) {
	var conds []string
	var args []any

	if f.CompanyName != "" {
		conds = append(conds, "company_name LIKE ?")
		args = append(args, likePattern(f.CompanyName))
	}
	if f.Email != "" {
		conds = append(conds, "email LIKE ?")
		args = append(args, likePattern(f.Email))
	}
	if f.Phone != "" {
		conds = append(conds, "phone LIKE ?")
		args = append(args, likePattern(f.Phone))
	}
	if len(f.AreaIDs) > 0 {
		conds = append(conds, fmt.Sprintf(
			"id IN (SELECT supplier_id FROM supplier_areas WHERE area_id IN (%s))",
			placeholders(len(f.AreaIDs))))
		for _, id := range f.AreaIDs {
			args = append(args, id)
		}
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *SQLiteSupplierRepo) List(ctx context.Context, f domain.SupplierFilters) (*domain.PagedResult[*domain.Supplier], error) {
	where, args := supplierWhere(f)

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM suppliers"+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting suppliers: %w", err)
	}

	query := `SELECT id, company_name, email, phone, created_at, updated_at
		FROM suppliers` + where + ` ORDER BY company_name LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(args, f.Limit, f.Offset())...)
	if err != nil {
		return nil, fmt.Errorf("listing suppliers: %w", err)
	}
	defer rows.Close()

	var out []*domain.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning supplier row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating suppliers: %w", err)
	}

	for _, s := range out {
		if err := r.loadAreas(ctx, s); err != nil {
			return nil, err
		}
	}

	return &domain.PagedResult[*domain.Supplier]{Data: out, Total: total, Page: f.Page.Page, Limit: f.Limit}, nil
}

func (r *SQLiteSupplierRepo) Update(ctx context.Context, s *domain.Supplier) error {
	query := `UPDATE suppliers SET company_name = ?, email = ?, phone = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, s.CompanyName, s.Email, s.Phone, nowUTC(), s.ID)
	if err != nil {
		return fmt.Errorf("updating supplier: %w", err)
	}
	if err := requireRow(res, "supplier"); err != nil {
		return err
	}
	return r.replaceAreas(ctx, s.ID, s.AreaIDs)
}

func (r *SQLiteSupplierRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM suppliers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting supplier: %w", err)
	}
	return requireRow(res, "supplier")
}

func (r *SQLiteSupplierRepo) replaceAreas(ctx context.Context, supplierID string, areaIDs []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM supplier_areas WHERE supplier_id = ?`, supplierID); err != nil {
		return fmt.Errorf("clearing supplier areas: %w", err)
	}
	for _, areaID := range areaIDs {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO supplier_areas (supplier_id, area_id) VALUES (?, ?)`, supplierID, areaID); err != nil {
			return fmt.Errorf("inserting supplier area: %w", err)
		}
	}
	return nil
}

func (r *SQLiteSupplierRepo) loadAreas(ctx context.Context, s *domain.Supplier) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT area_id FROM supplier_areas WHERE supplier_id = ? ORDER BY area_id`, s.ID)
	if err != nil {
		return fmt.Errorf("loading supplier areas: %w", err)
	}
	defer rows.Close()

	s.AreaIDs = nil
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scanning supplier area: %w", err)
		}
		s.AreaIDs = append(s.AreaIDs, id)
	}
	return rows.Err()
}

func scanSupplier(row rowScanner) (*domain.Supplier, error) {
	var s domain.Supplier
	var createdAt, updatedAt string

	err := row.Scan(&s.ID, &s.CompanyName, &s.Email, &s.Phone, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		s.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		s.UpdatedAt = t
	}
	return &s, nil
}
