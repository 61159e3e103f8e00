package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/andresvaldez/despacho/internal/db"
	"github.com/andresvaldez/despacho/internal/domain"
)

// SQLiteResponsibleRepo implements ResponsibleRepo using a SQLite database.
type SQLiteResponsibleRepo struct {
	db db.DBTX
}

// NewSQLiteResponsibleRepo creates a new SQLiteResponsibleRepo.
func NewSQLiteResponsibleRepo(conn db.DBTX) *SQLiteResponsibleRepo {
	return &SQLiteResponsibleRepo{db: conn}
}

func (r *SQLiteResponsibleRepo) Create(ctx context.Context, resp *domain.Responsible) error {
	query := `INSERT INTO responsibles (id, name, email, phone, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		resp.ID, resp.Name, resp.Email, resp.Phone,
		resp.CreatedAt.Format(time.RFC3339),
		resp.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting responsible: %w", err)
	}
	return nil
}

func (r *SQLiteResponsibleRepo) GetByID(ctx context.Context, id string) (*domain.Responsible, error) {
	query := `SELECT id, name, email, phone, created_at, updated_at FROM responsibles WHERE id = ?`
	resp, err := scanResponsible(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("responsible: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning responsible: %w", err)
	}
	return resp, nil
}

func (r *SQLiteResponsibleRepo) List(ctx context.Context, f domain.ResponsibleFilters) (*domain.PagedResult[*domain.Responsible], error) {
	where := ""
	var args []any
	if f.Name != "" {
		where = " WHERE name LIKE ?"
		args = append(args, likePattern(f.Name))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM responsibles"+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting responsibles: %w", err)
	}

	query := `SELECT id, name, email, phone, created_at, updated_at
		FROM responsibles` + where + ` ORDER BY name LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(args, f.Limit, f.Offset())...)
	if err != nil {
		return nil, fmt.Errorf("listing responsibles: %w", err)
	}
	defer rows.Close()

	var out []*domain.Responsible
	for rows.Next() {
		resp, err := scanResponsible(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning responsible row: %w", err)
		}
		out = append(out, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating responsibles: %w", err)
	}

	return &domain.PagedResult[*domain.Responsible]{Data: out, Total: total, Page: f.Page.Page, Limit: f.Limit}, nil
}

func (r *SQLiteResponsibleRepo) Update(ctx context.Context, resp *domain.Responsible) error {
	query := `UPDATE responsibles SET name = ?, email = ?, phone = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, resp.Name, resp.Email, resp.Phone, nowUTC(), resp.ID)
	if err != nil {
		return fmt.Errorf("updating responsible: %w", err)
	}
	return requireRow(res, "responsible")
}

func (r *SQLiteResponsibleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM responsibles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting responsible: %w", err)
	}
	return requireRow(res, "responsible")
}

func scanResponsible(row rowScanner) (*domain.Responsible, error) {
	var resp domain.Responsible
	var createdAt, updatedAt string

	if err := row.Scan(&resp.ID, &resp.Name, &resp.Email, &resp.Phone, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		resp.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		resp.UpdatedAt = t
	}
	return &resp, nil
}
