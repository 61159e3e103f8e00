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

// SQLiteBillRepo implements BillRepo using a SQLite database.
type SQLiteBillRepo struct {
	db db.DBTX
}

// NewSQLiteBillRepo creates a new SQLiteBillRepo.
func NewSQLiteBillRepo(conn db.DBTX) *SQLiteBillRepo {
	return &SQLiteBillRepo{db: conn}
}

func (r *SQLiteBillRepo) Create(ctx context.Context, b *domain.Bill) error {
	query := `INSERT INTO bills (id, folio, project_id, amount, issued_at, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.Folio,
		nullableString(b.ProjectID),
		b.Amount,
		b.IssuedAt.Format(dateLayout),
		string(b.Status),
		b.CreatedAt.Format(time.RFC3339),
		b.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting bill: %w", err)
	}
	return nil
}

func (r *SQLiteBillRepo) GetByID(ctx context.Context, id string) (*domain.Bill, error) {
	query := `SELECT id, folio, project_id, amount, issued_at, status, created_at, updated_at
		FROM bills WHERE id = ?`
	b, err := scanBill(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("bill: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning bill: %w", err)
	}
	return b, nil
}

func billWhere(f domain.BillFilters) (string, []any) {
	var conds []string
	var args []any

	if f.Folio != "" {
		conds = append(conds, "folio LIKE ?")
		args = append(args, likePattern(f.Folio))
	}
	if f.ProjectID != "" {
		conds = append(conds, "project_id = ?")
		args = append(args, f.ProjectID)
	}
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(f.Status))
	}
	if f.IssuedFrom != nil {
		conds = append(conds, "issued_at >= ?")
		args = append(args, f.IssuedFrom.Format(dateLayout))
	}
	if f.IssuedTo != nil {
		conds = append(conds, "issued_at <= ?")
		args = append(args, f.IssuedTo.Format(dateLayout))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *SQLiteBillRepo) List(ctx context.Context, f domain.BillFilters) (*domain.PagedResult[*domain.Bill], error) {
	where, args := billWhere(f)

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bills"+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting bills: %w", err)
	}

	query := `SELECT id, folio, project_id, amount, issued_at, status, created_at, updated_at
		FROM bills` + where + ` ORDER BY issued_at DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(args, f.Limit, f.Offset())...)
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w", err)
	}
	defer rows.Close()

	var out []*domain.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning bill row: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bills: %w", err)
	}

	return &domain.PagedResult[*domain.Bill]{Data: out, Total: total, Page: f.Page.Page, Limit: f.Limit}, nil
}

func (r *SQLiteBillRepo) Update(ctx context.Context, b *domain.Bill) error {
	query := `UPDATE bills SET folio = ?, project_id = ?, amount = ?, issued_at = ?, status = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		b.Folio,
		nullableString(b.ProjectID),
		b.Amount,
		b.IssuedAt.Format(dateLayout),
		string(b.Status),
		nowUTC(),
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating bill: %w", err)
	}
	return requireRow(res, "bill")
}

func (r *SQLiteBillRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bills WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting bill: %w", err)
	}
	return requireRow(res, "bill")
}

func scanBill(row rowScanner) (*domain.Bill, error) {
	var b domain.Bill
	var projectID sql.NullString
	var issuedAt, status, createdAt, updatedAt string

	err := row.Scan(&b.ID, &b.Folio, &projectID, &b.Amount, &issuedAt, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	b.ProjectID = projectID.String
	b.Status = domain.BillStatus(status)
	if t, err := time.Parse(dateLayout, issuedAt); err == nil {
		b.IssuedAt = t
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		b.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		b.UpdatedAt = t
	}
	return &b, nil
}
