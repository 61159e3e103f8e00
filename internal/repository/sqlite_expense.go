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

// SQLiteExpenseRepo implements ExpenseRepo using a SQLite database.
type SQLiteExpenseRepo struct {
	db db.DBTX
}

// NewSQLiteExpenseRepo creates a new SQLiteExpenseRepo.
func NewSQLiteExpenseRepo(conn db.DBTX) *SQLiteExpenseRepo {
	return &SQLiteExpenseRepo{db: conn}
}

func (r *SQLiteExpenseRepo) Create(ctx context.Context, e *domain.Expense) error {
	query := `INSERT INTO expenses (id, concept, date, amount, supplier_id, project_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Concept,
		e.Date.Format(dateLayout),
		e.Amount,
		nullableString(e.SupplierID),
		nullableString(e.ProjectID),
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting expense: %w", err)
	}
	return nil
}

func (r *SQLiteExpenseRepo) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	query := `SELECT id, concept, date, amount, supplier_id, project_id, created_at, updated_at
		FROM expenses WHERE id = ?`
	e, err := scanExpense(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("expense: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning expense: %w", err)
	}
	return e, nil
}

// expenseWhere builds the WHERE clause and args for the given filters.
func expenseWhere(f domain.ExpenseFilters) (string, []any) {
	var conds []string
	var args []any

	if f.Concept != "" {
		conds = append(conds, "concept LIKE ?")
		args = append(args, likePattern(f.Concept))
	}
	if len(f.SupplierIDs) > 0 {
		conds = append(conds, fmt.Sprintf("supplier_id IN (%s)", placeholders(len(f.SupplierIDs))))
		for _, id := range f.SupplierIDs {
			args = append(args, id)
		}
	}
	if f.ProjectID != "" {
		conds = append(conds, "project_id = ?")
		args = append(args, f.ProjectID)
	}
	if f.DateFrom != nil {
		conds = append(conds, "date >= ?")
		args = append(args, f.DateFrom.Format(dateLayout))
	}
	if f.DateTo != nil {
		conds = append(conds, "date <= ?")
		args = append(args, f.DateTo.Format(dateLayout))
	}
	if f.AmountMin != nil {
		conds = append(conds, "amount >= ?")
		args = append(args, *f.AmountMin)
	}
	if f.AmountMax != nil {
		conds = append(conds, "amount <= ?")
		args = append(args, *f.AmountMax)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *SQLiteExpenseRepo) List(ctx context.Context, f domain.ExpenseFilters) (*domain.PagedResult[*domain.Expense], error) {
	where, args := expenseWhere(f)

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM expenses"+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting expenses: %w", err)
	}

	query := `SELECT id, concept, date, amount, supplier_id, project_id, created_at, updated_at
		FROM expenses` + where + ` ORDER BY date DESC, created_at DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(args, f.Limit, f.Offset())...)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var out []*domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense row: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expenses: %w", err)
	}

	return &domain.PagedResult[*domain.Expense]{Data: out, Total: total, Page: f.Page.Page, Limit: f.Limit}, nil
}

func (r *SQLiteExpenseRepo) Update(ctx context.Context, e *domain.Expense) error {
	query := `UPDATE expenses SET concept = ?, date = ?, amount = ?, supplier_id = ?, project_id = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.Concept,
		e.Date.Format(dateLayout),
		e.Amount,
		nullableString(e.SupplierID),
		nullableString(e.ProjectID),
		nowUTC(),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating expense: %w", err)
	}
	return requireRow(res, "expense")
}

func (r *SQLiteExpenseRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}
	return requireRow(res, "expense")
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*domain.Expense, error) {
	var e domain.Expense
	var date, createdAt, updatedAt string
	var supplierID, projectID sql.NullString

	err := row.Scan(&e.ID, &e.Concept, &date, &e.Amount, &supplierID, &projectID, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	e.SupplierID = supplierID.String
	e.ProjectID = projectID.String
	if t, err := time.Parse(dateLayout, date); err == nil {
		e.Date = t
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		e.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		e.UpdatedAt = t
	}
	return &e, nil
}

// requireRow converts a zero-row write into ErrNotFound.
func requireRow(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return nil
}
