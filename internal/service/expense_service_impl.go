package service

import (
	"context"
	"time"

	"github.com/andresvaldez/despacho/internal/domain"
	"github.com/andresvaldez/despacho/internal/repository"
	"github.com/google/uuid"
)

type expenseService struct {
	expenses repository.ExpenseRepo
}

func NewExpenseService(expenses repository.ExpenseRepo) ExpenseService {
	return &expenseService{expenses: expenses}
}

func (s *expenseService) Create(ctx context.Context, e *domain.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	return s.expenses.Create(ctx, e)
}

func (s *expenseService) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	return s.expenses.GetByID(ctx, id)
}

func (s *expenseService) List(ctx context.Context, f domain.ExpenseFilters) (*domain.PagedResult[*domain.Expense], error) {
	if f.Limit <= 0 {
		f.Page = domain.DefaultPage()
	}
	return s.expenses.List(ctx, f)
}

func (s *expenseService) Update(ctx context.Context, e *domain.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	e.UpdatedAt = time.Now().UTC()
	return s.expenses.Update(ctx, e)
}

func (s *expenseService) Delete(ctx context.Context, id string) error {
	return s.expenses.Delete(ctx, id)
}
