package service

import (
	"context"
	"time"

	"github.com/andresvaldez/despacho/internal/domain"
	"github.com/andresvaldez/despacho/internal/repository"
	"github.com/google/uuid"
)

type billService struct {
	bills repository.BillRepo
}

func NewBillService(bills repository.BillRepo) BillService {
	return &billService{bills: bills}
}

func (s *billService) Create(ctx context.Context, b *domain.Bill) error {
	if b.Status == "" {
		b.Status = domain.BillPending
	}
	if err := b.Validate(); err != nil {
		return err
	}
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	return s.bills.Create(ctx, b)
}

func (s *billService) GetByID(ctx context.Context, id string) (*domain.Bill, error) {
	return s.bills.GetByID(ctx, id)
}

func (s *billService) List(ctx context.Context, f domain.BillFilters) (*domain.PagedResult[*domain.Bill], error) {
	if f.Limit <= 0 {
		f.Page = domain.DefaultPage()
	}
	return s.bills.List(ctx, f)
}

func (s *billService) Update(ctx context.Context, b *domain.Bill) error {
	if err := b.Validate(); err != nil {
		return err
	}
	b.UpdatedAt = time.Now().UTC()
	return s.bills.Update(ctx, b)
}

func (s *billService) Delete(ctx context.Context, id string) error {
	return s.bills.Delete(ctx, id)
}
