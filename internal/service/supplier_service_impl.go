package service

import (
	"context"
	"time"

	"github.com/andresvaldez/despacho/internal/db"
	"github.com/andresvaldez/despacho/internal/domain"
	"github.com/andresvaldez/despacho/internal/repository"
	"github.com/google/uuid"
)

// supplierService writes through a UnitOfWork so the supplier row and its
// area assignments commit atomically.
type supplierService struct {
	suppliers repository.SupplierRepo
	uow       db.UnitOfWork
}

func NewSupplierService(suppliers repository.SupplierRepo, uow db.UnitOfWork) SupplierService {
	return &supplierService{suppliers: suppliers, uow: uow}
}

func (s *supplierService) Create(ctx context.Context, sup *domain.Supplier) error {
	if err := sup.Validate(); err != nil {
		return err
	}
	if sup.ID == "" {
		sup.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	sup.CreatedAt = now
	sup.UpdatedAt = now
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteSupplierRepo(tx).Create(ctx, sup)
	})
}

func (s *supplierService) GetByID(ctx context.Context, id string) (*domain.Supplier, error) {
	return s.suppliers.GetByID(ctx, id)
}

func (s *supplierService) List(ctx context.Context, f domain.SupplierFilters) (*domain.PagedResult[*domain.Supplier], error) {
	if f.Limit <= 0 {
		f.Page = domain.DefaultPage()
	}
	return s.suppliers.List(ctx, f)
}

func (s *supplierService) Update(ctx context.Context, sup *domain.Supplier) error {
	if err := sup.Validate(); err != nil {
		return err
	}
	sup.UpdatedAt = time.Now().UTC()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteSupplierRepo(tx).Update(ctx, sup)
	})
}

func (s *supplierService) Delete(ctx context.Context, id string) error {
	return s.suppliers.Delete(ctx, id)
}
