package service

import (
	"context"

	"github.com/andresvaldez/despacho/internal/domain"
)

type ExpenseService interface {
	Create(ctx context.Context, e *domain.Expense) error
	GetByID(ctx context.Context, id string) (*domain.Expense, error)
	List(ctx context.Context, f domain.ExpenseFilters) (*domain.PagedResult[*domain.Expense], error)
	Update(ctx context.Context, e *domain.Expense) error
	Delete(ctx context.Context, id string) error
}

type SupplierService interface {
	Create(ctx context.Context, s *domain.Supplier) error
	GetByID(ctx context.Context, id string) (*domain.Supplier, error)
	List(ctx context.Context, f domain.SupplierFilters) (*domain.PagedResult[*domain.Supplier], error)
	Update(ctx context.Context, s *domain.Supplier) error
	Delete(ctx context.Context, id string) error
}

type ClientService interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, f domain.ClientFilters) (*domain.PagedResult[*domain.Client], error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id string) error
}

type ResponsibleService interface {
	Create(ctx context.Context, r *domain.Responsible) error
	GetByID(ctx context.Context, id string) (*domain.Responsible, error)
	List(ctx context.Context, f domain.ResponsibleFilters) (*domain.PagedResult[*domain.Responsible], error)
	Update(ctx context.Context, r *domain.Responsible) error
	Delete(ctx context.Context, id string) error
}

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, f domain.ProjectFilters) (*domain.PagedResult[*domain.Project], error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type BillService interface {
	Create(ctx context.Context, b *domain.Bill) error
	GetByID(ctx context.Context, id string) (*domain.Bill, error)
	List(ctx context.Context, f domain.BillFilters) (*domain.PagedResult[*domain.Bill], error)
	Update(ctx context.Context, b *domain.Bill) error
	Delete(ctx context.Context, id string) error
}

// CatalogService is the lookup boundary the typeahead controls call.
// Search never fails from the caller's point of view: lookup errors are
// logged as diagnostics and surface as zero results.
type CatalogService interface {
	Search(ctx context.Context, kind domain.CatalogType, term string) []domain.Catalog
	UpsertArea(ctx context.Context, c domain.Catalog) error
}

// StateService persists per-screen UI state snapshots. Malformed or
// missing stored data reads back as absent.
type StateService interface {
	Load(ctx context.Context, key string, out any) bool
	Save(ctx context.Context, key string, value any)
	Clear(ctx context.Context, key string)
}
