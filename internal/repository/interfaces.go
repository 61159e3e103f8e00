package repository

import (
	"context"

	"github.com/andresvaldez/despacho/internal/domain"
)

type ExpenseRepo interface {
	Create(ctx context.Context, e *domain.Expense) error
	GetByID(ctx context.Context, id string) (*domain.Expense, error)
	List(ctx context.Context, f domain.ExpenseFilters) (*domain.PagedResult[*domain.Expense], error)
	Update(ctx context.Context, e *domain.Expense) error
	Delete(ctx context.Context, id string) error
}

type SupplierRepo interface {
	Create(ctx context.Context, s *domain.Supplier) error
	GetByID(ctx context.Context, id string) (*domain.Supplier, error)
	List(ctx context.Context, f domain.SupplierFilters) (*domain.PagedResult[*domain.Supplier], error)
	Update(ctx context.Context, s *domain.Supplier) error
	Delete(ctx context.Context, id string) error
}

type ClientRepo interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, f domain.ClientFilters) (*domain.PagedResult[*domain.Client], error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id string) error
}

type ResponsibleRepo interface {
	Create(ctx context.Context, r *domain.Responsible) error
	GetByID(ctx context.Context, id string) (*domain.Responsible, error)
	List(ctx context.Context, f domain.ResponsibleFilters) (*domain.PagedResult[*domain.Responsible], error)
	Update(ctx context.Context, r *domain.Responsible) error
	Delete(ctx context.Context, id string) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, f domain.ProjectFilters) (*domain.PagedResult[*domain.Project], error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type BillRepo interface {
	Create(ctx context.Context, b *domain.Bill) error
	GetByID(ctx context.Context, id string) (*domain.Bill, error)
	List(ctx context.Context, f domain.BillFilters) (*domain.PagedResult[*domain.Bill], error)
	Update(ctx context.Context, b *domain.Bill) error
	Delete(ctx context.Context, id string) error
}

// CatalogRepo serves the {id, name} option lists behind the typeahead
// controls. Term-searchable catalogs match by case-insensitive substring.
type CatalogRepo interface {
	Suppliers(ctx context.Context, term string) ([]domain.Catalog, error)
	Projects(ctx context.Context, term string) ([]domain.Catalog, error)
	Clients(ctx context.Context, term string) ([]domain.Catalog, error)
	Responsibles(ctx context.Context) ([]domain.Catalog, error)
	Areas(ctx context.Context) ([]domain.Catalog, error)
	UpsertArea(ctx context.Context, c domain.Catalog) error
}

// StateRepo is the key-value store behind filter-state persistence.
// Get returns (nil, nil) when the key is absent.
type StateRepo interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
