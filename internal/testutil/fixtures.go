package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/andresvaldez/despacho/internal/domain"
)

// Fixture builders produce valid entities with sensible defaults; the
// options override just the field a test cares about.

type SupplierOption func(*domain.Supplier)

func WithSupplierAreas(ids ...string) SupplierOption {
	return func(s *domain.Supplier) {
		s.AreaIDs = ids
	}
}

func WithSupplierContact(email, phone string) SupplierOption {
	return func(s *domain.Supplier) {
		s.Email = email
		s.Phone = phone
	}
}

func NewTestSupplier(companyName string, opts ...SupplierOption) *domain.Supplier {
	now := time.Now().UTC()
	s := &domain.Supplier{
		ID:          uuid.New().String(),
		CompanyName: companyName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func NewTestClient(name string) *domain.Client {
	now := time.Now().UTC()
	return &domain.Client{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NewTestResponsible(name string) *domain.Responsible {
	now := time.Now().UTC()
	return &domain.Responsible{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithProjectClient(clientID string) ProjectOption {
	return func(p *domain.Project) {
		p.ClientID = clientID
	}
}

func WithProjectResponsible(responsibleID string) ProjectOption {
	return func(p *domain.Project) {
		p.ResponsibleID = responsibleID
	}
}

func WithProjectDates(start, end time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = &start
		p.EndDate = &end
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    domain.ProjectActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type ExpenseOption func(*domain.Expense)

func WithExpenseAmount(a float64) ExpenseOption {
	return func(e *domain.Expense) {
		e.Amount = a
	}
}

func WithExpenseDate(d time.Time) ExpenseOption {
	return func(e *domain.Expense) {
		e.Date = d
	}
}

func WithExpenseSupplier(supplierID string) ExpenseOption {
	return func(e *domain.Expense) {
		e.SupplierID = supplierID
	}
}

func WithExpenseProject(projectID string) ExpenseOption {
	return func(e *domain.Expense) {
		e.ProjectID = projectID
	}
}

func NewTestExpense(concept string, opts ...ExpenseOption) *domain.Expense {
	now := time.Now().UTC()
	e := &domain.Expense{
		ID:        uuid.New().String(),
		Concept:   concept,
		Date:      time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Amount:    100,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type BillOption func(*domain.Bill)

func WithBillStatus(s domain.BillStatus) BillOption {
	return func(b *domain.Bill) {
		b.Status = s
	}
}

func WithBillAmount(a float64) BillOption {
	return func(b *domain.Bill) {
		b.Amount = a
	}
}

func WithBillIssuedAt(t time.Time) BillOption {
	return func(b *domain.Bill) {
		b.IssuedAt = t
	}
}

func WithBillProject(projectID string) BillOption {
	return func(b *domain.Bill) {
		b.ProjectID = projectID
	}
}

func NewTestBill(folio string, opts ...BillOption) *domain.Bill {
	now := time.Now().UTC()
	b := &domain.Bill{
		ID:        uuid.New().String(),
		Folio:     folio,
		Amount:    1000,
		IssuedAt:  time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Status:    domain.BillPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func NewTestArea(id, name string) domain.Catalog {
	return domain.Catalog{ID: id, Name: name}
}
