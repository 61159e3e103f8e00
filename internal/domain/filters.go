package domain

import "time"

// Page holds the pagination slice of a list query. Page numbers start at 1.
type Page struct {
	Page  int
	Limit int
}

// DefaultPage is the baseline pagination for every list screen.
func DefaultPage() Page {
	return Page{Page: 1, Limit: 5}
}

// Offset returns the SQL offset for the page, never negative.
func (p Page) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// PagedResult is one page of rows plus the total match count.
type PagedResult[T any] struct {
	Data  []T
	Total int
	Page  int
	Limit int
}

// ExpenseFilters are the backend-shaped filters for the expenses list.
type ExpenseFilters struct {
	Page
	Concept     string
	SupplierIDs []string
	ProjectID   string
	DateFrom    *time.Time
	DateTo      *time.Time
	AmountMin   *float64
	AmountMax   *float64
}

// SupplierFilters are the backend-shaped filters for the suppliers list.
type SupplierFilters struct {
	Page
	CompanyName string
	Email       string
	Phone       string
	AreaIDs     []string
}

type ClientFilters struct {
	Page
	Name  string
	Email string
	Phone string
}

type ResponsibleFilters struct {
	Page
	Name string
}

type ProjectFilters struct {
	Page
	Name          string
	ClientID      string
	ResponsibleID string
	Status        ProjectStatus
	StartFrom     *time.Time
	StartTo       *time.Time
}

type BillFilters struct {
	Page
	Folio      string
	ProjectID  string
	Status     BillStatus
	IssuedFrom *time.Time
	IssuedTo   *time.Time
}
