package cli

import (
	"github.com/andresvaldez/despacho/internal/service"
)

// App holds the service interfaces the console works against.
type App struct {
	Expenses     service.ExpenseService
	Suppliers    service.SupplierService
	Clients      service.ClientService
	Responsibles service.ResponsibleService
	Projects     service.ProjectService
	Bills        service.BillService
	Catalog      service.CatalogService
	State        service.StateService

	// IsInteractive reports whether stdin is attached to a terminal.
	IsInteractive func() bool
}

// SharedState is the context shared across all views via pointer.
type SharedState struct {
	App *App

	// Terminal dimensions
	Width  int
	Height int
}

// ContentHeight returns the height available for view content after
// the header (2 lines) and status bar (2 lines).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
