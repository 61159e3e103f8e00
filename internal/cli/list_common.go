package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/andresvaldez/despacho/internal/cli/formatter"
	"github.com/andresvaldez/despacho/internal/domain"
	"github.com/andresvaldez/despacho/internal/forms"
	"github.com/andresvaldez/despacho/internal/service"
)

// Storage keys for per-screen filter snapshots.
const (
	stateKeyExpenses     = "filters:expenses"
	stateKeySuppliers    = "filters:suppliers"
	stateKeyClients      = "filters:clients"
	stateKeyResponsibles = "filters:responsibles"
	stateKeyProjects     = "filters:projects"
	stateKeyBills        = "filters:bills"
)

// totalPages returns the page count for a result set, at least 1.
func totalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 1
	}
	pages := (total + limit - 1) / limit
	if pages < 1 {
		return 1
	}
	return pages
}

// pagerLine renders the "page x/y (n)" footer for a list.
func pagerLine(page, limit, total int) string {
	return formatter.Dim(fmt.Sprintf("página %d/%d  ·  %d registros", page, totalPages(total, limit), total))
}

// catalogNames loads an id-to-name map for row display.
func catalogNames(ctx context.Context, svc service.CatalogService, kind domain.CatalogType) map[string]string {
	out := make(map[string]string)
	for _, e := range svc.Search(ctx, kind, "") {
		out[e.ID] = e.Name
	}
	return out
}

// nameOr resolves an id against a catalog map, falling back to the id.
func nameOr(names map[string]string, id string) string {
	if id == "" {
		return formatter.Dim("—")
	}
	if n, ok := names[id]; ok {
		return n
	}
	return id
}

// wireDate renders an optional filter date in the stored snapshot form.
func wireDate(d *forms.CivilDate) string {
	if d == nil {
		return ""
	}
	return d.String()
}

// snapshotTime parses a stored snapshot date back into a filter value.
func snapshotTime(s string) *time.Time {
	if d, ok := forms.ParseDateInput(s); ok {
		t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
		return &t
	}
	return nil
}
