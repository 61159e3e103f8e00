package domain

// Catalog is a selectable {id, name} option from a lookup collection
// (suppliers, projects, clients, areas, responsible parties). Identity is
// by ID; Name is display-only and not guaranteed unique.
type Catalog struct {
	ID   string
	Name string
}

// CatalogType selects which lookup collection a typeahead searches.
type CatalogType string

const (
	CatalogSupplier    CatalogType = "supplier"
	CatalogProject     CatalogType = "project"
	CatalogClient      CatalogType = "client"
	CatalogArea        CatalogType = "area"
	CatalogResponsible CatalogType = "responsible"
)
