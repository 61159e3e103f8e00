package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/andresvaldez/despacho/internal/domain"
)

// newSeedCmd populates an empty database with a small working data set
// so the console has something to show on first run.
func newSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample catalogs, projects and movements",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), app, cmd)
		},
	}
}

func runSeed(ctx context.Context, app *App, cmd *cobra.Command) error {
	areas := []domain.Catalog{
		{ID: "area-construccion", Name: "Construcción"},
		{ID: "area-electrico", Name: "Material eléctrico"},
		{ID: "area-papeleria", Name: "Papelería"},
		{ID: "area-transporte", Name: "Transporte"},
	}
	for _, a := range areas {
		if err := app.Catalog.UpsertArea(ctx, a); err != nil {
			return fmt.Errorf("seed area %s: %w", a.ID, err)
		}
	}

	suppliers := []*domain.Supplier{
		{CompanyName: "Ferretería del Norte", Email: "ventas@fnorte.mx", Phone: "+526681234567", AreaIDs: []string{"area-construccion"}},
		{CompanyName: "Eléctrica Sinaloa", Email: "contacto@elsin.mx", Phone: "+526687654321", AreaIDs: []string{"area-electrico", "area-construccion"}},
		{CompanyName: "Papelera Central", Email: "pedidos@papelera.mx", Phone: "+526689988776", AreaIDs: []string{"area-papeleria"}},
	}
	for _, s := range suppliers {
		if err := app.Suppliers.Create(ctx, s); err != nil {
			return fmt.Errorf("seed supplier %q: %w", s.CompanyName, err)
		}
	}

	clients := []*domain.Client{
		{Name: "Constructora Pacífico", Email: "admin@cpacifico.mx", Phone: "+526683332211"},
		{Name: "Grupo Valdez", Email: "contacto@gvaldez.mx", Phone: "+526684445566"},
	}
	for _, c := range clients {
		if err := app.Clients.Create(ctx, c); err != nil {
			return fmt.Errorf("seed client %q: %w", c.Name, err)
		}
	}

	responsibles := []*domain.Responsible{
		{Name: "Ana Beltrán", Email: "ana@despacho.mx", Phone: "+526681112233"},
		{Name: "Carlos Osuna", Email: "carlos@despacho.mx", Phone: "+526682223344"},
	}
	for _, r := range responsibles {
		if err := app.Responsibles.Create(ctx, r); err != nil {
			return fmt.Errorf("seed responsible %q: %w", r.Name, err)
		}
	}

	start := time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC)
	projects := []*domain.Project{
		{Name: "Remodelación oficinas", ClientID: clients[0].ID, ResponsibleID: responsibles[0].ID, StartDate: &start, Status: domain.ProjectActive},
		{Name: "Bodega Culiacán", ClientID: clients[1].ID, ResponsibleID: responsibles[1].ID, Status: domain.ProjectPaused},
	}
	for _, p := range projects {
		if err := app.Projects.Create(ctx, p); err != nil {
			return fmt.Errorf("seed project %q: %w", p.Name, err)
		}
	}

	expenses := []*domain.Expense{
		{Concept: "Cemento y varilla", Date: start.AddDate(0, 0, 3), Amount: 18450.50, SupplierID: suppliers[0].ID, ProjectID: projects[0].ID},
		{Concept: "Cableado planta baja", Date: start.AddDate(0, 0, 10), Amount: 7320, SupplierID: suppliers[1].ID, ProjectID: projects[0].ID},
		{Concept: "Papelería de obra", Date: start.AddDate(0, 1, 0), Amount: 980.75, SupplierID: suppliers[2].ID, ProjectID: projects[1].ID},
	}
	for _, e := range expenses {
		if err := app.Expenses.Create(ctx, e); err != nil {
			return fmt.Errorf("seed expense %q: %w", e.Concept, err)
		}
	}

	bills := []*domain.Bill{
		{Folio: "F-0001", ProjectID: projects[0].ID, Amount: 125000, IssuedAt: start.AddDate(0, 0, 20), Status: domain.BillPaid},
		{Folio: "F-0002", ProjectID: projects[0].ID, Amount: 87500, IssuedAt: start.AddDate(0, 1, 20), Status: domain.BillPending},
		{Folio: "F-0003", ProjectID: projects[1].ID, Amount: 43000, IssuedAt: start.AddDate(0, 2, 1), Status: domain.BillOverdue},
	}
	for _, b := range bills {
		if err := app.Bills.Create(ctx, b); err != nil {
			return fmt.Errorf("seed bill %s: %w", b.Folio, err)
		}
	}

	cmd.Printf("Seeded %d suppliers, %d clients, %d responsibles, %d projects, %d expenses, %d bills\n",
		len(suppliers), len(clients), len(responsibles), len(projects), len(expenses), len(bills))
	return nil
}
