package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andresvaldez/despacho/internal/cli/formatter"
	"github.com/andresvaldez/despacho/internal/domain"
	"github.com/andresvaldez/despacho/internal/forms"
)

type supplierFilterSnapshot struct {
	CompanyName string   `json:"companyName,omitempty"`
	AreaIDs     []string `json:"areaIds,omitempty"`
	Page        int      `json:"page,omitempty"`
}

type supplierListLoadedMsg struct {
	result    *domain.PagedResult[*domain.Supplier]
	areaNames map[string]string
	err       error
}

type supplierListView struct {
	state *SharedState

	bar     *filterBar
	name    *forms.MaskedField
	areas   *forms.MultiSelect
	filters domain.SupplierFilters
	dirty   bool

	rows      []*domain.Supplier
	total     int
	areaNames map[string]string
	cursor    int
	loading   bool
	err       error
}

func newSupplierListView(state *SharedState) *supplierListView {
	v := &supplierListView{
		state:   state,
		filters: domain.SupplierFilters{Page: domain.DefaultPage()},
		loading: true,
	}

	v.name = forms.NewMaskedField("Razón social", "buscar proveedor", forms.MaskConfig{Kind: forms.KindText})
	v.areas = forms.NewRemoteMultiSelect("Áreas", domain.CatalogArea, state.App.Catalog)

	v.name.OnChange(func(val any) {
		s, _ := val.(string)
		if v.filters.CompanyName != s {
			v.filters.CompanyName = s
			v.filters.Page = domain.DefaultPage()
			v.dirty = true
		}
	})
	v.areas.OnChange(func(val any) {
		ids, _ := val.([]string)
		v.filters.AreaIDs = ids
		v.filters.Page = domain.DefaultPage()
		v.dirty = true
	})

	v.bar = newFilterBar(v.name, v.areas)
	v.restore()
	return v
}

func (v *supplierListView) restore() {
	var snap supplierFilterSnapshot
	if !v.state.App.State.Load(context.Background(), stateKeySuppliers, &snap) {
		return
	}
	v.name.SetValue(snap.CompanyName)
	v.areas.SetValue(snap.AreaIDs)
	v.filters.CompanyName = snap.CompanyName
	v.filters.AreaIDs = snap.AreaIDs
	if snap.Page > 1 {
		v.filters.Page.Page = snap.Page
	}
	v.dirty = false
}

func (v *supplierListView) saveSnapshot() {
	v.state.App.State.Save(context.Background(), stateKeySuppliers, supplierFilterSnapshot{
		CompanyName: v.filters.CompanyName,
		AreaIDs:     v.filters.AreaIDs,
		Page:        v.filters.Page.Page,
	})
}

func (v *supplierListView) clearFilters() tea.Cmd {
	v.name.Clear()
	v.areas.Clear()
	v.filters = domain.SupplierFilters{Page: domain.DefaultPage()}
	v.dirty = false
	v.state.App.State.Clear(context.Background(), stateKeySuppliers)
	v.loading = true
	return v.load()
}

func (v *supplierListView) ID() ViewID          { return ViewSupplierList }
func (v *supplierListView) Title() string       { return "Proveedores" }
func (v *supplierListView) FilterFocused() bool { return v.bar.Editing() }

func (v *supplierListView) ShortHelp() []key.Binding {
	return listShortHelp(v.bar.Editing())
}

func (v *supplierListView) Init() tea.Cmd { return v.load() }

func (v *supplierListView) load() tea.Cmd {
	app := v.state.App
	f := v.filters
	return func() tea.Msg {
		ctx := context.Background()
		res, err := app.Suppliers.List(ctx, f)
		return supplierListLoadedMsg{
			result:    res,
			err:       err,
			areaNames: catalogNames(ctx, app.Catalog, domain.CatalogArea),
		}
	}
}

func (v *supplierListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case supplierListLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.rows = msg.result.Data
		v.total = msg.result.Total
		v.areaNames = msg.areaNames
		if v.cursor >= len(v.rows) {
			v.cursor = 0
		}
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.load()

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, v.afterBar(v.bar.Update(msg))
}

func (v *supplierListView) afterBar(cmd tea.Cmd) tea.Cmd {
	if !v.dirty {
		return cmd
	}
	v.dirty = false
	v.saveSnapshot()
	v.loading = true
	return tea.Batch(cmd, v.load())
}

func (v *supplierListView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.bar.Editing() {
		if msg.Type == tea.KeyEsc {
			v.bar.Exit()
			return v, v.afterBar(nil)
		}
		return v, v.afterBar(v.bar.Update(msg))
	}

	switch msg.String() {
	case "f":
		return v, v.bar.Enter()
	case "c":
		return v, v.clearFilters()
	case "r":
		v.loading = true
		return v, v.load()
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.rows)-1 {
			v.cursor++
		}
	case "left", "h":
		if v.filters.Page.Page > 1 {
			v.filters.Page.Page--
			v.saveSnapshot()
			v.loading = true
			return v, v.load()
		}
	case "right", "l":
		if v.filters.Page.Page < totalPages(v.total, v.filters.Limit) {
			v.filters.Page.Page++
			v.saveSnapshot()
			v.loading = true
			return v, v.load()
		}
	case "n":
		return v, pushView(newSupplierFormView(v.state, nil))
	case "e":
		if v.cursor < len(v.rows) {
			return v, pushView(newSupplierFormView(v.state, v.rows[v.cursor]))
		}
	case "x":
		if v.cursor < len(v.rows) {
			return v, v.confirmDelete(v.rows[v.cursor])
		}
	}
	return v, nil
}

func (v *supplierListView) confirmDelete(s *domain.Supplier) tea.Cmd {
	app := v.state.App
	confirmed := false
	form := confirmForm(fmt.Sprintf("¿Eliminar el proveedor %q?", s.CompanyName), &confirmed)
	return pushView(newHuhView("Eliminar", form, func() tea.Cmd {
		if !confirmed {
			return nil
		}
		if err := app.Suppliers.Delete(context.Background(), s.ID); err != nil {
			return showStatus(formatter.StyleRed.Render("✗ " + err.Error()))
		}
		return showStatus(formatter.StyleGreen.Render("Proveedor eliminado"))
	}))
}

func (v *supplierListView) View() string {
	var b strings.Builder
	b.WriteString(v.bar.View())
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(formatter.Dim("Cargando..."))
	case v.err != nil:
		b.WriteString(formatter.StyleRed.Render("✗ " + v.err.Error()))
	case len(v.rows) == 0:
		b.WriteString(formatter.Dim("Sin resultados."))
	default:
		rows := make([][]string, 0, len(v.rows))
		for i, s := range v.rows {
			marker := "  "
			if i == v.cursor {
				marker = formatter.StyleHeader.Render("> ")
			}
			areas := make([]string, 0, len(s.AreaIDs))
			for _, id := range s.AreaIDs {
				areas = append(areas, nameOr(v.areaNames, id))
			}
			rows = append(rows, []string{
				marker + formatter.Truncate(s.CompanyName, 28),
				s.Email,
				formatter.Phone(s.Phone),
				formatter.Truncate(strings.Join(areas, ", "), 30),
			})
		}
		b.WriteString(formatter.RenderTable(
			[]string{"  RAZÓN SOCIAL", "EMAIL", "TELÉFONO", "ÁREAS"},
			rows,
		))
		b.WriteString(pagerLine(v.filters.Page.Page, v.filters.Limit, v.total))
	}
	return b.String()
}

// newSupplierFormView builds the create/edit form for a supplier.
func newSupplierFormView(state *SharedState, existing *domain.Supplier) *entityFormView {
	name := forms.NewMaskedField("Razón social", "", forms.MaskConfig{Kind: forms.KindText})
	email := forms.NewMaskedField("Email", "contacto@empresa.mx", forms.MaskConfig{Kind: forms.KindEmail})
	phone := forms.NewMaskedField("Teléfono", "10 dígitos", forms.MaskConfig{Kind: forms.KindPhone})
	areas := forms.NewRemoteMultiSelect("Áreas", domain.CatalogArea, state.App.Catalog)

	title := "Nuevo proveedor"
	doneStatus := "Proveedor creado"
	if existing != nil {
		title = "Editar proveedor"
		doneStatus = "Proveedor actualizado"
		name.SetValue(existing.CompanyName)
		email.SetValue(existing.Email)
		phone.SetValue(existing.Phone)
		areas.SetValue(existing.AreaIDs)
	}

	save := func(ctx context.Context) error {
		s := domain.Supplier{}
		if existing != nil {
			s = *existing
		}
		s.CompanyName = name.Text()
		s.Email = email.Text()
		s.Phone = phone.Text()
		s.AreaIDs = areas.Value()
		if existing != nil {
			return state.App.Suppliers.Update(ctx, &s)
		}
		return state.App.Suppliers.Create(ctx, &s)
	}

	return newEntityFormView(state, title, doneStatus,
		[]forms.Field{name, email, phone, areas}, save)
}

// listShortHelp is the shared key-hint set for the list screens.
func listShortHelp(editing bool) []key.Binding {
	if editing {
		return []key.Binding{
			key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next filter")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filters")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filters")),
		key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←→", "page")),
	}
}
