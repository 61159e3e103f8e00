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

// expenseFilterSnapshot is the persisted shape of the screen's filters.
type expenseFilterSnapshot struct {
	Concept     string   `json:"concept,omitempty"`
	SupplierIDs []string `json:"supplierIds,omitempty"`
	ProjectID   string   `json:"projectId,omitempty"`
	DateFrom    string   `json:"dateFrom,omitempty"`
	DateTo      string   `json:"dateTo,omitempty"`
	Page        int      `json:"page,omitempty"`
}

type expenseListLoadedMsg struct {
	result        *domain.PagedResult[*domain.Expense]
	supplierNames map[string]string
	projectNames  map[string]string
	err           error
}

// expenseListView is the expenses screen: a filter bar over the paged
// expense table. Filter edits reload the list and persist the snapshot
// so the screen reopens exactly as it was left.
type expenseListView struct {
	state *SharedState

	bar      *filterBar
	concept  *forms.MaskedField
	supplier *forms.MultiSelect
	project  *forms.Typeahead
	period   *forms.DateField

	filters domain.ExpenseFilters
	dirty   bool

	rows          []*domain.Expense
	total         int
	supplierNames map[string]string
	projectNames  map[string]string
	cursor        int
	loading       bool
	err           error
}

func newExpenseListView(state *SharedState) *expenseListView {
	v := &expenseListView{
		state:   state,
		filters: domain.ExpenseFilters{Page: domain.DefaultPage()},
		loading: true,
	}

	v.concept = forms.NewMaskedField("Concepto", "buscar concepto", forms.MaskConfig{Kind: forms.KindText})
	v.supplier = forms.NewRemoteMultiSelect("Proveedores", domain.CatalogSupplier, state.App.Catalog)
	v.project = forms.NewRemoteTypeahead("Proyecto", domain.CatalogProject, state.App.Catalog)
	v.period = forms.NewDateField("Periodo", forms.DateRangeMode)

	v.concept.OnChange(func(val any) {
		s, _ := val.(string)
		if v.filters.Concept != s {
			v.filters.Concept = s
			v.resetPage()
		}
	})
	v.supplier.OnChange(func(val any) {
		ids, _ := val.([]string)
		v.filters.SupplierIDs = ids
		v.resetPage()
	})
	v.project.OnSelect(func(e domain.Catalog) {
		v.filters.ProjectID = e.ID
		v.resetPage()
	})
	v.project.OnChange(func(val any) {
		if val == nil && v.filters.ProjectID != "" {
			v.filters.ProjectID = ""
			v.resetPage()
		}
	})
	v.period.OnChange(func(val any) {
		r, _ := val.(forms.DateRange)
		v.filters.DateFrom = snapshotTime(wireDate(r.Start))
		v.filters.DateTo = snapshotTime(wireDate(r.End))
		v.resetPage()
	})

	v.bar = newFilterBar(v.concept, v.supplier, v.project, v.period)
	v.restore()
	return v
}

// resetPage returns to the first page after a filter change and marks
// the view for reload and snapshot save.
func (v *expenseListView) resetPage() {
	v.filters.Page = domain.Page{Page: 1, Limit: v.filters.Limit}
	if v.filters.Limit <= 0 {
		v.filters.Page = domain.DefaultPage()
	}
	v.dirty = true
}

// restore patches the controls and filters from the saved snapshot, so
// the first load already runs the persisted search.
func (v *expenseListView) restore() {
	var snap expenseFilterSnapshot
	if !v.state.App.State.Load(context.Background(), stateKeyExpenses, &snap) {
		return
	}

	v.concept.SetValue(snap.Concept)
	v.supplier.SetValue(snap.SupplierIDs)
	v.project.SetValue(snap.ProjectID)
	if snap.DateFrom != "" || snap.DateTo != "" {
		var r forms.DateRange
		if d, ok := forms.ParseDateInput(snap.DateFrom); ok {
			r.Start = &d
		}
		if d, ok := forms.ParseDateInput(snap.DateTo); ok {
			r.End = &d
		}
		v.period.SetValue(r)
	}

	v.filters.Concept = snap.Concept
	v.filters.SupplierIDs = snap.SupplierIDs
	v.filters.ProjectID = snap.ProjectID
	v.filters.DateFrom = snapshotTime(snap.DateFrom)
	v.filters.DateTo = snapshotTime(snap.DateTo)
	if snap.Page > 1 {
		v.filters.Page.Page = snap.Page
	}
	v.dirty = false
}

func (v *expenseListView) saveSnapshot() {
	r := v.period.Range()
	snap := expenseFilterSnapshot{
		Concept:     v.filters.Concept,
		SupplierIDs: v.filters.SupplierIDs,
		ProjectID:   v.filters.ProjectID,
		DateFrom:    wireDate(r.Start),
		DateTo:      wireDate(r.End),
		Page:        v.filters.Page.Page,
	}
	v.state.App.State.Save(context.Background(), stateKeyExpenses, snap)
}

func (v *expenseListView) clearFilters() tea.Cmd {
	v.concept.Clear()
	v.supplier.Clear()
	v.project.Clear()
	v.period.Clear()
	v.filters = domain.ExpenseFilters{Page: domain.DefaultPage()}
	v.dirty = false
	v.state.App.State.Clear(context.Background(), stateKeyExpenses)
	v.loading = true
	return v.load()
}

func (v *expenseListView) ID() ViewID    { return ViewExpenseList }
func (v *expenseListView) Title() string { return "Gastos" }

// FilterFocused lets the app model route every key here while a filter
// control is being edited.
func (v *expenseListView) FilterFocused() bool { return v.bar.Editing() }

func (v *expenseListView) ShortHelp() []key.Binding {
	return listShortHelp(v.bar.Editing())
}

func (v *expenseListView) Init() tea.Cmd {
	return v.load()
}

func (v *expenseListView) load() tea.Cmd {
	app := v.state.App
	f := v.filters
	return func() tea.Msg {
		ctx := context.Background()
		res, err := app.Expenses.List(ctx, f)
		return expenseListLoadedMsg{
			result:        res,
			err:           err,
			supplierNames: catalogNames(ctx, app.Catalog, domain.CatalogSupplier),
			projectNames:  catalogNames(ctx, app.Catalog, domain.CatalogProject),
		}
	}
}

func (v *expenseListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case expenseListLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.rows = msg.result.Data
		v.total = msg.result.Total
		v.supplierNames = msg.supplierNames
		v.projectNames = msg.projectNames
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

	cmd := v.bar.Update(msg)
	return v, v.afterBar(cmd)
}

// afterBar batches the bar's command with a reload and snapshot save
// when a filter value changed.
func (v *expenseListView) afterBar(cmd tea.Cmd) tea.Cmd {
	if !v.dirty {
		return cmd
	}
	v.dirty = false
	v.saveSnapshot()
	v.loading = true
	return tea.Batch(cmd, v.load())
}

func (v *expenseListView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.bar.Editing() {
		if msg.Type == tea.KeyEsc {
			v.bar.Exit()
			return v, v.afterBar(nil)
		}
		cmd := v.bar.Update(msg)
		return v, v.afterBar(cmd)
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
		return v, pushView(newExpenseFormView(v.state, nil))
	case "e":
		if v.cursor < len(v.rows) {
			return v, pushView(newExpenseFormView(v.state, v.rows[v.cursor]))
		}
	case "x":
		if v.cursor < len(v.rows) {
			return v, v.confirmDelete(v.rows[v.cursor])
		}
	}
	return v, nil
}

func (v *expenseListView) confirmDelete(e *domain.Expense) tea.Cmd {
	app := v.state.App
	confirmed := false
	form := confirmForm(fmt.Sprintf("¿Eliminar el gasto %q?", e.Concept), &confirmed)
	return pushView(newHuhView("Eliminar", form, func() tea.Cmd {
		if !confirmed {
			return nil
		}
		if err := app.Expenses.Delete(context.Background(), e.ID); err != nil {
			return showStatus(formatter.StyleRed.Render("✗ " + err.Error()))
		}
		return showStatus(formatter.StyleGreen.Render("Gasto eliminado"))
	}))
}

func (v *expenseListView) View() string {
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
		for i, e := range v.rows {
			marker := "  "
			if i == v.cursor {
				marker = formatter.StyleHeader.Render("> ")
			}
			rows = append(rows, []string{
				marker + formatter.Date(e.Date),
				formatter.Truncate(e.Concept, 32),
				formatter.Money(e.Amount),
				nameOr(v.supplierNames, e.SupplierID),
				nameOr(v.projectNames, e.ProjectID),
			})
		}
		b.WriteString(formatter.RenderTable(
			[]string{"  FECHA", "CONCEPTO", "MONTO", "PROVEEDOR", "PROYECTO"},
			rows,
		))
		b.WriteString(pagerLine(v.filters.Page.Page, v.filters.Limit, v.total))
	}

	return b.String()
}

// newExpenseFormView builds the create/edit form for an expense.
// A nil expense means create.
func newExpenseFormView(state *SharedState, existing *domain.Expense) *entityFormView {
	concept := forms.NewMaskedField("Concepto", "", forms.MaskConfig{Kind: forms.KindText})
	date := forms.NewDateField("Fecha", forms.DateSingle)
	amount := forms.NewMaskedField("Monto", "", forms.MaskConfig{Kind: forms.KindMoney})
	supplier := forms.NewRemoteTypeahead("Proveedor", domain.CatalogSupplier, state.App.Catalog)
	project := forms.NewRemoteTypeahead("Proyecto", domain.CatalogProject, state.App.Catalog)

	title := "Nuevo gasto"
	doneStatus := "Gasto creado"
	if existing != nil {
		title = "Editar gasto"
		doneStatus = "Gasto actualizado"
		concept.SetValue(existing.Concept)
		date.SetValue(existing.Date)
		amount.SetValue(existing.Amount)
		supplier.SetValue(existing.SupplierID)
		project.SetValue(existing.ProjectID)
	}

	save := func(ctx context.Context) error {
		e := domain.Expense{
			Concept:    concept.Text(),
			SupplierID: supplier.SelectedID(),
			ProjectID:  project.SelectedID(),
		}
		if existing != nil {
			e = *existing
			e.Concept = concept.Text()
			e.SupplierID = supplier.SelectedID()
			e.ProjectID = project.SelectedID()
		}
		if n, ok := amount.Number(); ok {
			e.Amount = n
		} else {
			e.Amount = 0
		}
		if d := date.Date(); d != nil {
			if t := snapshotTime(d.String()); t != nil {
				e.Date = *t
			}
		}
		if existing != nil {
			return state.App.Expenses.Update(ctx, &e)
		}
		return state.App.Expenses.Create(ctx, &e)
	}

	return newEntityFormView(state, title, doneStatus,
		[]forms.Field{concept, date, amount, supplier, project}, save)
}
