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

type billFilterSnapshot struct {
	Folio      string `json:"folio,omitempty"`
	ProjectID  string `json:"projectId,omitempty"`
	Status     string `json:"status,omitempty"`
	IssuedFrom string `json:"issuedFrom,omitempty"`
	IssuedTo   string `json:"issuedTo,omitempty"`
	Page       int    `json:"page,omitempty"`
}

type billListLoadedMsg struct {
	result       *domain.PagedResult[*domain.Bill]
	projectNames map[string]string
	err          error
}

type billListView struct {
	state *SharedState

	bar     *filterBar
	folio   *forms.MaskedField
	project *forms.Typeahead
	period  *forms.DateField

	filters domain.BillFilters
	dirty   bool

	rows         []*domain.Bill
	total        int
	projectNames map[string]string
	cursor       int
	loading      bool
	err          error
}

func newBillListView(state *SharedState) *billListView {
	v := &billListView{
		state:   state,
		filters: domain.BillFilters{Page: domain.DefaultPage()},
		loading: true,
	}

	v.folio = forms.NewMaskedField("Folio", "buscar folio", forms.MaskConfig{Kind: forms.KindText})
	v.project = forms.NewRemoteTypeahead("Proyecto", domain.CatalogProject, state.App.Catalog)
	v.period = forms.NewDateField("Emitida entre", forms.DateRangeMode)

	v.folio.OnChange(func(val any) {
		s, _ := val.(string)
		if v.filters.Folio != s {
			v.filters.Folio = s
			v.resetPage()
		}
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
		v.filters.IssuedFrom = snapshotTime(wireDate(r.Start))
		v.filters.IssuedTo = snapshotTime(wireDate(r.End))
		v.resetPage()
	})

	v.bar = newFilterBar(v.folio, v.project, v.period)
	v.restore()
	return v
}

func (v *billListView) resetPage() {
	v.filters.Page = domain.DefaultPage()
	v.dirty = true
}

func (v *billListView) restore() {
	var snap billFilterSnapshot
	if !v.state.App.State.Load(context.Background(), stateKeyBills, &snap) {
		return
	}
	v.folio.SetValue(snap.Folio)
	v.project.SetValue(snap.ProjectID)
	if snap.IssuedFrom != "" || snap.IssuedTo != "" {
		var r forms.DateRange
		if d, ok := forms.ParseDateInput(snap.IssuedFrom); ok {
			r.Start = &d
		}
		if d, ok := forms.ParseDateInput(snap.IssuedTo); ok {
			r.End = &d
		}
		v.period.SetValue(r)
	}
	v.filters.Folio = snap.Folio
	v.filters.ProjectID = snap.ProjectID
	v.filters.Status = domain.BillStatus(snap.Status)
	v.filters.IssuedFrom = snapshotTime(snap.IssuedFrom)
	v.filters.IssuedTo = snapshotTime(snap.IssuedTo)
	if snap.Page > 1 {
		v.filters.Page.Page = snap.Page
	}
	v.dirty = false
}

func (v *billListView) saveSnapshot() {
	r := v.period.Range()
	v.state.App.State.Save(context.Background(), stateKeyBills, billFilterSnapshot{
		Folio:      v.filters.Folio,
		ProjectID:  v.filters.ProjectID,
		Status:     string(v.filters.Status),
		IssuedFrom: wireDate(r.Start),
		IssuedTo:   wireDate(r.End),
		Page:       v.filters.Page.Page,
	})
}

func (v *billListView) clearFilters() tea.Cmd {
	v.folio.Clear()
	v.project.Clear()
	v.period.Clear()
	v.filters = domain.BillFilters{Page: domain.DefaultPage()}
	v.dirty = false
	v.state.App.State.Clear(context.Background(), stateKeyBills)
	v.loading = true
	return v.load()
}

func (v *billListView) ID() ViewID          { return ViewBillList }
func (v *billListView) Title() string       { return "Facturas" }
func (v *billListView) FilterFocused() bool { return v.bar.Editing() }

func (v *billListView) ShortHelp() []key.Binding {
	hints := listShortHelp(v.bar.Editing())
	if !v.bar.Editing() {
		hints = append(hints,
			key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "estado filter")),
			key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "set estado")),
		)
	}
	return hints
}

func (v *billListView) Init() tea.Cmd { return v.load() }

func (v *billListView) load() tea.Cmd {
	app := v.state.App
	f := v.filters
	return func() tea.Msg {
		ctx := context.Background()
		res, err := app.Bills.List(ctx, f)
		return billListLoadedMsg{
			result:       res,
			err:          err,
			projectNames: catalogNames(ctx, app.Catalog, domain.CatalogProject),
		}
	}
}

func (v *billListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case billListLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.rows = msg.result.Data
		v.total = msg.result.Total
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

	return v, v.afterBar(v.bar.Update(msg))
}

func (v *billListView) afterBar(cmd tea.Cmd) tea.Cmd {
	if !v.dirty {
		return cmd
	}
	v.dirty = false
	v.saveSnapshot()
	v.loading = true
	return tea.Batch(cmd, v.load())
}

func (v *billListView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
	case "t":
		return v, v.pickStatusFilter()
	case "s":
		if v.cursor < len(v.rows) {
			return v, v.changeStatus(v.rows[v.cursor])
		}
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
		return v, pushView(newBillFormView(v.state, nil))
	case "e":
		if v.cursor < len(v.rows) {
			return v, pushView(newBillFormView(v.state, v.rows[v.cursor]))
		}
	case "x":
		if v.cursor < len(v.rows) {
			return v, v.confirmDelete(v.rows[v.cursor])
		}
	}
	return v, nil
}

func (v *billListView) pickStatusFilter() tea.Cmd {
	result := string(v.filters.Status)
	form := huhStatusFilterForm("Filtrar por estado", &result, []huhOptionPair{
		{"Todas", ""},
		{"Pendiente", string(domain.BillPending)},
		{"Pagada", string(domain.BillPaid)},
		{"Vencida", string(domain.BillOverdue)},
		{"Cancelada", string(domain.BillCancelled)},
	})
	return pushView(newHuhView("Estado", form, func() tea.Cmd {
		v.filters.Status = domain.BillStatus(result)
		v.filters.Page = domain.DefaultPage()
		v.saveSnapshot()
		return nil
	}))
}

func (v *billListView) changeStatus(b *domain.Bill) tea.Cmd {
	app := v.state.App
	var result string
	form := billStatusForm(b.Status, &result)
	return pushView(newHuhView("Estado", form, func() tea.Cmd {
		updated := *b
		updated.Status = domain.BillStatus(result)
		if err := app.Bills.Update(context.Background(), &updated); err != nil {
			return showStatus(formatter.StyleRed.Render("✗ " + err.Error()))
		}
		return showStatus(formatter.StyleGreen.Render("Estado actualizado"))
	}))
}

func (v *billListView) confirmDelete(b *domain.Bill) tea.Cmd {
	app := v.state.App
	confirmed := false
	form := confirmForm(fmt.Sprintf("¿Eliminar la factura %q?", b.Folio), &confirmed)
	return pushView(newHuhView("Eliminar", form, func() tea.Cmd {
		if !confirmed {
			return nil
		}
		if err := app.Bills.Delete(context.Background(), b.ID); err != nil {
			return showStatus(formatter.StyleRed.Render("✗ " + err.Error()))
		}
		return showStatus(formatter.StyleGreen.Render("Factura eliminada"))
	}))
}

func (v *billListView) View() string {
	var b strings.Builder
	b.WriteString(v.bar.View())
	if v.filters.Status != "" {
		b.WriteString("\n" + formatter.Dim("estado: ") + formatter.BillStatusStyled(v.filters.Status))
	}
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
		for i, bill := range v.rows {
			marker := "  "
			if i == v.cursor {
				marker = formatter.StyleHeader.Render("> ")
			}
			rows = append(rows, []string{
				marker + bill.Folio,
				nameOr(v.projectNames, bill.ProjectID),
				formatter.Money(bill.Amount),
				formatter.Date(bill.IssuedAt),
				formatter.BillStatusStyled(bill.Status),
			})
		}
		b.WriteString(formatter.RenderTable(
			[]string{"  FOLIO", "PROYECTO", "MONTO", "EMISIÓN", "ESTADO"},
			rows,
		))
		b.WriteString(pagerLine(v.filters.Page.Page, v.filters.Limit, v.total))
	}
	return b.String()
}

// newBillFormView builds the create/edit form for a bill.
func newBillFormView(state *SharedState, existing *domain.Bill) *entityFormView {
	folio := forms.NewMaskedField("Folio", "F-0001", forms.MaskConfig{Kind: forms.KindText})
	project := forms.NewRemoteTypeahead("Proyecto", domain.CatalogProject, state.App.Catalog)
	amount := forms.NewMaskedField("Monto", "", forms.MaskConfig{Kind: forms.KindMoney})
	issued := forms.NewDateField("Fecha de emisión", forms.DateSingle)

	title := "Nueva factura"
	doneStatus := "Factura creada"
	if existing != nil {
		title = "Editar factura"
		doneStatus = "Factura actualizada"
		folio.SetValue(existing.Folio)
		project.SetValue(existing.ProjectID)
		amount.SetValue(existing.Amount)
		issued.SetValue(existing.IssuedAt)
	}

	save := func(ctx context.Context) error {
		bill := domain.Bill{Status: domain.BillPending}
		if existing != nil {
			bill = *existing
		}
		bill.Folio = folio.Text()
		bill.ProjectID = project.SelectedID()
		if n, ok := amount.Number(); ok {
			bill.Amount = n
		} else {
			bill.Amount = 0
		}
		if d := issued.Date(); d != nil {
			if t := snapshotTime(d.String()); t != nil {
				bill.IssuedAt = *t
			}
		}
		if existing != nil {
			return state.App.Bills.Update(ctx, &bill)
		}
		return state.App.Bills.Create(ctx, &bill)
	}

	return newEntityFormView(state, title, doneStatus,
		[]forms.Field{folio, project, amount, issued}, save)
}
