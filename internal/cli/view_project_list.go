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

type projectFilterSnapshot struct {
	Name          string `json:"name,omitempty"`
	ClientID      string `json:"clientId,omitempty"`
	ResponsibleID string `json:"responsibleId,omitempty"`
	Status        string `json:"status,omitempty"`
	StartFrom     string `json:"startFrom,omitempty"`
	StartTo       string `json:"startTo,omitempty"`
	Page          int    `json:"page,omitempty"`
}

type projectListLoadedMsg struct {
	result           *domain.PagedResult[*domain.Project]
	clientNames      map[string]string
	responsibleNames map[string]string
	err              error
}

type projectListView struct {
	state *SharedState

	bar         *filterBar
	name        *forms.MaskedField
	client      *forms.Typeahead
	responsible *forms.Typeahead
	period      *forms.DateField

	filters domain.ProjectFilters
	dirty   bool

	rows             []*domain.Project
	total            int
	clientNames      map[string]string
	responsibleNames map[string]string
	cursor           int
	loading          bool
	err              error
}

func newProjectListView(state *SharedState) *projectListView {
	v := &projectListView{
		state:   state,
		filters: domain.ProjectFilters{Page: domain.DefaultPage()},
		loading: true,
	}

	v.name = forms.NewMaskedField("Nombre", "buscar proyecto", forms.MaskConfig{Kind: forms.KindText})
	v.client = forms.NewRemoteTypeahead("Cliente", domain.CatalogClient, state.App.Catalog)
	v.responsible = forms.NewRemoteTypeahead("Responsable", domain.CatalogResponsible, state.App.Catalog)
	v.period = forms.NewDateField("Inicio entre", forms.DateRangeMode)

	v.name.OnChange(func(val any) {
		s, _ := val.(string)
		if v.filters.Name != s {
			v.filters.Name = s
			v.resetPage()
		}
	})
	v.client.OnSelect(func(e domain.Catalog) {
		v.filters.ClientID = e.ID
		v.resetPage()
	})
	v.client.OnChange(func(val any) {
		if val == nil && v.filters.ClientID != "" {
			v.filters.ClientID = ""
			v.resetPage()
		}
	})
	v.responsible.OnSelect(func(e domain.Catalog) {
		v.filters.ResponsibleID = e.ID
		v.resetPage()
	})
	v.responsible.OnChange(func(val any) {
		if val == nil && v.filters.ResponsibleID != "" {
			v.filters.ResponsibleID = ""
			v.resetPage()
		}
	})
	v.period.OnChange(func(val any) {
		r, _ := val.(forms.DateRange)
		v.filters.StartFrom = snapshotTime(wireDate(r.Start))
		v.filters.StartTo = snapshotTime(wireDate(r.End))
		v.resetPage()
	})

	v.bar = newFilterBar(v.name, v.client, v.responsible, v.period)
	v.restore()
	return v
}

func (v *projectListView) resetPage() {
	v.filters.Page = domain.DefaultPage()
	v.dirty = true
}

func (v *projectListView) restore() {
	var snap projectFilterSnapshot
	if !v.state.App.State.Load(context.Background(), stateKeyProjects, &snap) {
		return
	}
	v.name.SetValue(snap.Name)
	v.client.SetValue(snap.ClientID)
	v.responsible.SetValue(snap.ResponsibleID)
	if snap.StartFrom != "" || snap.StartTo != "" {
		var r forms.DateRange
		if d, ok := forms.ParseDateInput(snap.StartFrom); ok {
			r.Start = &d
		}
		if d, ok := forms.ParseDateInput(snap.StartTo); ok {
			r.End = &d
		}
		v.period.SetValue(r)
	}
	v.filters.Name = snap.Name
	v.filters.ClientID = snap.ClientID
	v.filters.ResponsibleID = snap.ResponsibleID
	v.filters.Status = domain.ProjectStatus(snap.Status)
	v.filters.StartFrom = snapshotTime(snap.StartFrom)
	v.filters.StartTo = snapshotTime(snap.StartTo)
	if snap.Page > 1 {
		v.filters.Page.Page = snap.Page
	}
	v.dirty = false
}

func (v *projectListView) saveSnapshot() {
	r := v.period.Range()
	v.state.App.State.Save(context.Background(), stateKeyProjects, projectFilterSnapshot{
		Name:          v.filters.Name,
		ClientID:      v.filters.ClientID,
		ResponsibleID: v.filters.ResponsibleID,
		Status:        string(v.filters.Status),
		StartFrom:     wireDate(r.Start),
		StartTo:       wireDate(r.End),
		Page:          v.filters.Page.Page,
	})
}

func (v *projectListView) clearFilters() tea.Cmd {
	v.name.Clear()
	v.client.Clear()
	v.responsible.Clear()
	v.period.Clear()
	v.filters = domain.ProjectFilters{Page: domain.DefaultPage()}
	v.dirty = false
	v.state.App.State.Clear(context.Background(), stateKeyProjects)
	v.loading = true
	return v.load()
}

func (v *projectListView) ID() ViewID          { return ViewProjectList }
func (v *projectListView) Title() string       { return "Proyectos" }
func (v *projectListView) FilterFocused() bool { return v.bar.Editing() }

func (v *projectListView) ShortHelp() []key.Binding {
	hints := listShortHelp(v.bar.Editing())
	if !v.bar.Editing() {
		hints = append(hints,
			key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "estado filter")),
			key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "set estado")),
		)
	}
	return hints
}

func (v *projectListView) Init() tea.Cmd { return v.load() }

func (v *projectListView) load() tea.Cmd {
	app := v.state.App
	f := v.filters
	return func() tea.Msg {
		ctx := context.Background()
		res, err := app.Projects.List(ctx, f)
		return projectListLoadedMsg{
			result:           res,
			err:              err,
			clientNames:      catalogNames(ctx, app.Catalog, domain.CatalogClient),
			responsibleNames: catalogNames(ctx, app.Catalog, domain.CatalogResponsible),
		}
	}
}

func (v *projectListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectListLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.rows = msg.result.Data
		v.total = msg.result.Total
		v.clientNames = msg.clientNames
		v.responsibleNames = msg.responsibleNames
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

func (v *projectListView) afterBar(cmd tea.Cmd) tea.Cmd {
	if !v.dirty {
		return cmd
	}
	v.dirty = false
	v.saveSnapshot()
	v.loading = true
	return tea.Batch(cmd, v.load())
}

func (v *projectListView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
		return v, pushView(newProjectFormView(v.state, nil))
	case "e":
		if v.cursor < len(v.rows) {
			return v, pushView(newProjectFormView(v.state, v.rows[v.cursor]))
		}
	case "x":
		if v.cursor < len(v.rows) {
			return v, v.confirmDelete(v.rows[v.cursor])
		}
	}
	return v, nil
}

// pickStatusFilter narrows the list to one lifecycle state.
func (v *projectListView) pickStatusFilter() tea.Cmd {
	result := string(v.filters.Status)
	form := huhStatusFilterForm("Filtrar por estado", &result, []huhOptionPair{
		{"Todos", ""},
		{"Activo", string(domain.ProjectActive)},
		{"Pausado", string(domain.ProjectPaused)},
		{"Terminado", string(domain.ProjectFinished)},
		{"Cancelado", string(domain.ProjectCancelled)},
	})
	return pushView(newHuhView("Estado", form, func() tea.Cmd {
		v.filters.Status = domain.ProjectStatus(result)
		v.filters.Page = domain.DefaultPage()
		v.saveSnapshot()
		return nil
	}))
}

// changeStatus updates the selected project's lifecycle state.
func (v *projectListView) changeStatus(p *domain.Project) tea.Cmd {
	app := v.state.App
	var result string
	form := projectStatusForm(p.Status, &result)
	return pushView(newHuhView("Estado", form, func() tea.Cmd {
		updated := *p
		updated.Status = domain.ProjectStatus(result)
		if err := app.Projects.Update(context.Background(), &updated); err != nil {
			return showStatus(formatter.StyleRed.Render("✗ " + err.Error()))
		}
		return showStatus(formatter.StyleGreen.Render("Estado actualizado"))
	}))
}

func (v *projectListView) confirmDelete(p *domain.Project) tea.Cmd {
	app := v.state.App
	confirmed := false
	form := confirmForm(fmt.Sprintf("¿Eliminar el proyecto %q?", p.Name), &confirmed)
	return pushView(newHuhView("Eliminar", form, func() tea.Cmd {
		if !confirmed {
			return nil
		}
		if err := app.Projects.Delete(context.Background(), p.ID); err != nil {
			return showStatus(formatter.StyleRed.Render("✗ " + err.Error()))
		}
		return showStatus(formatter.StyleGreen.Render("Proyecto eliminado"))
	}))
}

func (v *projectListView) View() string {
	var b strings.Builder
	b.WriteString(v.bar.View())
	if v.filters.Status != "" {
		b.WriteString("\n" + formatter.Dim("estado: ") + formatter.ProjectStatusStyled(v.filters.Status))
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
		for i, p := range v.rows {
			marker := "  "
			if i == v.cursor {
				marker = formatter.StyleHeader.Render("> ")
			}
			rows = append(rows, []string{
				marker + formatter.Truncate(p.Name, 28),
				nameOr(v.clientNames, p.ClientID),
				nameOr(v.responsibleNames, p.ResponsibleID),
				formatter.OptionalDate(p.StartDate),
				formatter.OptionalDate(p.EndDate),
				formatter.ProjectStatusStyled(p.Status),
			})
		}
		b.WriteString(formatter.RenderTable(
			[]string{"  NOMBRE", "CLIENTE", "RESPONSABLE", "INICIO", "FIN", "ESTADO"},
			rows,
		))
		b.WriteString(pagerLine(v.filters.Page.Page, v.filters.Limit, v.total))
	}
	return b.String()
}

// newProjectFormView builds the create/edit form for a project.
func newProjectFormView(state *SharedState, existing *domain.Project) *entityFormView {
	name := forms.NewMaskedField("Nombre", "", forms.MaskConfig{Kind: forms.KindText})
	client := forms.NewRemoteTypeahead("Cliente", domain.CatalogClient, state.App.Catalog)
	responsible := forms.NewRemoteTypeahead("Responsable", domain.CatalogResponsible, state.App.Catalog)
	period := forms.NewDateField("Periodo", forms.DateRangeMode)

	title := "Nuevo proyecto"
	doneStatus := "Proyecto creado"
	if existing != nil {
		title = "Editar proyecto"
		doneStatus = "Proyecto actualizado"
		name.SetValue(existing.Name)
		client.SetValue(existing.ClientID)
		responsible.SetValue(existing.ResponsibleID)
		var r forms.DateRange
		if d, ok := forms.ParseDateInput(existing.StartDate); ok {
			r.Start = &d
		}
		if d, ok := forms.ParseDateInput(existing.EndDate); ok {
			r.End = &d
		}
		period.SetValue(r)
	}

	save := func(ctx context.Context) error {
		p := domain.Project{Status: domain.ProjectActive}
		if existing != nil {
			p = *existing
		}
		p.Name = name.Text()
		p.ClientID = client.SelectedID()
		p.ResponsibleID = responsible.SelectedID()
		r := period.Range()
		p.StartDate = snapshotTime(wireDate(r.Start))
		p.EndDate = snapshotTime(wireDate(r.End))
		if existing != nil {
			return state.App.Projects.Update(ctx, &p)
		}
		return state.App.Projects.Create(ctx, &p)
	}

	return newEntityFormView(state, title, doneStatus,
		[]forms.Field{name, client, responsible, period}, save)
}
