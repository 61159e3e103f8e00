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

type responsibleFilterSnapshot struct {
	Name string `json:"name,omitempty"`
	Page int    `json:"page,omitempty"`
}

type responsibleListLoadedMsg struct {
	result *domain.PagedResult[*domain.Responsible]
	err    error
}

type responsibleListView struct {
	state *SharedState

	bar     *filterBar
	name    *forms.MaskedField
	filters domain.ResponsibleFilters
	dirty   bool

	rows    []*domain.Responsible
	total   int
	cursor  int
	loading bool
	err     error
}

func newResponsibleListView(state *SharedState) *responsibleListView {
	v := &responsibleListView{
		state:   state,
		filters: domain.ResponsibleFilters{Page: domain.DefaultPage()},
		loading: true,
	}

	v.name = forms.NewMaskedField("Nombre", "buscar responsable", forms.MaskConfig{Kind: forms.KindText})
	v.name.OnChange(func(val any) {
		s, _ := val.(string)
		if v.filters.Name != s {
			v.filters.Name = s
			v.filters.Page = domain.DefaultPage()
			v.dirty = true
		}
	})

	v.bar = newFilterBar(v.name)
	v.restore()
	return v
}

func (v *responsibleListView) restore() {
	var snap responsibleFilterSnapshot
	if !v.state.App.State.Load(context.Background(), stateKeyResponsibles, &snap) {
		return
	}
	v.name.SetValue(snap.Name)
	v.filters.Name = snap.Name
	if snap.Page > 1 {
		v.filters.Page.Page = snap.Page
	}
	v.dirty = false
}

func (v *responsibleListView) saveSnapshot() {
	v.state.App.State.Save(context.Background(), stateKeyResponsibles, responsibleFilterSnapshot{
		Name: v.filters.Name,
		Page: v.filters.Page.Page,
	})
}

func (v *responsibleListView) clearFilters() tea.Cmd {
	v.name.Clear()
	v.filters = domain.ResponsibleFilters{Page: domain.DefaultPage()}
	v.dirty = false
	v.state.App.State.Clear(context.Background(), stateKeyResponsibles)
	v.loading = true
	return v.load()
}

func (v *responsibleListView) ID() ViewID          { return ViewResponsibleList }
func (v *responsibleListView) Title() string       { return "Responsables" }
func (v *responsibleListView) FilterFocused() bool { return v.bar.Editing() }

func (v *responsibleListView) ShortHelp() []key.Binding {
	return listShortHelp(v.bar.Editing())
}

func (v *responsibleListView) Init() tea.Cmd { return v.load() }

func (v *responsibleListView) load() tea.Cmd {
	app := v.state.App
	f := v.filters
	return func() tea.Msg {
		res, err := app.Responsibles.List(context.Background(), f)
		return responsibleListLoadedMsg{result: res, err: err}
	}
}

func (v *responsibleListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case responsibleListLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.rows = msg.result.Data
		v.total = msg.result.Total
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

func (v *responsibleListView) afterBar(cmd tea.Cmd) tea.Cmd {
	if !v.dirty {
		return cmd
	}
	v.dirty = false
	v.saveSnapshot()
	v.loading = true
	return tea.Batch(cmd, v.load())
}

func (v *responsibleListView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
		return v, pushView(newResponsibleFormView(v.state, nil))
	case "e":
		if v.cursor < len(v.rows) {
			return v, pushView(newResponsibleFormView(v.state, v.rows[v.cursor]))
		}
	case "x":
		if v.cursor < len(v.rows) {
			return v, v.confirmDelete(v.rows[v.cursor])
		}
	}
	return v, nil
}

func (v *responsibleListView) confirmDelete(r *domain.Responsible) tea.Cmd {
	app := v.state.App
	confirmed := false
	form := confirmForm(fmt.Sprintf("¿Eliminar al responsable %q?", r.Name), &confirmed)
	return pushView(newHuhView("Eliminar", form, func() tea.Cmd {
		if !confirmed {
			return nil
		}
		if err := app.Responsibles.Delete(context.Background(), r.ID); err != nil {
			return showStatus(formatter.StyleRed.Render("✗ " + err.Error()))
		}
		return showStatus(formatter.StyleGreen.Render("Responsable eliminado"))
	}))
}

func (v *responsibleListView) View() string {
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
		for i, r := range v.rows {
			marker := "  "
			if i == v.cursor {
				marker = formatter.StyleHeader.Render("> ")
			}
			rows = append(rows, []string{
				marker + formatter.Truncate(r.Name, 32),
				r.Email,
				formatter.Phone(r.Phone),
			})
		}
		b.WriteString(formatter.RenderTable([]string{"  NOMBRE", "EMAIL", "TELÉFONO"}, rows))
		b.WriteString(pagerLine(v.filters.Page.Page, v.filters.Limit, v.total))
	}
	return b.String()
}

func newResponsibleFormView(state *SharedState, existing *domain.Responsible) *entityFormView {
	name := forms.NewMaskedField("Nombre", "", forms.MaskConfig{Kind: forms.KindText})
	email := forms.NewMaskedField("Email", "persona@despacho.mx", forms.MaskConfig{Kind: forms.KindEmail})
	phone := forms.NewMaskedField("Teléfono", "10 dígitos", forms.MaskConfig{Kind: forms.KindPhone})

	title := "Nuevo responsable"
	doneStatus := "Responsable creado"
	if existing != nil {
		title = "Editar responsable"
		doneStatus = "Responsable actualizado"
		name.SetValue(existing.Name)
		email.SetValue(existing.Email)
		phone.SetValue(existing.Phone)
	}

	save := func(ctx context.Context) error {
		r := domain.Responsible{}
		if existing != nil {
			r = *existing
		}
		r.Name = name.Text()
		r.Email = email.Text()
		r.Phone = phone.Text()
		if existing != nil {
			return state.App.Responsibles.Update(ctx, &r)
		}
		return state.App.Responsibles.Create(ctx, &r)
	}

	return newEntityFormView(state, title, doneStatus,
		[]forms.Field{name, email, phone}, save)
}
