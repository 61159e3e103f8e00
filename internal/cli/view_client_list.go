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

type clientFilterSnapshot struct {
	Name string `json:"name,omitempty"`
	Page int    `json:"page,omitempty"`
}

type clientListLoadedMsg struct {
	result *domain.PagedResult[*domain.Client]
	err    error
}

type clientListView struct {
	state *SharedState

	bar     *filterBar
	name    *forms.MaskedField
	filters domain.ClientFilters
	dirty   bool

	rows    []*domain.Client
	total   int
	cursor  int
	loading bool
	err     error
}

func newClientListView(state *SharedState) *clientListView {
	v := &clientListView{
		state:   state,
		filters: domain.ClientFilters{Page: domain.DefaultPage()},
		loading: true,
	}

	v.name = forms.NewMaskedField("Nombre", "buscar cliente", forms.MaskConfig{Kind: forms.KindText})
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

func (v *clientListView) restore() {
	var snap clientFilterSnapshot
	if !v.state.App.State.Load(context.Background(), stateKeyClients, &snap) {
		return
	}
	v.name.SetValue(snap.Name)
	v.filters.Name = snap.Name
	if snap.Page > 1 {
		v.filters.Page.Page = snap.Page
	}
	v.dirty = false
}

func (v *clientListView) saveSnapshot() {
	v.state.App.State.Save(context.Background(), stateKeyClients, clientFilterSnapshot{
		Name: v.filters.Name,
		Page: v.filters.Page.Page,
	})
}

func (v *clientListView) clearFilters() tea.Cmd {
	v.name.Clear()
	v.filters = domain.ClientFilters{Page: domain.DefaultPage()}
	v.dirty = false
	v.state.App.State.Clear(context.Background(), stateKeyClients)
	v.loading = true
	return v.load()
}

func (v *clientListView) ID() ViewID          { return ViewClientList }
func (v *clientListView) Title() string       { return "Clientes" }
func (v *clientListView) FilterFocused() bool { return v.bar.Editing() }

func (v *clientListView) ShortHelp() []key.Binding {
	return listShortHelp(v.bar.Editing())
}

func (v *clientListView) Init() tea.Cmd { return v.load() }

func (v *clientListView) load() tea.Cmd {
	app := v.state.App
	f := v.filters
	return func() tea.Msg {
		res, err := app.Clients.List(context.Background(), f)
		return clientListLoadedMsg{result: res, err: err}
	}
}

func (v *clientListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientListLoadedMsg:
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

func (v *clientListView) afterBar(cmd tea.Cmd) tea.Cmd {
	if !v.dirty {
		return cmd
	}
	v.dirty = false
	v.saveSnapshot()
	v.loading = true
	return tea.Batch(cmd, v.load())
}

func (v *clientListView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
		return v, pushView(newClientFormView(v.state, nil))
	case "e":
		if v.cursor < len(v.rows) {
			return v, pushView(newClientFormView(v.state, v.rows[v.cursor]))
		}
	case "x":
		if v.cursor < len(v.rows) {
			return v, v.confirmDelete(v.rows[v.cursor])
		}
	}
	return v, nil
}

func (v *clientListView) confirmDelete(c *domain.Client) tea.Cmd {
	app := v.state.App
	confirmed := false
	form := confirmForm(fmt.Sprintf("¿Eliminar el cliente %q?", c.Name), &confirmed)
	return pushView(newHuhView("Eliminar", form, func() tea.Cmd {
		if !confirmed {
			return nil
		}
		if err := app.Clients.Delete(context.Background(), c.ID); err != nil {
			return showStatus(formatter.StyleRed.Render("✗ " + err.Error()))
		}
		return showStatus(formatter.StyleGreen.Render("Cliente eliminado"))
	}))
}

func (v *clientListView) View() string {
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
		for i, c := range v.rows {
			marker := "  "
			if i == v.cursor {
				marker = formatter.StyleHeader.Render("> ")
			}
			rows = append(rows, []string{
				marker + formatter.Truncate(c.Name, 32),
				c.Email,
				formatter.Phone(c.Phone),
			})
		}
		b.WriteString(formatter.RenderTable([]string{"  NOMBRE", "EMAIL", "TELÉFONO"}, rows))
		b.WriteString(pagerLine(v.filters.Page.Page, v.filters.Limit, v.total))
	}
	return b.String()
}

func newClientFormView(state *SharedState, existing *domain.Client) *entityFormView {
	name := forms.NewMaskedField("Nombre", "", forms.MaskConfig{Kind: forms.KindText})
	email := forms.NewMaskedField("Email", "contacto@cliente.mx", forms.MaskConfig{Kind: forms.KindEmail})
	phone := forms.NewMaskedField("Teléfono", "10 dígitos", forms.MaskConfig{Kind: forms.KindPhone})

	title := "Nuevo cliente"
	doneStatus := "Cliente creado"
	if existing != nil {
		title = "Editar cliente"
		doneStatus = "Cliente actualizado"
		name.SetValue(existing.Name)
		email.SetValue(existing.Email)
		phone.SetValue(existing.Phone)
	}

	save := func(ctx context.Context) error {
		c := domain.Client{}
		if existing != nil {
			c = *existing
		}
		c.Name = name.Text()
		c.Email = email.Text()
		c.Phone = phone.Text()
		if existing != nil {
			return state.App.Clients.Update(ctx, &c)
		}
		return state.App.Clients.Create(ctx, &c)
	}

	return newEntityFormView(state, title, doneStatus,
		[]forms.Field{name, email, phone}, save)
}
