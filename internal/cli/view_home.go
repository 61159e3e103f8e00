package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andresvaldez/despacho/internal/cli/formatter"
)

type homeEntry struct {
	label string
	open  func(state *SharedState) View
}

// homeView is the landing menu listing the console's screens.
type homeView struct {
	state   *SharedState
	entries []homeEntry
	cursor  int
}

func newHomeView(state *SharedState) *homeView {
	return &homeView{
		state: state,
		entries: []homeEntry{
			{label: "Gastos", open: func(s *SharedState) View { return newExpenseListView(s) }},
			{label: "Proveedores", open: func(s *SharedState) View { return newSupplierListView(s) }},
			{label: "Clientes", open: func(s *SharedState) View { return newClientListView(s) }},
			{label: "Responsables", open: func(s *SharedState) View { return newResponsibleListView(s) }},
			{label: "Proyectos", open: func(s *SharedState) View { return newProjectListView(s) }},
			{label: "Facturas", open: func(s *SharedState) View { return newBillListView(s) }},
		},
	}
}

func (v *homeView) ID() ViewID    { return ViewHome }
func (v *homeView) Title() string { return "" }

func (v *homeView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "move")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *homeView) Init() tea.Cmd { return nil }

func (v *homeView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.entries)-1 {
				v.cursor++
			}
		case "enter":
			return v, pushView(v.entries[v.cursor].open(v.state))
		}
	}
	return v, nil
}

func (v *homeView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	for i, e := range v.entries {
		if i == v.cursor {
			b.WriteString(formatter.StyleHeader.Render("  > " + e.label))
		} else {
			b.WriteString("    " + e.label)
		}
		b.WriteString("\n")
	}
	return b.String()
}
