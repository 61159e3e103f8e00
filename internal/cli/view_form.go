package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andresvaldez/despacho/internal/cli/formatter"
	"github.com/andresvaldez/despacho/internal/forms"
)

// entityFormView hosts a create/edit form built from the masked and
// lookup controls. Tab moves between controls, ctrl+s saves, esc
// cancels. Save errors stay inline so the typed values are not lost.
type entityFormView struct {
	state    *SharedState
	titleStr string
	fields   []forms.Field
	active   int
	saveErr  string

	// save builds the entity from the committed control values and
	// persists it.
	save func(ctx context.Context) error
	// doneStatus is shown on the underlying list after a save.
	doneStatus string
}

func newEntityFormView(state *SharedState, title, doneStatus string, fields []forms.Field, save func(ctx context.Context) error) *entityFormView {
	return &entityFormView{
		state:      state,
		titleStr:   title,
		doneStatus: doneStatus,
		fields:     fields,
		save:       save,
	}
}

func (v *entityFormView) ID() ViewID    { return ViewEntityForm }
func (v *entityFormView) Title() string { return v.titleStr }

func (v *entityFormView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (v *entityFormView) Init() tea.Cmd {
	if len(v.fields) == 0 {
		return nil
	}
	v.active = 0
	return v.fields[0].Focus()
}

func (v *entityFormView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			return v, popView()

		case tea.KeyTab:
			if t, ok := v.fields[v.active].(interface{ ConsumesTab() bool }); !ok || !t.ConsumesTab() {
				return v, v.nextField()
			}

		case tea.KeyCtrlS:
			return v, v.submit()
		}

		f, cmd := v.fields[v.active].Update(msg)
		v.fields[v.active] = f
		return v, cmd
	}

	// Broadcast non-key messages so debounced lookups reach their control.
	var cmds []tea.Cmd
	for i, f := range v.fields {
		updated, cmd := f.Update(msg)
		v.fields[i] = updated
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return v, tea.Batch(cmds...)
}

func (v *entityFormView) nextField() tea.Cmd {
	v.fields[v.active].Blur()
	v.active = (v.active + 1) % len(v.fields)
	return v.fields[v.active].Focus()
}

func (v *entityFormView) submit() tea.Cmd {
	// Blur commits the in-progress buffer of the focused control.
	v.fields[v.active].Blur()

	if err := v.save(context.Background()); err != nil {
		v.saveErr = err.Error()
		return v.fields[v.active].Focus()
	}

	status := v.doneStatus
	return func() tea.Msg {
		return formDoneMsg{nextCmd: showStatus(formatter.StyleGreen.Render(status))}
	}
}

func (v *entityFormView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	for _, f := range v.fields {
		b.WriteString(f.View())
		b.WriteString("\n\n")
	}
	if v.saveErr != "" {
		b.WriteString(formatter.StyleRed.Render("✗ " + v.saveErr))
		b.WriteString("\n")
	}
	return b.String()
}
