package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// huhView wraps a huh.Form as a View on the navigation stack. When the
// form completes it sends a formDoneMsg carrying the done callback's
// follow-up command.
type huhView struct {
	titleStr string
	form     *huh.Form
	done     func() tea.Cmd
}

func newHuhView(title string, form *huh.Form, done func() tea.Cmd) *huhView {
	return &huhView{titleStr: title, form: form, done: done}
}

func (v *huhView) ID() ViewID    { return ViewConfirm }
func (v *huhView) Title() string { return v.titleStr }

func (v *huhView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (v *huhView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *huhView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return v, func() tea.Msg { return formDoneMsg{} }
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		var next tea.Cmd
		if v.done != nil {
			next = v.done()
		}
		return v, func() tea.Msg { return formDoneMsg{nextCmd: next} }
	}
	return v, cmd
}

func (v *huhView) View() string {
	return v.form.View()
}
