package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andresvaldez/despacho/internal/forms"
)

// filterBar hosts a screen's filter controls and routes input to them.
// Key events go to the focused control only; every other message is
// broadcast so debounced lookups land on the control that started them.
type filterBar struct {
	fields  []forms.Field
	active  int
	editing bool
}

func newFilterBar(fields ...forms.Field) *filterBar {
	return &filterBar{fields: fields}
}

// Editing reports whether the bar owns the keyboard.
func (b *filterBar) Editing() bool { return b.editing }

// Enter focuses the first control and starts capturing keys.
func (b *filterBar) Enter() tea.Cmd {
	if len(b.fields) == 0 {
		return nil
	}
	b.editing = true
	b.active = 0
	return b.fields[0].Focus()
}

// Exit blurs everything and releases the keyboard.
func (b *filterBar) Exit() {
	b.editing = false
	for _, f := range b.fields {
		f.Blur()
	}
}

// Next blurs the active control and focuses the following one,
// wrapping around.
func (b *filterBar) Next() tea.Cmd {
	if len(b.fields) == 0 {
		return nil
	}
	b.fields[b.active].Blur()
	b.active = (b.active + 1) % len(b.fields)
	return b.fields[b.active].Focus()
}

func (b *filterBar) Update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	if key, ok := msg.(tea.KeyMsg); ok {
		if !b.editing {
			return nil
		}
		if key.Type == tea.KeyTab {
			// A range date control consumes the first tab to reach its
			// end input; otherwise tab advances to the next control.
			if t, ok := b.fields[b.active].(interface{ ConsumesTab() bool }); !ok || !t.ConsumesTab() {
				return b.Next()
			}
		}
		f, cmd := b.fields[b.active].Update(msg)
		b.fields[b.active] = f
		return cmd
	}
	for i, f := range b.fields {
		updated, cmd := f.Update(msg)
		b.fields[i] = updated
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (b *filterBar) View() string {
	parts := make([]string, 0, len(b.fields))
	for _, f := range b.fields {
		parts = append(parts, f.View())
	}
	return strings.Join(parts, "\n")
}
