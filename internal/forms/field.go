package forms

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Field is the value-exchange contract every form control implements
// toward its containing form: receive a value, notify on change and on
// first touch, and honor a disabled state. Containers interact with
// controls only through this interface plus each control's typed
// SetValue/Value accessors.
type Field interface {
	// Focus gives the control input focus. While focused, masked
	// controls show their raw unformatted value.
	Focus() tea.Cmd
	// Blur removes focus, committing and reformatting the value.
	Blur()
	Focused() bool

	SetDisabled(bool)
	Disabled() bool

	// OnChange registers the committed-value notifier.
	OnChange(func(value any))
	// OnTouched registers the notifier fired the first time the user
	// leaves the control.
	OnTouched(func())

	Update(msg tea.Msg) (Field, tea.Cmd)
	View() string
}

// controlSeq hands out instance IDs so debounce and search-result
// messages can be routed past unrelated controls.
var controlSeq int

func nextControlID() int {
	controlSeq++
	return controlSeq
}
