package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation messages views send to request transitions; the appModel
// handles them in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view, returning to the previous one.
type popViewMsg struct{}

// refreshViewMsg tells every view on the stack to reload its data,
// sent after a mutation made in a view above it.
type refreshViewMsg struct{}

// statusMsg carries a transient one-line status shown under the list.
type statusMsg struct {
	text string
}

// formDoneMsg is sent when an entity form or confirm dialog finishes.
// The appModel pops the hosting view and runs nextCmd.
type formDoneMsg struct {
	nextCmd tea.Cmd
}

func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

func refreshViews() tea.Cmd {
	return func() tea.Msg { return refreshViewMsg{} }
}

func showStatus(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}
