package forms

import "github.com/charmbracelet/lipgloss"

// Styles shared by the field controls. Kept minimal so a containing
// screen's theme still dominates the overall look.
var (
	styleLabel    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ebdbb2"))
	styleError    = lipgloss.NewStyle().Foreground(lipgloss.Color("#fb4934"))
	styleDim      = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374"))
	styleSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("#8ec07c"))
	styleCursor   = lipgloss.NewStyle().Foreground(lipgloss.Color("#fe8019")).Bold(true)
)
