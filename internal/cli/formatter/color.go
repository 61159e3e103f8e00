package formatter

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/andresvaldez/despacho/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Dim renders s in the dim palette color.
func Dim(s string) string { return StyleDim.Render(s) }

// ProjectStatusStyled returns the status rendered in its palette color.
func ProjectStatusStyled(s domain.ProjectStatus) string {
	switch s {
	case domain.ProjectActive:
		return StyleGreen.Render(string(s))
	case domain.ProjectPaused:
		return StyleYellow.Render(string(s))
	case domain.ProjectFinished:
		return StyleBlue.Render(string(s))
	case domain.ProjectCancelled:
		return StyleRed.Render(string(s))
	default:
		return StyleDim.Render(string(s))
	}
}

// BillStatusStyled returns the bill status rendered in its palette color.
func BillStatusStyled(s domain.BillStatus) string {
	switch s {
	case domain.BillPaid:
		return StyleGreen.Render(string(s))
	case domain.BillPending:
		return StyleYellow.Render(string(s))
	case domain.BillOverdue:
		return StyleRed.Render(string(s))
	case domain.BillCancelled:
		return StyleDim.Render(string(s))
	default:
		return StyleDim.Render(string(s))
	}
}
