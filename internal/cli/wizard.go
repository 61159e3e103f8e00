package cli

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/andresvaldez/despacho/internal/cli/formatter"
	"github.com/andresvaldez/despacho/internal/domain"
)

// despachoHuhTheme returns a huh theme on the console's palette.
func despachoHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// confirmForm builds a themed yes/no confirmation.
func confirmForm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Sí").
				Negative("No").
				Value(result),
		),
	).WithTheme(despachoHuhTheme()).WithShowHelp(false)
}

// huhOptionPair is a label/value pair for a themed select.
type huhOptionPair struct {
	Label string
	Value string
}

// huhStatusFilterForm builds a themed select from arbitrary options,
// used by the status filter pickers.
func huhStatusFilterForm(title string, result *string, options []huhOptionPair) *huh.Form {
	opts := make([]huh.Option[string], 0, len(options))
	for _, o := range options {
		opts = append(opts, huh.NewOption(o.Label, o.Value))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(opts...).
				Value(result),
		),
	).WithTheme(despachoHuhTheme()).WithShowHelp(false)
}

// projectStatusForm builds a themed select over project statuses.
func projectStatusForm(current domain.ProjectStatus, result *string) *huh.Form {
	*result = string(current)
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Estado del proyecto").
				Options(
					huh.NewOption("Activo", string(domain.ProjectActive)),
					huh.NewOption("Pausado", string(domain.ProjectPaused)),
					huh.NewOption("Terminado", string(domain.ProjectFinished)),
					huh.NewOption("Cancelado", string(domain.ProjectCancelled)),
				).
				Value(result),
		),
	).WithTheme(despachoHuhTheme()).WithShowHelp(false)
}

// billStatusForm builds a themed select over bill statuses.
func billStatusForm(current domain.BillStatus, result *string) *huh.Form {
	*result = string(current)
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Estado de la factura").
				Options(
					huh.NewOption("Pendiente", string(domain.BillPending)),
					huh.NewOption("Pagada", string(domain.BillPaid)),
					huh.NewOption("Vencida", string(domain.BillOverdue)),
					huh.NewOption("Cancelada", string(domain.BillCancelled)),
				).
				Value(result),
		),
	).WithTheme(despachoHuhTheme()).WithShowHelp(false)
}
