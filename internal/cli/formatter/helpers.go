package formatter

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var amountPrinter = message.NewPrinter(language.MustParse("es-MX"))

// Money renders an amount with the currency prefix and grouped
// separators, e.g. "$ 12,500.00".
func Money(v float64) string {
	return "$ " + amountPrinter.Sprint(number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2)))
}

// Date renders a date-only value; zero dates render as a dim dash.
func Date(t time.Time) string {
	if t.IsZero() {
		return Dim("—")
	}
	return t.Format("2006-01-02")
}

// OptionalDate renders a nullable date, absent as a dim dash.
func OptionalDate(t *time.Time) string {
	if t == nil {
		return Dim("—")
	}
	return Date(*t)
}

// Phone renders a stored composite phone ("+52" plus ten digits)
// grouped for reading. Other shapes render as stored.
func Phone(stored string) string {
	digits := strings.TrimPrefix(stored, "+52")
	if len(digits) == 10 {
		return digits[:3] + " " + digits[3:6] + " " + digits[6:]
	}
	return stored
}

// Truncate cuts s to max visible runes, appending an ellipsis marker.
func Truncate(s string, max int) string {
	rs := []rune(s)
	if max <= 1 || len(rs) <= max {
		return s
	}
	return string(rs[:max-1]) + "…"
}

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}
