package forms

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const wireDateLayout = "2006-01-02"

// referenceZone is the fixed zone used to interpret timestamp strings
// whose calendar day would otherwise depend on the host timezone.
// Known-format input never goes through zone-sensitive parsing.
var referenceZone = time.UTC

// CivilDate is a calendar date with no time or zone component.
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

func (d CivilDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether the date is unset.
func (d CivilDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// CivilFromTime extracts the calendar date of t in t's own location.
func CivilFromTime(t time.Time) CivilDate {
	y, m, day := t.Date()
	return CivilDate{Year: y, Month: m, Day: day}
}

// ParseDateInput normalizes the heterogeneous external date shapes into
// a CivilDate: an existing CivilDate or time.Time, a 10-character
// YYYY-MM-DD string (parsed by explicit components, never through a
// zone), or any longer timestamp string interpreted in the fixed
// reference zone. Anything unparseable resolves to absent.
func ParseDateInput(v any) (CivilDate, bool) {
	switch val := v.(type) {
	case nil:
		return CivilDate{}, false
	case CivilDate:
		return val, !val.IsZero()
	case time.Time:
		if val.IsZero() {
			return CivilDate{}, false
		}
		return CivilFromTime(val), true
	case *time.Time:
		if val == nil || val.IsZero() {
			return CivilDate{}, false
		}
		return CivilFromTime(*val), true
	case string:
		return parseDateString(val)
	default:
		return CivilDate{}, false
	}
}

func parseDateString(s string) (CivilDate, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CivilDate{}, false
	}

	if len(s) == len(wireDateLayout) {
		// Explicit component construction avoids the timezone-shift bug
		// a generic parse would introduce for date-only strings.
		t, err := time.Parse(wireDateLayout, s)
		if err != nil {
			return CivilDate{}, false
		}
		return CivilFromTime(t), true
	}

	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.ParseInLocation(layout, s, referenceZone); err == nil {
			return CivilFromTime(t.In(referenceZone)), true
		}
	}
	return CivilDate{}, false
}

// DateRange holds the two independently optional ends of a range.
// Start > End is not clamped here; ordering is left to the backend.
type DateRange struct {
	Start *CivilDate
	End   *CivilDate
}

// DateMode selects single-date or range behavior.
type DateMode int

const (
	DateSingle DateMode = iota
	DateRangeMode
)

// DateField is a date or date-range input. Values are typed as
// YYYY-MM-DD; unparseable text commits as absent. On every change it
// emits either a date-only string or a DateRange through OnChange.
type DateField struct {
	mode  DateMode
	label string

	start textinput.Model
	end   textinput.Model

	// active is 0 (start) or 1 (end); range mode tabs between ends.
	active   int
	focused  bool
	disabled bool

	startVal *CivilDate
	endVal   *CivilDate

	onChange  func(any)
	onTouched func()
	touched   bool
}

// NewDateField creates a date input in the given mode.
func NewDateField(label string, mode DateMode) *DateField {
	mk := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholder
		ti.CharLimit = len(wireDateLayout)
		return ti
	}
	f := &DateField{mode: mode, label: label}
	if mode == DateRangeMode {
		f.start = mk("start YYYY-MM-DD")
		f.end = mk("end YYYY-MM-DD")
	} else {
		f.start = mk("YYYY-MM-DD")
	}
	return f
}

// ── Field contract ───────────────────────────────────────────────────────────

func (f *DateField) Focus() tea.Cmd {
	f.focused = true
	f.active = 0
	return f.start.Focus()
}

func (f *DateField) Blur() {
	if !f.focused {
		return
	}
	f.commitActive()
	f.start.Blur()
	f.end.Blur()
	f.focused = false
	f.touch()
}

func (f *DateField) Focused() bool { return f.focused }

func (f *DateField) SetDisabled(d bool) {
	f.disabled = d
	if d && f.focused {
		f.Blur()
	}
}

func (f *DateField) Disabled() bool { return f.disabled }

func (f *DateField) OnChange(fn func(any)) { f.onChange = fn }
func (f *DateField) OnTouched(fn func())   { f.onTouched = fn }

// ── values ───────────────────────────────────────────────────────────────────

// SetValue normalizes an external value. Single mode accepts anything
// ParseDateInput handles; range mode additionally accepts a DateRange.
func (f *DateField) SetValue(v any) {
	if f.mode == DateRangeMode {
		if r, ok := v.(DateRange); ok {
			f.startVal = r.Start
			f.endVal = r.End
			f.syncInputs()
			return
		}
	}
	if d, ok := ParseDateInput(v); ok {
		f.startVal = &d
	} else {
		f.startVal = nil
	}
	f.syncInputs()
}

// Date returns the single-mode committed date.
func (f *DateField) Date() *CivilDate { return f.startVal }

// Range returns the range-mode committed value.
func (f *DateField) Range() DateRange {
	return DateRange{Start: f.startVal, End: f.endVal}
}

// Clear resets to absent and, in range mode, puts the caret back on the
// start input so a new range can be typed immediately.
func (f *DateField) Clear() tea.Cmd {
	f.startVal = nil
	f.endVal = nil
	f.syncInputs()
	f.notify()
	if f.mode == DateRangeMode && f.focused {
		f.active = 0
		f.end.Blur()
		return f.start.Focus()
	}
	return nil
}

func (f *DateField) syncInputs() {
	f.start.SetValue(civilText(f.startVal))
	if f.mode == DateRangeMode {
		f.end.SetValue(civilText(f.endVal))
	}
}

func civilText(d *CivilDate) string {
	if d == nil {
		return ""
	}
	return d.String()
}

// ── update loop ──────────────────────────────────────────────────────────────

func (f *DateField) Update(msg tea.Msg) (Field, tea.Cmd) {
	if f.disabled || !f.focused {
		return f, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab":
			if f.mode == DateRangeMode {
				return f, f.switchEnd()
			}
		case "ctrl+u":
			return f, f.Clear()
		}
		if runes, printable := printableRunes(key); printable {
			for _, r := range runes {
				if !isDateRune(r) {
					return f, nil
				}
			}
		}
	}

	var cmd tea.Cmd
	if f.active == 1 {
		f.end, cmd = f.end.Update(msg)
	} else {
		f.start, cmd = f.start.Update(msg)
	}
	f.commitActive()
	return f, cmd
}

// ConsumesTab reports whether the next tab key moves within the control
// (start input to end input) instead of leaving it.
func (f *DateField) ConsumesTab() bool {
	return f.mode == DateRangeMode && f.active == 0
}

// switchEnd commits the active input and moves focus to the other end.
func (f *DateField) switchEnd() tea.Cmd {
	f.commitActive()
	if f.active == 0 {
		f.active = 1
		f.start.Blur()
		return f.end.Focus()
	}
	f.active = 0
	f.end.Blur()
	return f.start.Focus()
}

func isDateRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == '-'
}

// commitActive re-parses the edited buffer into the committed value and
// emits the normalized wire shape.
func (f *DateField) commitActive() {
	parse := func(s string) *CivilDate {
		if d, ok := ParseDateInput(s); ok {
			return &d
		}
		return nil
	}

	before := DateRange{Start: f.startVal, End: f.endVal}
	f.startVal = parse(f.start.Value())
	if f.mode == DateRangeMode {
		f.endVal = parse(f.end.Value())
	}
	if !sameDatePtr(before.Start, f.startVal) || !sameDatePtr(before.End, f.endVal) {
		f.notify()
	}
}

func sameDatePtr(a, b *CivilDate) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// notify emits a date-only string (single) or a DateRange (range);
// absent values emit as nil / nil ends.
func (f *DateField) notify() {
	if f.onChange == nil {
		return
	}
	if f.mode == DateRangeMode {
		f.onChange(DateRange{Start: f.startVal, End: f.endVal})
		return
	}
	if f.startVal == nil {
		f.onChange(nil)
		return
	}
	f.onChange(f.startVal.String())
}

func (f *DateField) touch() {
	if !f.touched {
		f.touched = true
		if f.onTouched != nil {
			f.onTouched()
		}
	}
}

func (f *DateField) View() string {
	var b strings.Builder
	if f.label != "" {
		b.WriteString(styleLabel.Render(f.label))
		b.WriteString("\n")
	}
	b.WriteString(f.start.View())
	if f.mode == DateRangeMode {
		b.WriteString(styleDim.Render(" → "))
		b.WriteString(f.end.View())
	}
	return b.String()
}
