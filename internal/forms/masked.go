package forms

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// MaskedField is a single-value input holding a domain value (number,
// string, or composite phone) separately from its on-screen text.
// While focused it shows the raw editable value; on blur the committed
// value is re-parsed and the display regenerated by the kind's
// formatter. Keystrokes are filtered through AcceptRune before they
// reach the buffer.
type MaskedField struct {
	cfg   MaskConfig
	label string

	input    textinput.Model
	focused  bool
	disabled bool

	// committed value
	num      float64
	str      string
	hasValue bool

	// validity flag for phone length / email shape, surfaced by the
	// container as an inline message, never as an error.
	invalid bool

	onChange  func(any)
	onTouched func()
	touched   bool
}

// NewMaskedField creates a masked input of the configured kind.
func NewMaskedField(label, placeholder string, cfg MaskConfig) *MaskedField {
	cfg = cfg.withDefaults()
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	if placeholder == "" && cfg.Kind == KindMoney {
		ti.Placeholder = cfg.Prefix + " 0.00"
	}
	return &MaskedField{cfg: cfg, label: label, input: ti}
}

// ── Field contract ───────────────────────────────────────────────────────────

func (f *MaskedField) Focus() tea.Cmd {
	f.focused = true
	f.input.SetValue(f.rawText())
	f.input.CursorEnd()
	return f.input.Focus()
}

func (f *MaskedField) Blur() {
	if !f.focused {
		return
	}
	f.focused = false
	f.input.Blur()
	f.commitBuffer()
	f.input.SetValue(f.displayText())
	f.touch()
}

func (f *MaskedField) Focused() bool { return f.focused }

func (f *MaskedField) SetDisabled(d bool) {
	f.disabled = d
	if d && f.focused {
		f.Blur()
	}
}

func (f *MaskedField) Disabled() bool { return f.disabled }

func (f *MaskedField) OnChange(fn func(any)) { f.onChange = fn }
func (f *MaskedField) OnTouched(fn func())   { f.onTouched = fn }

// Invalid reports the kind-specific validity flag (phone digit count,
// email shape) after the last commit.
func (f *MaskedField) Invalid() bool { return f.invalid }

// ── values ───────────────────────────────────────────────────────────────────

// SetValue accepts an externally supplied value and normalizes it into
// the committed FieldValue. Unparseable input resolves to absent.
func (f *MaskedField) SetValue(v any) {
	switch f.cfg.Kind {
	case KindNumber, KindMoney:
		f.setNumberValue(v)
	default:
		f.setStringValue(v)
	}
	if f.focused {
		f.input.SetValue(f.rawText())
		f.input.CursorEnd()
	} else {
		f.input.SetValue(f.displayText())
	}
}

func (f *MaskedField) setNumberValue(v any) {
	switch val := v.(type) {
	case nil:
		f.hasValue = false
		f.num = 0
	case float64:
		f.hasValue = true
		f.num = val
	case *float64:
		if val == nil {
			f.hasValue = false
		} else {
			f.hasValue = true
			f.num = *val
		}
	case int:
		f.hasValue = true
		f.num = float64(val)
	case string:
		n, ok := NormalizeNumber(val, f.cfg)
		f.num, f.hasValue = n, ok
	default:
		f.hasValue = false
	}
}

func (f *MaskedField) setStringValue(v any) {
	s, _ := v.(string)
	switch f.cfg.Kind {
	case KindPhone:
		f.str, _ = NormalizePhone(s, f.cfg)
		f.invalid = false
	case KindEmail:
		f.str = strings.ToLower(strings.TrimSpace(s))
		f.invalid = false
	default:
		f.str = NormalizeTextOnBlur(s)
	}
	f.hasValue = f.str != ""
}

// Number returns the committed numeric value for number/money kinds.
func (f *MaskedField) Number() (float64, bool) {
	return f.num, f.hasValue && (f.cfg.Kind == KindNumber || f.cfg.Kind == KindMoney)
}

// Text returns the committed string value for text/phone/email kinds
// (phone returns the composite prefix+digits form).
func (f *MaskedField) Text() string { return f.str }

// Clear resets the committed value and display, notifying the container.
// Clearing twice is the same as clearing once.
func (f *MaskedField) Clear() {
	f.hasValue = false
	f.num = 0
	f.str = ""
	f.invalid = false
	f.input.SetValue("")
	f.notify()
}

// ── update loop ──────────────────────────────────────────────────────────────

func (f *MaskedField) Update(msg tea.Msg) (Field, tea.Cmd) {
	if f.disabled {
		return f, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		if !f.focused {
			return f, nil
		}
		if runes, printable := printableRunes(key); printable {
			for _, r := range runes {
				if !AcceptRune(f.input.Value(), Caret(f.input.Position()), r, f.cfg) {
					return f, nil
				}
			}
		}
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	f.afterEdit()
	return f, cmd
}

// printableRunes extracts the candidate input runes from a key message.
// Navigation, clipboard, and control keys yield none and pass through
// to the underlying buffer untouched.
func printableRunes(key tea.KeyMsg) ([]rune, bool) {
	switch key.Type {
	case tea.KeyRunes:
		return key.Runes, true
	case tea.KeySpace:
		return []rune{' '}, true
	default:
		return nil, false
	}
}

// afterEdit re-sanitizes the buffer after every edit (paste included)
// and reports the in-progress value for kinds that commit inline.
func (f *MaskedField) afterEdit() {
	if !f.focused {
		return
	}

	raw := f.input.Value()
	san := f.sanitize(raw)
	if san != raw {
		pos := f.input.Position() - (len([]rune(raw)) - len([]rune(san)))
		f.input.SetValue(san)
		if pos < 0 {
			pos = 0
		}
		f.input.SetCursor(pos)
	}

	switch f.cfg.Kind {
	case KindText:
		f.str = san
		f.hasValue = san != ""
		f.notify()
	case KindNumber, KindMoney:
		f.num, f.hasValue = f.parseNumber(san)
		f.notify()
	}
	// phone/email commit on blur only
}

func (f *MaskedField) sanitize(s string) string {
	switch f.cfg.Kind {
	case KindNumber:
		return SanitizeNumber(s, f.cfg)
	case KindMoney:
		return SanitizeMoney(s, f.cfg)
	case KindPhone:
		return SanitizePhone(s, f.cfg)
	case KindText, KindEmail:
		return SanitizeText(s)
	default:
		return s
	}
}

func (f *MaskedField) parseNumber(s string) (float64, bool) {
	if f.cfg.Kind == KindMoney {
		return NormalizeMoney(s, f.cfg)
	}
	return NormalizeNumber(s, f.cfg)
}

// commitBuffer recomputes the committed FieldValue from the buffer on blur.
func (f *MaskedField) commitBuffer() {
	buf := f.input.Value()

	switch f.cfg.Kind {
	case KindNumber, KindMoney:
		f.num, f.hasValue = f.parseNumber(buf)
	case KindPhone:
		stored, ok := NormalizePhone(buf, f.cfg)
		f.str = stored
		f.hasValue = stored != ""
		f.invalid = f.hasValue && !ok
	case KindEmail:
		norm, ok := NormalizeEmail(buf)
		f.str = norm
		f.hasValue = norm != ""
		f.invalid = f.hasValue && !ok
	default:
		f.str = NormalizeTextOnBlur(buf)
		f.hasValue = f.str != ""
	}
	f.notify()
}

// rawText is the unformatted editing representation of the committed value.
func (f *MaskedField) rawText() string {
	switch f.cfg.Kind {
	case KindNumber, KindMoney:
		if !f.hasValue {
			return ""
		}
		return FormatNumber(f.num)
	case KindPhone:
		return keepDigits(strings.TrimPrefix(f.str, f.cfg.PhonePrefix))
	default:
		return f.str
	}
}

// displayText is the formatted blurred representation.
func (f *MaskedField) displayText() string {
	switch f.cfg.Kind {
	case KindMoney:
		if !f.hasValue {
			return ""
		}
		return FormatMoney(f.num, f.cfg)
	case KindNumber:
		if !f.hasValue {
			return ""
		}
		return FormatNumber(f.num)
	case KindPhone:
		if !f.hasValue {
			return ""
		}
		return FormatPhone(f.str, f.cfg)
	default:
		return f.str
	}
}

func (f *MaskedField) notify() {
	if f.onChange == nil {
		return
	}
	switch f.cfg.Kind {
	case KindNumber, KindMoney:
		if !f.hasValue {
			f.onChange(nil)
		} else {
			f.onChange(f.num)
		}
	default:
		f.onChange(f.str)
	}
}

func (f *MaskedField) touch() {
	if !f.touched {
		f.touched = true
		if f.onTouched != nil {
			f.onTouched()
		}
	}
}

func (f *MaskedField) View() string {
	var b strings.Builder
	if f.label != "" {
		b.WriteString(styleLabel.Render(f.label))
		b.WriteString("\n")
	}
	b.WriteString(f.input.View())
	if f.invalid {
		b.WriteString("\n")
		b.WriteString(styleError.Render(f.invalidMessage()))
	}
	return b.String()
}

func (f *MaskedField) invalidMessage() string {
	switch f.cfg.Kind {
	case KindPhone:
		return "phone must have the required digit count"
	case KindEmail:
		return "enter a valid email address"
	default:
		return "invalid value"
	}
}

func keepDigits(s string) string {
	return keepRunes(s, func(r rune) bool { return r >= '0' && r <= '9' })
}
