package forms

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Kind selects the masking behavior of a MaskedField.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindMoney
	KindPhone
	KindEmail
)

// MaskConfig carries the per-kind masking parameters.
type MaskConfig struct {
	Kind Kind

	// number
	MaxDecimals   int
	AllowNegative bool

	// money
	Prefix   string // currency prefix, default "$"
	Decimals int    // fixed fraction digits, default 2

	// phone
	PhonePrefix string // national prefix literal, default "+52"
	PhoneLength int    // required digit count, default 10
}

// withDefaults fills the zero-value money and phone parameters.
func (c MaskConfig) withDefaults() MaskConfig {
	if c.Kind == KindMoney {
		if c.Prefix == "" {
			c.Prefix = "$"
		}
		if c.Decimals == 0 {
			c.Decimals = 2
		}
	}
	if c.Kind == KindPhone {
		if c.PhonePrefix == "" {
			c.PhonePrefix = "+52"
		}
		if c.PhoneLength == 0 {
			c.PhoneLength = 10
		}
	}
	return c
}

// Range is a rune-indexed selection within a text buffer.
// Start == End is a bare caret.
type Range struct {
	Start, End int
}

// Len returns the selection length in runes.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Caret returns a collapsed Range at pos.
func Caret(pos int) Range {
	return Range{Start: pos, End: pos}
}

// withoutRange returns buffer with the selected runes removed.
func withoutRange(buffer string, sel Range) string {
	rs := []rune(buffer)
	start, end := sel.Start, sel.End
	if start < 0 {
		start = 0
	}
	if end > len(rs) {
		end = len(rs)
	}
	if start >= end {
		return buffer
	}
	return string(rs[:start]) + string(rs[end:])
}

// AcceptRune decides whether a candidate rune may enter the buffer at
// the given caret/selection for the configured kind. Control and
// navigation keys never reach this function; it only sees printable
// input. Independent of any UI event system.
func AcceptRune(buffer string, sel Range, r rune, cfg MaskConfig) bool {
	cfg = cfg.withDefaults()

	switch cfg.Kind {
	case KindText, KindEmail:
		// No keystroke blocking; space collapsing happens on sanitize.
		return true

	case KindNumber:
		return acceptNumberRune(buffer, sel, r, cfg)

	case KindMoney:
		if unicode.IsDigit(r) {
			return true
		}
		if r == '.' || r == ',' {
			return !hasSeparator(withoutRange(buffer, sel))
		}
		return false

	case KindPhone:
		if !unicode.IsDigit(r) {
			return false
		}
		// At the cap, new digits only fit when they replace a selection.
		return digitCount(withoutRange(buffer, sel)) < cfg.PhoneLength

	default:
		return false
	}
}

func acceptNumberRune(buffer string, sel Range, r rune, cfg MaskConfig) bool {
	if r == '-' {
		if !cfg.AllowNegative || sel.Start != 0 {
			return false
		}
		return !strings.Contains(withoutRange(buffer, sel), "-")
	}

	if r == '.' || r == ',' {
		if cfg.MaxDecimals <= 0 {
			return false
		}
		return !hasSeparator(withoutRange(buffer, sel))
	}

	if !unicode.IsDigit(r) {
		return false
	}
	if cfg.MaxDecimals <= 0 {
		return true
	}

	// With the caret inside the decimal portion and no active selection,
	// digits stop once the configured fraction length is reached.
	v := strings.ReplaceAll(buffer, ",", ".")
	sep := strings.IndexRune(v, '.')
	if sep == -1 || sel.Len() > 0 || sel.Start <= sep {
		return true
	}
	return len(v[sep+1:]) < cfg.MaxDecimals
}

func hasSeparator(s string) bool {
	return strings.ContainsAny(s, ".,")
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

// ── sanitizers ───────────────────────────────────────────────────────────────

var spaceRun = regexp.MustCompile(`\s+`)

// SanitizeText collapses whitespace runs as the user types: no leading
// space and no repeated spaces, trailing space kept so words can continue.
func SanitizeText(s string) string {
	s = spaceRun.ReplaceAllString(s, " ")
	return strings.TrimLeft(s, " ")
}

// NormalizeTextOnBlur fully trims and collapses whitespace.
func NormalizeTextOnBlur(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// SanitizeNumber strips everything but digits, a single leading sign,
// and the first decimal separator; the fraction is truncated to
// cfg.MaxDecimals. Commas normalize to dots.
func SanitizeNumber(s string, cfg MaskConfig) string {
	neg := cfg.AllowNegative && strings.HasPrefix(strings.TrimSpace(s), "-")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	s = keepRunes(s, func(r rune) bool { return unicode.IsDigit(r) || r == '.' })

	if cfg.MaxDecimals <= 0 {
		s = strings.ReplaceAll(s, ".", "")
	} else {
		s = firstSeparatorOnly(s, cfg.MaxDecimals)
	}
	if neg && s != "" {
		s = "-" + s
	}
	return s
}

// SanitizeMoney strips everything but digits and the first decimal
// separator, truncating the fraction to cfg.Decimals.
func SanitizeMoney(s string, cfg MaskConfig) string {
	cfg = cfg.withDefaults()
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	s = keepRunes(s, func(r rune) bool { return unicode.IsDigit(r) || r == '.' })
	return firstSeparatorOnly(s, cfg.Decimals)
}

// SanitizePhone keeps digits only, hard-capped at the configured length.
func SanitizePhone(s string, cfg MaskConfig) string {
	cfg = cfg.withDefaults()
	s = keepRunes(s, unicode.IsDigit)
	rs := []rune(s)
	if len(rs) > cfg.PhoneLength {
		rs = rs[:cfg.PhoneLength]
	}
	return string(rs)
}

func keepRunes(s string, keep func(rune) bool) string {
	var b strings.Builder
	for _, r := range s {
		if keep(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// firstSeparatorOnly keeps the first dot, drops later ones, and truncates
// the fraction to maxFrac digits.
func firstSeparatorOnly(s string, maxFrac int) string {
	dot := strings.IndexRune(s, '.')
	if dot == -1 {
		return s
	}
	before := s[:dot+1]
	after := strings.ReplaceAll(s[dot+1:], ".", "")
	if maxFrac >= 0 && len(after) > maxFrac {
		after = after[:maxFrac]
	}
	return before + after
}

// ── normalizers ──────────────────────────────────────────────────────────────

// NormalizeNumber parses a sanitized buffer into the committed numeric
// value, rounding to cfg.MaxDecimals. Interim states (empty, lone dot,
// lone sign) resolve to absent rather than an error.
func NormalizeNumber(s string, cfg MaskConfig) (float64, bool) {
	s = SanitizeNumber(s, cfg)
	if s == "" || s == "." || s == "-" || s == "-." {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if cfg.MaxDecimals > 0 {
		factor := math.Pow10(cfg.MaxDecimals)
		n = math.Round(n*factor) / factor
	}
	return n, true
}

// NormalizeMoney parses a sanitized money buffer to a plain number.
func NormalizeMoney(s string, cfg MaskConfig) (float64, bool) {
	s = SanitizeMoney(s, cfg)
	if s == "" || s == "." {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NormalizePhone reconstructs the stored composite value from the typed
// digits. ok is false when the digit count misses the required length;
// the value is still returned for the container to keep.
func NormalizePhone(s string, cfg MaskConfig) (stored string, ok bool) {
	cfg = cfg.withDefaults()
	digits := keepRunes(s, unicode.IsDigit)
	if digits == "" {
		return "", false
	}
	return cfg.PhonePrefix + digits, len([]rune(digits)) == cfg.PhoneLength
}

var emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s.]+$`)

// NormalizeEmail lower-cases and trims the address. ok reports the basic
// local@domain.tld shape check.
func NormalizeEmail(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	return s, emailShape.MatchString(s)
}

// ── formatters ───────────────────────────────────────────────────────────────

// moneyPrinter renders grouped decimals with the locale the original
// deployment uses (comma thousands, dot decimals).
var moneyPrinter = message.NewPrinter(language.MustParse("es-MX"))

// FormatMoney renders the committed amount with the currency prefix and
// locale separators, e.g. "$ 1,234.00".
func FormatMoney(v float64, cfg MaskConfig) string {
	cfg = cfg.withDefaults()
	return cfg.Prefix + " " + moneyPrinter.Sprint(number.Decimal(v,
		number.MinFractionDigits(cfg.Decimals),
		number.MaxFractionDigits(cfg.Decimals)))
}

// FormatNumber renders a committed number without grouping.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatPhone renders the stored composite phone grouped for display:
// a 10-digit national number renders 3-3-4 ("668 397 6547"). Other
// digit counts render ungrouped.
func FormatPhone(stored string, cfg MaskConfig) string {
	cfg = cfg.withDefaults()
	digits := keepRunes(strings.TrimPrefix(stored, cfg.PhonePrefix), unicode.IsDigit)
	if len(digits) == 10 {
		return digits[:3] + " " + digits[3:6] + " " + digits[6:]
	}
	return digits
}
