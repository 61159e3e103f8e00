package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAcceptRune(t *testing.T) {
	t.Parallel()

	number := MaskConfig{Kind: KindNumber, MaxDecimals: 2}
	signed := MaskConfig{Kind: KindNumber, MaxDecimals: 2, AllowNegative: true}
	integer := MaskConfig{Kind: KindNumber}
	money := MaskConfig{Kind: KindMoney}
	phone := MaskConfig{Kind: KindPhone}

	tests := []struct {
		name   string
		buffer string
		sel    Range
		r      rune
		cfg    MaskConfig
		want   bool
	}{
		{name: "number digit", buffer: "12", sel: Caret(2), r: '3', cfg: number, want: true},
		{name: "number letter rejected", buffer: "12", sel: Caret(2), r: 'a', cfg: number, want: false},
		{name: "number first separator", buffer: "12", sel: Caret(2), r: '.', cfg: number, want: true},
		{name: "number comma separator", buffer: "12", sel: Caret(2), r: ',', cfg: number, want: true},
		{name: "number second separator rejected", buffer: "1.2", sel: Caret(3), r: '.', cfg: number, want: false},
		{name: "number separator replacing selection with separator", buffer: "1.2", sel: Range{Start: 1, End: 3}, r: '.', cfg: number, want: true},
		{name: "number decimals at cap rejected", buffer: "1.23", sel: Caret(4), r: '4', cfg: number, want: false},
		{name: "number decimals under cap", buffer: "1.2", sel: Caret(3), r: '3', cfg: number, want: true},
		{name: "number digit before separator ignores cap", buffer: "1.23", sel: Caret(1), r: '9', cfg: number, want: true},
		{name: "number minus rejected by default", buffer: "", sel: Caret(0), r: '-', cfg: number, want: false},
		{name: "number minus at start when negative allowed", buffer: "12", sel: Caret(0), r: '-', cfg: signed, want: true},
		{name: "number minus mid-buffer rejected", buffer: "12", sel: Caret(1), r: '-', cfg: signed, want: false},
		{name: "number second minus rejected", buffer: "-12", sel: Caret(0), r: '-', cfg: signed, want: false},
		{name: "integer separator rejected", buffer: "12", sel: Caret(2), r: '.', cfg: integer, want: false},
		{name: "money digit", buffer: "1234", sel: Caret(4), r: '5', cfg: money, want: true},
		{name: "money first separator", buffer: "1234", sel: Caret(4), r: '.', cfg: money, want: true},
		{name: "money second separator rejected", buffer: "12.3", sel: Caret(4), r: '.', cfg: money, want: false},
		{name: "money letter rejected", buffer: "12", sel: Caret(2), r: 'x', cfg: money, want: false},
		{name: "phone digit under cap", buffer: "668397654", sel: Caret(9), r: '7', cfg: phone, want: true},
		{name: "phone digit at cap rejected", buffer: "6683976547", sel: Caret(10), r: '1', cfg: phone, want: false},
		{name: "phone digit at cap replacing selection", buffer: "6683976547", sel: Range{Start: 0, End: 3}, r: '1', cfg: phone, want: true},
		{name: "phone letter rejected", buffer: "", sel: Caret(0), r: 'a', cfg: phone, want: false},
		{name: "text accepts anything", buffer: "hola ", sel: Caret(5), r: ' ', cfg: MaskConfig{Kind: KindText}, want: true},
		{name: "email accepts anything", buffer: "a@b", sel: Caret(3), r: '.', cfg: MaskConfig{Kind: KindEmail}, want: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, AcceptRune(tc.buffer, tc.sel, tc.r, tc.cfg))
		})
	}
}

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hola mundo", SanitizeText("hola   mundo"))
	assert.Equal(t, "hola ", SanitizeText("  hola "))
	assert.Equal(t, "", SanitizeText("   "))
	assert.Equal(t, "hola mundo", NormalizeTextOnBlur("  hola   mundo  "))
}

func TestSanitizeNumber(t *testing.T) {
	t.Parallel()

	cfg := MaskConfig{Kind: KindNumber, MaxDecimals: 2, AllowNegative: true}

	assert.Equal(t, "12.34", SanitizeNumber("12,34", cfg))
	assert.Equal(t, "12.34", SanitizeNumber("12.345", cfg))
	assert.Equal(t, "-12.3", SanitizeNumber("-12.3", cfg))
	assert.Equal(t, "1234", SanitizeNumber("12a3b4", cfg))
	assert.Equal(t, "12.34", SanitizeNumber("12.3.4", cfg))

	intCfg := MaskConfig{Kind: KindNumber}
	assert.Equal(t, "1234", SanitizeNumber("12.34", intCfg))
	assert.Equal(t, "123", SanitizeNumber("-123", intCfg))
}

func TestNormalizeNumber(t *testing.T) {
	t.Parallel()

	cfg := MaskConfig{Kind: KindNumber, MaxDecimals: 2}

	n, ok := NormalizeNumber("12.345", cfg)
	assert.True(t, ok)
	assert.InDelta(t, 12.34, n, 1e-9)

	_, ok = NormalizeNumber("", cfg)
	assert.False(t, ok)
	_, ok = NormalizeNumber(".", cfg)
	assert.False(t, ok)
	_, ok = NormalizeNumber("-", MaskConfig{Kind: KindNumber, AllowNegative: true})
	assert.False(t, ok)
}

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	cfg := MaskConfig{Kind: KindPhone}

	stored, ok := NormalizePhone("6683976547", cfg)
	assert.True(t, ok)
	assert.Equal(t, "+526683976547", stored)

	stored, ok = NormalizePhone("668397", cfg)
	assert.False(t, ok)
	assert.Equal(t, "+52668397", stored)

	stored, ok = NormalizePhone("", cfg)
	assert.False(t, ok)
	assert.Equal(t, "", stored)
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{name: "lowercased and trimmed", in: "  Ana.Lopez@Empresa.MX ", want: "ana.lopez@empresa.mx", wantOK: true},
		{name: "missing domain dot", in: "ana@empresa", want: "ana@empresa", wantOK: false},
		{name: "missing at", in: "ana.empresa.mx", want: "ana.empresa.mx", wantOK: false},
		{name: "empty", in: "   ", want: "", wantOK: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := NormalizeEmail(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantOK, ok)
		})
	}
}

func TestFormatMoney(t *testing.T) {
	t.Parallel()

	cfg := MaskConfig{Kind: KindMoney}

	assert.Equal(t, "$ 1,234.00", FormatMoney(1234, cfg))
	assert.Equal(t, "$ 0.50", FormatMoney(0.5, cfg))
	assert.Equal(t, "$ 1,234,567.89", FormatMoney(1234567.89, cfg))
}

func TestFormatPhone(t *testing.T) {
	t.Parallel()

	cfg := MaskConfig{Kind: KindPhone}

	assert.Equal(t, "668 397 6547", FormatPhone("+526683976547", cfg))
	assert.Equal(t, "66839", FormatPhone("+5266839", cfg))
}
