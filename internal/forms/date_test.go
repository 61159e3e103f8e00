package forms

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateInput(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("America/Mazatlan")
	require.NoError(t, err)

	tests := []struct {
		name   string
		in     any
		want   string
		wantOK bool
	}{
		{name: "date-only string", in: "2025-11-20", want: "2025-11-20", wantOK: true},
		{name: "civil date", in: CivilDate{Year: 2025, Month: time.November, Day: 20}, want: "2025-11-20", wantOK: true},
		{name: "time value keeps its own calendar day", in: time.Date(2025, 11, 20, 23, 30, 0, 0, loc), want: "2025-11-20", wantOK: true},
		{name: "rfc3339 timestamp", in: "2025-11-20T10:00:00Z", want: "2025-11-20", wantOK: true},
		{name: "rfc3339 nano timestamp", in: "2025-11-20T10:00:00.123456Z", want: "2025-11-20", wantOK: true},
		{name: "sql timestamp", in: "2025-11-20 15:04:05", want: "2025-11-20", wantOK: true},
		{name: "nil", in: nil, wantOK: false},
		{name: "empty string", in: "   ", wantOK: false},
		{name: "garbage", in: "20/11/2025", wantOK: false},
		{name: "zero time", in: time.Time{}, wantOK: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ParseDateInput(tc.in)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.want, got.String())
			}
		})
	}
}

func TestParseDateInputMidnightUTCTimestamp(t *testing.T) {
	t.Parallel()

	// A midnight UTC timestamp must keep its UTC calendar day no
	// matter what zone the host runs in.
	got, ok := ParseDateInput("2025-11-20T00:00:00Z")
	require.True(t, ok)
	assert.Equal(t, "2025-11-20", got.String())
}

func TestDateFieldTyping(t *testing.T) {
	t.Parallel()

	f := NewDateField("Fecha", DateSingle)

	var got any
	f.OnChange(func(v any) { got = v })

	f.Focus()
	typeString(t, f, "2025-11-20")

	require.NotNil(t, f.Date())
	assert.Equal(t, "2025-11-20", f.Date().String())
	assert.Equal(t, "2025-11-20", got)
}

func TestDateFieldRejectsNonDateRunes(t *testing.T) {
	t.Parallel()

	f := NewDateField("Fecha", DateSingle)
	f.Focus()
	typeString(t, f, "2025a-11b-20")

	assert.Equal(t, "2025-11-20", f.start.Value())
}

func TestDateFieldPartialInputIsAbsent(t *testing.T) {
	t.Parallel()

	f := NewDateField("Fecha", DateSingle)
	f.Focus()
	typeString(t, f, "2025-11")

	assert.Nil(t, f.Date())
}

func TestDateFieldRange(t *testing.T) {
	t.Parallel()

	f := NewDateField("Periodo", DateRangeMode)

	var got any
	f.OnChange(func(v any) { got = v })

	f.Focus()
	typeString(t, f, "2025-11-01")
	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeString(t, f, "2025-11-30")

	r := f.Range()
	require.NotNil(t, r.Start)
	require.NotNil(t, r.End)
	assert.Equal(t, "2025-11-01", r.Start.String())
	assert.Equal(t, "2025-11-30", r.End.String())

	gotRange, ok := got.(DateRange)
	require.True(t, ok)
	assert.Equal(t, "2025-11-30", gotRange.End.String())
}

func TestDateFieldRangeEndsAreIndependent(t *testing.T) {
	t.Parallel()

	f := NewDateField("Periodo", DateRangeMode)
	f.Focus()
	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeString(t, f, "2025-11-30")

	r := f.Range()
	assert.Nil(t, r.Start)
	require.NotNil(t, r.End)
	assert.Equal(t, "2025-11-30", r.End.String())
}

func TestDateFieldClearRefocusesStart(t *testing.T) {
	t.Parallel()

	f := NewDateField("Periodo", DateRangeMode)

	var got any
	notified := false
	f.OnChange(func(v any) { got, notified = v, true })

	f.Focus()
	typeString(t, f, "2025-11-01")
	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeString(t, f, "2025-11-30")

	f.Update(tea.KeyMsg{Type: tea.KeyCtrlU})

	r := f.Range()
	assert.Nil(t, r.Start)
	assert.Nil(t, r.End)
	assert.True(t, notified)
	gotRange, ok := got.(DateRange)
	require.True(t, ok)
	assert.Nil(t, gotRange.Start)
	assert.Nil(t, gotRange.End)

	// The caret returns to the start input for the next range.
	assert.Equal(t, 0, f.active)
}

func TestDateFieldSetValue(t *testing.T) {
	t.Parallel()

	f := NewDateField("Fecha", DateSingle)
	f.SetValue("2025-11-20T10:00:00Z")

	require.NotNil(t, f.Date())
	assert.Equal(t, "2025-11-20", f.Date().String())
	assert.Equal(t, "2025-11-20", f.start.Value())

	f.SetValue(nil)
	assert.Nil(t, f.Date())
	assert.Equal(t, "", f.start.Value())
}
