package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$ 12,500.00", Money(12500))
	assert.Equal(t, "$ 0.25", Money(0.25))
}

func TestPhone(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "668 397 6547", Phone("+526683976547"))
	assert.Equal(t, "+5266839", Phone("+5266839"))
}

func TestDate(t *testing.T) {
	t.Parallel()

	d := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-11-20", Date(d))
	assert.Equal(t, "2025-11-20", OptionalDate(&d))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "renta…", Truncate("renta oficina", 6))
	assert.Equal(t, "renta", Truncate("renta", 10))
}

func TestRenderTableAlignsColumns(t *testing.T) {
	t.Parallel()

	out := RenderTable(
		[]string{"FOLIO", "MONTO"},
		[][]string{
			{"F-001", "$ 1,000.00"},
			{"F-0002", "$ 500.00"},
		},
	)

	var lines []string
	for _, l := range strings.Split(out, "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[2], "F-001")
	assert.Contains(t, lines[3], "F-0002")
}
