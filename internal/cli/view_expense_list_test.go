package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresvaldez/despacho/internal/teatest"
)

func TestExpenseList_FilterPersistsAcrossReopen(t *testing.T) {
	app, _ := newTestApp(t)
	state := &SharedState{App: app, Width: 100, Height: 30}
	day := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	seedExpense(t, app, "Cemento gris", day, 500)
	seedExpense(t, app, "Cable uso rudo", day.AddDate(0, 0, 1), 900)

	d := teatest.New(t, newExpenseListView(state))
	d.RunInit()
	assert.Contains(t, d.View(), "Cemento gris")
	assert.Contains(t, d.View(), "Cable uso rudo")

	// Type a concept filter; the list narrows and the snapshot is saved.
	d.Press('f')
	d.Type("cemento")
	d.Esc()
	assert.Contains(t, d.View(), "Cemento gris")
	assert.NotContains(t, d.View(), "Cable uso rudo")

	var snap expenseFilterSnapshot
	require.True(t, app.State.Load(context.Background(), stateKeyExpenses, &snap))
	assert.Equal(t, "cemento", snap.Concept)

	// A fresh view restores the saved filter before its first load.
	d2 := teatest.New(t, newExpenseListView(state))
	d2.RunInit()
	assert.Contains(t, d2.View(), "cemento")
	assert.Contains(t, d2.View(), "Cemento gris")
	assert.NotContains(t, d2.View(), "Cable uso rudo")
}

func TestExpenseList_ClearResetsFiltersAndSnapshot(t *testing.T) {
	app, _ := newTestApp(t)
	state := &SharedState{App: app, Width: 100, Height: 30}
	day := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	seedExpense(t, app, "Cemento gris", day, 500)
	seedExpense(t, app, "Cable uso rudo", day.AddDate(0, 0, 1), 900)

	d := teatest.New(t, newExpenseListView(state))
	d.RunInit()
	d.Press('f')
	d.Type("cemento")
	d.Esc()
	assert.NotContains(t, d.View(), "Cable uso rudo")

	d.Press('c')
	assert.Contains(t, d.View(), "Cable uso rudo")

	var snap expenseFilterSnapshot
	assert.False(t, app.State.Load(context.Background(), stateKeyExpenses, &snap))
}

func TestExpenseList_PagePersists(t *testing.T) {
	app, _ := newTestApp(t)
	state := &SharedState{App: app, Width: 100, Height: 30}
	day := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	// Seven rows at the default page size of five leaves two on page 2.
	for i := 0; i < 7; i++ {
		seedExpense(t, app, "Gasto", day.AddDate(0, 0, i), 100)
	}

	d := teatest.New(t, newExpenseListView(state))
	d.RunInit()
	assert.Contains(t, d.View(), "página 1/2")

	d.Press('l')
	assert.Contains(t, d.View(), "página 2/2")

	// Past the last page is a no-op.
	d.Press('l')
	assert.Contains(t, d.View(), "página 2/2")

	d2 := teatest.New(t, newExpenseListView(state))
	d2.RunInit()
	assert.Contains(t, d2.View(), "página 2/2")
}

func TestExpenseList_DateRangeFilter(t *testing.T) {
	app, _ := newTestApp(t)
	state := &SharedState{App: app, Width: 100, Height: 30}

	seedExpense(t, app, "Enero", time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC), 100)
	seedExpense(t, app, "Junio", time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC), 100)

	d := teatest.New(t, newExpenseListView(state))
	d.RunInit()

	// Focus the bar and tab past concept, suppliers and project to the
	// period control, then bound the range to May onward.
	d.Press('f')
	d.Tab()
	d.Tab()
	d.Tab()
	d.Type("2026-05-01")
	d.Esc()

	assert.Contains(t, d.View(), "Junio")
	assert.NotContains(t, d.View(), "Enero")

	var snap expenseFilterSnapshot
	require.True(t, app.State.Load(context.Background(), stateKeyExpenses, &snap))
	assert.Equal(t, "2026-05-01", snap.DateFrom)
	assert.Empty(t, snap.DateTo)
}
