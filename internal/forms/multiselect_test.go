package forms

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresvaldez/despacho/internal/domain"
)

func settleMultiSelect(t *testing.T, m *MultiSelect) {
	t.Helper()
	_, cmd := m.Update(searchTickMsg{ctl: m.id, seq: m.seq})
	if cmd == nil {
		return
	}
	if msg := cmd(); msg != nil {
		m.Update(msg)
	}
}

func TestMultiSelectRemotePoolFirst(t *testing.T) {
	t.Parallel()

	s := &fakeSearcher{results: map[string][]domain.Catalog{
		"norte": {{ID: "a1", Name: "Zona Norte"}, {ID: "a2", Name: "Norte Industrial"}},
	}}
	m := NewRemoteMultiSelect("Áreas", domain.CatalogArea, s)
	m.Focus()

	typeString(t, m, "norte")
	settleMultiSelect(t, m)
	require.Equal(t, []string{"norte"}, s.calls)

	// A later term the pool can answer never reaches the lookup.
	m.input.SetValue("industrial")
	m.lastPushed = "industrial"
	settleMultiSelect(t, m)

	assert.Equal(t, []string{"norte"}, s.calls)
	assert.Equal(t, []string{"Norte Industrial"}, suggestionNames(m.visible))
}

func TestMultiSelectRemoteMissGoesToLookup(t *testing.T) {
	t.Parallel()

	s := &fakeSearcher{results: map[string][]domain.Catalog{
		"sur": {{ID: "b1", Name: "Zona Sur"}},
	}}
	m := NewRemoteMultiSelect("Áreas", domain.CatalogArea, s)
	m.Focus()

	typeString(t, m, "sur")
	settleMultiSelect(t, m)

	assert.Equal(t, []string{"sur"}, s.calls)
	assert.Equal(t, []string{"Zona Sur"}, suggestionNames(m.visible))
}

func TestMultiSelectRemoteResultsRefilteredThroughPool(t *testing.T) {
	t.Parallel()

	s := &fakeSearcher{results: map[string][]domain.Catalog{
		"norte": {{ID: "a1", Name: "Zona Norte"}, {ID: "b9", Name: "Sur Lejano"}},
	}}
	m := NewRemoteMultiSelect("Áreas", domain.CatalogArea, s)
	m.Focus()

	typeString(t, m, "norte")
	settleMultiSelect(t, m)

	// Both entries land in the pool, but only the one matching the
	// term is listed.
	assert.Equal(t, []string{"Zona Norte"}, suggestionNames(m.visible))
	_, found := m.pool.Find("b9")
	assert.True(t, found)
}

func TestMultiSelectViewMarksSelectedRows(t *testing.T) {
	t.Parallel()

	data := []domain.Catalog{{ID: "1", Name: "Uno"}, {ID: "2", Name: "Dos"}}
	m := NewMultiSelect("Áreas", domain.CatalogArea, data)
	m.Focus()
	m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // select "Uno"
	m.Update(tea.KeyMsg{Type: tea.KeyDown})

	view := m.View()
	assert.Contains(t, view, "[x] Uno")
	assert.Contains(t, view, "> [ ] Dos")
}

func TestMultiSelectOpenNoTermRemoteShowsRecent(t *testing.T) {
	t.Parallel()

	s := &fakeSearcher{results: map[string][]domain.Catalog{}}
	m := NewRemoteMultiSelect("Áreas", domain.CatalogArea, s)

	var seen []domain.Catalog
	for i := 0; i < 12; i++ {
		seen = append(seen, domain.Catalog{ID: fmt.Sprintf("id%d", i), Name: fmt.Sprintf("Area %d", i)})
	}
	m.pool.Merge(seen, nil)

	m.Focus()

	// Most recently seen first, capped at ten.
	require.Len(t, m.visible, 10)
	assert.Equal(t, "Area 0", m.visible[0].Name)
	assert.Equal(t, "Area 9", m.visible[9].Name)
	assert.Empty(t, s.calls)
}

func TestMultiSelectOpenNoTermLocalShowsAll(t *testing.T) {
	t.Parallel()

	data := []domain.Catalog{{ID: "1", Name: "Uno"}, {ID: "2", Name: "Dos"}}
	m := NewMultiSelect("Áreas", domain.CatalogArea, data)
	m.Focus()

	assert.Equal(t, []string{"Uno", "Dos"}, suggestionNames(m.visible))
}

func TestMultiSelectToggle(t *testing.T) {
	t.Parallel()

	data := []domain.Catalog{{ID: "1", Name: "Uno"}, {ID: "2", Name: "Dos"}}
	m := NewMultiSelect("Áreas", domain.CatalogArea, data)

	var changed any
	m.OnChange(func(v any) { changed = v })

	m.Focus()
	m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // toggle "Uno"

	assert.Equal(t, []string{"1"}, m.Value())
	assert.Equal(t, []string{"1"}, changed)

	// Selected entries pin to the top, so the cursor row is still "Uno".
	m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // toggle it back off

	assert.Empty(t, m.Value())
	assert.Empty(t, changed)
}

func TestMultiSelectPinsSelectionExcludedFromResults(t *testing.T) {
	t.Parallel()

	s := &fakeSearcher{results: map[string][]domain.Catalog{
		"dos":  {{ID: "2", Name: "Area Dos"}},
		"tres": {{ID: "3", Name: "Area Tres"}},
	}}
	m := NewRemoteMultiSelect("Áreas", domain.CatalogArea, s)
	m.Focus()

	typeString(t, m, "dos")
	settleMultiSelect(t, m)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // select "Area Dos"

	m.input.SetValue("tres")
	m.lastPushed = "tres"
	settleMultiSelect(t, m)

	// "Area Dos" is not in the new results but stays visible on top,
	// with its name resolved from the pool.
	require.Equal(t, []string{"Area Dos", "Area Tres"}, suggestionNames(m.visible))
	assert.Equal(t, []string{"2"}, m.Value())
}

func TestMultiSelectSelectionSurvivesNewSearches(t *testing.T) {
	t.Parallel()

	s := &fakeSearcher{results: map[string][]domain.Catalog{
		"uno": {{ID: "1", Name: "Area Uno"}},
	}}
	m := NewRemoteMultiSelect("Áreas", domain.CatalogArea, s)
	m.Focus()

	typeString(t, m, "uno")
	settleMultiSelect(t, m)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	entries := m.SelectedEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Area Uno", entries[0].Name)
}

func TestMultiSelectSetValue(t *testing.T) {
	t.Parallel()

	data := []domain.Catalog{{ID: "1", Name: "Uno"}, {ID: "2", Name: "Dos"}}
	m := NewMultiSelect("Áreas", domain.CatalogArea, data)

	m.SetValue([]string{"2", "1", "2"})

	assert.Equal(t, []string{"2", "1"}, m.Value())

	m.SetValue([]domain.Catalog{{ID: "9", Name: "Nueve"}})
	entries := m.SelectedEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Nueve", entries[0].Name)
}

func TestMultiSelectClearKeepsPool(t *testing.T) {
	t.Parallel()

	s := &fakeSearcher{results: map[string][]domain.Catalog{
		"uno": {{ID: "1", Name: "Area Uno"}},
	}}
	m := NewRemoteMultiSelect("Áreas", domain.CatalogArea, s)
	m.Focus()

	typeString(t, m, "uno")
	settleMultiSelect(t, m)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	var changed any = "sentinel"
	m.OnChange(func(v any) { changed = v })

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlU})

	assert.Empty(t, m.Value())
	assert.Nil(t, changed)

	// The accumulated names answer the next search without a lookup.
	_, found := m.pool.Find("1")
	assert.True(t, found)
}

func TestResultPoolPromoteAndDedup(t *testing.T) {
	t.Parallel()

	var p resultPool
	p.Merge([]domain.Catalog{{ID: "1", Name: "Uno"}, {ID: "2", Name: "Dos"}}, nil)
	p.Merge([]domain.Catalog{{ID: "1", Name: "Uno Renamed"}}, nil)

	require.Len(t, p.entries, 2)
	assert.Equal(t, "Uno Renamed", p.entries[0].Name)
	assert.Equal(t, "Dos", p.entries[1].Name)
}

func TestResultPoolEvictsOldestUnprotected(t *testing.T) {
	t.Parallel()

	var p resultPool
	protected := map[string]bool{"id0": true}

	for i := 0; i <= poolLimit; i++ {
		p.Merge([]domain.Catalog{{ID: fmt.Sprintf("id%d", i), Name: fmt.Sprintf("Area %d", i)}}, protected)
	}

	require.Len(t, p.entries, poolLimit)

	// The oldest entry would be id0, but it is protected; id1 goes.
	_, found := p.Find("id0")
	assert.True(t, found)
	_, found = p.Find("id1")
	assert.False(t, found)
}
