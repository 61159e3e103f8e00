package forms

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresvaldez/despacho/internal/domain"
)

type fakeSearcher struct {
	calls   []string
	results map[string][]domain.Catalog
}

func (s *fakeSearcher) Search(_ context.Context, _ domain.CatalogType, term string) []domain.Catalog {
	s.calls = append(s.calls, term)
	return s.results[term]
}

// settle delivers the debounce tick for the control's current sequence
// and, when a lookup command results, runs it and feeds the results
// back, as the runtime would.
func settleTypeahead(t *testing.T, ta *Typeahead) {
	t.Helper()
	_, cmd := ta.Update(searchTickMsg{ctl: ta.id, seq: ta.seq})
	if cmd == nil {
		return
	}
	if msg := cmd(); msg != nil {
		ta.Update(msg)
	}
}

func suggestionNames(entries []domain.Catalog) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestTypeaheadRemoteSearchLatestWins(t *testing.T) {
	t.Parallel()

	s := &fakeSearcher{results: map[string][]domain.Catalog{
		"ac": {{ID: "1", Name: "Acme"}, {ID: "2", Name: "Acero del Norte"}},
	}}
	ta := NewRemoteTypeahead("Proveedor", domain.CatalogSupplier, s)
	ta.Focus()

	typeString(t, ta, "a")
	staleSeq := ta.seq
	typeString(t, ta, "c")

	// The tick for the abandoned keystroke is dropped without searching.
	ta.Update(searchTickMsg{ctl: ta.id, seq: staleSeq})
	assert.Empty(t, s.calls)

	settleTypeahead(t, ta)

	require.Equal(t, []string{"ac"}, s.calls)
	assert.Equal(t, []string{"Acme", "Acero del Norte"}, suggestionNames(ta.suggestions))
	assert.True(t, ta.open)
}

func TestTypeaheadShortTermNeverSearches(t *testing.T) {
	t.Parallel()

	s := &fakeSearcher{}
	ta := NewRemoteTypeahead("Proveedor", domain.CatalogSupplier, s)
	ta.Focus()

	typeString(t, ta, "a")
	settleTypeahead(t, ta)

	assert.Empty(t, s.calls)
	assert.False(t, ta.open)
}

func TestTypeaheadRepeatedTermSearchesOnce(t *testing.T) {
	t.Parallel()

	s := &fakeSearcher{results: map[string][]domain.Catalog{"ac": {{ID: "1", Name: "Acme"}}}}
	ta := NewRemoteTypeahead("Proveedor", domain.CatalogSupplier, s)
	ta.Focus()

	typeString(t, ta, "ac")
	settleTypeahead(t, ta)
	// Same settled term again, e.g. a trailing deleted-then-retyped rune.
	settleTypeahead(t, ta)

	assert.Equal(t, []string{"ac"}, s.calls)
}

func TestTypeaheadStaleResultsDropped(t *testing.T) {
	t.Parallel()

	ta := NewRemoteTypeahead("Proveedor", domain.CatalogSupplier, &fakeSearcher{})
	ta.Focus()
	typeString(t, ta, "acme")

	ta.Update(searchResultsMsg{
		ctl:     ta.id,
		seq:     ta.seq - 1,
		term:    "acm",
		entries: []domain.Catalog{{ID: "9", Name: "stale"}},
	})

	assert.Empty(t, ta.suggestions)
}

func TestTypeaheadLocalFilter(t *testing.T) {
	t.Parallel()

	data := []domain.Catalog{
		{ID: "1", Name: "Torre Norte"},
		{ID: "2", Name: "Plaza Centro"},
		{ID: "3", Name: "Torre Sur"},
	}
	ta := NewTypeahead("Proyecto", domain.CatalogProject, data)
	ta.Focus()

	typeString(t, ta, "torre")
	settleTypeahead(t, ta)

	assert.Equal(t, []string{"Torre Norte", "Torre Sur"}, suggestionNames(ta.suggestions))
}

func TestTypeaheadSelectCommitsID(t *testing.T) {
	t.Parallel()

	data := []domain.Catalog{{ID: "1", Name: "Torre Norte"}}
	ta := NewTypeahead("Proyecto", domain.CatalogProject, data)

	var changed any
	var selected domain.Catalog
	ta.OnChange(func(v any) { changed = v })
	ta.OnSelect(func(e domain.Catalog) { selected = e })

	ta.Focus()
	typeString(t, ta, "torre")
	settleTypeahead(t, ta)
	ta.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "1", ta.SelectedID())
	assert.Equal(t, "1", changed)
	assert.Equal(t, "Torre Norte", selected.Name)
	assert.Equal(t, "Torre Norte", ta.input.Value())
	assert.False(t, ta.open)
}

func TestTypeaheadSetValueResolvesLocally(t *testing.T) {
	t.Parallel()

	data := []domain.Catalog{{ID: "2", Name: "Plaza Centro"}}
	ta := NewTypeahead("Proyecto", domain.CatalogProject, data)

	ta.SetValue("2")

	entry, ok := ta.Value().Entry()
	require.True(t, ok)
	assert.Equal(t, "Plaza Centro", entry.Name)
	assert.Equal(t, "Plaza Centro", ta.input.Value())
}

func TestTypeaheadInitialDisplayForUnresolvedID(t *testing.T) {
	t.Parallel()

	ta := NewRemoteTypeahead("Proveedor", domain.CatalogSupplier, &fakeSearcher{})
	ta.SetInitialDisplay("Acme")
	ta.SetValue("supplier-7")

	assert.Equal(t, "supplier-7", ta.SelectedID())
	assert.Equal(t, "Acme", ta.input.Value())
}

func TestTypeaheadClear(t *testing.T) {
	t.Parallel()

	data := []domain.Catalog{{ID: "1", Name: "Torre Norte"}}
	ta := NewTypeahead("Proyecto", domain.CatalogProject, data)
	ta.SetValue("1")

	var changed any = "sentinel"
	ta.OnChange(func(v any) { changed = v })

	ta.Clear()

	assert.True(t, ta.Value().IsEmpty())
	assert.Equal(t, "", ta.input.Value())
	assert.Nil(t, changed)
}
