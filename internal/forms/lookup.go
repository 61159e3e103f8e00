package forms

import (
	"context"
	"strings"
	"time"

	"github.com/andresvaldez/despacho/internal/domain"
)

// CatalogSearcher is the external lookup boundary the remote-mode
// typeaheads call. A failed lookup surfaces as zero results; the
// controls never see an error.
type CatalogSearcher interface {
	Search(ctx context.Context, kind domain.CatalogType, term string) []domain.Catalog
}

// DebounceInterval is how long search input must settle before a
// lookup fires.
const DebounceInterval = 300 * time.Millisecond

// MinSearchLen is the minimum term length before a search fires, so
// lookups never run on zero or one characters.
const MinSearchLen = 2

// searchTickMsg fires when a control's debounce window elapses. The
// sequence number implements latest-wins: a newer keystroke bumps the
// control's sequence, and stale ticks are dropped on arrival.
type searchTickMsg struct {
	ctl int
	seq int
}

// searchResultsMsg carries the entries a lookup returned for a term.
// Stale sequences are dropped so an abandoned query's results are
// never applied to the visible list.
type searchResultsMsg struct {
	ctl     int
	seq     int
	term    string
	entries []domain.Catalog
}

// filterByName returns the entries whose name contains term,
// case-insensitively. An empty term matches everything.
func filterByName(entries []domain.Catalog, term string) []domain.Catalog {
	if term == "" {
		return entries
	}
	lower := lowerFold(term)
	var out []domain.Catalog
	for _, e := range entries {
		if containsFold(e.Name, lower) {
			out = append(out, e)
		}
	}
	return out
}

func lowerFold(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func containsFold(name, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(name), lowerTerm)
}
