package forms

import "github.com/andresvaldez/despacho/internal/domain"

// poolLimit caps the accumulated lookup results a multi-select keeps.
const poolLimit = 512

// resultPool accumulates every catalog entry a multi-select has ever
// seen, deduplicated by id, in most-recently-seen order. Bounded by
// poolLimit; eviction takes the oldest entry whose id is not in the
// protected set, so a selected entry's display name is never lost.
type resultPool struct {
	entries []domain.Catalog // index 0 is most recent
}

// Merge folds new lookup results into the pool. An entry already
// present moves to the front and its name is refreshed. protected ids
// survive eviction.
func (p *resultPool) Merge(results []domain.Catalog, protected map[string]bool) {
	for i := len(results) - 1; i >= 0; i-- {
		p.promote(results[i])
	}
	p.evict(protected)
}

func (p *resultPool) promote(entry domain.Catalog) {
	for i, e := range p.entries {
		if sameID(e.ID, entry.ID) {
			copy(p.entries[1:i+1], p.entries[:i])
			p.entries[0] = entry
			return
		}
	}
	p.entries = append([]domain.Catalog{entry}, p.entries...)
}

func (p *resultPool) evict(protected map[string]bool) {
	for len(p.entries) > poolLimit {
		victim := -1
		for i := len(p.entries) - 1; i >= 0; i-- {
			if !protected[p.entries[i].ID] {
				victim = i
				break
			}
		}
		if victim < 0 {
			return // every entry is selected, keep them all
		}
		p.entries = append(p.entries[:victim], p.entries[victim+1:]...)
	}
}

// Filter returns pool entries matching term, most recent first.
func (p *resultPool) Filter(term string) []domain.Catalog {
	return filterByName(p.entries, lowerFold(term))
}

// Recent returns up to n of the most recently seen entries.
func (p *resultPool) Recent(n int) []domain.Catalog {
	if n > len(p.entries) {
		n = len(p.entries)
	}
	out := make([]domain.Catalog, n)
	copy(out, p.entries[:n])
	return out
}

// Find returns the pooled entry for an id, if it has been seen.
func (p *resultPool) Find(id string) (domain.Catalog, bool) {
	for _, e := range p.entries {
		if sameID(e.ID, id) {
			return e, true
		}
	}
	return domain.Catalog{}, false
}
