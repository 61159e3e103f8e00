package forms

import (
	"context"
	"strings"
	"time"

	"github.com/andresvaldez/despacho/internal/domain"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// recentShown is how many cached entries a remote multi-select lists
// when opened with no search term.
const recentShown = 10

// MultiSelect is a searchable checklist over a catalog. Selections
// accumulate across searches; every entry seen from a lookup is kept
// in an id-deduplicated pool so a selection made three searches ago
// still renders its name. Selected entries are pinned to the top of
// the visible list even when the current results exclude them.
type MultiSelect struct {
	id     int
	label  string
	remote bool
	kind   domain.CatalogType
	data   []domain.Catalog
	lookup CatalogSearcher

	input   textinput.Model
	pool    resultPool
	visible []domain.Catalog
	cursor  int
	open    bool

	selected map[string]bool
	order    []string // selection order, for stable Value output

	focused  bool
	disabled bool

	seq        int
	lastPushed string
	lastFired  string

	onChange  func(any)
	onTouched func()
	touched   bool
}

// NewMultiSelect creates a local-mode multi-select over the given list.
func NewMultiSelect(label string, kind domain.CatalogType, data []domain.Catalog) *MultiSelect {
	return newMultiSelect(label, kind, data, nil, false)
}

// NewRemoteMultiSelect creates a remote-mode multi-select over the
// lookup collaborator.
func NewRemoteMultiSelect(label string, kind domain.CatalogType, lookup CatalogSearcher) *MultiSelect {
	return newMultiSelect(label, kind, nil, lookup, true)
}

func newMultiSelect(label string, kind domain.CatalogType, data []domain.Catalog, lookup CatalogSearcher, remote bool) *MultiSelect {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Buscar..."
	m := &MultiSelect{
		id:       nextControlID(),
		label:    label,
		kind:     kind,
		data:     data,
		lookup:   lookup,
		remote:   remote,
		input:    ti,
		selected: make(map[string]bool),
	}
	m.pool.Merge(data, nil)
	return m
}

// ── Field contract ───────────────────────────────────────────────────────────

func (m *MultiSelect) Focus() tea.Cmd {
	m.focused = true
	m.openList()
	return m.input.Focus()
}

func (m *MultiSelect) Blur() {
	if !m.focused {
		return
	}
	m.focused = false
	m.open = false
	m.input.Blur()
	m.touch()
}

func (m *MultiSelect) Focused() bool { return m.focused }

func (m *MultiSelect) SetDisabled(d bool) {
	m.disabled = d
	if d && m.focused {
		m.Blur()
	}
}

func (m *MultiSelect) Disabled() bool { return m.disabled }

func (m *MultiSelect) OnChange(fn func(any)) { m.onChange = fn }
func (m *MultiSelect) OnTouched(fn func())   { m.onTouched = fn }

// ── values ───────────────────────────────────────────────────────────────────

// SetValue replaces the selection with the given ids or entries.
// Entries carry their display names into the pool; bare ids render as
// the id itself until a lookup supplies the name.
func (m *MultiSelect) SetValue(v any) {
	m.selected = make(map[string]bool)
	m.order = nil
	switch vs := v.(type) {
	case nil:
	case []string:
		for _, id := range vs {
			m.addSelection(id)
		}
	case []domain.Catalog:
		m.pool.Merge(vs, nil)
		for _, e := range vs {
			m.addSelection(e.ID)
		}
	case []any:
		for _, item := range vs {
			cv := NormalizeCatalogValue(item)
			if entry, ok := cv.Entry(); ok {
				m.pool.Merge([]domain.Catalog{entry}, nil)
			}
			if id := cv.ID(); id != "" {
				m.addSelection(id)
			}
		}
	}
	m.refreshVisible()
}

func (m *MultiSelect) addSelection(id string) {
	id = strings.TrimSpace(id)
	if id == "" || m.selected[id] {
		return
	}
	m.selected[id] = true
	m.order = append(m.order, id)
}

// Value returns the selected ids in selection order.
func (m *MultiSelect) Value() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// SelectedEntries resolves the selected ids against the pool. An id
// never seen in results falls back to a name-less entry.
func (m *MultiSelect) SelectedEntries() []domain.Catalog {
	out := make([]domain.Catalog, 0, len(m.order))
	for _, id := range m.order {
		if e, ok := m.pool.Find(id); ok {
			out = append(out, e)
		} else {
			out = append(out, domain.Catalog{ID: id, Name: id})
		}
	}
	return out
}

// Clear drops the whole selection. The pool is kept; accumulated names
// stay useful for the next selection round.
func (m *MultiSelect) Clear() {
	if len(m.order) == 0 && m.input.Value() == "" {
		m.touch()
		return
	}
	m.selected = make(map[string]bool)
	m.order = nil
	m.input.SetValue("")
	m.lastPushed = ""
	m.lastFired = ""
	m.refreshVisible()
	if m.onChange != nil {
		m.onChange([]string(nil))
	}
	m.touch()
}

// ── update loop ──────────────────────────────────────────────────────────────

func (m *MultiSelect) Update(msg tea.Msg) (Field, tea.Cmd) {
	if m.disabled {
		return m, nil
	}

	switch msg := msg.(type) {
	case searchTickMsg:
		if msg.ctl != m.id || msg.seq != m.seq {
			return m, nil
		}
		return m, m.fireSearch()

	case searchResultsMsg:
		if msg.ctl != m.id || msg.seq != m.seq {
			return m, nil
		}
		m.pool.Merge(msg.entries, m.selected)
		m.show(m.pool.Filter(msg.term))
		return m, nil

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *MultiSelect) handleKey(msg tea.KeyMsg) (Field, tea.Cmd) {
	switch msg.String() {
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
		return m, nil
	case "enter", " ":
		if m.open && m.cursor < len(m.visible) {
			m.toggle(m.visible[m.cursor])
		}
		return m, nil
	case "esc":
		m.open = false
		return m, nil
	case "ctrl+u":
		m.Clear()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	term := m.input.Value()
	if term == m.lastPushed {
		return m, cmd
	}
	m.lastPushed = term

	m.seq++
	seq := m.seq
	return m, tea.Batch(cmd, tea.Tick(DebounceInterval, func(time.Time) tea.Msg {
		return searchTickMsg{ctl: m.id, seq: seq}
	}))
}

// fireSearch resolves the settled term. The pool is consulted first;
// the remote lookup only runs when the pool has nothing for the term,
// so repeating a search never leaves the process.
func (m *MultiSelect) fireSearch() tea.Cmd {
	term := strings.TrimSpace(m.input.Value())
	if term == m.lastFired {
		return nil
	}
	m.lastFired = term

	if len([]rune(term)) < MinSearchLen {
		m.openList()
		return nil
	}

	if hits := m.pool.Filter(term); len(hits) > 0 || !m.remote {
		m.show(hits)
		return nil
	}

	ctl, seq, kind, lookup := m.id, m.seq, m.kind, m.lookup
	return func() tea.Msg {
		return searchResultsMsg{
			ctl:     ctl,
			seq:     seq,
			term:    term,
			entries: lookup.Search(context.Background(), kind, term),
		}
	}
}

// openList shows the no-term listing: the full catalog in local mode,
// the most recently seen cached entries in remote mode.
func (m *MultiSelect) openList() {
	if m.remote {
		m.show(m.pool.Recent(recentShown))
	} else {
		m.show(m.data)
	}
}

// show pins the selected entries above the result entries, skipping
// results that are already selected so nothing appears twice.
func (m *MultiSelect) show(entries []domain.Catalog) {
	m.visible = m.pinSelected(entries)
	m.cursor = 0
	m.open = true
}

func (m *MultiSelect) pinSelected(entries []domain.Catalog) []domain.Catalog {
	out := m.SelectedEntries()
	for _, e := range entries {
		if !m.selected[e.ID] {
			out = append(out, e)
		}
	}
	return out
}

func (m *MultiSelect) refreshVisible() {
	if m.open {
		m.show(m.pool.Filter(m.input.Value()))
	}
}

func (m *MultiSelect) toggle(entry domain.Catalog) {
	if m.selected[entry.ID] {
		delete(m.selected, entry.ID)
		for i, id := range m.order {
			if sameID(id, entry.ID) {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
	} else {
		m.pool.Merge([]domain.Catalog{entry}, m.selected)
		m.addSelection(entry.ID)
	}
	m.refreshVisible()
	if m.onChange != nil {
		m.onChange(m.Value())
	}
	m.touch()
}

func (m *MultiSelect) touch() {
	if !m.touched {
		m.touched = true
		if m.onTouched != nil {
			m.onTouched()
		}
	}
}

func (m *MultiSelect) View() string {
	var b strings.Builder
	if m.label != "" {
		b.WriteString(styleLabel.Render(m.label))
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	if m.open {
		for i, e := range m.visible {
			b.WriteString("\n")
			mark := "[ ]"
			if m.selected[e.ID] {
				mark = "[x]"
			}
			line := mark + " " + e.Name
			switch {
			case i == m.cursor:
				b.WriteString(styleCursor.Render("> " + line))
			case m.selected[e.ID]:
				b.WriteString("  " + styleSelected.Render(line))
			default:
				b.WriteString("  " + line)
			}
		}
	}
	return b.String()
}
