package forms

import (
	"context"
	"strings"
	"time"

	"github.com/andresvaldez/despacho/internal/domain"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Typeahead is a free-text input bound to a searchable catalog. Local
// mode filters the supplied list in memory; remote mode issues
// debounced, distinct, latest-wins searches through the lookup
// collaborator. It commits the selected entry's id, not its name.
type Typeahead struct {
	id     int
	label  string
	remote bool
	kind   domain.CatalogType
	data   []domain.Catalog
	lookup CatalogSearcher

	input       textinput.Model
	suggestions []domain.Catalog
	cursor      int
	open        bool

	value CatalogValue
	// initialDisplay is shown for a committed id whose entry has not
	// been fetched yet (edit mode over a remote catalog).
	initialDisplay string

	focused  bool
	disabled bool

	seq        int
	lastPushed string // last term pushed into the debounce stream
	lastFired  string // last term a search actually ran for (distinct)

	onChange  func(any)
	onSelect  func(domain.Catalog)
	onTouched func()
	touched   bool
}

// NewTypeahead creates a local-mode typeahead over the given list.
func NewTypeahead(label string, kind domain.CatalogType, data []domain.Catalog) *Typeahead {
	return newTypeahead(label, kind, data, nil, false)
}

// NewRemoteTypeahead creates a remote-mode typeahead over the lookup
// collaborator.
func NewRemoteTypeahead(label string, kind domain.CatalogType, lookup CatalogSearcher) *Typeahead {
	return newTypeahead(label, kind, nil, lookup, true)
}

func newTypeahead(label string, kind domain.CatalogType, data []domain.Catalog, lookup CatalogSearcher, remote bool) *Typeahead {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Buscar..."
	return &Typeahead{
		id:     nextControlID(),
		label:  label,
		kind:   kind,
		data:   data,
		lookup: lookup,
		remote: remote,
		input:  ti,
	}
}

// ── Field contract ───────────────────────────────────────────────────────────

func (t *Typeahead) Focus() tea.Cmd {
	t.focused = true
	return t.input.Focus()
}

func (t *Typeahead) Blur() {
	if !t.focused {
		return
	}
	t.focused = false
	t.open = false
	t.input.Blur()
	t.touch()
}

func (t *Typeahead) Focused() bool { return t.focused }

func (t *Typeahead) SetDisabled(d bool) {
	t.disabled = d
	if d && t.focused {
		t.Blur()
	}
}

func (t *Typeahead) Disabled() bool { return t.disabled }

func (t *Typeahead) OnChange(fn func(any)) { t.onChange = fn }
func (t *Typeahead) OnTouched(fn func())   { t.onTouched = fn }

// OnSelect registers a notifier receiving the full selected entry, for
// containers that pre-populate related fields from it.
func (t *Typeahead) OnSelect(fn func(domain.Catalog)) { t.onSelect = fn }

// ── values ───────────────────────────────────────────────────────────────────

// SetValue normalizes an external raw id or resolved entry. A raw id is
// resolved against the local list when possible; otherwise the
// container-provided initial display (if any) is shown until the user
// edits the field.
func (t *Typeahead) SetValue(v any) {
	t.value = NormalizeCatalogValue(v)

	if entry, ok := t.value.Entry(); ok {
		t.input.SetValue(entry.Name)
		return
	}
	if id := t.value.ID(); id != "" {
		for _, e := range t.data {
			if sameID(e.ID, id) {
				t.value = Resolved(e)
				t.input.SetValue(e.Name)
				return
			}
		}
		if t.initialDisplay != "" {
			t.input.SetValue(t.initialDisplay)
			return
		}
	}
	t.input.SetValue("")
}

// SetInitialDisplay supplies the fallback display string for a value
// whose catalog entry has not been fetched yet.
func (t *Typeahead) SetInitialDisplay(s string) { t.initialDisplay = s }

// Value returns the committed selection.
func (t *Typeahead) Value() CatalogValue { return t.value }

// SelectedID returns the committed id, or "" when nothing is selected.
func (t *Typeahead) SelectedID() string { return t.value.ID() }

// Clear empties the selection and display, notifying the container.
func (t *Typeahead) Clear() {
	t.value = EmptyValue()
	t.input.SetValue("")
	t.suggestions = nil
	t.open = false
	if t.onChange != nil {
		t.onChange(nil)
	}
	t.touch()
}

// ── update loop ──────────────────────────────────────────────────────────────

func (t *Typeahead) Update(msg tea.Msg) (Field, tea.Cmd) {
	if t.disabled {
		return t, nil
	}

	switch msg := msg.(type) {
	case searchTickMsg:
		if msg.ctl != t.id || msg.seq != t.seq {
			return t, nil // superseded by a newer keystroke
		}
		return t, t.fireSearch()

	case searchResultsMsg:
		if msg.ctl != t.id || msg.seq != t.seq {
			return t, nil // stale response for an abandoned query
		}
		t.showSuggestions(msg.entries)
		return t, nil

	case tea.KeyMsg:
		if !t.focused {
			return t, nil
		}
		return t.handleKey(msg)
	}

	return t, nil
}

func (t *Typeahead) handleKey(msg tea.KeyMsg) (Field, tea.Cmd) {
	switch msg.String() {
	case "up":
		if t.open && t.cursor > 0 {
			t.cursor--
		}
		return t, nil
	case "down":
		if t.open && t.cursor < len(t.suggestions)-1 {
			t.cursor++
		}
		return t, nil
	case "enter":
		if t.open && t.cursor < len(t.suggestions) {
			t.selectEntry(t.suggestions[t.cursor])
		}
		return t, nil
	case "esc":
		t.open = false
		return t, nil
	case "ctrl+u":
		t.Clear()
		return t, nil
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)

	term := t.input.Value()
	if term == t.lastPushed {
		return t, cmd
	}
	t.lastPushed = term

	// The typed text is reported upward so required-ness validation can
	// see in-progress edits; a committed id replaces it on selection.
	if t.onChange != nil {
		t.onChange(term)
	}

	t.seq++
	seq := t.seq
	return t, tea.Batch(cmd, tea.Tick(DebounceInterval, func(time.Time) tea.Msg {
		return searchTickMsg{ctl: t.id, seq: seq}
	}))
}

// fireSearch runs the settled term against the catalog. Terms shorter
// than the minimum close the dropdown without searching.
func (t *Typeahead) fireSearch() tea.Cmd {
	term := strings.TrimSpace(t.input.Value())
	if term == t.lastFired {
		return nil
	}
	t.lastFired = term

	if len([]rune(term)) < MinSearchLen {
		t.suggestions = nil
		t.open = false
		return nil
	}

	if !t.remote {
		t.showSuggestions(filterByName(t.data, term))
		return nil
	}

	ctl, seq, kind, lookup := t.id, t.seq, t.kind, t.lookup
	return func() tea.Msg {
		return searchResultsMsg{
			ctl:     ctl,
			seq:     seq,
			term:    term,
			entries: lookup.Search(context.Background(), kind, term),
		}
	}
}

func (t *Typeahead) showSuggestions(entries []domain.Catalog) {
	t.suggestions = entries
	t.cursor = 0
	t.open = len(entries) > 0
}

func (t *Typeahead) selectEntry(entry domain.Catalog) {
	t.value = Resolved(entry)
	t.input.SetValue(entry.Name)
	t.input.CursorEnd()
	t.lastPushed = entry.Name
	t.open = false
	if t.onChange != nil {
		t.onChange(entry.ID)
	}
	if t.onSelect != nil {
		t.onSelect(entry)
	}
	t.touch()
}

func (t *Typeahead) touch() {
	if !t.touched {
		t.touched = true
		if t.onTouched != nil {
			t.onTouched()
		}
	}
}

func (t *Typeahead) View() string {
	var b strings.Builder
	if t.label != "" {
		b.WriteString(styleLabel.Render(t.label))
		b.WriteString("\n")
	}
	b.WriteString(t.input.View())
	if t.open {
		for i, s := range t.suggestions {
			b.WriteString("\n")
			if i == t.cursor {
				b.WriteString(styleCursor.Render("> " + s.Name))
			} else {
				b.WriteString("  " + s.Name)
			}
		}
	}
	return b.String()
}
