// Package teatest drives bubbletea models synchronously in tests.
//
// Instead of running a tea.Program, the Driver calls Update directly
// and drains every returned Cmd inline, so model behavior can be
// asserted without goroutines or real terminal I/O.
//
// Cmds that block on timers (cursor blink, debounce ticks) are given a
// short grace period and dropped when they do not return in time; tests
// that care about the timer-driven path deliver those messages by hand.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// drainLimit caps recursive Cmd draining so a model that keeps
// producing messages cannot hang the test.
const drainLimit = 100

// cmdGrace separates instant Cmds (message factories, in-memory store
// calls) from timer-backed ones. Blink waits ~530ms and the search
// debounce 300ms, so anything slower than this is treated as a timer.
const cmdGrace = 10 * time.Millisecond

// Driver holds a model under test and the quit flag.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quit is set when a tea.QuitMsg comes out of a drained Cmd. The
	// real runtime swallows that message, so the driver records it
	// here instead of expecting the model to.
	Quit bool
}

// New wraps model in a Driver. Call RunInit to process Init.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Option tweaks the Driver at construction time.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else, the way the
// runtime does on startup.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.T.Helper()
		updated, _ := d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
		d.Model = updated
	}
}

// RunInit executes the model's Init command and drains what it emits.
func (d *Driver) RunInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send pushes one message through Update and drains the returned Cmd.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quit {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drain(cmd, 0)
}

// Key sends a tea.KeyMsg built from a key type.
func (d *Driver) Key(t tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: t})
}

// Press sends a single printable rune.
func (d *Driver) Press(r rune) {
	d.T.Helper()
	if r == ' ' {
		d.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		return
	}
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Type sends a string rune by rune.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.Press(r)
	}
}

func (d *Driver) Enter() { d.T.Helper(); d.Key(tea.KeyEnter) }
func (d *Driver) Esc()   { d.T.Helper(); d.Key(tea.KeyEsc) }
func (d *Driver) Tab()   { d.T.Helper(); d.Key(tea.KeyTab) }
func (d *Driver) Up()    { d.T.Helper(); d.Key(tea.KeyUp) }
func (d *Driver) Down()  { d.T.Helper(); d.Key(tea.KeyDown) }

// View renders the model under test.
func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= drainLimit {
		d.T.Logf("teatest: drain depth limit (%d) reached", drainLimit)
		return
	}

	msg := runWithGrace(cmd)
	if msg == nil || blinkMsg(msg) {
		return
	}

	switch m := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range m {
			if sub != nil {
				d.drain(sub, depth+1)
			}
		}
	case tea.QuitMsg:
		d.Quit = true
		updated, _ := d.Model.Update(m)
		d.Model = updated
	default:
		updated, next := d.Model.Update(msg)
		d.Model = updated
		d.drain(next, depth+1)
	}
}

// runWithGrace executes cmd on a goroutine and gives up after
// cmdGrace, leaving timer-backed Cmds behind.
func runWithGrace(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() {
		ch <- cmd()
	}()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdGrace):
		return nil
	}
}

// blinkMsg spots bubbles/cursor blink messages. Their types are
// unexported, so the name is all there is to match on.
func blinkMsg(msg tea.Msg) bool {
	t := fmt.Sprintf("%T", msg)
	return strings.Contains(t, "Blink") || strings.Contains(t, "blink")
}
