package timers

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultQuiet is the preview debounce interval.
const DefaultQuiet = 400 * time.Millisecond

// FireMsg is delivered when a debounce interval has elapsed.
type FireMsg struct {
	ID  string
	Tag int
}

// Debouncer collapses a burst of requests into the most recent one, fired
// after a quiet interval with no newer request.
type Debouncer[T any] struct {
	id      string
	quiet   time.Duration
	tag     int
	pending bool
	value   T
}

// NewDebouncer creates an idle debouncer.
func NewDebouncer[T any](id string, quiet time.Duration) *Debouncer[T] {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Debouncer[T]{id: id, quiet: quiet}
}

// Request replaces the pending value with v and restarts the quiet interval.
func (d *Debouncer[T]) Request(v T) tea.Cmd {
	d.tag++
	d.value = v
	d.pending = true
	id, tag := d.id, d.tag
	return tea.Tick(d.quiet, func(time.Time) tea.Msg {
		return FireMsg{ID: id, Tag: tag}
	})
}

// Fire returns the pending value when msg belongs to the latest request and
// clears it. Superseded or foreign messages return false.
func (d *Debouncer[T]) Fire(msg FireMsg) (T, bool) {
	var zero T
	if msg.ID != d.id || !d.pending || msg.Tag != d.tag {
		return zero, false
	}
	v := d.value
	d.value = zero
	d.pending = false
	return v, true
}

// Pending reports whether a request waits to fire.
func (d *Debouncer[T]) Pending() bool { return d.pending }

// Cancel drops the pending request.
func (d *Debouncer[T]) Cancel() {
	var zero T
	d.value = zero
	d.pending = false
}
