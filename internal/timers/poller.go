package timers

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is delivered when a poller is due.
type TickMsg struct {
	ID  string
	Gen int
	At  time.Time
}

// Poller is a fixed-interval, start/stoppable tick source.
type Poller struct {
	id       string
	interval time.Duration
	running  bool
	gen      int
}

// NewPoller creates a stopped poller.
func NewPoller(id string, interval time.Duration) *Poller {
	return &Poller{id: id, interval: interval}
}

// Interval returns the tick interval.
func (p *Poller) Interval() time.Duration { return p.interval }

// Running reports whether the poller is started.
func (p *Poller) Running() bool { return p.running }

// Start starts the poller and returns a command producing the first tick
// immediately. Starting a running poller is a no-op and returns nil.
func (p *Poller) Start() tea.Cmd {
	if p.running {
		return nil
	}
	p.running = true
	p.gen++
	id, gen := p.id, p.gen
	return func() tea.Msg {
		return TickMsg{ID: id, Gen: gen, At: time.Now()}
	}
}

// Stop stops the poller. Safe to call when not running.
func (p *Poller) Stop() {
	if p.running {
		p.gen++
	}
	p.running = false
}

// Accept reports whether msg is a current tick of this poller.
func (p *Poller) Accept(msg TickMsg) bool {
	return p.running && msg.ID == p.id && msg.Gen == p.gen
}

// Next schedules the following tick one interval from now.
func (p *Poller) Next() tea.Cmd {
	if !p.running {
		return nil
	}
	id, gen := p.id, p.gen
	return tea.Tick(p.interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Gen: gen, At: t}
	})
}
