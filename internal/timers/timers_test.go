package timers

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestPoller_StartIsIdempotent(t *testing.T) {
	p := NewPoller("logs", 1500*time.Millisecond)

	cmd := p.Start()
	if cmd == nil {
		t.Fatal("Start() on a stopped poller should return a command")
	}
	if p.Start() != nil {
		t.Error("Start() on a running poller should be a no-op")
	}

	msg, ok := cmd().(TickMsg)
	if !ok {
		t.Fatalf("first tick = %T, want TickMsg", msg)
	}
	if !p.Accept(msg) {
		t.Error("first tick should be accepted")
	}
}

func TestPoller_StopInvalidatesTicks(t *testing.T) {
	p := NewPoller("clock", time.Second)
	msg := p.Start()().(TickMsg)

	p.Stop()
	p.Stop()
	if p.Running() {
		t.Error("Running() after Stop")
	}
	if p.Accept(msg) {
		t.Error("tick from before Stop must be rejected")
	}
	if p.Next() != nil {
		t.Error("Next() on a stopped poller should be nil")
	}

	restarted := p.Start()().(TickMsg)
	if p.Accept(msg) {
		t.Error("tick of an old generation must be rejected after restart")
	}
	if !p.Accept(restarted) {
		t.Error("tick of the new generation should be accepted")
	}
}

func TestPoller_RejectsForeignTicks(t *testing.T) {
	logs := NewPoller("logs", time.Second)
	clock := NewPoller("clock", time.Second)
	_ = logs.Start()
	msg := clock.Start()().(TickMsg)

	if logs.Accept(msg) {
		t.Error("logs poller accepted a clock tick")
	}
}

func TestPoller_NextCarriesGeneration(t *testing.T) {
	p := NewPoller("logs", time.Millisecond)
	_ = p.Start()

	msg, ok := p.Next()().(TickMsg)
	if !ok || !p.Accept(msg) {
		t.Errorf("Next() tick = %+v, accepted %v", msg, ok)
	}
}

func TestDebouncer_LatestWins(t *testing.T) {
	d := NewDebouncer[string]("preview", time.Millisecond)

	first := d.Request("a.wav")
	second := d.Request("b.wav")

	var fired []string
	for _, cmd := range []tea.Cmd{first, second} {
		if v, ok := d.Fire(cmd().(FireMsg)); ok {
			fired = append(fired, v)
		}
	}

	if len(fired) != 1 || fired[0] != "b.wav" {
		t.Errorf("fired = %v, want [b.wav]", fired)
	}
	if d.Pending() {
		t.Error("firing should clear the pending request")
	}
}

func TestDebouncer_FireOnlyOnce(t *testing.T) {
	d := NewDebouncer[string]("preview", time.Millisecond)
	msg := d.Request("a.wav")().(FireMsg)

	if _, ok := d.Fire(msg); !ok {
		t.Fatal("first Fire should succeed")
	}
	if _, ok := d.Fire(msg); ok {
		t.Error("second Fire of the same message should be ignored")
	}
}

func TestDebouncer_CancelAndForeign(t *testing.T) {
	d := NewDebouncer[int]("x", time.Millisecond)
	msg := d.Request(7)().(FireMsg)

	if _, ok := d.Fire(FireMsg{ID: "y", Tag: msg.Tag}); ok {
		t.Error("foreign id should not fire")
	}
	d.Cancel()
	if _, ok := d.Fire(msg); ok {
		t.Error("cancelled request should not fire")
	}
}

func TestNewDebouncer_DefaultQuiet(t *testing.T) {
	d := NewDebouncer[string]("p", 0)
	if d.quiet != DefaultQuiet {
		t.Errorf("quiet = %v, want %v", d.quiet, DefaultQuiet)
	}
}
