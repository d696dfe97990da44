// Package timers provides the panel's interval pollers and the preview
// debouncer as Bubble Tea commands.
//
// Nothing here runs a goroutine of its own. A Poller or Debouncer returns a
// tea.Cmd; the Bubble Tea runtime delivers the resulting message back to the
// model, which asks the timer whether the message is still current. Stopping
// a poller bumps its generation so ticks already scheduled are ignored when
// they arrive.
package timers
