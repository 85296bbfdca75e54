// Package app provides the core Bubbletea application framework for
// keypulse. It defines the event types, root model, page registry, and
// the modal state machine that form the Elm-architecture skeleton.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/keypulse/pkg/realtime"
)

// DataUpdateEvent carries the result of an async fetch back into the
// bubbletea update loop. Receivers type-assert Data based on Source.
// Generation ties the event to the request that started it; events from
// superseded requests are discarded.
type DataUpdateEvent struct {
	Source     string
	Generation uint64
	Data       interface{} // type-asserted by the receiver
	Err        error       // non-nil if the fetch failed
	Timestamp  time.Time
}

// TickEvent is sent periodically by the render ticker to trigger UI
// refresh, physics sampling, and stale-data checks.
type TickEvent struct {
	Time time.Time
}

// RealtimeEvent wraps one status update from the desktop client's
// plugin socket.
type RealtimeEvent struct {
	Event realtime.Event
}

// realtimeClosed marks the end of the monitor's event stream.
type realtimeClosed struct{}

// TickCmd returns a Cmd that sends a TickEvent after the given duration.
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickEvent{Time: t}
	})
}
