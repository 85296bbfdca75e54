// Package realtime streams live input telemetry from the desktop
// client's WebSocket plugin port. The client treats us as a plugin:
// after an identify handshake it pushes status updates every second
// or so, and accepts a small set of commands back.
package realtime

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Event is one decoded status update from the client.
type Event struct {
	// Session numbers the connection the frame arrived on, starting at
	// 1 and incrementing on every reconnect. Counter deltas are only
	// meaningful between frames of the same session.
	Session uint64

	// KPS and CPS are the client's own realtime keys/clicks per second.
	KPS float64
	CPS float64

	// Counters accumulated since the last pulse.
	UnpulsedKeys   int64
	UnpulsedClicks int64
	UnpulsedScroll int64

	// Per-key press counts since the client started, for the heatmap.
	Heatmap map[string]int64
}

// command is the envelope for messages we send to the client.
type command struct {
	Source string `json:"source"`
	Action string `json:"action"`
}

// identifyCommand is the handshake sent right after connecting.
func identifyCommand() []byte {
	b, _ := json.Marshal(command{Source: "plugin", Action: "identify"})
	return b
}

// pulseCommand asks the client to pulse now.
func pulseCommand() []byte {
	b, _ := json.Marshal(command{Source: "plugin", Action: "pulse"})
	return b
}

// openWindowCommand raises the client's main window.
func openWindowCommand() []byte {
	b, _ := json.Marshal(command{Source: "plugin", Action: "open-window"})
	return b
}

// statusMessage mirrors the client's "update-status" payload. Rates
// arrive as locale-formatted strings ("2,17" on comma-decimal locales),
// counters as numbers.
type statusMessage struct {
	Type           string           `json:"type"`
	KPS            string           `json:"keys_per_second"`
	CPS            string           `json:"clicks_per_second"`
	UnpulsedKeys   int64            `json:"unpulsed_keys"`
	UnpulsedClicks int64            `json:"unpulsed_clicks"`
	UnpulsedScroll int64            `json:"unpulsed_scrolls"`
	Heatmap        map[string]int64 `json:"key_frequencies"`
}

// ParseMessage decodes one frame from the client. Frames other than
// update-status return (nil, nil) and are skipped by the read loop.
func ParseMessage(data []byte) (*Event, error) {
	var msg statusMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("decode status frame: %w", err)
	}
	if msg.Type != "update-status" {
		return nil, nil
	}

	ev := &Event{
		UnpulsedKeys:   msg.UnpulsedKeys,
		UnpulsedClicks: msg.UnpulsedClicks,
		UnpulsedScroll: msg.UnpulsedScroll,
		Heatmap:        msg.Heatmap,
	}
	var err error
	if ev.KPS, err = parseLocalizedFloat(msg.KPS); err != nil {
		return nil, fmt.Errorf("keys_per_second: %w", err)
	}
	if ev.CPS, err = parseLocalizedFloat(msg.CPS); err != nil {
		return nil, fmt.Errorf("clicks_per_second: %w", err)
	}
	return ev, nil
}

// parseLocalizedFloat handles both "2.17" and "2,17". Empty means zero.
func parseLocalizedFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	// "1.234.56" style grouping: keep only the last separator.
	if first, last := strings.Index(s, "."), strings.LastIndex(s, "."); first != last {
		s = strings.ReplaceAll(s[:last], ".", "") + s[last:]
	}
	return strconv.ParseFloat(s, 64)
}
