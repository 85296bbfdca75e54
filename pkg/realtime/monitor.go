package realtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/coder/websocket"
)

// DefaultURL is the desktop client's plugin WebSocket port.
const DefaultURL = "ws://127.0.0.1:3489"

const defaultReconnect = 5 * time.Second

// Monitor maintains the plugin connection and fans decoded events into
// a channel. It reconnects forever until its context is cancelled, so
// the dashboard keeps working when the desktop client restarts.
type Monitor struct {
	url       string
	reconnect time.Duration
	log       *slog.Logger

	// sessionID stamps outgoing events so consumers can tell a
	// reconnect from a continuing stream. Only the Run goroutine
	// touches it.
	sessionID uint64

	events chan Event
	cmds   chan []byte
}

// NewMonitor builds a monitor for the given plugin URL. Zero values
// select the defaults.
func NewMonitor(url string, reconnect time.Duration, log *slog.Logger) *Monitor {
	if url == "" {
		url = DefaultURL
	}
	if reconnect <= 0 {
		reconnect = defaultReconnect
	}
	if log == nil {
		log = slog.Default()
	}
	return &Monitor{
		url:       url,
		reconnect: reconnect,
		log:       log,
		events:    make(chan Event, 16),
		cmds:      make(chan []byte, 4),
	}
}

// Events is the stream of decoded status updates.
func (m *Monitor) Events() <-chan Event { return m.events }

// Pulse queues a pulse command for the next connected session.
func (m *Monitor) Pulse() {
	select {
	case m.cmds <- pulseCommand():
	default:
	}
}

// OpenWindow queues a command to raise the client's window.
func (m *Monitor) OpenWindow() {
	select {
	case m.cmds <- openWindowCommand():
	default:
	}
}

// Run connects and pumps events until ctx is cancelled. Each failed
// session is retried after the reconnect interval.
func (m *Monitor) Run(ctx context.Context) {
	for {
		if err := m.session(ctx); err != nil && ctx.Err() == nil {
			m.log.Debug("realtime session ended", "error", err)
		}
		select {
		case <-ctx.Done():
			close(m.events)
			return
		case <-time.After(m.reconnect):
		}
	}
}

func (m *Monitor) session(ctx context.Context) error {
	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	conn, _, err := websocket.Dial(dialCtx, m.url, nil)
	cancel()
	if err != nil {
		return err
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	if err := conn.Write(ctx, websocket.MessageText, identifyCommand()); err != nil {
		return err
	}
	m.sessionID++
	m.log.Info("realtime connected", "url", m.url, "session", m.sessionID)

	// Reads happen on their own goroutine so queued commands can be
	// written while we wait for the next status frame. sessionDone
	// unblocks the reader when the session ends for any other reason;
	// the deferred Close then fails its pending Read.
	sessionDone := make(chan struct{})
	defer close(sessionDone)
	frames := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		for {
			_, data, err := conn.Read(ctx)
			if err != nil {
				readErr <- err
				return
			}
			select {
			case frames <- data:
			case <-sessionDone:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			return err
		case cmd := <-m.cmds:
			if err := conn.Write(ctx, websocket.MessageText, cmd); err != nil {
				return err
			}
		case data := <-frames:
			ev, err := ParseMessage(data)
			if err != nil {
				m.log.Debug("bad realtime frame", "error", err)
				continue
			}
			if ev == nil {
				continue
			}
			ev.Session = m.sessionID
			select {
			case m.events <- *ev:
			default:
				// Drop rather than stall the read loop.
			}
		}
	}
}
