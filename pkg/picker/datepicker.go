// Package picker implements the modal overlays of the TUI: the two-phase
// date-range picker and the keyboard layout search popup. Both are
// self-contained state machines that consume key events and report a
// terminal outcome; they know nothing about the pages that open them.
package picker

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/keypulse/pkg/period"
)

// Phase is the date picker's selection step.
type Phase int

const (
	SelectingStart Phase = iota
	SelectingEnd
)

// Outcome is the result of feeding one key event to the picker.
type Outcome int

const (
	// Pending means the picker stays open.
	Pending Outcome = iota
	// Confirmed means a range was completed; read it from Range().
	Confirmed
	// Cancelled means the picker was dismissed with no range.
	Cancelled
)

// DatePicker is the modal calendar state. Created on open, discarded on
// cancel, consumed into a DateRange on confirm. The cursor always stays
// on a real calendar day; month navigation clamps day-of-month where the
// target month is shorter.
type DatePicker struct {
	phase        Phase
	cursor       time.Time
	pendingStart *time.Time
	visibleMonth time.Time // first day of the displayed month
	confirmed    period.DateRange
}

// NewDatePicker opens a picker with the cursor on today.
func NewDatePicker(today time.Time) *DatePicker {
	d := period.Midnight(today)
	return &DatePicker{
		phase:        SelectingStart,
		cursor:       d,
		visibleMonth: firstOfMonth(d),
	}
}

// NewDatePickerSeeded opens a picker for editing an existing range: the
// cursor starts on the range's start date.
func NewDatePickerSeeded(existing period.DateRange) *DatePicker {
	d := period.Midnight(existing.Start)
	return &DatePicker{
		phase:        SelectingStart,
		cursor:       d,
		visibleMonth: firstOfMonth(d),
	}
}

// Phase returns the current selection step.
func (p *DatePicker) Phase() Phase { return p.phase }

// Cursor returns the highlighted day.
func (p *DatePicker) Cursor() time.Time { return p.cursor }

// PendingStart returns the latched start date, nil before the first
// confirm.
func (p *DatePicker) PendingStart() *time.Time { return p.pendingStart }

// Range returns the confirmed range. Only meaningful after Handle
// returned Confirmed.
func (p *DatePicker) Range() period.DateRange { return p.confirmed }

// Handle consumes one key event and advances the state machine. All keys
// are captured while the picker is open; unknown keys are swallowed.
func (p *DatePicker) Handle(msg tea.KeyMsg) Outcome {
	switch msg.String() {
	case "esc":
		p.pendingStart = nil
		return Cancelled
	case "left":
		p.moveCursor(-1)
	case "right":
		p.moveCursor(1)
	case "up":
		p.moveCursor(-7)
	case "down":
		p.moveCursor(7)
	case "pgup":
		p.shiftMonth(-1)
	case "pgdown":
		p.shiftMonth(1)
	case "enter":
		return p.confirm()
	}
	return Pending
}

func (p *DatePicker) confirm() Outcome {
	switch p.phase {
	case SelectingStart:
		start := p.cursor
		p.pendingStart = &start
		p.phase = SelectingEnd
		// Nudge the cursor one day ahead as the initial end candidate.
		p.moveCursor(1)
		return Pending
	case SelectingEnd:
		end := p.cursor
		start := end
		if p.pendingStart != nil {
			start = *p.pendingStart
		}
		p.confirmed = period.DateRange{Start: start, End: end}.Normalized()
		return Confirmed
	}
	return Pending
}

// moveCursor shifts the cursor by days, following it across month
// boundaries so the visible month always contains the cursor.
func (p *DatePicker) moveCursor(days int) {
	p.cursor = p.cursor.AddDate(0, 0, days)
	p.visibleMonth = firstOfMonth(p.cursor)
}

// shiftMonth moves the visible month by delta months, keeping the
// cursor's day-of-month and clamping to the target month's last day.
func (p *DatePicker) shiftMonth(delta int) {
	target := p.visibleMonth.AddDate(0, delta, 0)
	day := p.cursor.Day()
	if last := daysIn(target); day > last {
		day = last
	}
	p.cursor = time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, target.Location())
	p.visibleMonth = target
}

func firstOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
}

func daysIn(firstOfMonth time.Time) int {
	return firstOfMonth.AddDate(0, 1, -1).Day()
}
