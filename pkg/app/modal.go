package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/keypulse/pkg/layouts"
	"gitlab.com/tinyland/lab/keypulse/pkg/period"
	"gitlab.com/tinyland/lab/keypulse/pkg/picker"
)

// Modal is an exclusive overlay. At most one can be open: the model
// holds a single Modal field, nil while navigating, so a second modal
// cannot exist without replacing the first.
type Modal interface {
	// Handle processes a key while the modal is open. The modal closes
	// itself by calling m.CloseModal.
	Handle(m *Model, msg tea.KeyMsg) tea.Cmd
	View() string
}

// dateModal wraps the two-phase date-range picker.
type dateModal struct {
	picker *picker.DatePicker
}

func (d *dateModal) Handle(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch d.picker.Handle(msg) {
	case picker.Confirmed:
		m.CloseModal()
		return m.SetCustomRange(d.picker.Range())
	case picker.Cancelled:
		m.CloseModal()
	}
	return nil
}

func (d *dateModal) View() string { return d.picker.View() }

// layoutModal wraps the fuzzy layout search popup; the chosen layout is
// delivered through the callback so any page can open it.
type layoutModal struct {
	picker   *picker.LayoutPicker
	onChoose func(m *Model, l layouts.Layout)
}

// NewLayoutModal builds a layout-picker modal around a choice callback.
func NewLayoutModal(onChoose func(m *Model, l layouts.Layout)) Modal {
	return &layoutModal{picker: picker.NewLayoutPicker(), onChoose: onChoose}
}

func (l *layoutModal) Handle(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch l.picker.Handle(msg) {
	case picker.LayoutChosen:
		m.CloseModal()
		if l.onChoose != nil {
			l.onChoose(m, l.picker.Chosen())
		}
	case picker.LayoutCancelled:
		m.CloseModal()
	}
	return nil
}

func (l *layoutModal) View() string { return l.picker.View() }

// OpenDatePicker replaces any open modal with the date-range picker,
// seeded from the current custom range when one exists.
func (m *Model) OpenDatePicker() {
	if m.customRange != nil {
		m.modal = &dateModal{picker: picker.NewDatePickerSeeded(*m.customRange)}
		return
	}
	m.modal = &dateModal{picker: picker.NewDatePicker(m.now())}
}

// OpenModal replaces any open modal.
func (m *Model) OpenModal(modal Modal) { m.modal = modal }

// CloseModal returns to navigating state.
func (m *Model) CloseModal() { m.modal = nil }

// ModalOpen reports whether an overlay is active.
func (m *Model) ModalOpen() bool { return m.modal != nil }

// SetCustomRange stores a confirmed picker range, switches the active
// page's period to Custom, and refetches range-scoped data.
func (m *Model) SetCustomRange(r period.DateRange) tea.Cmd {
	n := r.Normalized()
	m.customRange = &n
	m.periods[m.active] = period.Custom
	return m.fetchRangedCmd()
}
