package picker

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/keypulse/pkg/layouts"
)

// LayoutOutcome is the result of one key event in the layout popup.
type LayoutOutcome int

const (
	LayoutPending LayoutOutcome = iota
	LayoutChosen
	LayoutCancelled
)

// pageJump is how far PgUp/PgDn move the selection in the result list.
const pageJump = 5

// LayoutPicker is the fuzzy-search popup for choosing a keyboard layout.
// Typing narrows the list; the selection resets to the top whenever the
// query changes.
type LayoutPicker struct {
	input    textinput.Model
	selected int
	chosen   layouts.Layout
}

// NewLayoutPicker opens the popup with an empty query.
func NewLayoutPicker() *LayoutPicker {
	input := textinput.New()
	input.Prompt = "Search: "
	input.Focus()
	return &LayoutPicker{input: input}
}

// Query returns the current search text.
func (p *LayoutPicker) Query() string { return p.input.Value() }

// Chosen returns the selected layout. Only meaningful after Handle
// returned LayoutChosen.
func (p *LayoutPicker) Chosen() layouts.Layout { return p.chosen }

// Filtered returns the layouts matching the current query.
func (p *LayoutPicker) Filtered() []layouts.Layout {
	return layouts.Search(p.Query())
}

// Handle consumes one key event. The popup captures every key while open.
func (p *LayoutPicker) Handle(msg tea.KeyMsg) LayoutOutcome {
	filtered := p.Filtered()

	switch msg.String() {
	case "esc":
		return LayoutCancelled
	case "enter":
		if p.selected >= 0 && p.selected < len(filtered) {
			p.chosen = filtered[p.selected]
			return LayoutChosen
		}
		return LayoutPending
	case "up":
		if len(filtered) > 0 {
			p.selected = (p.selected - 1 + len(filtered)) % len(filtered)
		}
	case "down":
		if len(filtered) > 0 {
			p.selected = (p.selected + 1) % len(filtered)
		}
	case "home":
		p.selected = 0
	case "end":
		if len(filtered) > 0 {
			p.selected = len(filtered) - 1
		}
	case "pgup":
		p.selected -= pageJump
		if p.selected < 0 {
			p.selected = 0
		}
	case "pgdown":
		if len(filtered) > 0 {
			p.selected += pageJump
			if p.selected >= len(filtered) {
				p.selected = len(filtered) - 1
			}
		}
	default:
		// Everything else edits the query. The selection resets to the
		// top whenever the text actually changes.
		before := p.input.Value()
		p.input, _ = p.input.Update(msg)
		if p.input.Value() != before {
			p.selected = 0
		}
	}
	return LayoutPending
}

var (
	popupFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7C3AED")).
			Padding(0, 1).
			Width(36)

	popupQueryStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#22D3EE"))
	popupSelectedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#FFFFFF")).
				Foreground(lipgloss.Color("#111111")).
				Bold(true)
)

// maxVisible limits the popup list height.
const maxVisible = 12

// View renders the popup: search line on top, filtered list below with
// the selection kept in view.
func (p *LayoutPicker) View() string {
	var b strings.Builder
	b.WriteString(popupQueryStyle.Render(p.input.View()))
	b.WriteString("\n")

	filtered := p.Filtered()
	if len(filtered) == 0 {
		b.WriteString("  no matching layouts")
		return popupFrameStyle.Render(b.String())
	}

	// Scroll window around the selection.
	first := 0
	if p.selected >= maxVisible {
		first = p.selected - maxVisible + 1
	}
	last := first + maxVisible
	if last > len(filtered) {
		last = len(filtered)
	}

	for i := first; i < last; i++ {
		line := "  " + filtered[i].String()
		if i == p.selected {
			line = popupSelectedStyle.Render(">> " + filtered[i].String())
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return popupFrameStyle.Render(strings.TrimRight(b.String(), "\n"))
}
