package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/keypulse/pkg/components"
)

var (
	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#5F5FD7")).
			Padding(0, 1)
	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#808080")).
			Padding(0, 1)
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9E9E9E"))
	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F44336"))
)

// View renders the tab strip, the active page, and the status bar. An
// open modal is centered over the page body.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	header := m.renderTabs()
	status := m.renderStatus()
	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(status)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	if m.modal != nil {
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, m.modal.View())
	} else if len(m.pages) > 0 {
		body = m.pages[m.active].Render(m, m.width, bodyHeight)
	}

	return header + "\n" + body + "\n" + status
}

func (m *Model) renderTabs() string {
	var tabs []string
	for i, p := range m.pages {
		label := fmt.Sprintf("%d:%s", i+1, p.Title())
		if i == m.active {
			tabs = append(tabs, tabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderStatus() string {
	var parts []string

	if m.WebMode() {
		parts = append(parts, "web")
	} else {
		parts = append(parts, "local")
	}
	if m.monitor != nil {
		if m.LiveConnected() {
			parts = append(parts, "live")
		} else {
			parts = append(parts, "live: waiting")
		}
	}
	parts = append(parts, "period: "+m.ActivePeriod().String())
	if m.status != "" {
		parts = append(parts, m.status)
	}

	line := statusStyle.Render(strings.Join(parts, " │ "))
	if err := m.firstErr(); err != nil {
		line += "  " + errStyle.Render(err.Error())
	}
	return components.Truncate(line, m.width)
}

func (m *Model) firstErr() error {
	for _, err := range []error{m.userErr, m.pulsesErr, m.computersErr, m.heatmapErr, m.appsErr, m.networkErr} {
		if err != nil {
			return err
		}
	}
	return nil
}
