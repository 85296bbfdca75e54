package pages

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/keypulse/pkg/app"
	"gitlab.com/tinyland/lab/keypulse/pkg/components"
)

func init() {
	app.Register(&pulsesPage{})
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9E9E9E"))

type pulsesPage struct {
	scroll int
}

func (p *pulsesPage) Title() string { return "Pulses" }
func (p *pulsesPage) Priority() int { return 40 }

// RangedSource scopes the period selector to the pulse history fetch.
func (p *pulsesPage) RangedSource() string { return app.SourcePulses }

func (p *pulsesPage) HandleKey(m *app.Model, msg tea.KeyMsg) bool {
	switch msg.String() {
	case "up", "k":
		if p.scroll > 0 {
			p.scroll--
		}
		return true
	case "down", "j":
		if p.scroll < len(m.Pulses())-1 {
			p.scroll++
		}
		return true
	case "g":
		p.scroll = 0
		return true
	}
	return false
}

func (p *pulsesPage) Render(m *app.Model, width, height int) string {
	pulses := m.Pulses()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Pulses") + "  " +
		components.Dim(m.ActivePeriod().String()) + "\n\n")

	if !m.WebMode() {
		b.WriteString(components.Dim("pulse history needs an API key (local mode)"))
		return boxStyle.Width(width - 2).Render(b.String())
	}
	if len(pulses) == 0 {
		msg := "no pulses in this period"
		if err := m.PulsesErr(); err != nil {
			msg = err.Error()
		}
		b.WriteString(components.Dim(msg))
		return boxStyle.Width(width - 2).Render(b.String())
	}

	cols := []struct {
		name  string
		width int
	}{
		{"Date", 20}, {"Keys", 10}, {"Clicks", 9}, {"Down MB", 10}, {"Up MB", 9}, {"Uptime", 10},
	}
	for _, c := range cols {
		b.WriteString(headerStyle.Render(components.PadRight(c.name, c.width)))
	}
	b.WriteString("\n")

	visible := height - 6
	if visible < 1 {
		visible = 1
	}
	if p.scroll > len(pulses)-1 {
		p.scroll = len(pulses) - 1
	}
	end := p.scroll + visible
	if end > len(pulses) {
		end = len(pulses)
	}

	for _, pulse := range pulses[p.scroll:end] {
		b.WriteString(components.PadRight(pulse.Date, 20))
		b.WriteString(components.PadRight(components.FormatCount(pulse.Keys), 10))
		b.WriteString(components.PadRight(components.FormatCount(pulse.Clicks), 9))
		b.WriteString(components.PadRight(fmt.Sprintf("%.1f", pulse.DownloadMB), 10))
		b.WriteString(components.PadRight(fmt.Sprintf("%.1f", pulse.UploadMB), 9))
		b.WriteString(components.PadRight(fmt.Sprintf("%dm", pulse.UptimeSeconds/60), 10))
		b.WriteString("\n")
	}

	if len(pulses) > visible {
		b.WriteString(components.Dim(fmt.Sprintf("\n%d-%d of %d  [j/k] scroll",
			p.scroll+1, end, len(pulses))))
	}

	// Keys per pulse, oldest to newest so the line reads left to right.
	if len(pulses) > 1 {
		keys := make([]float64, 0, len(pulses))
		for i := len(pulses) - 1; i >= 0; i-- {
			keys = append(keys, float64(pulses[i].Keys))
		}
		b.WriteString("\n\n" + components.Sparkline(keys, width-6, "#5F5FD7"))
	}
	return boxStyle.Width(width - 2).Render(b.String())
}
