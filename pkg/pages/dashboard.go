// Package pages holds the dashboard tabs. Each page registers itself
// with the app registry from init; cmd/tui imports this package for the
// side effect.
package pages

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/keypulse/pkg/app"
	"gitlab.com/tinyland/lab/keypulse/pkg/components"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5F5FD7"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E")).Width(14)
	valueStyle = lipgloss.NewStyle().Bold(true)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

func init() {
	app.Register(&dashboardPage{})
}

type dashboardPage struct{}

func (p *dashboardPage) Title() string { return "Dashboard" }
func (p *dashboardPage) Priority() int { return 10 }

func (p *dashboardPage) HandleKey(m *app.Model, msg tea.KeyMsg) bool {
	return false
}

func (p *dashboardPage) Render(m *app.Model, width, height int) string {
	user := m.User()
	if user == nil {
		msg := "waiting for first fetch..."
		if err := m.UserErr(); err != nil {
			msg = err.Error()
		}
		return components.CenterLines(components.Dim(msg), height)
	}

	var b strings.Builder
	rows := []struct {
		label string
		value string
	}{
		{"Keys", components.FormatCount(user.Totals.Keys)},
		{"Clicks", components.FormatCount(user.Totals.Clicks)},
		{"Scrolls", components.FormatCount(user.Totals.Scrolls)},
		{"Download", fmt.Sprintf("%.1f GB", user.Totals.DownloadMB/1024)},
		{"Upload", fmt.Sprintf("%.1f GB", user.Totals.UploadMB/1024)},
		{"Uptime", components.FormatDuration(time.Duration(user.Totals.UptimeSeconds) * time.Second)},
		{"Pulses", components.FormatCount(user.PulseCount)},
	}
	for _, r := range rows {
		b.WriteString(labelStyle.Render(r.label) + valueStyle.Render(r.value) + "\n")
	}

	if ranks := user.Ranks; ranks != nil {
		b.WriteString("\n" + titleStyle.Render("Ranks") + "\n")
		b.WriteString(labelStyle.Render("Keys") + fmt.Sprintf("#%s", components.FormatCount(ranks.Keys)) + "\n")
		b.WriteString(labelStyle.Render("Clicks") + fmt.Sprintf("#%s", components.FormatCount(ranks.Clicks)) + "\n")
		b.WriteString(labelStyle.Render("Uptime") + fmt.Sprintf("#%s", components.FormatCount(ranks.Uptime)) + "\n")
	}

	if m.LiveConnected() {
		live := m.Live()
		b.WriteString("\n" + titleStyle.Render("Live") + "\n")
		b.WriteString(labelStyle.Render("KPS") + fmt.Sprintf("%.2f", live.KPS) + "\n")
		b.WriteString(labelStyle.Render("Unpulsed") + components.FormatCount(live.UnpulsedKeys) + " keys\n")
		history := m.Estimator().PowerHistory()
		if len(history) > 1 {
			b.WriteString("\n" + components.Sparkline(history, width-6, "#4CAF50") + "\n")
		}
	}

	if !m.UserFetchedAt().IsZero() {
		age := m.Now().Sub(m.UserFetchedAt()).Round(time.Second)
		b.WriteString("\n" + components.Dim(fmt.Sprintf("fetched %s ago", age)))
	}

	return components.Box(titleStyle.Render(user.Username), b.String(), width)
}
