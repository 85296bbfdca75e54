package pages

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"

	"gitlab.com/tinyland/lab/keypulse/pkg/app"
	"gitlab.com/tinyland/lab/keypulse/pkg/components"
)

func init() {
	app.Register(&uptimePage{})
}

// uptimePage shows this machine's uptime next to the account's pulsed
// uptime total. Host probes are cached briefly; the render loop runs
// every 250ms and the numbers barely move.
type uptimePage struct {
	info     *host.InfoStat
	loadAvg  *load.AvgStat
	probedAt time.Time
}

func (p *uptimePage) Title() string { return "Uptime" }
func (p *uptimePage) Priority() int { return 50 }

func (p *uptimePage) HandleKey(m *app.Model, msg tea.KeyMsg) bool {
	return false
}

func (p *uptimePage) Render(m *app.Model, width, height int) string {
	p.probe(m.Now())

	var b strings.Builder
	b.WriteString(titleStyle.Render("Uptime") + "\n\n")

	if p.info != nil {
		b.WriteString(labelStyle.Render("Host") + p.info.Hostname + "\n")
		b.WriteString(labelStyle.Render("OS") +
			fmt.Sprintf("%s %s (%s)", p.info.Platform, p.info.PlatformVersion, p.info.KernelArch) + "\n")
		b.WriteString(labelStyle.Render("Booted") +
			time.Unix(int64(p.info.BootTime), 0).Format("2006-01-02 15:04") + "\n")
		b.WriteString(labelStyle.Render("Uptime") +
			components.FormatDuration(time.Duration(p.info.Uptime)*time.Second) + "\n")
	}
	if p.loadAvg != nil {
		b.WriteString(labelStyle.Render("Load") +
			fmt.Sprintf("%.2f %.2f %.2f", p.loadAvg.Load1, p.loadAvg.Load5, p.loadAvg.Load15) + "\n")
	}

	if user := m.User(); user != nil {
		b.WriteString("\n" + titleStyle.Render("Account total") + "\n")
		b.WriteString(labelStyle.Render("Uptime") +
			components.FormatDuration(time.Duration(user.Totals.UptimeSeconds)*time.Second) + "\n")
		if p.info != nil && user.Totals.UptimeSeconds > 0 {
			share := float64(p.info.Uptime) / float64(user.Totals.UptimeSeconds) * 100
			b.WriteString(labelStyle.Render("This boot") + fmt.Sprintf("%.2f%% of lifetime", share) + "\n")
		}
	} else {
		b.WriteString("\n" + components.Dim("account totals pending"))
	}

	return boxStyle.Width(width - 2).Render(b.String())
}

func (p *uptimePage) probe(now time.Time) {
	if p.info != nil && now.Sub(p.probedAt) < 10*time.Second {
		return
	}
	p.probedAt = now
	if info, err := host.Info(); err == nil {
		p.info = info
	}
	if avg, err := load.Avg(); err == nil {
		p.loadAvg = avg
	}
}
