package pages

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/keypulse/pkg/app"
	"gitlab.com/tinyland/lab/keypulse/pkg/components"
	"gitlab.com/tinyland/lab/keypulse/pkg/localdb"
)

func init() {
	app.Register(&applicationsPage{sort: appSortKeys})
}

type appSortMode int

const (
	appSortKeys appSortMode = iota
	appSortClicks
	appSortScrolls
	appSortDownload
	appSortUpload
	appSortName
)

var appSortLabels = []string{"Keys", "Clicks", "Scrolls", "Download", "Upload", "Application"}

func (s appSortMode) String() string { return appSortLabels[s] }

// applicationsPage ranks applications by input and traffic for the
// selected period, from the local client database.
type applicationsPage struct {
	scroll int
	sort   appSortMode
	asc    bool
}

func (p *applicationsPage) Title() string { return "Apps" }
func (p *applicationsPage) Priority() int { return 42 }

// RangedSource scopes the period selector to the per-application query.
func (p *applicationsPage) RangedSource() string { return app.SourceApps }

func (p *applicationsPage) HandleKey(m *app.Model, msg tea.KeyMsg) bool {
	switch msg.String() {
	case "s":
		p.sort = (p.sort + 1) % appSortMode(len(appSortLabels))
		// Name reads naturally A-Z; counter columns biggest-first.
		p.asc = p.sort == appSortName
		return true
	case "o", "S":
		p.asc = !p.asc
		return true
	case "up", "k":
		if p.scroll > 0 {
			p.scroll--
		}
		return true
	case "down", "j":
		if p.scroll < len(m.AppStats())-1 {
			p.scroll++
		}
		return true
	case "g":
		p.scroll = 0
		return true
	}
	return false
}

func (p *applicationsPage) Render(m *app.Model, width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Application Usage") + "  " +
		components.Dim(fmt.Sprintf("%s  sort: %s %s  [s]ort [o]rder [t] period",
			m.ActivePeriod().String(), p.sort, sortArrow(p.asc))) + "\n\n")

	stats := p.sorted(m.AppStats())
	if len(stats) == 0 {
		msg := "no application data (needs the local client database)"
		if err := m.AppStatsErr(); err != nil {
			msg = err.Error()
		}
		b.WriteString(components.Dim(msg))
		return boxStyle.Width(width - 2).Render(b.String())
	}

	cols := []struct {
		name  string
		width int
	}{
		{"Application", 28}, {"Keys", 12}, {"Clicks", 10}, {"Scrolls", 9}, {"Down MB", 10}, {"Up MB", 9},
	}
	arrowCol := [...]string{"Keys", "Clicks", "Scrolls", "Down MB", "Up MB", "Application"}[p.sort]
	for _, c := range cols {
		name := c.name
		if c.name == arrowCol {
			name += " " + sortArrow(p.asc)
		}
		b.WriteString(headerStyle.Render(components.PadRight(name, c.width)))
	}
	b.WriteString("\n")

	visible := height - 6
	if visible < 1 {
		visible = 1
	}
	if p.scroll > len(stats)-1 {
		p.scroll = len(stats) - 1
	}
	end := p.scroll + visible
	if end > len(stats) {
		end = len(stats)
	}

	for _, s := range stats[p.scroll:end] {
		b.WriteString(components.PadRight(s.Name, 28))
		b.WriteString(components.PadRight(components.FormatCount(s.Keys), 12))
		b.WriteString(components.PadRight(components.FormatCount(s.Clicks), 10))
		b.WriteString(components.PadRight(components.FormatCount(s.Scrolls), 9))
		b.WriteString(components.PadRight(fmt.Sprintf("%.2f", s.DownloadMB), 10))
		b.WriteString(components.PadRight(fmt.Sprintf("%.2f", s.UploadMB), 9))
		b.WriteString("\n")
	}

	if len(stats) > visible {
		b.WriteString(components.Dim(fmt.Sprintf("\n%d-%d of %d  [j/k] scroll",
			p.scroll+1, end, len(stats))))
	}
	return boxStyle.Width(width - 2).Render(b.String())
}

// sorted returns a copy ordered by the active column; the model's slice
// stays in fetch order.
func (p *applicationsPage) sorted(stats []localdb.AppStat) []localdb.AppStat {
	out := make([]localdb.AppStat, len(stats))
	copy(out, stats)
	less := func(a, b localdb.AppStat) bool {
		switch p.sort {
		case appSortClicks:
			return a.Clicks < b.Clicks
		case appSortScrolls:
			return a.Scrolls < b.Scrolls
		case appSortDownload:
			return a.DownloadMB < b.DownloadMB
		case appSortUpload:
			return a.UploadMB < b.UploadMB
		case appSortName:
			return a.Name < b.Name
		default:
			return a.Keys < b.Keys
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if p.asc {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})
	return out
}

func sortArrow(asc bool) string {
	if asc {
		return "▲"
	}
	return "▼"
}
