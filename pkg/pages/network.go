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
	app.Register(&networkPage{sort: netSortDownload})
}

type netSortMode int

const (
	netSortDownload netSortMode = iota
	netSortUpload
	netSortTotal
	netSortInterface
)

var netSortLabels = []string{"Download", "Upload", "Total", "Interface"}

func (s netSortMode) String() string { return netSortLabels[s] }

// networkPage breaks traffic down per interface for the selected
// period, from the local client database.
type networkPage struct {
	scroll int
	sort   netSortMode
	asc    bool
}

func (p *networkPage) Title() string { return "Network" }
func (p *networkPage) Priority() int { return 44 }

// RangedSource scopes the period selector to the per-interface query.
func (p *networkPage) RangedSource() string { return app.SourceNetwork }

func (p *networkPage) HandleKey(m *app.Model, msg tea.KeyMsg) bool {
	switch msg.String() {
	case "s":
		p.sort = (p.sort + 1) % netSortMode(len(netSortLabels))
		p.asc = p.sort == netSortInterface
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
		if p.scroll < len(m.Network())-1 {
			p.scroll++
		}
		return true
	case "g":
		p.scroll = 0
		return true
	}
	return false
}

func (p *networkPage) Render(m *app.Model, width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Network Activity") + "  " +
		components.Dim(fmt.Sprintf("%s  sort: %s %s  [s]ort [o]rder [t] period",
			m.ActivePeriod().String(), p.sort, sortArrow(p.asc))) + "\n\n")

	stats := p.sorted(m.Network())
	if len(stats) == 0 {
		msg := "no network data (needs the local client database)"
		if err := m.NetworkErr(); err != nil {
			msg = err.Error()
		}
		b.WriteString(components.Dim(msg))
		return boxStyle.Width(width - 2).Render(b.String())
	}

	cols := []struct {
		name  string
		width int
	}{
		{"Interface", 32}, {"Down MB", 12}, {"Up MB", 12}, {"Total MB", 12},
	}
	arrowCol := [...]string{"Down MB", "Up MB", "Total MB", "Interface"}[p.sort]
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
		b.WriteString(components.PadRight(s.Interface, 32))
		b.WriteString(components.PadRight(fmt.Sprintf("%.2f", s.DownloadMB), 12))
		b.WriteString(components.PadRight(fmt.Sprintf("%.2f", s.UploadMB), 12))
		b.WriteString(components.PadRight(fmt.Sprintf("%.2f", s.DownloadMB+s.UploadMB), 12))
		b.WriteString("\n")
	}

	if len(stats) > visible {
		b.WriteString(components.Dim(fmt.Sprintf("\n%d-%d of %d  [j/k] scroll",
			p.scroll+1, end, len(stats))))
	}
	return boxStyle.Width(width - 2).Render(b.String())
}

func (p *networkPage) sorted(stats []localdb.NetworkStat) []localdb.NetworkStat {
	out := make([]localdb.NetworkStat, len(stats))
	copy(out, stats)
	less := func(a, b localdb.NetworkStat) bool {
		switch p.sort {
		case netSortUpload:
			return a.UploadMB < b.UploadMB
		case netSortTotal:
			return a.DownloadMB+a.UploadMB < b.DownloadMB+b.UploadMB
		case netSortInterface:
			return a.Interface < b.Interface
		default:
			return a.DownloadMB < b.DownloadMB
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
