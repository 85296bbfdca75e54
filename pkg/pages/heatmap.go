package pages

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/keypulse/pkg/app"
	"gitlab.com/tinyland/lab/keypulse/pkg/components"
	"gitlab.com/tinyland/lab/keypulse/pkg/layouts"
)

func init() {
	app.Register(&heatmapPage{layout: layouts.Qwerty})
}

// heatGradient runs cold to hot; the bucket index comes from the key's
// log-scaled share of the hottest key.
var heatGradient = []string{
	"#30343B", "#1E5631", "#4CAF50", "#CDDC39", "#FFC107", "#FF9800", "#F44336",
}

type heatmapPage struct {
	layout layouts.Layout
	seeded bool
}

func (p *heatmapPage) Title() string { return "Heatmap" }
func (p *heatmapPage) Priority() int { return 30 }

// RangedSource scopes the period selector to the heatmap query.
func (p *heatmapPage) RangedSource() string { return app.SourceHeatmap }

func (p *heatmapPage) HandleKey(m *app.Model, msg tea.KeyMsg) bool {
	if msg.String() == "k" {
		m.OpenModal(app.NewLayoutModal(func(m *app.Model, l layouts.Layout) {
			p.layout = l
			m.SetStatus("layout: %s", l.String())
		}))
		return true
	}
	return false
}

func (p *heatmapPage) Render(m *app.Model, width, height int) string {
	if !p.seeded {
		p.seedLayout(m.Config().Local.KeyboardLayout)
		p.seeded = true
	}

	freq := p.mergedFrequencies(m)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Heatmap") + "  " +
		components.Dim(p.layout.String()+"  [k] layout  [t] period  [d] dates") + "\n\n")

	if len(freq) == 0 {
		msg := "no keypress data for this period"
		if err := m.HeatmapErr(); err != nil {
			msg = err.Error()
		}
		b.WriteString(components.Dim(msg) + "\n\n")
	}

	var hottest int64
	for _, c := range freq {
		if c > hottest {
			hottest = c
		}
	}

	for _, row := range layouts.Rows(p.layout) {
		var cells []string
		for _, key := range row {
			cells = append(cells, p.renderKey(key, freq[key.MatchKey], hottest))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...) + "\n")
	}

	if hottest > 0 {
		b.WriteString("\n" + components.Dim(fmt.Sprintf("hottest key: %s presses", components.FormatCount(hottest))))
	}
	return boxStyle.Width(width - 2).Render(b.String())
}

func (p *heatmapPage) renderKey(key layouts.Key, count, hottest int64) string {
	color := heatColor(count, hottest)
	w := key.Width
	if w < 3 {
		w = 3
	}
	label := key.Label
	if len(label) > w-2 {
		label = label[:w-2]
	}
	pad := w - 2 - len(label)
	left := pad / 2
	cell := strings.Repeat(" ", left+1) + label + strings.Repeat(" ", pad-left+1)
	return lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(lipgloss.Color("#FFFFFF")).
		Render(cell)
}

// heatColor picks a gradient bucket by log-scaled intensity, so one
// dominant key (usually Space) does not flatten everything else into the
// coldest bucket.
func heatColor(count, hottest int64) string {
	if count <= 0 || hottest <= 0 {
		return heatGradient[0]
	}
	norm := math.Log1p(float64(count)) / math.Log1p(float64(hottest))
	idx := 1 + int(norm*float64(len(heatGradient)-2)+0.5)
	if idx >= len(heatGradient) {
		idx = len(heatGradient) - 1
	}
	return heatGradient[idx]
}

// mergedFrequencies overlays the live session heatmap on the historical
// one; the database lags the socket by up to a pulse.
func (p *heatmapPage) mergedFrequencies(m *app.Model) map[string]int64 {
	merged := make(map[string]int64, len(m.Heatmap()))
	for k, c := range m.Heatmap() {
		merged[normalizeKeyName(k)] += c
	}
	for k, c := range m.Live().Heatmap {
		merged[normalizeKeyName(k)] += c
	}
	return merged
}

// normalizeKeyName maps the client's key names onto the grid's match
// keys.
func normalizeKeyName(name string) string {
	switch up := strings.ToUpper(name); up {
	case "SPACEBAR", " ":
		return "SPACE"
	case "SHIFT", "LEFT SHIFT":
		return "LSHIFT"
	case "RIGHT SHIFT":
		return "RSHIFT"
	default:
		return up
	}
}

func (p *heatmapPage) seedLayout(name string) {
	if name == "" {
		return
	}
	for _, l := range layouts.All() {
		if l.String() == name {
			p.layout = l
			return
		}
	}
}
