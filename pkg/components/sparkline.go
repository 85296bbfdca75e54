package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Eight vertical block levels per cell.
var sparkBlocks = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders data as a one-line block-character chart, taking the
// last width points and auto-scaling to the visible min/max. All-equal
// data renders at mid height.
func Sparkline(data []float64, width int, color string) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}
	points := data
	if len(points) > width {
		points = points[len(points)-width:]
	}

	lo, hi := points[0], points[0]
	for _, v := range points[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	var b strings.Builder
	span := hi - lo
	for _, v := range points {
		idx := 3
		if span > 0 {
			norm := (v - lo) / span
			idx = int(math.Round(norm * 7))
			if idx < 0 {
				idx = 0
			}
			if idx > 7 {
				idx = 7
			}
		}
		b.WriteRune(sparkBlocks[idx])
	}

	if color == "" {
		return b.String()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(b.String())
}
