package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Partial block characters for sub-cell gauge precision.
var gaugeBlocks = [9]rune{' ', '▏', '▎', '▍', '▌', '▋', '▊', '▉', '█'}

// GaugeStyle configures a horizontal bar gauge.
type GaugeStyle struct {
	Width             int
	Label             string // rendered after the bar, e.g. "0.0412 W"
	FilledColor       string
	EmptyColor        string
	WarningThreshold  float64 // ratio at which the fill turns warning-colored
	CriticalThreshold float64
	WarningColor      string
	CriticalColor     string
}

// DefaultGaugeStyle returns the style used by the kinetic page gauges.
func DefaultGaugeStyle() GaugeStyle {
	return GaugeStyle{
		Width:             24,
		FilledColor:       "#4CAF50",
		EmptyColor:        "#333333",
		WarningThreshold:  0.7,
		CriticalThreshold: 0.9,
		WarningColor:      "#FF9800",
		CriticalColor:     "#F44336",
	}
}

// Gauge renders a bar filled to ratio (clamped to [0, 1]) with eight
// sub-cell levels, colored by the style's thresholds.
func Gauge(ratio float64, style GaugeStyle) string {
	if style.Width <= 0 {
		style.Width = 24
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	cells := ratio * float64(style.Width)
	full := int(cells)
	frac := int((cells - float64(full)) * 8)

	var bar strings.Builder
	for i := 0; i < full; i++ {
		bar.WriteRune(gaugeBlocks[8])
	}
	if full < style.Width && frac > 0 {
		bar.WriteRune(gaugeBlocks[frac])
		full++
	}

	color := style.FilledColor
	if style.CriticalThreshold > 0 && ratio >= style.CriticalThreshold {
		color = style.CriticalColor
	} else if style.WarningThreshold > 0 && ratio >= style.WarningThreshold {
		color = style.WarningColor
	}

	filled := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(bar.String())
	empty := lipgloss.NewStyle().
		Foreground(lipgloss.Color(style.EmptyColor)).
		Render(strings.Repeat("░", style.Width-full))

	out := filled + empty
	if style.Label != "" {
		out = fmt.Sprintf("%s %s", out, style.Label)
	}
	return out
}
