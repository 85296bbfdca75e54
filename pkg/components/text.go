// Package components provides small pure-string render helpers shared by
// the pages: sparkline, bar gauge, and width-safe text utilities. Every
// function returns a string; nothing here touches the terminal.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

var dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

// Dim renders s in the muted foreground used for hints and footers.
func Dim(s string) string {
	return dimStyle.Render(s)
}

// VisibleWidth returns the display width of s with ANSI escapes ignored.
func VisibleWidth(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}

// Truncate cuts s to at most width display cells, ANSI-aware.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "")
}

// PadRight pads s with spaces to exactly width display cells, truncating
// first if it is too long.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	if pad := width - VisibleWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// CenterLines vertically centers content within height lines, padding
// with blanks above and below.
func CenterLines(content string, height int) string {
	lines := strings.Split(content, "\n")
	if len(lines) >= height {
		return strings.Join(lines[:height], "\n")
	}
	top := (height - len(lines)) / 2
	out := make([]string, 0, height)
	for i := 0; i < top; i++ {
		out = append(out, "")
	}
	out = append(out, lines...)
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}
