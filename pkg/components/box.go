package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))

// Box wraps content in a rounded border with the title embedded in the
// top edge. width is the outer width including borders; content lines
// are truncated or padded to the interior width.
func Box(title, content string, width int) string {
	if width < 4 {
		return content
	}
	inner := width - 4
	side := borderStyle.Render("│")

	var b strings.Builder
	b.WriteString(boxTop(title, width))
	for _, line := range strings.Split(content, "\n") {
		b.WriteByte('\n')
		b.WriteString(side + " " + PadRight(line, inner) + " " + side)
	}
	b.WriteByte('\n')
	b.WriteString(borderStyle.Render("╰" + strings.Repeat("─", width-2) + "╯"))
	return b.String()
}

// boxTop renders the top edge. The title keeps its own styling; only
// the border characters are dimmed.
func boxTop(title string, width int) string {
	fill := width - 2
	if title == "" || fill < 4 {
		return borderStyle.Render("╭" + strings.Repeat("─", fill) + "╮")
	}
	if VisibleWidth(title) > fill-4 {
		title = Truncate(title, fill-4)
	}
	seg := " " + title + " "
	rest := fill - VisibleWidth(seg) - 1
	return borderStyle.Render("╭─") + seg + borderStyle.Render(strings.Repeat("─", rest)+"╮")
}
