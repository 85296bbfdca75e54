package picker

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/keypulse/pkg/period"
)

var (
	calFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	calTitleStyle  = lipgloss.NewStyle().Bold(true)
	calPhaseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#22D3EE"))
	calFooterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	calDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	calCursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#FBBF24")).
			Foreground(lipgloss.Color("#111111"))
	calStartStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#22C55E")).
			Foreground(lipgloss.Color("#111111"))
	calRangeStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#3B82F6"))
)

// View renders the picker as a framed 6-week calendar. The caller centers
// it over the page area.
func (p *DatePicker) View() string {
	var b strings.Builder

	phase := "Select START date"
	if p.phase == SelectingEnd {
		phase = "Select END date"
	}
	b.WriteString(calTitleStyle.Render(p.visibleMonth.Format("January 2006")))
	b.WriteString("  ")
	b.WriteString(calPhaseStyle.Render(phase))
	b.WriteString("\n")
	b.WriteString(calDimStyle.Render("Sun Mon Tue Wed Thu Fri Sat"))
	b.WriteString("\n")

	// Walk from the Sunday on or before the 1st, six weeks out.
	day := p.visibleMonth.AddDate(0, 0, -int(p.visibleMonth.Weekday()))
	for week := 0; week < 6; week++ {
		cells := make([]string, 0, 7)
		for wd := 0; wd < 7; wd++ {
			cells = append(cells, p.renderDay(day))
			day = day.AddDate(0, 0, 1)
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteString("\n")
	}

	b.WriteString(calFooterStyle.Render("arrows move · pgup/pgdn month · enter select · esc cancel"))
	return calFrameStyle.Render(b.String())
}

func (p *DatePicker) renderDay(d time.Time) string {
	label := fmt.Sprintf("%3d", d.Day())

	switch {
	case sameDay(d, p.cursor):
		return calCursorStyle.Render(label)
	case p.pendingStart != nil && sameDay(d, *p.pendingStart):
		return calStartStyle.Render(label)
	case p.inSelection(d):
		return calRangeStyle.Render(label)
	case d.Month() != p.visibleMonth.Month():
		return calDimStyle.Render(label)
	}
	return label
}

// inSelection highlights the provisional range while the end date is
// being chosen.
func (p *DatePicker) inSelection(d time.Time) bool {
	if p.phase != SelectingEnd || p.pendingStart == nil {
		return false
	}
	r := period.DateRange{Start: *p.pendingStart, End: p.cursor}.Normalized()
	return r.Contains(d)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
