package pages

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/keypulse/pkg/app"
	"gitlab.com/tinyland/lab/keypulse/pkg/components"
)

func init() {
	app.Register(&accountPage{})
}

type accountPage struct{}

func (p *accountPage) Title() string { return "Account" }
func (p *accountPage) Priority() int { return 60 }

func (p *accountPage) HandleKey(m *app.Model, msg tea.KeyMsg) bool {
	return false
}

func (p *accountPage) Render(m *app.Model, width, height int) string {
	user := m.User()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Account") + "\n\n")

	if !m.WebMode() {
		b.WriteString(components.Dim("running against the local client; set an API key for account details"))
		return boxStyle.Width(width - 2).Render(b.String())
	}
	if user == nil {
		msg := "account details pending"
		if err := m.UserErr(); err != nil {
			msg = err.Error()
		}
		b.WriteString(components.Dim(msg))
		return boxStyle.Width(width - 2).Render(b.String())
	}

	b.WriteString(labelStyle.Render("Username") + valueStyle.Render(user.Username) + "\n")
	b.WriteString(labelStyle.Render("User ID") + fmt.Sprint(user.ID) + "\n")
	b.WriteString(labelStyle.Render("Joined") + user.DateJoined + "\n")
	b.WriteString(labelStyle.Render("First pulse") + user.FirstPulse + "\n")
	b.WriteString(labelStyle.Render("Last pulse") + user.LastPulse + "\n")
	premium := "no"
	if user.IsPremium {
		premium = "yes"
	}
	b.WriteString(labelStyle.Render("Premium") + premium + "\n")

	distance := user.Totals.DistanceMiles
	unit := "mi"
	if m.MetricUnits() {
		distance *= 1.609344
		unit = "km"
	}
	b.WriteString(labelStyle.Render("Mouse travel") + fmt.Sprintf("%.2f %s", distance, unit) + "\n")

	if len(m.Computers()) > 0 {
		b.WriteString("\n" + titleStyle.Render("Computers") + "\n")
		for _, c := range m.Computers() {
			line := fmt.Sprintf("%s  %s  %s keys", c.Name, c.OS, components.FormatCount(c.Totals.Keys))
			if c.Archived {
				line += "  (archived)"
			}
			b.WriteString(line + "\n")
		}
	} else if err := m.ComputersErr(); err != nil {
		b.WriteString("\n" + components.Dim(err.Error()))
	}

	return boxStyle.Width(width - 2).Render(b.String())
}
