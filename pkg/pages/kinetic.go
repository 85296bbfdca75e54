package pages

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/keypulse/pkg/app"
	"gitlab.com/tinyland/lab/keypulse/pkg/components"
	"gitlab.com/tinyland/lab/keypulse/pkg/physics"
)

func init() {
	app.Register(&kineticPage{})
}

// kineticPage turns the live keystroke stream into mechanical readings:
// work, power, finger velocity, and a calorimetry summary.
type kineticPage struct{}

func (p *kineticPage) Title() string { return "Kinetic" }
func (p *kineticPage) Priority() int { return 20 }

func (p *kineticPage) HandleKey(m *app.Model, msg tea.KeyMsg) bool {
	switch msg.String() {
	case "s":
		m.CycleProfile()
		m.SetStatus("switch profile: %s", m.Profile().Name)
		return true
	case "u":
		m.ToggleUnits()
		return true
	case "p":
		// Optimistic: the status flips immediately, the ack arrives as
		// a realtime counter reset.
		m.Pulse()
		return true
	case "R":
		m.Estimator().Reset(m.Now())
		m.SetStatus("session reset")
		return true
	}
	return false
}

func (p *kineticPage) Render(m *app.Model, width, height int) string {
	est := m.Estimator()
	sample := est.Latest()
	profile := m.Profile()

	var b strings.Builder
	b.WriteString(components.Dim(fmt.Sprintf("switch: %s (%.2fN, %.1fmm)  [s]witch  [u]nits  [p]ulse  [R]eset",
		profile.Name, profile.ActuationForce, profile.Travel*1000)) + "\n\n")

	gauge := components.DefaultGaugeStyle()
	gauge.Width = min(32, width-24)

	power := gauge
	power.Label = fmt.Sprintf("%.4f W", sample.PowerWatts)
	b.WriteString(labelStyle.Render("Power") +
		components.Gauge(sample.PowerWatts/physics.MaxGaugePower, power) + "\n")

	rate := workPerHour(est, m.Now())
	health := gauge
	health.Label = fmt.Sprintf("%.1f J/h", rate)
	b.WriteString(labelStyle.Render("Strain") +
		components.Gauge(rate/physics.HealthLimitJoulesPerHour, health) + "\n\n")

	b.WriteString(labelStyle.Render("Keys/s") + fmt.Sprintf("%.2f", sample.KeysPerSecond) + "\n")
	b.WriteString(labelStyle.Render("Clicks/s") + fmt.Sprintf("%.2f", sample.ClicksPerSec) + "\n")
	b.WriteString(labelStyle.Render("Velocity") + p.speed(m, velocityNow(est, profile)) + "\n")
	b.WriteString(labelStyle.Render("Peak") + p.speed(m, sample.PeakVelocity) + "\n")
	b.WriteString(labelStyle.Render("Burst") + fmt.Sprintf("%.3f m/s²", sample.BurstAccel) + "\n")
	b.WriteString(labelStyle.Render("Work") + fmt.Sprintf("%.3f J", sample.WorkJoules) + "\n\n")

	report := physics.Energy(est.TotalKeys(), profile)
	b.WriteString(titleStyle.Render("Calorimetry") + "\n")
	b.WriteString(labelStyle.Render("Keystrokes") + components.FormatCount(report.Keystrokes) + "\n")
	b.WriteString(labelStyle.Render("Calories") + fmt.Sprintf("%.3f cal", report.Calories) + "\n")
	b.WriteString(labelStyle.Render("Candy") + fmt.Sprintf("%.6f pieces", report.CandyEquiv) + "\n")
	b.WriteString(labelStyle.Render("Running") + fmt.Sprintf("%.4f min", report.RunningMinutes) + "\n")

	if history := est.PowerHistory(); len(history) > 1 {
		b.WriteString("\n" + components.Sparkline(history, width-6, "#FF9800") + "\n")
	}
	if !m.LiveConnected() {
		b.WriteString("\n" + components.Dim("live feed disconnected; counters frozen"))
	}

	return components.Box(titleStyle.Render("Kinetic Monitor"), b.String(), width)
}

// speed formats a velocity in the selected unit system. Metric shows
// cm/s; imperial converts to in/s.
func (p *kineticPage) speed(m *app.Model, v float64) string {
	if m.MetricUnits() {
		return fmt.Sprintf("%.2f cm/s", v*100)
	}
	return fmt.Sprintf("%.2f in/s", v*100/2.54)
}

// velocityNow backs the instantaneous velocity readout out of the latest
// sample's key rate.
func velocityNow(est *physics.Estimator, p physics.Profile) float64 {
	return est.Latest().KeysPerSecond * p.Travel
}

// workPerHour is total session work scaled to an hourly rate.
func workPerHour(est *physics.Estimator, now time.Time) float64 {
	elapsed := now.Sub(est.SessionStart())
	if elapsed < time.Minute {
		elapsed = time.Minute
	}
	return est.Latest().WorkJoules / elapsed.Hours()
}
