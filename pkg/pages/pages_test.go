package pages

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/keypulse/pkg/app"
	"gitlab.com/tinyland/lab/keypulse/pkg/localdb"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPagesRegisterInPriorityOrder(t *testing.T) {
	got := app.OrderedPages()
	want := []string{"Dashboard", "Kinetic", "Heatmap", "Pulses", "Apps", "Network", "Uptime", "Account"}
	if len(got) != len(want) {
		t.Fatalf("registered %d pages, want %d", len(got), len(want))
	}
	for i, p := range got {
		if p.Title() != want[i] {
			t.Errorf("tab %d = %q, want %q", i, p.Title(), want[i])
		}
	}
}

func TestHeatColorScaling(t *testing.T) {
	if got := heatColor(0, 1000); got != heatGradient[0] {
		t.Errorf("zero count should be coldest, got %s", got)
	}
	if got := heatColor(1000, 1000); got != heatGradient[len(heatGradient)-1] {
		t.Errorf("hottest key should be hottest color, got %s", got)
	}
	// Log scaling keeps mid-range keys out of the coldest bucket even
	// when the maximum dwarfs them.
	if got := heatColor(10, 1_000_000); got == heatGradient[0] {
		t.Error("log scaling should lift small nonzero counts off the floor")
	}
}

func TestNormalizeKeyName(t *testing.T) {
	cases := map[string]string{
		"a":           "A",
		"SPACEBAR":    "SPACE",
		" ":           "SPACE",
		"Left Shift":  "LSHIFT",
		"Right Shift": "RSHIFT",
		"E":           "E",
	}
	for in, want := range cases {
		if got := normalizeKeyName(in); got != want {
			t.Errorf("normalizeKeyName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestKineticKeys(t *testing.T) {
	m := app.New(app.Options{Pages: []app.Page{&kineticPage{}}})
	page := &kineticPage{}

	before := m.Profile().Name
	if !page.HandleKey(m, runes("s")) {
		t.Fatal("s should be consumed")
	}
	if m.Profile().Name == before {
		t.Error("s should cycle the switch profile")
	}

	metric := m.MetricUnits()
	page.HandleKey(m, runes("u"))
	if m.MetricUnits() == metric {
		t.Error("u should toggle units")
	}

	if page.HandleKey(m, runes("z")) {
		t.Error("unknown keys should fall through")
	}
}

func TestHeatmapOpensLayoutPicker(t *testing.T) {
	m := app.New(app.Options{Pages: []app.Page{&heatmapPage{}}})
	page := &heatmapPage{}

	if !page.HandleKey(m, runes("k")) {
		t.Fatal("k should be consumed")
	}
	if !m.ModalOpen() {
		t.Error("k should open the layout picker")
	}
}

func TestPulsesScrollClamps(t *testing.T) {
	m := app.New(app.Options{Pages: []app.Page{&pulsesPage{}}})
	page := &pulsesPage{}

	page.HandleKey(m, runes("k"))
	if page.scroll != 0 {
		t.Error("scroll above top should clamp at 0")
	}
	// No pulses loaded: down cannot move either.
	page.HandleKey(m, runes("j"))
	if page.scroll != 0 {
		t.Errorf("scroll = %d with no rows", page.scroll)
	}
}

func TestApplicationsSortCycling(t *testing.T) {
	m := app.New(app.Options{Pages: []app.Page{&applicationsPage{}}})
	page := &applicationsPage{sort: appSortKeys}

	if !page.HandleKey(m, runes("s")) {
		t.Fatal("s should be consumed")
	}
	if page.sort != appSortClicks || page.asc {
		t.Errorf("after s: sort=%v asc=%v, want Clicks descending", page.sort, page.asc)
	}

	// Cycling into the name column flips to A-Z.
	for page.sort != appSortName {
		page.HandleKey(m, runes("s"))
	}
	if !page.asc {
		t.Error("name sort should default ascending")
	}

	page.HandleKey(m, runes("o"))
	if page.asc {
		t.Error("o should toggle the order")
	}

	// Wraps back around to the first column.
	page.HandleKey(m, runes("s"))
	if page.sort != appSortKeys || page.asc {
		t.Errorf("wrap: sort=%v asc=%v, want Keys descending", page.sort, page.asc)
	}
}

func TestApplicationsSortedCopyLeavesModelOrder(t *testing.T) {
	page := &applicationsPage{sort: appSortName, asc: true}
	in := []localdb.AppStat{{Name: "zsh", Keys: 10}, {Name: "awk", Keys: 99}}
	out := page.sorted(in)
	if out[0].Name != "awk" {
		t.Errorf("sorted[0] = %q, want awk", out[0].Name)
	}
	if in[0].Name != "zsh" {
		t.Error("sorting must not mutate the fetched slice")
	}
}

func TestNetworkSortByTotal(t *testing.T) {
	page := &networkPage{sort: netSortTotal}
	in := []localdb.NetworkStat{
		{Interface: "eth0", DownloadMB: 5, UploadMB: 1},
		{Interface: "wlan0", DownloadMB: 2, UploadMB: 9},
	}
	out := page.sorted(in)
	if out[0].Interface != "wlan0" {
		t.Errorf("largest total first, got %q", out[0].Interface)
	}
}

func TestRenderWithoutDataDoesNotPanic(t *testing.T) {
	m := app.New(app.Options{Pages: app.OrderedPages()})
	for _, p := range app.OrderedPages() {
		if out := p.Render(m, 80, 24); out == "" {
			t.Errorf("page %s rendered empty", p.Title())
		}
	}
}
