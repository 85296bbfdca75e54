package picker

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/keypulse/pkg/layouts"
)

func typeString(p *LayoutPicker, s string) {
	for _, r := range s {
		p.Handle(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestTypingNarrowsList(t *testing.T) {
	p := NewLayoutPicker()
	all := len(p.Filtered())
	typeString(p, "dvorak")
	narrowed := len(p.Filtered())
	if narrowed == 0 || narrowed >= all {
		t.Errorf("query should narrow the list: %d -> %d", all, narrowed)
	}
}

func TestQueryChangeResetsSelection(t *testing.T) {
	p := NewLayoutPicker()
	p.Handle(key("down"))
	p.Handle(key("down"))
	typeString(p, "c")
	if p.selected != 0 {
		t.Errorf("selection after query change = %d, want 0", p.selected)
	}
}

func TestEnterChoosesSelected(t *testing.T) {
	p := NewLayoutPicker()
	typeString(p, "workman")
	out := p.Handle(key("enter"))
	if out != LayoutChosen {
		t.Fatalf("outcome = %v, want LayoutChosen", out)
	}
	if p.Chosen() != layouts.Workman {
		t.Errorf("chosen = %v, want Workman", p.Chosen())
	}
}

func TestEnterOnEmptyResultStaysOpen(t *testing.T) {
	p := NewLayoutPicker()
	typeString(p, "zzzzqqq")
	if out := p.Handle(key("enter")); out != LayoutPending {
		t.Errorf("enter with no matches = %v, want LayoutPending", out)
	}
}

func TestEscCancels(t *testing.T) {
	p := NewLayoutPicker()
	if out := p.Handle(key("esc")); out != LayoutCancelled {
		t.Errorf("esc outcome = %v, want LayoutCancelled", out)
	}
}

func TestNavigationWraps(t *testing.T) {
	p := NewLayoutPicker()
	n := len(p.Filtered())
	p.Handle(key("up"))
	if p.selected != n-1 {
		t.Errorf("up from top = %d, want %d (wrap)", p.selected, n-1)
	}
	p.Handle(key("down"))
	if p.selected != 0 {
		t.Errorf("down from bottom = %d, want 0 (wrap)", p.selected)
	}
}

func TestBackspaceEdits(t *testing.T) {
	p := NewLayoutPicker()
	typeString(p, "ab")
	p.Handle(tea.KeyMsg{Type: tea.KeyBackspace})
	if p.Query() != "a" {
		t.Errorf("query = %q, want %q", p.Query(), "a")
	}
}

func TestPageJumpClamps(t *testing.T) {
	p := NewLayoutPicker()
	p.Handle(key("pgup"))
	if p.selected != 0 {
		t.Errorf("pgup at top = %d, want 0", p.selected)
	}
	p.Handle(key("end"))
	p.Handle(key("pgdown"))
	if p.selected != len(p.Filtered())-1 {
		t.Errorf("pgdown at bottom = %d, want last", p.selected)
	}
}
