package components

import (
	"strings"
	"testing"
)

func TestBoxLinesShareWidth(t *testing.T) {
	out := Box("Stats", "keys: 12\nclicks: 3", 30)
	for i, line := range strings.Split(out, "\n") {
		if got := VisibleWidth(line); got != 30 {
			t.Fatalf("line %d width = %d, want 30", i, got)
		}
	}
}

func TestBoxEmbedsTitle(t *testing.T) {
	out := Box("Kinetic", "x", 24)
	top := strings.Split(out, "\n")[0]
	if !strings.Contains(top, "Kinetic") {
		t.Fatalf("top edge %q missing title", top)
	}
	if !strings.Contains(top, "╭") || !strings.Contains(top, "╮") {
		t.Fatalf("top edge %q missing corners", top)
	}
}

func TestBoxUntitled(t *testing.T) {
	out := Box("", "x", 10)
	top := strings.Split(out, "\n")[0]
	if got := VisibleWidth(top); got != 10 {
		t.Fatalf("top edge width = %d, want 10", got)
	}
}

func TestBoxTruncatesLongContent(t *testing.T) {
	out := Box("t", strings.Repeat("a", 100), 12)
	for _, line := range strings.Split(out, "\n") {
		if got := VisibleWidth(line); got != 12 {
			t.Fatalf("line width = %d, want 12", got)
		}
	}
}

func TestBoxTooNarrowPassesThrough(t *testing.T) {
	if got := Box("t", "raw", 3); got != "raw" {
		t.Fatalf("Box(3) = %q, want content unchanged", got)
	}
}
