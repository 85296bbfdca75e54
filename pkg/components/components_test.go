package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestSparklineConstantDataIsFlat(t *testing.T) {
	s := ansi.Strip(Sparkline([]float64{5, 5, 5, 5}, 4, ""))
	runes := []rune(s)
	if len(runes) != 4 {
		t.Fatalf("length = %d, want 4", len(runes))
	}
	for i, r := range runes {
		if r != runes[0] {
			t.Errorf("position %d differs for constant data: %q", i, s)
		}
	}
}

func TestSparklineAscending(t *testing.T) {
	s := ansi.Strip(Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 8, ""))
	runes := []rune(s)
	for i := 1; i < len(runes); i++ {
		if runes[i] < runes[i-1] {
			t.Errorf("not non-decreasing at %d: %q", i, s)
		}
	}
}

func TestSparklineTakesTail(t *testing.T) {
	data := []float64{100, 0, 0, 0}
	s := ansi.Strip(Sparkline(data, 3, ""))
	if len([]rune(s)) != 3 {
		t.Fatalf("width = %d, want 3", len([]rune(s)))
	}
	// The spike falls outside the window, so all points are equal.
	for _, r := range s {
		if r != []rune(s)[0] {
			t.Errorf("tail window should be flat: %q", s)
		}
	}
}

func TestSparklineEmpty(t *testing.T) {
	if s := Sparkline(nil, 10, ""); s != "" {
		t.Errorf("empty data should render empty, got %q", s)
	}
}

func TestGaugeFullAndEmpty(t *testing.T) {
	style := DefaultGaugeStyle()
	style.Width = 10

	full := ansi.Strip(Gauge(1.0, style))
	if strings.Count(full, "█") != 10 {
		t.Errorf("full gauge = %q, want 10 full blocks", full)
	}

	empty := ansi.Strip(Gauge(0, style))
	if strings.Count(empty, "█") != 0 {
		t.Errorf("empty gauge = %q, want no full blocks", empty)
	}
}

func TestGaugeClampsRatio(t *testing.T) {
	style := DefaultGaugeStyle()
	style.Width = 8
	over := ansi.Strip(Gauge(3.0, style))
	if strings.Count(over, "█") != 8 {
		t.Errorf("over-range gauge should clamp: %q", over)
	}
}

func TestTruncateAndPad(t *testing.T) {
	if got := PadRight("ab", 5); got != "ab   " {
		t.Errorf("PadRight = %q", got)
	}
	if got := Truncate("abcdef", 3); got != "abc" {
		t.Errorf("Truncate = %q", got)
	}
	if w := VisibleWidth(Dim("abc")); w != 3 {
		t.Errorf("VisibleWidth of styled text = %d, want 3", w)
	}
}

func TestCenterLines(t *testing.T) {
	out := CenterLines("x", 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if lines[1] != "x" {
		t.Errorf("content should land in the middle line: %q", lines)
	}
}
