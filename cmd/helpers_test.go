package cmd

import (
	"strings"
	"testing"
)

func TestPrintSimpleTable(t *testing.T) {
	var sb strings.Builder
	printSimpleTable(&sb, []string{"A", "B"}, func(add func(...string)) {
		add("one", "two")
	})
	out := sb.String()
	for _, want := range []string{"A", "B", "one", "two"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}
