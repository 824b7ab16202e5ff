package cli

import (
	"strings"
	"testing"
)

func TestStatsLine(t *testing.T) {
	tests := []struct {
		name   string
		n      counts
		cached bool
		want   []string
		absent []string
	}{
		{"plant", counts{Shells: 1, Submodels: 1, Assets: 1}, false,
			[]string{"1 shells", "1 submodels", "1 assets", "fresh"}, []string{"concept descriptions", "cached"}},
		{"cached", counts{ConceptDescriptions: 2}, true,
			[]string{"2 concept descriptions", "cached"}, []string{"shells"}},
		{"empty", counts{}, false, []string{"empty", "fresh"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := statsLine(tt.n, tt.cached)
			for _, w := range tt.want {
				if !strings.Contains(line, w) {
					t.Errorf("statsLine = %q, missing %q", line, w)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(line, a) {
					t.Errorf("statsLine = %q, unexpected %q", line, a)
				}
			}
		})
	}
}

func TestStatusLine(t *testing.T) {
	line := statusIssue.line("%d issues", 3)
	if !strings.Contains(line, "!") || !strings.Contains(line, "3 issues") {
		t.Errorf("line = %q", line)
	}
}
