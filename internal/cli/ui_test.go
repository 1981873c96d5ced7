package cli

import (
	"bytes"
	"regexp"
	"testing"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func captureUI(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := uiOut
	uiOut = &buf
	t.Cleanup(func() { uiOut = prev })
	return &buf
}

func TestPrintModuleStats(t *testing.T) {
	tests := []struct {
		name                           string
		aligned, unaligned, incomplete int
		want                           string
	}{
		{"aligned", 3, 0, 0, "  core · 3 aligned · 0 unaligned · 0 incompletely aligned · aligned\n"},
		{"unaligned", 1, 2, 0, "  core · 1 aligned · 2 unaligned · 0 incompletely aligned · unaligned\n"},
		{"incomplete", 2, 0, 1, "  core · 2 aligned · 0 unaligned · 1 incompletely aligned · unaligned\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureUI(t)
			printModuleStats("core", tt.aligned, tt.unaligned, tt.incomplete)
			if got := ansi.ReplaceAllString(buf.String(), ""); got != tt.want {
				t.Errorf("printModuleStats = %q, want %q", got, tt.want)
			}
		})
	}
}
