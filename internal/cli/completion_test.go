package cli

import (
	"slices"
	"strings"
	"testing"
)

// completions runs cobra's hidden completion command and returns the
// offered values without the trailing directive line.
func completions(t *testing.T, args ...string) []string {
	t.Helper()
	out, err := execute(t, append([]string{"__complete"}, args...)...)
	if err != nil {
		t.Fatalf("__complete %v: %v", args, err)
	}
	var got []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}
		name, _, _ := strings.Cut(line, "\t")
		got = append(got, name)
	}
	return got
}

func TestCompletionScripts(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := execute(t, "completion", shell)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, "alignreport") {
				t.Errorf("%s completion does not mention the command", shell)
			}
		})
	}
	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("expected an error for an unsupported shell")
	}
}

func TestCompletionFlagValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"report format", []string{"analyze", "--format", ""}, []string{"text", "json", "yaml"}},
		{"diagram format", []string{"analyze", "--graph-format", ""}, []string{"dot", "svg", "pdf", "png"}},
		{"scope", []string{"tree", "--scope", ""}, []string{"compile", "runtime", "test", "provided", "system"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := completions(t, tt.args...); !slices.Equal(got, tt.want) {
				t.Errorf("completions = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompletionModules(t *testing.T) {
	pomPath, _ := reactorFixture(t)

	got := completions(t, "analyze", pomPath, "--exclude-modules", "")
	if want := []string{"parent", "core", "app"}; !slices.Equal(got, want) {
		t.Errorf("modules = %v, want %v", got, want)
	}

	got = completions(t, "analyze", pomPath, "--exclude-modules", "core,")
	if want := []string{"core,parent", "core,app"}; !slices.Equal(got, want) {
		t.Errorf("modules after core = %v, want %v", got, want)
	}

	got = completions(t, "analyze", pomPath, "--tree", "")
	if want := []string{"parent=", "core=", "app="}; !slices.Equal(got, want) {
		t.Errorf("tree prefixes = %v, want %v", got, want)
	}
}
