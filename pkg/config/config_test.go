package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/streamshub/alignreport/pkg/errors"
)

const sample = `
alignment-pattern = "redhat-\\d+"
excludes = "io.netty:*"
scope = "runtime"
fail-on-unaligned = true
parallel = 2

[shade]
analyze = true
include-transitive = true

[graph]
output = "target/alignment.svg"

[maven]
offline = true
`

func write(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	c, err := Load(write(t, t.TempDir(), sample))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.AlignmentPattern != `redhat-\d+` {
		t.Errorf("AlignmentPattern = %q", c.AlignmentPattern)
	}
	if !c.FailOnUnaligned || c.Parallel != 2 || c.Scope != "runtime" {
		t.Errorf("config = %+v", c)
	}
	if !c.Shade.Analyze || !c.Shade.IncludeTransitive || c.Shade.PrintConfiguration {
		t.Errorf("shade = %+v", c.Shade)
	}
	if c.Graph.Output != "target/alignment.svg" || !c.Maven.Offline {
		t.Errorf("graph/maven = %+v / %+v", c.Graph, c.Maven)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{"syntax", "alignment-pattern = ", errors.ErrCodeInvalidConfig},
		{"unknown key", "alignment-patern = \"x\"", errors.ErrCodeInvalidConfig},
		{"wrong type", "parallel = \"four\"", errors.ErrCodeInvalidConfig},
		{"negative parallel", "parallel = -1", errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(write(t, t.TempDir(), tt.content))
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file err = %v", err)
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	c, found, err := Find(dir)
	if err != nil || found || c == nil {
		t.Fatalf("Find(empty) = %v, %v, %v", c, found, err)
	}

	write(t, dir, sample)
	c, found, err = Find(dir)
	if err != nil || !found || c.Scope != "runtime" {
		t.Errorf("Find = %+v, %v, %v", c, found, err)
	}
}

func TestApplyFlagsWin(t *testing.T) {
	c, err := Load(write(t, t.TempDir(), sample))
	if err != nil {
		t.Fatal(err)
	}

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	pattern := fs.String("alignment-pattern", "", "")
	scope := fs.String("scope", "", "")
	fail := fs.Bool("fail-on-unaligned", false, "")
	parallel := fs.Int("parallel", 4, "")
	analyze := fs.Bool("analyze-shade", false, "")
	graph := fs.String("graph", "", "")

	if err := fs.Parse([]string{"--scope", "test"}); err != nil {
		t.Fatal(err)
	}
	if err := c.Apply(fs); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if *pattern != `redhat-\d+` || !*fail || *parallel != 2 || !*analyze || *graph != "target/alignment.svg" {
		t.Errorf("config values not applied: %q %v %d %v %q", *pattern, *fail, *parallel, *analyze, *graph)
	}
	if *scope != "test" {
		t.Errorf("explicit flag overridden: scope = %q", *scope)
	}
}
