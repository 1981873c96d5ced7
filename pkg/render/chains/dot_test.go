package chains

import (
	"context"
	"strings"
	"testing"

	"github.com/streamshub/alignreport/pkg/align"
	"github.com/streamshub/alignreport/pkg/artifact"
	"github.com/streamshub/alignreport/pkg/errors"
	"github.com/streamshub/alignreport/pkg/report"
)

func coord(group, name, version string) artifact.Coordinate {
	return artifact.Coordinate{GroupID: group, ArtifactID: name, Version: version, Type: "jar"}
}

var (
	a = coord("org.acme", "a", "1.0-redhat")
	b = coord("org.acme", "b", "2.0")
	c = coord("org.acme", "c", "3.0")
	u = coord("org.other", "u", "1.0")
)

func sampleReport() *report.Report {
	return &report.Report{
		Module:              "app",
		Title:               "App",
		AlignedDirect:       []artifact.Coordinate{a},
		UnalignedDirect:     []artifact.Coordinate{u},
		IncompletelyAligned: []artifact.Coordinate{a},
		Chains:              []align.Chain{{a, b, c}, {a, b}},
	}
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT([]*report.Report{sampleReport()}, Options{})

	for _, want := range []string{
		"digraph G",
		`subgraph "cluster_0"`,
		`label="App"`,
		`"m0" [label="app"`,
		`"m0" -> "m0/org.other:u:1.0:jar";`,
		`"m0" -> "m0/org.acme:a:1.0-redhat:jar";`,
		`"m0/org.acme:a:1.0-redhat:jar" -> "m0/org.acme:b:2.0:jar";`,
		`"m0/org.acme:b:2.0:jar" -> "m0/org.acme:c:3.0:jar";`,
		`label="a\n1.0-redhat"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %s\n%s", want, dot)
		}
	}
	if n := strings.Count(dot, `"m0/org.acme:a:1.0-redhat:jar" -> "m0/org.acme:b:2.0:jar";`); n != 1 {
		t.Errorf("shared edge written %d times, want 1", n)
	}
	if n := strings.Count(dot, `"m0/org.acme:b:2.0:jar" [`); n != 1 {
		t.Errorf("node b declared %d times, want 1", n)
	}
}

func TestToDOT_Colors(t *testing.T) {
	dot := ToDOT([]*report.Report{sampleReport()}, Options{})

	line := func(id string) string {
		for _, l := range strings.Split(dot, "\n") {
			if strings.Contains(l, `"`+id+`" [`) {
				return l
			}
		}
		t.Fatalf("node %s not declared", id)
		return ""
	}
	if l := line("m0/org.acme:a:1.0-redhat:jar"); !strings.Contains(l, alignedFill) || !strings.Contains(l, "penwidth=3") {
		t.Errorf("incomplete root = %s", l)
	}
	if l := line("m0/org.acme:b:2.0:jar"); !strings.Contains(l, unalignedFill) {
		t.Errorf("unaligned intermediate = %s", l)
	}
	if l := line("m0/org.other:u:1.0:jar"); !strings.Contains(l, unalignedFill) {
		t.Errorf("unaligned direct = %s", l)
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT([]*report.Report{sampleReport()}, Options{Detailed: true})
	if !strings.Contains(dot, `label="org.acme:c:3.0:jar"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestToDOT_MultipleModules(t *testing.T) {
	second := sampleReport()
	second.Module, second.Title = "api", "API"
	dot := ToDOT([]*report.Report{sampleReport(), second}, Options{})

	if !strings.Contains(dot, `subgraph "cluster_1"`) || !strings.Contains(dot, `"m1/org.acme:a:1.0-redhat:jar"`) {
		t.Errorf("second module should get its own cluster:\n%s", dot)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render(context.Background(), nil, "gif", Options{})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestRenderDOT(t *testing.T) {
	out, err := Render(context.Background(), []*report.Report{sampleReport()}, "dot", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(out), "digraph G {") {
		t.Errorf("dot output = %s", out)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg></svg>")); string(got) != "<svg></svg>" {
		t.Errorf("svg without viewBox should be unchanged, got %s", got)
	}
}
