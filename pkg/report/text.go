package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/streamshub/alignreport/pkg/artifact"
	"github.com/streamshub/alignreport/pkg/paths"
)

// TextOptions controls [WriteText].
type TextOptions struct {
	// Title writes the module banner first. Console output omits it.
	Title bool
	// PrintShadeConfigurations includes the shade configuration listing.
	PrintShadeConfigurations bool
}

// WriteText renders r in the plain-text report format. Empty summary,
// detail and shade sections are omitted; the direct dependency sections are
// always written.
func WriteText(w io.Writer, r *Report, opts TextOptions) error {
	bw := bufio.NewWriter(w)
	tw := &textWriter{w: bw}

	if opts.Title {
		bar := strings.Repeat("=", utf8.RuneCountInString(r.Title))
		tw.line(bar)
		tw.line(r.Title)
		tw.line(bar)
		tw.blank()
	}

	tw.direct(r.AlignedDirect, "Aligned")
	tw.direct(r.UnalignedDirect, "Unaligned")

	if len(r.IncompletelyAligned) > 0 {
		tw.heading("Summary - Aligned direct dependencies with unaligned transitive dependencies", '-')
		for _, c := range r.IncompletelyAligned {
			tw.line("Incompletely aligned - " + c.String())
		}
		tw.blank()
	}
	if len(r.Chains) > 0 {
		tw.heading("Detail - Aligned direct dependencies with unaligned transitive dependencies", '-')
		for _, ch := range r.Chains {
			tw.line("Unaligned transitive - " + ch.String())
		}
		tw.blank()
	}

	if r.Shade != nil {
		if opts.PrintShadeConfigurations {
			tw.shadeConfigurations(r.Shade)
		}
		tw.shadeSummary(r.Shade)
	}

	if tw.err != nil {
		return tw.err
	}
	return bw.Flush()
}

// textWriter keeps the first write error so rendering code can stay linear.
type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) line(s string) {
	if t.err == nil {
		_, t.err = fmt.Fprintln(t.w, s)
	}
}

func (t *textWriter) blank() { t.line("") }

func (t *textWriter) heading(title string, underline rune) {
	t.line(title)
	t.line(strings.Repeat(string(underline), utf8.RuneCountInString(title)))
}

func (t *textWriter) direct(list []artifact.Coordinate, prefix string) {
	t.heading(fmt.Sprintf("%d %s direct dependenc%s", len(list), prefix, yIes(len(list))), '-')
	for _, c := range list {
		t.line(prefix + " - " + c.String())
	}
	t.blank()
}

func (t *textWriter) coords(title, prefix string, list []artifact.Coordinate) {
	if len(list) == 0 {
		return
	}
	t.heading(fmt.Sprintf("%d %s", len(list), title), '-')
	for _, c := range list {
		t.line(prefix + " - " + c.String())
	}
	t.blank()
}

func (t *textWriter) shadeConfigurations(s *Shade) {
	if len(s.Configurations) == 0 {
		t.line("No shade configurations found in the project.")
		t.blank()
		return
	}

	t.heading("Shade Configuration Analysis", '=')
	t.blank()
	t.line(fmt.Sprintf("Found %d shade configuration(s)", len(s.Configurations)))
	t.blank()

	for i, cfg := range s.Configurations {
		t.line(fmt.Sprintf("Configuration #%d (%s):", i+1, cfg.Module))
		t.line(fmt.Sprintf("  - Create dependency reduced POM: %t", cfg.CreateDependencyReducedPom))
		t.line(fmt.Sprintf("  - Number of relocations: %d", len(cfg.Relocations)))
		if cfg.HasRelocations() {
			t.line("  - Relocations:")
			for _, rel := range cfg.Relocations {
				t.line("    * " + rel.String())
			}
		}
		t.blank()
	}

	t.coords("Aligned artifacts affected by shading", "Aligned", s.AlignedShaded)
	t.coords("Unaligned artifacts affected by shading", "Unaligned", s.UnalignedShaded)
}

func (t *textWriter) shadeSummary(s *Shade) {
	if len(s.Configurations) == 0 {
		return
	}

	t.heading("Shade-Aware Alignment Summary", '=')
	t.blank()
	t.line(fmt.Sprintf("Shaded artifacts: %d total, %d aligned, %d unaligned",
		len(s.Shaded), len(s.AlignedShaded), len(s.UnalignedShaded)))

	if len(s.UnalignedShaded) > 0 {
		t.blank()
		t.heading("Unaligned Shaded Artifacts:", '-')
		for _, c := range s.UnalignedShaded {
			t.line("Unaligned - " + c.String())
		}
	}

	if !s.Paths.Empty() {
		t.blank()
		t.heading("Shaded Artifacts with Dependency Paths", '-')
		t.records("Direct Aligned Shaded Artifacts:", "Aligned", s.Paths.AlignedDirect, false)
		t.records("Direct Unaligned Shaded Artifacts:", "Unaligned", s.Paths.UnalignedDirect, false)
		t.records("Transitive Aligned Shaded Artifacts:", "Aligned", s.Paths.AlignedTransitive, true)
		t.records("Transitive Unaligned Shaded Artifacts:", "Unaligned", s.Paths.UnalignedTransitive, true)
	}
	t.blank()
}

func (t *textWriter) records(title, prefix string, list []paths.Record, withPath bool) {
	if len(list) == 0 {
		return
	}
	t.blank()
	t.heading(title, '-')
	for _, rec := range list {
		if withPath {
			t.line(prefix + " - " + rec.FormatDependencyPath())
		} else {
			t.line(prefix + " - " + rec.Artifact.String())
		}
	}
}
