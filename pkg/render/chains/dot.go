package chains

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/streamshub/alignreport/pkg/artifact"
	"github.com/streamshub/alignreport/pkg/errors"
	"github.com/streamshub/alignreport/pkg/render"
	"github.com/streamshub/alignreport/pkg/report"
)

// Options configures chain diagram rendering.
type Options struct {
	// Detailed labels nodes with the full coordinate instead of
	// artifactId and version.
	Detailed bool
}

const (
	alignedFill   = "#d4edda"
	unalignedFill = "#f8d7da"
	moduleFill    = "#e2e3e5"
)

// ToDOT converts reports to Graphviz DOT format. The resulting DOT string can
// be rendered with [Render] or [RenderSVG].
func ToDOT(reports []*report.Report, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")

	for i, r := range reports {
		writeModule(&buf, i, r, opts)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeModule(buf *bytes.Buffer, idx int, r *report.Report, opts Options) {
	id := func(c artifact.Coordinate) string { return fmt.Sprintf("m%d/%s", idx, c.Key()) }
	moduleID := fmt.Sprintf("m%d", idx)

	fmt.Fprintf(buf, "\n  subgraph \"cluster_%d\" {\n", idx)
	fmt.Fprintf(buf, "    label=%q;\n", r.Title)
	fmt.Fprintf(buf, "    %q [label=%q, fillcolor=%q, shape=folder];\n", moduleID, r.Module, moduleFill)

	unaligned := make(map[artifact.Key]bool)
	for _, c := range r.UnalignedDirect {
		unaligned[c.Key()] = true
	}
	for _, ch := range r.Chains {
		unaligned[ch.Leaf().Key()] = true
	}
	incomplete := make(map[artifact.Key]bool)
	for _, c := range r.IncompletelyAligned {
		incomplete[c.Key()] = true
	}

	declared := make(map[string]bool)
	node := func(c artifact.Coordinate) {
		nid := id(c)
		if declared[nid] {
			return
		}
		declared[nid] = true
		fmt.Fprintf(buf, "    %q [%s];\n", nid, strings.Join(fmtAttrs(c, unaligned[c.Key()], incomplete[c.Key()], opts), ", "))
	}

	var edges []string
	seen := make(map[string]bool)
	edge := func(from, to string) {
		e := fmt.Sprintf("    %q -> %q;\n", from, to)
		if !seen[e] {
			seen[e] = true
			edges = append(edges, e)
		}
	}

	for _, c := range r.UnalignedDirect {
		node(c)
		edge(moduleID, id(c))
	}
	for _, c := range r.IncompletelyAligned {
		node(c)
		edge(moduleID, id(c))
	}
	for _, ch := range r.Chains {
		for i, c := range ch {
			node(c)
			if i > 0 {
				edge(id(ch[i-1]), id(c))
			}
		}
	}

	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("  }\n")
}

func fmtLabel(c artifact.Coordinate, detailed bool) string {
	if detailed {
		return c.String()
	}
	return c.ArtifactID + "\n" + c.Version
}

func fmtAttrs(c artifact.Coordinate, unaligned, incomplete bool, opts Options) []string {
	fill := alignedFill
	if unaligned {
		fill = unalignedFill
	}
	attrs := []string{
		fmt.Sprintf("label=%q", fmtLabel(c, opts.Detailed)),
		fmt.Sprintf("fillcolor=%q", fill),
		fmt.Sprintf("tooltip=%q", c.String()),
	}
	if incomplete {
		attrs = append(attrs, "penwidth=3")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [render.Convert].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales from the
// origin at its natural size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// Render produces the diagram in the given format. An empty format means SVG.
func Render(ctx context.Context, reports []*report.Report, format render.Format, opts Options) ([]byte, error) {
	if format == "" {
		format = render.FormatSVG
	}
	if !format.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown graph format %q", format)
	}
	dot := ToDOT(reports, opts)
	if format == render.FormatDOT {
		return []byte(dot), nil
	}
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.Convert(ctx, svg, format)
}
