// Package render holds the diagram formats shared by the graph renderers.
//
// [FormatFor] picks a format from a file name or an explicit choice.
// [Convert] turns the SVG drawn by Graphviz into PDF or PNG using the
// external rsvg-convert tool (from librsvg). The violation chain graph in
// [chains] goes through both:
//
//	f, err := render.FormatFor("chains.pdf", "")
//	out, err := chains.Render(ctx, reports, f, chains.Options{})
//
// [chains]: github.com/streamshub/alignreport/pkg/render/chains
package render
