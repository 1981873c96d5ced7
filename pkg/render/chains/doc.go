// Package chains draws violation chains as a Graphviz node-link diagram.
//
// Each analyzed module becomes a cluster headed by a module node. Unaligned
// direct dependencies hang directly off the module. Incompletely aligned
// direct dependencies are drawn with a bold outline, and every chain below
// them is drawn edge by edge down to its unaligned leaf. Aligned artifacts
// are green and unaligned ones red.
//
//	dot := chains.ToDOT(reports, chains.Options{})
//	svg, err := chains.RenderSVG(ctx, dot)
package chains
