// Package nodelink renders explore views as Graphviz node-link diagrams.
//
// # Overview
//
// [ToDOT] emits an undirected DOT graph in which every node carries a pinned
// pos attribute taken from the computed layout, so Graphviz (neato) only
// routes edges and draws labels; it never moves nodes. The output can be
// saved as-is or rendered in process with [RenderSVG].
//
//	dot := nodelink.ToDOT(view, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
//   - Detailed: include shared stakeholder names as edge labels and the
//     module status in node labels
//   - IncludeHidden: also emit nodes and edges hidden by direct-only
//
// Dimmed elements keep their reduced opacity through an alpha channel on
// their colors.
//
// # Dependencies
//
// [RenderSVG] uses [github.com/goccy/go-graphviz], a WebAssembly build of
// Graphviz, so no system installation is needed.
package nodelink
