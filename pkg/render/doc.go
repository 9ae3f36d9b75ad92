// Package render draws explore views to static images.
//
// # Overview
//
// Rendering happens in two steps. [NewSurface] fits the visible part of an
// [explore.View] into a fixed 1920×1080 canvas and flattens it into circles
// and lines. Encoders then draw the surface:
//
//   - [PNG] rasterizes with github.com/fogleman/gg
//   - [SVG] writes vector output with github.com/ajstarks/svgo
//
// Both encoders are deterministic: the same surface always yields the same
// bytes.
//
// # Export
//
// [Exporter] writes an encoded surface to disk under a fresh name,
// <hint>-<8 hex chars>.<ext>, so repeated exports never overwrite each
// other. A nil surface (nothing rendered yet) is reported as
// SURFACE_DETACHED. Export never touches the view it was drawn from.
//
//	s := render.NewSurface(view, "Stakeholder overlap")
//	res, err := render.Exporter{Dir: "exports"}.Export(ctx, s, "roadmap")
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage emits Graphviz DOT for the same view, with node
// positions pinned to the computed layout.
//
// [nodelink]: github.com/matzehuels/stakemap/pkg/render/nodelink
package render
