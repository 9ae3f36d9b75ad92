package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/stakemap/pkg/explore"
	"github.com/matzehuels/stakemap/pkg/graph"
)

// Options configures node-link diagram generation.
type Options struct {
	// Detailed adds shared stakeholder labels to overlap edges and the
	// status to module labels.
	Detailed bool
	// IncludeHidden emits elements hidden by the direct-only filter.
	IncludeHidden bool
}

// pointsPerUnit converts scene units to Graphviz points.
const pointsPerUnit = 0.75

// ToDOT converts a view to Graphviz DOT with pinned node positions.
// Scene Y grows downward; DOT Y grows upward, so Y is negated.
func ToDOT(v explore.View, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  node [shape=circle, style=filled, fontsize=12, fixedsize=false];\n")
	buf.WriteString("\n")

	emitted := make(map[graph.NodeID]bool, len(v.Nodes))
	for _, n := range v.Nodes {
		if n.Hidden && !opts.IncludeHidden {
			continue
		}
		emitted[n.ID] = true
		fmt.Fprintf(&buf, "  %q [%s];\n", string(n.ID), strings.Join(nodeAttrs(n, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, e := range v.Edges {
		if (e.Hidden && !opts.IncludeHidden) || !emitted[e.Source] || !emitted[e.Target] {
			continue
		}
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", string(e.Source), string(e.Target), strings.Join(edgeAttrs(e, opts.Detailed), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n explore.Node, detailed bool) []string {
	label := n.Label
	if detailed && n.Kind == graph.KindModule && n.Status != "" {
		label += "\n" + string(n.Status)
	}
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("pos=\"%.2f,%.2f!\"", n.Position.X*pointsPerUnit, -n.Position.Y*pointsPerUnit),
		fmt.Sprintf("fillcolor=%q", withAlpha(n.Color, n.Opacity)),
	}
	switch n.Kind {
	case graph.KindModule:
		attrs = append(attrs, "width=0.7")
	case graph.KindFeature:
		attrs = append(attrs, "width=0.35", "fontsize=9")
	}
	if n.Selected {
		attrs = append(attrs, "penwidth=3")
	}
	return attrs
}

func edgeAttrs(e explore.Edge, detailed bool) []string {
	attrs := []string{
		fmt.Sprintf("color=%q", withAlpha(e.Style.Color, e.Style.Opacity)),
		fmt.Sprintf("penwidth=%.1f", e.Style.Width),
	}
	if e.Style.Animated {
		attrs = append(attrs, "style=dashed")
	}
	if detailed && e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label), "fontsize=9")
	}
	return attrs
}

// withAlpha appends an alpha byte to a #RRGGBB color.
func withAlpha(hex string, opacity float64) string {
	if len(hex) != 7 || opacity >= 1 {
		return hex
	}
	a := int(opacity*255 + 0.5)
	return fmt.Sprintf("%s%02X", hex, max(0, min(a, 255)))
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one
// whose width and height match the viewBox.
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

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
