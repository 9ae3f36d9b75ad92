package explore

import (
	"strings"

	"github.com/matzehuels/stakemap/pkg/graph"
	"github.com/matzehuels/stakemap/pkg/project"
)

const (
	OpacityFull       = 1.0
	OpacityDimmedNode = 0.25
	OpacityDimmedEdge = 0.15

	// MaxEdgeWidth caps the stroke width of overlap edges.
	MaxEdgeWidth = 6
	// AnimateShared is the relevant shared count at which overlap edges animate.
	AnimateShared = 3

	explicitEdgeWidth = 2.0
)

// overlapPalette colors overlap edges by discovery index.
var overlapPalette = []string{
	"#7C3AED", "#2563EB", "#0891B2", "#059669",
	"#CA8A04", "#EA580C", "#DC2626", "#DB2777",
}

var categoryColors = map[graph.Category]string{
	graph.CategoryModules:   "#3B82F6",
	graph.CategoryFunctions: "#10B981",
	graph.CategoryMixed:     "#F59E0B",
}

var priorityColors = map[project.Priority]string{
	project.PriorityCritical: "#DC2626",
	project.PriorityHigh:     "#EA580C",
	project.PriorityMedium:   "#2563EB",
	project.PriorityLow:      "#6B7280",
}

const (
	defaultModuleColor = "#6B7280"
	featureColor       = "#10B981"
)

// EdgeStyle is the drawing style of an edge.
type EdgeStyle struct {
	Color    string  `json:"color"`
	Width    float64 `json:"width"`
	Opacity  float64 `json:"opacity"`
	Animated bool    `json:"animated"`
}

func styleEdge(e graph.Edge, selected graph.NodeID, highlighted bool) (EdgeStyle, string) {
	opacity := OpacityFull
	if !highlighted {
		opacity = OpacityDimmedEdge
	}
	switch e.Kind {
	case graph.EdgeOverlap:
		n := len(e.Shared)
		return EdgeStyle{
			Color:    overlapPalette[e.Index%len(overlapPalette)],
			Width:    float64(min(n, MaxEdgeWidth)),
			Opacity:  opacity,
			Animated: n >= AnimateShared,
		}, strings.Join(e.Shared, ", ")
	case graph.EdgeExplicit:
		return EdgeStyle{
			Color:    categoryColors[e.Category],
			Width:    explicitEdgeWidth,
			Opacity:  opacity,
			Animated: !selected.IsZero() && e.Touches(selected),
		}, ""
	default:
		return EdgeStyle{Opacity: opacity}, ""
	}
}

func moduleColor(p project.Priority) string {
	if c, ok := priorityColors[p]; ok {
		return c
	}
	return defaultModuleColor
}

func nodeOpacity(highlighted bool) float64 {
	if highlighted {
		return OpacityFull
	}
	return OpacityDimmedNode
}
