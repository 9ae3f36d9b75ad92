package render

import (
	"fmt"
	"math"

	"github.com/matzehuels/stakemap/pkg/explore"
	"github.com/matzehuels/stakemap/pkg/graph"
	"github.com/matzehuels/stakemap/pkg/layout"
)

// Canvas geometry in pixels.
const (
	Width  = 1920
	Height = 1080
	Margin = 80.0

	// HeaderHeight is reserved at the top for the title block.
	HeaderHeight = 60.0

	ModuleRadius  = 26.0
	FeatureRadius = 12.0

	// MaxScale stops small scenes from being blown up.
	MaxScale = 1.5
)

const (
	background    = "#1E1E2E"
	textPrimary   = "#F8F8F2"
	textSecondary = "#A0A0B0"
	selectedRing  = "#F8F8F2"
)

// Circle is a drawn node.
type Circle struct {
	ID       graph.NodeID
	Center   layout.Position
	Radius   float64
	Fill     string
	Opacity  float64
	Label    string
	Selected bool
}

// Line is a drawn edge.
type Line struct {
	ID      string
	From    layout.Position
	To      layout.Position
	Color   string
	Width   float64
	Opacity float64
	Dashed  bool
	Label   string
}

// Surface is a view flattened into canvas coordinates, ready to encode.
type Surface struct {
	Width      int
	Height     int
	Background string
	Title      string
	Subtitle   string
	Lines      []Line
	Circles    []Circle
}

// NewSurface fits the visible nodes and edges of v into a Width×Height
// canvas. Hidden elements are skipped; dimmed ones keep their opacity.
func NewSurface(v explore.View, title string) *Surface {
	s := &Surface{
		Width:      Width,
		Height:     Height,
		Background: background,
		Title:      title,
		Subtitle: fmt.Sprintf("%d nodes · %d edges · %s view",
			v.Stats.TotalNodes, v.Stats.TotalEdges, v.State.Mode),
	}

	nodes := v.VisibleNodes()
	if len(nodes) == 0 {
		return s
	}
	fit := fitTransform(nodes)

	pos := make(map[graph.NodeID]layout.Position, len(nodes))
	for _, n := range nodes {
		pos[n.ID] = fit.apply(n.Position)
	}

	for _, e := range v.VisibleEdges() {
		from, ok1 := pos[e.Source]
		to, ok2 := pos[e.Target]
		if !ok1 || !ok2 {
			continue
		}
		s.Lines = append(s.Lines, Line{
			ID:      e.ID,
			From:    from,
			To:      to,
			Color:   e.Style.Color,
			Width:   e.Style.Width,
			Opacity: e.Style.Opacity,
			Dashed:  e.Style.Animated,
			Label:   e.Label,
		})
	}

	for _, n := range nodes {
		r := ModuleRadius
		if n.Kind == graph.KindFeature {
			r = FeatureRadius
		}
		s.Circles = append(s.Circles, Circle{
			ID:       n.ID,
			Center:   pos[n.ID],
			Radius:   r,
			Fill:     n.Color,
			Opacity:  n.Opacity,
			Label:    n.Label,
			Selected: n.Selected,
		})
	}
	return s
}

type transform struct {
	scale  float64
	offset layout.Position
}

func (t transform) apply(p layout.Position) layout.Position {
	return p.Scale(t.scale).Add(t.offset)
}

// fitTransform scales and centers the scene bounds inside the drawable area
// below the header.
func fitTransform(nodes []explore.Node) transform {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range nodes {
		minX = math.Min(minX, n.Position.X)
		minY = math.Min(minY, n.Position.Y)
		maxX = math.Max(maxX, n.Position.X)
		maxY = math.Max(maxY, n.Position.Y)
	}
	pad := ModuleRadius * 2
	minX, minY, maxX, maxY = minX-pad, minY-pad, maxX+pad, maxY+pad

	availW := Width - 2*Margin
	availH := Height - 2*Margin - HeaderHeight
	scale := math.Min(availW/(maxX-minX), availH/(maxY-minY))
	scale = math.Min(scale, MaxScale)

	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	return transform{
		scale: scale,
		offset: layout.Position{
			X: Width/2 - cx*scale,
			Y: HeaderHeight + Margin + availH/2 - cy*scale,
		},
	}
}
