package explore

import (
	"github.com/matzehuels/stakemap/pkg/graph"
	"github.com/matzehuels/stakemap/pkg/layout"
	"github.com/matzehuels/stakemap/pkg/project"
)

// Node is a positioned, classified graph node.
type Node struct {
	ID       graph.NodeID   `json:"id"`
	Kind     graph.NodeKind `json:"kind"`
	EntityID string         `json:"entity_id"`
	Label    string         `json:"label"`
	Name     string         `json:"name"`
	Code     string         `json:"code,omitempty"`

	// Module variant.
	Priority     project.Priority `json:"priority,omitempty"`
	Status       project.Status   `json:"status,omitempty"`
	Stakeholders []string         `json:"stakeholders,omitempty"`

	// Feature variant.
	ModuleID string `json:"module_id,omitempty"`

	Position    layout.Position `json:"position"`
	Color       string          `json:"color"`
	Highlighted bool            `json:"highlighted"`
	Selected    bool            `json:"selected"`
	Hidden      bool            `json:"hidden"`
	Opacity     float64         `json:"opacity"`
}

// Edge is a structural edge with its drawing state.
type Edge struct {
	graph.Edge
	Label       string    `json:"label,omitempty"`
	Style       EdgeStyle `json:"style"`
	Highlighted bool      `json:"highlighted"`
	Hidden      bool      `json:"hidden"`
}

// Stats summarizes a view. Totals count visible elements only.
type Stats struct {
	TotalNodes      int            `json:"total_nodes"`
	TotalEdges      int            `json:"total_edges"`
	NodesByKind     map[string]int `json:"nodes_by_kind,omitempty"`
	EdgesByKind     map[string]int `json:"edges_by_kind,omitempty"`
	EdgesByCategory map[string]int `json:"edges_by_category,omitempty"`
	Highlighted     int            `json:"highlighted"`
	HiddenNodes     int            `json:"hidden_nodes"`
	HiddenEdges     int            `json:"hidden_edges"`
}

// View is the output of [Rebuild].
type View struct {
	// State is the effective state: the input state with an unknown
	// selection removed.
	State ViewState `json:"state"`
	Nodes []Node    `json:"nodes"`
	Edges []Edge    `json:"edges"`
	Stats Stats     `json:"stats"`

	// SelectionDropped holds a requested selection that does not exist in
	// the active view, typically a stale deep link.
	SelectionDropped graph.NodeID `json:"selection_dropped,omitempty"`
}

// Rebuild computes the full view for a dataset and state. It is pure and
// never fails: dangling references are dropped, unknown enum values fall
// back to defaults and an empty dataset yields an empty view.
func Rebuild(ds project.Dataset, st ViewState) View {
	if st.Mode != ViewExplicit {
		st.Mode = ViewOverlap
	}
	st.Threshold = max(st.Threshold, 1)

	nodes := buildNodes(ds, st)

	v := View{State: st}
	if !st.Selected.IsZero() && !containsNode(nodes, st.Selected) {
		v.SelectionDropped = st.Selected
		v.State.Selected = ""
	}
	selected := v.State.Selected

	edges := ActiveEdges(ds, st)
	hs := ComputeHighlightSet(edges, selected)
	search := NewSearchFilter(st.Search)

	lit := make(map[graph.NodeID]bool, len(nodes))
	hidden := make(map[graph.NodeID]bool)
	for i := range nodes {
		n := &nodes[i]
		n.Highlighted = hs.Contains(n.ID) && search.Matches(n.Name, n.Code)
		n.Selected = n.ID == selected
		n.Hidden = st.DirectOnly && !n.Highlighted
		n.Opacity = nodeOpacity(n.Highlighted)
		lit[n.ID] = n.Highlighted
		if n.Hidden {
			hidden[n.ID] = true
		}
	}

	v.Nodes = nodes
	v.Edges = make([]Edge, 0, len(edges))
	for _, e := range edges {
		hl, hide := edgeVisibility(e, selected, st.DirectOnly, edgeEnds{
			srcLit:    lit[e.Source],
			dstLit:    lit[e.Target],
			srcHidden: hidden[e.Source],
			dstHidden: hidden[e.Target],
		})
		style, label := styleEdge(e, selected, hl)
		v.Edges = append(v.Edges, Edge{
			Edge:        e,
			Label:       label,
			Style:       style,
			Highlighted: hl,
			Hidden:      hide,
		})
	}
	v.Stats = computeStats(v)
	return v
}

func buildNodes(ds project.Dataset, st ViewState) []Node {
	opts := layout.Options{}
	if st.Mode == ViewExplicit {
		opts.Spread = layout.ExplicitSpread
	}
	positions := layout.Modules(ds.Modules, st.Layout, opts)

	nodes := make([]Node, 0, len(ds.Modules))
	seen := make(map[string]bool, len(ds.Modules))
	for _, m := range ds.Modules {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		nodes = append(nodes, Node{
			ID:           graph.ModuleNodeID(m.ID),
			Kind:         graph.KindModule,
			EntityID:     m.ID,
			Label:        m.DisplayLabel(),
			Name:         m.Name,
			Code:         m.Code,
			Priority:     m.Priority,
			Status:       m.Status,
			Stakeholders: m.Stakeholders,
			Position:     positions[m.ID],
			Color:        moduleColor(m.Priority),
		})
	}
	if st.Mode != ViewExplicit {
		return nodes
	}

	modules := ds.ModuleIDs()
	seenFeat := make(map[string]bool, len(ds.Features))
	var feats []project.Feature
	byModule := make(map[string][]string)
	for _, f := range ds.Features {
		if !modules[f.ModuleID] || seenFeat[f.ID] {
			continue
		}
		seenFeat[f.ID] = true
		feats = append(feats, f)
		byModule[f.ModuleID] = append(byModule[f.ModuleID], f.ID)
	}

	featurePos := make(map[string]layout.Position, len(feats))
	for id, ids := range byModule {
		for fid, p := range layout.Satellites(positions[id], ids) {
			featurePos[fid] = p
		}
	}

	for _, f := range feats {
		nodes = append(nodes, Node{
			ID:       graph.FeatureNodeID(f.ID),
			Kind:     graph.KindFeature,
			EntityID: f.ID,
			Label:    f.DisplayLabel(),
			Name:     f.Name,
			Code:     f.Code,
			ModuleID: f.ModuleID,
			Position: featurePos[f.ID],
			Color:    featureColor,
		})
	}
	return nodes
}

func containsNode(nodes []Node, id graph.NodeID) bool {
	for _, n := range nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}

func computeStats(v View) Stats {
	s := Stats{
		NodesByKind: make(map[string]int),
		EdgesByKind: make(map[string]int),
	}
	for _, n := range v.Nodes {
		if n.Highlighted {
			s.Highlighted++
		}
		if n.Hidden {
			s.HiddenNodes++
			continue
		}
		s.TotalNodes++
		s.NodesByKind[n.Kind.String()]++
	}
	for _, e := range v.Edges {
		if e.Hidden {
			s.HiddenEdges++
			continue
		}
		s.TotalEdges++
		s.EdgesByKind[e.Kind.String()]++
		if e.Kind == graph.EdgeExplicit {
			if s.EdgesByCategory == nil {
				s.EdgesByCategory = make(map[string]int)
			}
			s.EdgesByCategory[e.Category.String()]++
		}
	}
	return s
}

// Node returns the node with the given ID.
func (v View) Node(id graph.NodeID) (Node, bool) {
	for _, n := range v.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// VisibleNodes returns the nodes that are not hidden, in view order.
func (v View) VisibleNodes() []Node {
	out := make([]Node, 0, len(v.Nodes))
	for _, n := range v.Nodes {
		if !n.Hidden {
			out = append(out, n)
		}
	}
	return out
}

// VisibleEdges returns the edges that are not hidden, in view order.
func (v View) VisibleEdges() []Edge {
	out := make([]Edge, 0, len(v.Edges))
	for _, e := range v.Edges {
		if !e.Hidden {
			out = append(out, e)
		}
	}
	return out
}

// Neighbor is one entry of a node's detail panel.
type Neighbor struct {
	ID           graph.NodeID   `json:"id"`
	Kind         graph.NodeKind `json:"kind"`
	Label        string         `json:"label"`
	EdgeKind     graph.EdgeKind `json:"edge_kind"`
	Shared       []string       `json:"shared,omitempty"`
	ConnectionID string         `json:"connection_id,omitempty"`
	// Outgoing is true when the stored connection points away from the
	// queried node. Always false for overlap edges.
	Outgoing bool `json:"outgoing"`
}

// Neighbors lists the direct neighbors of id in the active graph, in edge
// order, regardless of search or direct-only hiding. A node linked by
// several connections appears once per connection.
func (v View) Neighbors(id graph.NodeID) []Neighbor {
	var out []Neighbor
	for _, e := range v.Edges {
		other, ok := e.Other(id)
		if !ok {
			continue
		}
		nb := Neighbor{
			ID:       other,
			EdgeKind: e.Kind,
		}
		if n, ok := v.Node(other); ok {
			nb.Kind = n.Kind
			nb.Label = n.Label
		}
		switch e.Kind {
		case graph.EdgeOverlap:
			nb.Shared = e.Shared
		case graph.EdgeExplicit:
			nb.ConnectionID = e.ConnectionID
			nb.Outgoing = e.Source == id
		}
		out = append(out, nb)
	}
	return out
}
