package explore

import (
	"strings"

	"github.com/matzehuels/stakemap/pkg/graph"
	"github.com/matzehuels/stakemap/pkg/project"
)

// SearchFilter matches nodes by case-insensitive substring on name or code.
// An inactive filter matches everything.
type SearchFilter struct {
	Active bool
	query  string
}

// NewSearchFilter builds a filter from raw search text. Blank text yields an
// inactive filter.
func NewSearchFilter(text string) SearchFilter {
	q := strings.ToLower(strings.TrimSpace(text))
	return SearchFilter{Active: q != "", query: q}
}

// Matches reports whether a node with the given name and code passes.
func (f SearchFilter) Matches(name, code string) bool {
	if !f.Active {
		return true
	}
	return strings.Contains(strings.ToLower(name), f.query) ||
		(code != "" && strings.Contains(strings.ToLower(code), f.query))
}

// ActiveEdges returns the structural edges of the view selected by st.
// Overlap edges are already threshold and stakeholder filtered; explicit
// edges have dangling references removed.
func ActiveEdges(ds project.Dataset, st ViewState) []graph.Edge {
	switch st.Mode {
	case ViewExplicit:
		return graph.AdaptConnections(ds.Connections, ds.ModuleIDs(), ds.FeatureIDs())
	default:
		return graph.FilterOverlap(graph.BuildOverlapEdges(ds.Modules), st.Stakeholder, st.Threshold)
	}
}

// edgeEnds carries the resolved highlight and hidden flags of an edge's
// endpoints.
type edgeEnds struct {
	srcLit, dstLit       bool
	srcHidden, dstHidden bool
}

// edgeVisibility applies the selection-adjacency rule to an edge. An edge
// between two dimmed nodes is dimmed too, so a search without a selection
// does not leave lines between non-matching nodes at full strength.
func edgeVisibility(e graph.Edge, selected graph.NodeID, directOnly bool, ends edgeEnds) (highlighted, hidden bool) {
	highlighted = (selected.IsZero() || e.Touches(selected)) && (ends.srcLit || ends.dstLit)
	hidden = ends.srcHidden || ends.dstHidden || (directOnly && !highlighted)
	return highlighted, hidden
}
