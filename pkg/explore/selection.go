package explore

import "github.com/matzehuels/stakemap/pkg/graph"

// HighlightSet is the closed neighborhood of the selection. All reports that
// there is no selection and every node is highlighted.
type HighlightSet struct {
	All     bool
	Members map[graph.NodeID]bool
}

// Contains reports whether id is highlighted by the selection.
func (h HighlightSet) Contains(id graph.NodeID) bool {
	return h.All || h.Members[id]
}

// Len returns the member count, or -1 when unrestricted.
func (h HighlightSet) Len() int {
	if h.All {
		return -1
	}
	return len(h.Members)
}

// ComputeHighlightSet returns the selected node plus every node sharing an
// edge with it. Edge direction is ignored. The selected node is always a
// member, even when it has no edges or is absent from edges entirely.
func ComputeHighlightSet(edges []graph.Edge, selected graph.NodeID) HighlightSet {
	if selected.IsZero() {
		return HighlightSet{All: true}
	}
	members := map[graph.NodeID]bool{selected: true}
	for _, e := range edges {
		if other, ok := e.Other(selected); ok {
			members[other] = true
		}
	}
	return HighlightSet{Members: members}
}
