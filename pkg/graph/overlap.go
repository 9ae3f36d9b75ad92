package graph

import (
	"strconv"

	"github.com/matzehuels/stakemap/pkg/project"
)

// OverlapEdge is an unordered pair of modules sharing stakeholders.
// A precedes B in the input order. Shared follows A's stakeholder order.
type OverlapEdge struct {
	A      string   `json:"a"`
	B      string   `json:"b"`
	Shared []string `json:"shared"`
	// Index is the discovery position of the pair, used for stable colors.
	Index int `json:"index"`
}

// BuildOverlapEdges derives an edge for every pair of modules whose
// stakeholder sets intersect.
//
// Pairs are visited as (i, j) with i < j in input order and emitted in that
// order. A module is never paired with itself, including a second record
// carrying the same ID, and an unordered ID pair is emitted at most once.
// Runs in O(n²·s) for n modules with up to s stakeholders each.
func BuildOverlapEdges(modules []project.Module) []OverlapEdge {
	sets := make([]map[string]bool, len(modules))
	for i, m := range modules {
		set := make(map[string]bool, len(m.Stakeholders))
		for _, s := range m.Stakeholders {
			if s != "" {
				set[s] = true
			}
		}
		sets[i] = set
	}

	var edges []OverlapEdge
	seen := make(map[[2]string]bool)
	for i := 0; i < len(modules); i++ {
		for j := i + 1; j < len(modules); j++ {
			a, b := modules[i], modules[j]
			if a.ID == b.ID {
				continue
			}
			key := pairKey(a.ID, b.ID)
			if seen[key] {
				continue
			}

			shared := intersect(a.Stakeholders, sets[j])
			if len(shared) == 0 {
				continue
			}
			seen[key] = true
			edges = append(edges, OverlapEdge{
				A:      a.ID,
				B:      b.ID,
				Shared: shared,
				Index:  len(edges),
			})
		}
	}
	return edges
}

// intersect returns the members of ordered that are in set, in order,
// without duplicates.
func intersect(ordered []string, set map[string]bool) []string {
	var out []string
	emitted := make(map[string]bool)
	for _, s := range ordered {
		if s == "" || !set[s] || emitted[s] {
			continue
		}
		emitted[s] = true
		out = append(out, s)
	}
	return out
}

func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

// Relevant returns the shared names that count toward thresholding and
// labels. With an empty stakeholder filter all shared names count; otherwise
// only the filtered name does, if present.
func (e OverlapEdge) Relevant(stakeholder string) []string {
	if stakeholder == "" {
		return e.Shared
	}
	for _, s := range e.Shared {
		if s == stakeholder {
			return []string{s}
		}
	}
	return nil
}

// Edge converts the overlap pair to a graph edge carrying the given relevant
// shared names. The edge ID is derived from the discovery index, so it stays
// unique whatever characters module IDs contain.
func (e OverlapEdge) Edge(relevant []string) Edge {
	return Edge{
		ID:     "overlap-" + strconv.Itoa(e.Index),
		Source: ModuleNodeID(e.A),
		Target: ModuleNodeID(e.B),
		Kind:   EdgeOverlap,
		Shared: relevant,
		Index:  e.Index,
	}
}

// FilterOverlap applies the single-stakeholder filter and the minimum shared
// threshold, returning the surviving edges in discovery order. Thresholds
// below 1 are treated as 1, so an edge always needs a relevant name.
func FilterOverlap(edges []OverlapEdge, stakeholder string, threshold int) []Edge {
	if threshold < 1 {
		threshold = 1
	}
	var out []Edge
	for _, e := range edges {
		relevant := e.Relevant(stakeholder)
		if len(relevant) < threshold {
			continue
		}
		out = append(out, e.Edge(relevant))
	}
	return out
}
