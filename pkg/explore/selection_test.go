package explore

import (
	"testing"

	"github.com/matzehuels/stakemap/pkg/graph"
)

func TestComputeHighlightSet(t *testing.T) {
	a, b, c, d := graph.ModuleNodeID("a"), graph.ModuleNodeID("b"), graph.ModuleNodeID("c"), graph.ModuleNodeID("d")
	edges := []graph.Edge{
		{Source: a, Target: b},
		{Source: c, Target: a},
		{Source: c, Target: d},
	}

	tests := []struct {
		name     string
		edges    []graph.Edge
		selected graph.NodeID
		wantAll  bool
		want     []graph.NodeID
	}{
		{name: "no selection", edges: edges, wantAll: true},
		{name: "no selection no edges", wantAll: true},
		{name: "undirected", edges: edges, selected: a, want: []graph.NodeID{a, b, c}},
		{name: "leaf", edges: edges, selected: d, want: []graph.NodeID{c, d}},
		{name: "isolated", edges: edges, selected: graph.ModuleNodeID("x"), want: []graph.NodeID{graph.ModuleNodeID("x")}},
		{name: "zero edges", selected: b, want: []graph.NodeID{b}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hs := ComputeHighlightSet(tt.edges, tt.selected)
			if hs.All != tt.wantAll {
				t.Fatalf("All = %v, want %v", hs.All, tt.wantAll)
			}
			if tt.wantAll {
				if !hs.Contains(graph.ModuleNodeID("anything")) || hs.Len() != -1 {
					t.Error("unrestricted set should contain everything")
				}
				return
			}
			if hs.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", hs.Len(), len(tt.want))
			}
			for _, id := range tt.want {
				if !hs.Contains(id) {
					t.Errorf("missing %s", id)
				}
			}
		})
	}
}

func TestSearchFilter(t *testing.T) {
	tests := []struct {
		query, name, code string
		active, want      bool
	}{
		{"", "Auth", "", false, true},
		{"   ", "Auth", "", false, true},
		{"auth", "Auth", "", true, true},
		{" AUTH ", "Authentication", "", true, true},
		{"ath", "Auth", "", true, false},
		{"px", "Payments", "PX-1", true, true},
		{"px", "Payments", "", true, false},
	}
	for _, tt := range tests {
		f := NewSearchFilter(tt.query)
		if f.Active != tt.active {
			t.Errorf("NewSearchFilter(%q).Active = %v", tt.query, f.Active)
		}
		if got := f.Matches(tt.name, tt.code); got != tt.want {
			t.Errorf("%q matches (%q, %q) = %v, want %v", tt.query, tt.name, tt.code, got, tt.want)
		}
	}
}
