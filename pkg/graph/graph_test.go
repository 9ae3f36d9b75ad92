package graph

import (
	"encoding/json"
	"fmt"
	"slices"
	"testing"

	"github.com/matzehuels/stakemap/pkg/project"
)

func mod(id string, stakeholders ...string) project.Module {
	return project.Module{ID: id, Name: id, Priority: project.PriorityMedium, Status: project.StatusPlanned, Stakeholders: stakeholders}
}

func TestBuildOverlapEdges(t *testing.T) {
	tests := []struct {
		name    string
		modules []project.Module
		want    []OverlapEdge
	}{
		{
			name: "Empty",
			want: nil,
		},
		{
			name:    "Single",
			modules: []project.Module{mod("a", "P")},
			want:    nil,
		},
		{
			name:    "EndToEnd",
			modules: []project.Module{mod("A", "P", "Q"), mod("B", "Q", "R"), mod("C", "S")},
			want:    []OverlapEdge{{A: "A", B: "B", Shared: []string{"Q"}, Index: 0}},
		},
		{
			name:    "SharedFollowsFirstModuleOrder",
			modules: []project.Module{mod("a", "Y", "X", "Z"), mod("b", "X", "Y")},
			want:    []OverlapEdge{{A: "a", B: "b", Shared: []string{"Y", "X"}, Index: 0}},
		},
		{
			name:    "DiscoveryOrder",
			modules: []project.Module{mod("a", "P"), mod("b", "Q"), mod("c", "P", "Q")},
			want: []OverlapEdge{
				{A: "a", B: "c", Shared: []string{"P"}, Index: 0},
				{A: "b", B: "c", Shared: []string{"Q"}, Index: 1},
			},
		},
		{
			name:    "DuplicateModuleRecord",
			modules: []project.Module{mod("a", "P"), mod("b", "P"), mod("a", "P")},
			want:    []OverlapEdge{{A: "a", B: "b", Shared: []string{"P"}, Index: 0}},
		},
		{
			name:    "EmptyNamesIgnored",
			modules: []project.Module{mod("a", ""), mod("b", "")},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildOverlapEdges(tt.modules)
			if len(got) != len(tt.want) {
				t.Fatalf("edges = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				g, w := got[i], tt.want[i]
				if g.A != w.A || g.B != w.B || g.Index != w.Index || !slices.Equal(g.Shared, w.Shared) {
					t.Errorf("edge[%d] = %+v, want %+v", i, g, w)
				}
			}
		})
	}
}

// Every emitted edge is non-empty, not a self pair, and unique per unordered pair.
func TestBuildOverlapEdgesInvariants(t *testing.T) {
	names := []string{"P", "Q", "R", "S", "T"}
	var modules []project.Module
	for i := 0; i < 24; i++ {
		var s []string
		for j, n := range names {
			if (i>>j)&1 == 1 {
				s = append(s, n)
			}
		}
		modules = append(modules, mod(fmt.Sprintf("m%d", i%20), s...))
	}

	edges := BuildOverlapEdges(modules)
	seen := make(map[[2]string]bool)
	for _, e := range edges {
		if len(e.Shared) == 0 {
			t.Errorf("edge %s-%s has no shared stakeholders", e.A, e.B)
		}
		if e.A == e.B {
			t.Errorf("self edge on %s", e.A)
		}
		k := pairKey(e.A, e.B)
		if seen[k] {
			t.Errorf("duplicate pair %v", k)
		}
		seen[k] = true
	}
	for i, e := range edges {
		if e.Index != i {
			t.Errorf("edge %d has index %d", i, e.Index)
		}
	}
}

func TestStakeholderInThreeModules(t *testing.T) {
	modules := []project.Module{mod("A", "X"), mod("B", "X", "Y"), mod("C", "X"), mod("D", "Y")}

	var pairs [][2]string
	for _, e := range BuildOverlapEdges(modules) {
		if slices.Contains(e.Shared, "X") {
			pairs = append(pairs, [2]string{e.A, e.B})
		}
	}
	want := [][2]string{{"A", "B"}, {"A", "C"}, {"B", "C"}}
	if !slices.Equal(pairs, want) {
		t.Errorf("pairs listing X = %v, want %v", pairs, want)
	}
}

func TestFilterOverlap(t *testing.T) {
	edges := BuildOverlapEdges([]project.Module{mod("a", "X", "Y"), mod("b", "X", "Y"), mod("c", "Y")})

	tests := []struct {
		name        string
		stakeholder string
		threshold   int
		want        []string
	}{
		{"threshold 2 keeps XY pair", "", 2, []string{"overlap-0"}},
		{"threshold 3 drops everything", "", 3, nil},
		{"threshold 0 acts as 1", "", 0, []string{"overlap-0", "overlap-1", "overlap-2"}},
		{"stakeholder X", "X", 1, []string{"overlap-0"}},
		{"stakeholder X threshold 2", "X", 2, nil},
		{"unknown stakeholder", "Z", 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []string
			for _, e := range FilterOverlap(edges, tt.stakeholder, tt.threshold) {
				ids = append(ids, e.ID)
			}
			if !slices.Equal(ids, tt.want) {
				t.Errorf("ids = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestFilterOverlapRelevantLabel(t *testing.T) {
	edges := BuildOverlapEdges([]project.Module{mod("a", "X", "Y"), mod("b", "Y", "X")})
	got := FilterOverlap(edges, "Y", 1)
	if len(got) != 1 || !slices.Equal(got[0].Shared, []string{"Y"}) {
		t.Errorf("filtered edge = %+v, want shared [Y]", got)
	}
	if got[0].Source != ModuleNodeID("a") || got[0].Target != ModuleNodeID("b") {
		t.Errorf("endpoints = %s, %s", got[0].Source, got[0].Target)
	}
}

func TestAdaptConnections(t *testing.T) {
	modules := map[string]bool{"m1": true, "m2": true}
	features := map[string]bool{"f1": true, "f2": true}

	conn := func(id string, st project.EntityType, sid string, tt project.EntityType, tid string) project.Connection {
		return project.Connection{ID: id, SourceType: st, SourceID: sid, TargetType: tt, TargetID: tid}
	}
	M, F := project.EntityModule, project.EntityFunction

	tests := []struct {
		name  string
		conns []project.Connection
		want  []Category
	}{
		{
			name:  "one valid one dangling",
			conns: []project.Connection{conn("c1", M, "m1", M, "m2"), conn("c2", M, "m1", M, "deleted")},
			want:  []Category{CategoryModules},
		},
		{
			name:  "categories",
			conns: []project.Connection{conn("c1", M, "m1", M, "m2"), conn("c2", F, "f1", F, "f2"), conn("c3", F, "f1", M, "m2")},
			want:  []Category{CategoryModules, CategoryFunctions, CategoryMixed},
		},
		{
			name:  "type mismatch is dangling",
			conns: []project.Connection{conn("c1", M, "f1", M, "m1")},
			want:  nil,
		},
		{
			name:  "unknown type",
			conns: []project.Connection{conn("c1", "feature", "f1", M, "m1")},
			want:  nil,
		},
		{
			name:  "self loop",
			conns: []project.Connection{conn("c1", M, "m1", M, "m1")},
			want:  nil,
		},
		{
			name:  "duplicate id keeps first",
			conns: []project.Connection{conn("c1", M, "m1", M, "m2"), conn("c1", F, "f1", F, "f2")},
			want:  []Category{CategoryModules},
		},
		{
			name:  "empty",
			conns: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdaptConnections(tt.conns, modules, features)
			var cats []Category
			for _, e := range got {
				if e.Kind != EdgeExplicit {
					t.Errorf("edge %s kind = %v", e.ID, e.Kind)
				}
				cats = append(cats, e.Category)
			}
			if !slices.Equal(cats, tt.want) {
				t.Errorf("categories = %v, want %v", cats, tt.want)
			}
		})
	}
}

func TestAdaptConnectionsKeepsDirection(t *testing.T) {
	edges := AdaptConnections([]project.Connection{{
		ID: "c1", SourceType: project.EntityFunction, SourceID: "f1", TargetType: project.EntityModule, TargetID: "m1",
	}}, map[string]bool{"m1": true}, map[string]bool{"f1": true})

	if len(edges) != 1 {
		t.Fatalf("edges = %d, want 1", len(edges))
	}
	e := edges[0]
	if e.Source != FeatureNodeID("f1") || e.Target != ModuleNodeID("m1") {
		t.Errorf("direction = %s -> %s", e.Source, e.Target)
	}
	if e.ID != "conn-c1" || e.ConnectionID != "c1" {
		t.Errorf("ids = %q, %q", e.ID, e.ConnectionID)
	}
}

func TestEdgeIDsUnique(t *testing.T) {
	modules := []project.Module{mod("a-b", "P"), mod("c", "P"), mod("a", "P"), mod("b-c", "P")}
	overlap := FilterOverlap(BuildOverlapEdges(modules), "", 1)
	if len(overlap) != 6 {
		t.Fatalf("overlap edges = %d, want 6", len(overlap))
	}

	M := project.EntityModule
	conns := []project.Connection{
		{SourceType: M, SourceID: "a", TargetType: M, TargetID: "c"},
		{SourceType: M, SourceID: "a", TargetType: M, TargetID: "c"},
		{ID: "#1", SourceType: M, SourceID: "a", TargetType: M, TargetID: "c"},
		{ID: "1", SourceType: M, SourceID: "c", TargetType: M, TargetID: "a"},
	}
	known := map[string]bool{"a": true, "c": true}
	explicit := AdaptConnections(conns, known, nil)
	if len(explicit) != 4 {
		t.Fatalf("explicit edges = %d, want 4", len(explicit))
	}

	seen := make(map[string]bool)
	for _, e := range append(overlap, explicit...) {
		if seen[e.ID] {
			t.Errorf("edge id %q used twice", e.ID)
		}
		seen[e.ID] = true
	}
	if explicit[0].ID != "conn#0" || explicit[1].ID != "conn#1" || explicit[2].ID != "conn-#1" {
		t.Errorf("ids = %q, %q, %q", explicit[0].ID, explicit[1].ID, explicit[2].ID)
	}
}

func TestNodeIDParse(t *testing.T) {
	tests := []struct {
		id       NodeID
		wantKind NodeKind
		wantID   string
		wantOK   bool
	}{
		{ModuleNodeID("42"), KindModule, "42", true},
		{FeatureNodeID("42"), KindFeature, "42", true},
		{FeatureNodeID("a:b"), KindFeature, "a:b", true},
		{"module:", 0, "", false},
		{"feature:1", 0, "", false},
		{"42", 0, "", false},
		{"", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			k, id, ok := tt.id.Parse()
			if ok != tt.wantOK || (ok && (k != tt.wantKind || id != tt.wantID)) {
				t.Errorf("Parse() = %v, %q, %v; want %v, %q, %v", k, id, ok, tt.wantKind, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestEdgeOther(t *testing.T) {
	e := Edge{Source: "module:a", Target: "module:b"}
	if got, ok := e.Other("module:a"); !ok || got != "module:b" {
		t.Errorf("Other(a) = %q, %v", got, ok)
	}
	if got, ok := e.Other("module:b"); !ok || got != "module:a" {
		t.Errorf("Other(b) = %q, %v", got, ok)
	}
	if _, ok := e.Other("module:c"); ok {
		t.Error("Other(c) should report false")
	}
}

func TestEdgeJSON(t *testing.T) {
	e := FilterOverlap(BuildOverlapEdges([]project.Module{mod("a", "X"), mod("b", "X")}), "", 1)[0]
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["kind"] != "overlap" {
		t.Errorf("kind = %v, want overlap", got["kind"])
	}
	if got["source"] != "module:a" {
		t.Errorf("source = %v, want module:a", got["source"])
	}
}
