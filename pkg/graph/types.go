package graph

import (
	"fmt"
	"strings"

	"github.com/matzehuels/stakemap/pkg/project"
)

// =============================================================================
// Node Identity
// =============================================================================

// NodeKind distinguishes module nodes from feature nodes.
type NodeKind int

const (
	// KindModule is a top-level module node.
	KindModule NodeKind = iota
	// KindFeature is a feature node, always drawn as a satellite of its module.
	KindFeature
)

// String returns the wire name of the kind ("module" or "function").
func (k NodeKind) String() string {
	switch k {
	case KindModule:
		return string(project.EntityModule)
	case KindFeature:
		return string(project.EntityFunction)
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// MarshalText encodes the kind by its wire name.
func (k NodeKind) MarshalText() ([]byte, error) {
	switch k {
	case KindModule, KindFeature:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("unknown node kind %d", int(k))
	}
}

// UnmarshalText decodes a wire name.
func (k *NodeKind) UnmarshalText(b []byte) error {
	switch project.EntityType(b) {
	case project.EntityModule:
		*k = KindModule
	case project.EntityFunction:
		*k = KindFeature
	default:
		return fmt.Errorf("unknown node kind %q", b)
	}
	return nil
}

// NodeID addresses a node across both graph semantics.
type NodeID string

const idSep = ":"

// ModuleNodeID returns the node ID of a module.
func ModuleNodeID(id string) NodeID { return NodeID(string(project.EntityModule) + idSep + id) }

// FeatureNodeID returns the node ID of a feature.
func FeatureNodeID(id string) NodeID { return NodeID(string(project.EntityFunction) + idSep + id) }

// EntityNodeID maps a connection endpoint to a node ID.
// Returns false for unknown entity types.
func EntityNodeID(t project.EntityType, id string) (NodeID, bool) {
	switch t {
	case project.EntityModule:
		return ModuleNodeID(id), true
	case project.EntityFunction:
		return FeatureNodeID(id), true
	default:
		return "", false
	}
}

// Parse splits a node ID into its kind and entity ID.
func (id NodeID) Parse() (NodeKind, string, bool) {
	prefix, rest, ok := strings.Cut(string(id), idSep)
	if !ok || rest == "" {
		return 0, "", false
	}
	var k NodeKind
	if err := k.UnmarshalText([]byte(prefix)); err != nil {
		return 0, "", false
	}
	return k, rest, true
}

// IsZero reports whether the ID is empty (no selection).
func (id NodeID) IsZero() bool { return id == "" }

// =============================================================================
// Edges
// =============================================================================

// EdgeKind tags the variant stored in an Edge.
type EdgeKind int

const (
	// EdgeOverlap is derived from shared stakeholders between two modules.
	EdgeOverlap EdgeKind = iota
	// EdgeExplicit is a user-declared connection.
	EdgeExplicit
)

// String returns "overlap" or "explicit".
func (k EdgeKind) String() string {
	switch k {
	case EdgeOverlap:
		return "overlap"
	case EdgeExplicit:
		return "explicit"
	default:
		return fmt.Sprintf("EdgeKind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name.
func (k EdgeKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes an edge kind name.
func (k *EdgeKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "overlap":
		*k = EdgeOverlap
	case "explicit":
		*k = EdgeExplicit
	default:
		return fmt.Errorf("unknown edge kind %q", b)
	}
	return nil
}

// Category is the style class of an explicit connection, chosen by the kinds
// of its endpoints.
type Category int

const (
	CategoryModules   Category = iota // module ↔ module
	CategoryFunctions                 // function ↔ function
	CategoryMixed                     // module ↔ function
)

// String returns the category name used in stats and JSON.
func (c Category) String() string {
	switch c {
	case CategoryModules:
		return "module-module"
	case CategoryFunctions:
		return "function-function"
	case CategoryMixed:
		return "mixed"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText decodes a category name.
func (c *Category) UnmarshalText(b []byte) error {
	for _, x := range []Category{CategoryModules, CategoryFunctions, CategoryMixed} {
		if x.String() == string(b) {
			*c = x
			return nil
		}
	}
	return fmt.Errorf("unknown edge category %q", b)
}

// CategoryOf classifies a connection by the kinds of its endpoints.
func CategoryOf(a, b NodeKind) Category {
	switch {
	case a == KindModule && b == KindModule:
		return CategoryModules
	case a == KindFeature && b == KindFeature:
		return CategoryFunctions
	default:
		return CategoryMixed
	}
}

// Edge is a structural edge of the active graph. Highlighting treats every
// edge as undirected; Source/Target keep the stored direction for explicit
// connections and input order for overlap edges.
type Edge struct {
	ID     string   `json:"id"`
	Source NodeID   `json:"source"`
	Target NodeID   `json:"target"`
	Kind   EdgeKind `json:"kind"`

	// Overlap variant.
	Shared []string `json:"shared,omitempty"`
	Index  int      `json:"index"`

	// Explicit variant.
	ConnectionID string   `json:"connection_id,omitempty"`
	Category     Category `json:"category"`
}

// Touches reports whether id is one of the edge's endpoints.
func (e Edge) Touches(id NodeID) bool {
	return e.Source == id || e.Target == id
}

// Other returns the endpoint opposite id. The second result is false when id
// is not an endpoint.
func (e Edge) Other(id NodeID) (NodeID, bool) {
	switch id {
	case e.Source:
		return e.Target, true
	case e.Target:
		return e.Source, true
	default:
		return "", false
	}
}

// Adjacency indexes edges by endpoint for neighbor lookups.
type Adjacency map[NodeID][]NodeID

// NewAdjacency builds an undirected adjacency index in edge order.
func NewAdjacency(edges []Edge) Adjacency {
	adj := make(Adjacency)
	for _, e := range edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
		adj[e.Target] = append(adj[e.Target], e.Source)
	}
	return adj
}
