package graph

import (
	"strconv"

	"github.com/matzehuels/stakemap/pkg/project"
)

// AdaptConnections normalizes stored connection records into explicit edges.
//
// A connection is dropped, without error, when:
//   - either endpoint type is not "module" or "function"
//   - either endpoint ID is missing from the known set for its type
//   - it connects a node to itself
//   - its ID repeats an earlier connection
//
// Dangling references are routine: modules and features are deleted
// elsewhere while connections pointing at them still exist.
//
// Edge IDs are "conn-<connection id>". A connection without an ID gets
// "conn#<input position>", which cannot collide with a stored ID.
func AdaptConnections(conns []project.Connection, knownModules, knownFeatures map[string]bool) []Edge {
	var out []Edge
	seen := make(map[string]bool, len(conns))
	for i, c := range conns {
		src, ok := resolveEndpoint(c.SourceType, c.SourceID, knownModules, knownFeatures)
		if !ok {
			continue
		}
		dst, ok := resolveEndpoint(c.TargetType, c.TargetID, knownModules, knownFeatures)
		if !ok || src == dst {
			continue
		}
		if c.ID != "" {
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
		}

		srcKind, _, _ := src.Parse()
		dstKind, _, _ := dst.Parse()
		id := "conn-" + c.ID
		if c.ID == "" {
			id = "conn#" + strconv.Itoa(i)
		}
		out = append(out, Edge{
			ID:           id,
			Source:       src,
			Target:       dst,
			Kind:         EdgeExplicit,
			ConnectionID: c.ID,
			Category:     CategoryOf(srcKind, dstKind),
			Index:        len(out),
		})
	}
	return out
}

func resolveEndpoint(t project.EntityType, id string, modules, features map[string]bool) (NodeID, bool) {
	switch t {
	case project.EntityModule:
		if modules[id] {
			return ModuleNodeID(id), true
		}
	case project.EntityFunction:
		if features[id] {
			return FeatureNodeID(id), true
		}
	}
	return "", false
}
