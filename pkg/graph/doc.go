// Package graph derives relationship edges between project entities.
//
// Two structurally different graphs share one set of node identifiers:
//
//   - The overlap graph: an undirected edge between two modules for every
//     pair that shares at least one stakeholder. Edges are derived, never
//     stored, and rebuilt from scratch on every call.
//   - The explicit graph: user-declared connections between modules and
//     features, adapted from stored records. Connections pointing at deleted
//     entities are dropped silently.
//
// # Node Identifiers
//
// Module and feature IDs come from different tables and may collide, so
// nodes are addressed by a [NodeID] that carries the kind:
//
//	graph.ModuleNodeID("42")   // "module:42"
//	graph.FeatureNodeID("42")  // "function:42"
//
// # Edge Kinds
//
// [Edge] is a tagged variant: [EdgeOverlap] edges carry the shared
// stakeholder names and their discovery index, [EdgeExplicit] edges carry the
// connection ID and a [Category]. Code that styles or counts edges switches on
// [Edge.Kind].
//
// # Determinism
//
// Every function here is pure. Output order follows input order, never map
// iteration order, so repeated calls produce identical slices.
package graph
