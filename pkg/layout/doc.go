// Package layout computes deterministic node positions for the project graph.
//
// # Modes
//
// Module nodes are placed by one of three modes:
//
//   - [Circular]: modules on a circle around [Center], in input order,
//     starting at the top (-90°) and proceeding clockwise in screen space.
//   - [ByStatus]: columns of three per status group
//     (planned, in_progress, completed, on_hold).
//   - [ByPriority]: columns of three per priority group
//     (critical, high, medium, low).
//
// Features are never laid out on their own: [Satellites] rings them around
// their owning module's position.
//
// # Determinism
//
// Identical inputs yield bit-identical coordinates. No function here iterates
// a map to decide ordering or uses randomness, so a rebuild never moves a
// node unless its inputs changed. Positions are not persisted; hosts
// recompute them on every rebuild.
package layout
