// Package explore turns a project dataset and a view state into a renderable
// view: positioned nodes, styled edges and summary stats.
//
// # Functional Core
//
// Every input that affects the picture lives in [ViewState]: view mode,
// layout, selection, search text, threshold, stakeholder filter and the
// direct-only toggle. [Rebuild] is a pure function of (dataset, state); hosts
// hold the state, apply transitions ([ViewState.Select],
// [ViewState.ClearSelection], [ViewState.SwitchView]) and call Rebuild after
// every change. There is no incremental update path.
//
// # Views
//
// The overlap view shows modules only, linked by shared stakeholders. The
// explicit view shows modules and their features, linked by stored
// connections, with features ringed around their owner.
//
// # Highlighting
//
// With no selection every node is highlighted. With a selection, only the
// selected node and its direct neighbors in the active graph are. Search
// narrows that further: a node is highlighted only if it is in the
// highlight set and matches the search. Dimmed elements stay in the view at
// reduced opacity unless DirectOnly is set, in which case they are hidden.
package explore
