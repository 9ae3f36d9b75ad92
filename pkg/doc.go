// Package pkg holds the stakemap libraries: a graph engine for project
// modules, the features they own and the links between them.
//
// # Overview
//
// stakemap answers one question about a portfolio of projects: which modules
// touch which. It draws two kinds of graph over the same entities:
//
//   - the overlap graph, where two modules are linked when they share a
//     stakeholder
//   - the explicit graph, where modules and features are linked by
//     connections users declared by hand
//
// # Architecture
//
// Data flows one way, from a store to a picture:
//
//	[source] (JSON/TOML file or MongoDB)
//	         ↓
//	    [project] records, normalized and validated
//	         ↓
//	    [graph] overlap edges and adapted connections
//	         ↓
//	    [layout] deterministic positions
//	         ↓
//	    [explore] Rebuild(dataset, state) → View
//	         ↓
//	    [render] PNG, SVG or DOT snapshot
//
// [pipeline] runs those steps with caching ([cache]) and event hooks
// ([observability]). The CLI, TUI and HTTP server under internal/ are thin
// hosts around a pipeline Runner.
//
// # Quick Start
//
//	src, _ := source.NewFileSource("projects.toml")
//	ds, _ := src.Load(ctx)
//
//	st := explore.DefaultState().Select(graph.ModuleNodeID("auth"))
//	v := explore.Rebuild(ds, st)
//
//	png, _ := render.PNG(render.NewSurface(v, "Auth neighborhood"))
//
// # Packages
//
// The engine packages (graph, layout, explore) are pure: no I/O, no logging,
// no shared state. Everything with side effects lives in source, cache,
// render's Exporter and pipeline.
//
//   - [project]: Module, Feature, Connection and Dataset records
//   - [graph]: NodeID, Edge, BuildOverlapEdges, AdaptConnections
//   - [layout]: circular, status, priority and satellite placement
//   - [explore]: ViewState transitions, highlight sets, filters, Rebuild
//   - [render]: Surface, PNG and SVG encoders, Exporter
//   - [source]: dataset loaders
//   - [config]: TOML settings
//   - [pipeline]: Runner tying it together
//   - [cache]: file, Redis and null caches
//   - [errors]: coded errors shared by every layer
//   - [observability]: pipeline, cache and server hooks
//   - [buildinfo]: version metadata
//
// [source]: github.com/matzehuels/stakemap/pkg/source
// [project]: github.com/matzehuels/stakemap/pkg/project
// [graph]: github.com/matzehuels/stakemap/pkg/graph
// [layout]: github.com/matzehuels/stakemap/pkg/layout
// [explore]: github.com/matzehuels/stakemap/pkg/explore
// [render]: github.com/matzehuels/stakemap/pkg/render
// [pipeline]: github.com/matzehuels/stakemap/pkg/pipeline
// [cache]: github.com/matzehuels/stakemap/pkg/cache
// [observability]: github.com/matzehuels/stakemap/pkg/observability
// [config]: github.com/matzehuels/stakemap/pkg/config
// [errors]: github.com/matzehuels/stakemap/pkg/errors
// [buildinfo]: github.com/matzehuels/stakemap/pkg/buildinfo
package pkg
