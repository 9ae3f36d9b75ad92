// Package observability provides hooks for metrics, tracing, and logging.
//
// Hooks let hosts instrument the pipeline without the library depending on
// a particular backend. The CLI registers logging hooks in verbose mode; a
// server deployment could register Prometheus or OpenTelemetry hooks instead.
//
// # Registry
//
// [Register] adds a value to every event category whose interface it
// implements; several values may listen to the same category and each sees
// every event in registration order. With nothing registered the accessors
// return no-op hooks. Register at startup, before the pipeline runs.
//
//	counters := &observability.Counters{}
//	observability.Register(counters)
//
// [Counters] is a ready-made listener for all categories; the HTTP server
// reports its totals on /healthz.
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnLoadStart(ctx, source)
//	// ... fetch dataset ...
//	observability.Pipeline().OnLoadComplete(ctx, source, len(ds.Modules), time.Since(start), err)
package observability

import (
	"context"
	"slices"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the load, rebuild and export stages.
type PipelineHooks interface {
	// Load events
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, modules int, duration time.Duration, err error)

	// OnRebuild records a completed view rebuild. Rebuilds cannot fail.
	OnRebuild(ctx context.Context, mode string, nodes, edges int, duration time.Duration)

	// Export events
	OnExportStart(ctx context.Context, format string)
	OnExportComplete(ctx context.Context, format, path string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, key string)
	OnCacheMiss(ctx context.Context, key string)
	OnCacheSet(ctx context.Context, key string, size int)
}

// =============================================================================
// Server Hooks
// =============================================================================

// ServerHooks receives events from the HTTP API.
type ServerHooks interface {
	// OnRequest records a served request.
	OnRequest(ctx context.Context, requestID, method, path string, status int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRebuild(context.Context, string, int, int, time.Duration)        {}
func (NoopPipelineHooks) OnExportStart(context.Context, string)                             {}
func (NoopPipelineHooks) OnExportComplete(context.Context, string, string, int, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopServerHooks is a no-op implementation of ServerHooks.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string, string, int, time.Duration) {}

// =============================================================================
// Registry
// =============================================================================

var (
	hooksMu   sync.RWMutex
	pipelines pipelineFanout
	caches    cacheFanout
	servers   serverFanout
)

// Register adds h to each category it implements: [PipelineHooks],
// [CacheHooks] or [ServerHooks]. It reports whether h matched any.
func Register(h any) bool {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	matched := false
	if p, ok := h.(PipelineHooks); ok {
		pipelines = append(slices.Clip(pipelines), p)
		matched = true
	}
	if c, ok := h.(CacheHooks); ok {
		caches = append(slices.Clip(caches), c)
		matched = true
	}
	if s, ok := h.(ServerHooks); ok {
		servers = append(slices.Clip(servers), s)
		matched = true
	}
	return matched
}

// Pipeline returns the registered pipeline listeners as one hook.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	if len(pipelines) == 0 {
		return NoopPipelineHooks{}
	}
	return pipelines
}

// Cache returns the registered cache listeners as one hook.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	if len(caches) == 0 {
		return NoopCacheHooks{}
	}
	return caches
}

// Server returns the registered server listeners as one hook.
func Server() ServerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	if len(servers) == 0 {
		return NoopServerHooks{}
	}
	return servers
}

// Reset drops every registered listener. Tests call it in cleanup.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelines, caches, servers = nil, nil, nil
}

// Registered slices are never appended to in place (see slices.Clip in
// Register), so a fanout handed out by an accessor is immutable.
type (
	pipelineFanout []PipelineHooks
	cacheFanout    []CacheHooks
	serverFanout   []ServerHooks
)

func (f pipelineFanout) OnLoadStart(ctx context.Context, source string) {
	for _, h := range f {
		h.OnLoadStart(ctx, source)
	}
}

func (f pipelineFanout) OnLoadComplete(ctx context.Context, source string, modules int, d time.Duration, err error) {
	for _, h := range f {
		h.OnLoadComplete(ctx, source, modules, d, err)
	}
}

func (f pipelineFanout) OnRebuild(ctx context.Context, mode string, nodes, edges int, d time.Duration) {
	for _, h := range f {
		h.OnRebuild(ctx, mode, nodes, edges, d)
	}
}

func (f pipelineFanout) OnExportStart(ctx context.Context, format string) {
	for _, h := range f {
		h.OnExportStart(ctx, format)
	}
}

func (f pipelineFanout) OnExportComplete(ctx context.Context, format, path string, size int, d time.Duration, err error) {
	for _, h := range f {
		h.OnExportComplete(ctx, format, path, size, d, err)
	}
}

func (f cacheFanout) OnCacheHit(ctx context.Context, key string) {
	for _, h := range f {
		h.OnCacheHit(ctx, key)
	}
}

func (f cacheFanout) OnCacheMiss(ctx context.Context, key string) {
	for _, h := range f {
		h.OnCacheMiss(ctx, key)
	}
}

func (f cacheFanout) OnCacheSet(ctx context.Context, key string, size int) {
	for _, h := range f {
		h.OnCacheSet(ctx, key, size)
	}
}

func (f serverFanout) OnRequest(ctx context.Context, requestID, method, path string, status int, d time.Duration) {
	for _, h := range f {
		h.OnRequest(ctx, requestID, method, path, status, d)
	}
}
