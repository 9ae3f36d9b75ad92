package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// Counters tallies events from every category. The zero value is ready to
// [Register]; all methods are safe for concurrent use.
type Counters struct {
	loads, loadErrors   atomic.Int64
	rebuilds            atomic.Int64
	exports, exportErrs atomic.Int64
	hits, misses        atomic.Int64
	requests, failures  atomic.Int64
}

// CounterSnapshot is a point-in-time copy of [Counters].
type CounterSnapshot struct {
	Loads        int64 `json:"loads"`
	LoadErrors   int64 `json:"load_errors"`
	Rebuilds     int64 `json:"rebuilds"`
	Exports      int64 `json:"exports"`
	ExportErrors int64 `json:"export_errors"`
	CacheHits    int64 `json:"cache_hits"`
	CacheMisses  int64 `json:"cache_misses"`
	Requests     int64 `json:"requests"`
	ServerErrors int64 `json:"server_errors"`
}

// Snapshot reads all counters.
func (c *Counters) Snapshot() CounterSnapshot {
	return CounterSnapshot{
		Loads:        c.loads.Load(),
		LoadErrors:   c.loadErrors.Load(),
		Rebuilds:     c.rebuilds.Load(),
		Exports:      c.exports.Load(),
		ExportErrors: c.exportErrs.Load(),
		CacheHits:    c.hits.Load(),
		CacheMisses:  c.misses.Load(),
		Requests:     c.requests.Load(),
		ServerErrors: c.failures.Load(),
	}
}

func (c *Counters) OnLoadStart(context.Context, string) {}

func (c *Counters) OnLoadComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	c.loads.Add(1)
	if err != nil {
		c.loadErrors.Add(1)
	}
}

func (c *Counters) OnRebuild(context.Context, string, int, int, time.Duration) { c.rebuilds.Add(1) }

func (c *Counters) OnExportStart(context.Context, string) {}

func (c *Counters) OnExportComplete(_ context.Context, _, _ string, _ int, _ time.Duration, err error) {
	c.exports.Add(1)
	if err != nil {
		c.exportErrs.Add(1)
	}
}

func (c *Counters) OnCacheHit(context.Context, string)      { c.hits.Add(1) }
func (c *Counters) OnCacheMiss(context.Context, string)     { c.misses.Add(1) }
func (c *Counters) OnCacheSet(context.Context, string, int) {}

// OnRequest counts requests; 5xx responses also count as server errors.
func (c *Counters) OnRequest(_ context.Context, _, _, _ string, status int, _ time.Duration) {
	c.requests.Add(1)
	if status >= 500 {
		c.failures.Add(1)
	}
}

var (
	_ PipelineHooks = (*Counters)(nil)
	_ CacheHooks    = (*Counters)(nil)
	_ ServerHooks   = (*Counters)(nil)
)
