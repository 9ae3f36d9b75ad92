package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stakemap/pkg/cache"
	"github.com/matzehuels/stakemap/pkg/errors"
	"github.com/matzehuels/stakemap/pkg/explore"
	"github.com/matzehuels/stakemap/pkg/observability"
	"github.com/matzehuels/stakemap/pkg/project"
	"github.com/matzehuels/stakemap/pkg/render"
	"github.com/matzehuels/stakemap/pkg/source"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no per-run state, so several goroutines may share one
// with different options.
type Runner struct {
	Source source.Source
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// DatasetTTL enables dataset caching when positive. File sources leave
	// it at zero so edits show up immediately.
	DatasetTTL time.Duration
}

// NewRunner creates a runner. A nil cache disables caching; a nil keyer
// means the default keyer.
func NewRunner(src source.Source, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Source: src,
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs every stage for opts.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result := &Result{Format: opts.Format}

	loadStart := time.Now()
	ds, hit, err := r.LoadWithCacheInfo(ctx, opts.Refresh)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.CacheInfo.LoadHit = hit

	rebuildStart := time.Now()
	result.View = r.Rebuild(ctx, ds, opts.State)
	result.Stats.RebuildTime = time.Since(rebuildStart)

	r.Logger.Info("rebuilt view",
		"mode", result.View.State.Mode,
		"nodes", result.View.Stats.TotalNodes,
		"edges", result.View.Stats.TotalEdges,
		"duration", result.Stats.RebuildTime)
	if result.View.SelectionDropped != "" {
		r.Logger.Warn("selected node not in view", "id", result.View.SelectionDropped)
	}

	renderStart := time.Now()
	data, hit, err := r.RenderWithCacheInfo(ctx, result.View, opts)
	if err != nil {
		return nil, err
	}
	result.Snapshot = data
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	if !opts.Export {
		return result, nil
	}
	exportStart := time.Now()
	res, err := r.Export(ctx, data, opts)
	if err != nil {
		return result, err
	}
	result.Export = &res
	result.Stats.ExportTime = time.Since(exportStart)
	return result, nil
}

// LoadWithCacheInfo fetches the dataset and reports whether it came from
// the cache.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, refresh bool) (project.Dataset, bool, error) {
	if r.Source == nil {
		return project.Dataset{}, false, errors.New(errors.ErrCodeSourceUnavailable, "no dataset source configured")
	}
	desc := r.Source.Describe()
	key := r.Keyer.DatasetKey(desc)
	useCache := r.DatasetTTL > 0

	if useCache && !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var ds project.Dataset
			if err := json.Unmarshal(data, &ds); err == nil {
				observability.Cache().OnCacheHit(ctx, key)
				return ds, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, key)
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, desc)
	start := time.Now()
	ds, err := r.Source.Load(ctx)
	hooks.OnLoadComplete(ctx, desc, len(ds.Modules), time.Since(start), err)
	if err != nil {
		return project.Dataset{}, false, err
	}

	if bad := project.MalformedConnections(ds.Connections); len(bad) > 0 {
		r.Logger.Warn("ignoring malformed connections", "source", desc, "count", len(bad), "first", bad[0])
	}
	r.Logger.Debug("loaded dataset",
		"source", desc,
		"modules", len(ds.Modules),
		"functions", len(ds.Features),
		"connections", len(ds.Connections))

	if useCache {
		if data, err := json.Marshal(ds); err == nil {
			if err := r.Cache.Set(ctx, key, data, r.DatasetTTL); err != nil {
				r.Logger.Warn("cache dataset", "error", err)
			} else {
				observability.Cache().OnCacheSet(ctx, key, len(data))
			}
		}
	}
	return ds, false, nil
}

// Load is LoadWithCacheInfo without the hit flag.
func (r *Runner) Load(ctx context.Context, refresh bool) (project.Dataset, error) {
	ds, _, err := r.LoadWithCacheInfo(ctx, refresh)
	return ds, err
}

// Rebuild derives the view and reports it to the pipeline hooks.
func (r *Runner) Rebuild(ctx context.Context, ds project.Dataset, st explore.ViewState) explore.View {
	start := time.Now()
	v := explore.Rebuild(ds, st)
	observability.Pipeline().OnRebuild(ctx, string(v.State.Mode), v.Stats.TotalNodes, v.Stats.TotalEdges, time.Since(start))
	return v
}

// RenderWithCacheInfo encodes v in opts.Format. Snapshots are cached under a
// hash of the view JSON plus title, so any visible change yields a new key.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, v explore.View, opts Options) ([]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	viewData, err := explore.MarshalView(v)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize view for cache key")
	}
	key := r.Keyer.SnapshotKey(cache.HashParts(string(viewData), opts.Title), opts.encoding())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, key)
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, key)
	}

	data, err := Render(ctx, v, opts)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, TTLSnapshot); err != nil {
		r.Logger.Warn("cache snapshot", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, key, len(data))
	}
	return data, false, nil
}

// Export writes encoded snapshot bytes to opts.ExportDir.
func (r *Runner) Export(ctx context.Context, data []byte, opts Options) (render.Result, error) {
	opts.SetRenderDefaults()
	opts.SetExportDefaults()

	hooks := observability.Pipeline()
	hooks.OnExportStart(ctx, string(opts.Format))
	start := time.Now()

	exp := render.Exporter{Dir: opts.ExportDir, Format: opts.Format}
	res, err := exp.Write(ctx, data, opts.Format, opts.Hint)
	hooks.OnExportComplete(ctx, string(opts.Format), res.Path, res.Size, time.Since(start), err)
	if err != nil {
		return render.Result{}, err
	}
	r.Logger.Info("exported snapshot", "path", res.Path, "bytes", res.Size)
	return res, nil
}

// Close releases the source and the cache.
func (r *Runner) Close() error {
	var first error
	if r.Source != nil {
		first = r.Source.Close()
	}
	if r.Cache != nil {
		if err := r.Cache.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
