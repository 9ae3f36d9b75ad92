// Package pipeline runs the load → rebuild → render → export sequence shared
// by the CLI, the TUI and the HTTP server.
//
// # Stages
//
//  1. Load: fetch a dataset from a [source.Source], optionally cached
//  2. Rebuild: derive the [explore.View] for a [explore.ViewState]
//  3. Render: encode the view as PNG, SVG or DOT, cached by view hash
//  4. Export: write the encoded bytes to a uniquely named file
//
// Rebuild is pure and always runs; the other stages do I/O and accept a
// context.
//
// # Usage
//
//	runner := pipeline.NewRunner(src, cache, nil, logger)
//	defer runner.Close()
//
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    State:  explore.DefaultState(),
//	    Format: render.FormatPNG,
//	    Export: true,
//	})
//	fmt.Println(result.Export.Path)
package pipeline

import (
	"time"

	"github.com/matzehuels/stakemap/pkg/errors"
	"github.com/matzehuels/stakemap/pkg/explore"
	"github.com/matzehuels/stakemap/pkg/render"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultTitle heads every snapshot unless overridden.
	DefaultTitle = "Project graph"

	// DefaultHint names exported files.
	DefaultHint = "graph"

	// TTLSnapshot is how long encoded snapshots stay cached. Snapshot keys
	// hash the full view, so stale hits are impossible; the TTL only bounds
	// cache size.
	TTLSnapshot = 7 * 24 * time.Hour

	// TTLDataset is the default lifetime of cached datasets.
	TTLDataset = 5 * time.Minute
)

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	// State is the view to rebuild. It is normalized before use.
	State explore.ViewState `json:"state"`

	// Format selects the snapshot encoding. Empty means PNG.
	Format render.Format `json:"format,omitempty"`
	// Graphviz draws SVG through Graphviz (neato, pinned positions) instead
	// of the built-in vector renderer.
	Graphviz bool `json:"graphviz,omitempty"`
	// Title heads the snapshot.
	Title string `json:"title,omitempty"`

	// Export writes the snapshot to ExportDir. Without it Execute stops
	// after rendering.
	Export    bool   `json:"export,omitempty"`
	ExportDir string `json:"export_dir,omitempty"`
	// Hint is the file name stem, sanitized before use.
	Hint string `json:"hint,omitempty"`

	// Refresh bypasses cached datasets and snapshots.
	Refresh bool `json:"refresh,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	View     explore.View
	Snapshot []byte
	Format   render.Format
	// Export is set when Options.Export was requested.
	Export *render.Result

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains timing information.
type Stats struct {
	LoadTime    time.Duration
	RebuildTime time.Duration
	RenderTime  time.Duration
	ExportTime  time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	LoadHit   bool
	RenderHit bool
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	st, err := o.State.Normalize()
	if err != nil {
		return err
	}
	o.State = st
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.SetExportDefaults()
	o.validated = true
	return nil
}

// SetRenderDefaults fills the format and title.
func (o *Options) SetRenderDefaults() {
	if o.Format == "" {
		o.Format = render.FormatPNG
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
}

// ValidateForRender applies render defaults and checks the format.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	f, err := render.ParseFormat(string(o.Format))
	if err != nil {
		return err
	}
	o.Format = f
	if o.Graphviz && f != render.FormatSVG {
		return errors.New(errors.ErrCodeInvalidInput, "graphviz rendering only produces svg, not %s", f)
	}
	return nil
}

// SetExportDefaults fills the file name hint.
func (o *Options) SetExportDefaults() {
	if o.Hint == "" {
		o.Hint = DefaultHint
	}
}

// encoding names the renderer variant for cache keys.
func (o *Options) encoding() string {
	if o.Graphviz {
		return string(o.Format) + "+graphviz"
	}
	return string(o.Format)
}
