package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/stakemap/pkg/errors"
)

// Format is an export file format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	// FormatDOT is Graphviz source, produced by the nodelink subpackage.
	FormatDOT Format = "dot"
)

// Formats lists every supported export format.
var Formats = []Format{FormatPNG, FormatSVG, FormatDOT}

// ParseFormat validates a format name. The empty string means PNG.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatPNG, nil
	case FormatPNG, FormatSVG, FormatDOT:
		return f, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want png, svg or dot)", s)
	}
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatSVG:
		return "image/svg+xml"
	default:
		return "text/vnd.graphviz; charset=utf-8"
	}
}

// Encode draws a surface in a raster or vector format. DOT is not drawn from
// a surface and returns an UNSUPPORTED error.
func Encode(s *Surface, f Format) ([]byte, error) {
	switch f {
	case FormatPNG:
		return PNG(s)
	case FormatSVG:
		return SVG(s)
	case FormatDOT:
		return nil, errors.New(errors.ErrCodeUnsupported, "dot output is generated from the view, not a surface")
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
	}
}

// Result describes a written export file.
type Result struct {
	ID     string `json:"id"`
	Path   string `json:"path"`
	Format Format `json:"format"`
	Size   int    `json:"size"`
}

// Exporter writes snapshots to a directory.
type Exporter struct {
	// Dir is created on first write. Empty means the working directory.
	Dir string
	// Format defaults to PNG.
	Format Format
	// NewID returns a unique file suffix. Defaults to a random UUID.
	NewID func() string
}

// Export encodes s and writes it as <hint>-<id>.<ext>. Every successful call
// creates a new file.
func (e Exporter) Export(ctx context.Context, s *Surface, hint string) (Result, error) {
	if s == nil {
		return Result{}, errors.New(errors.ErrCodeSurfaceDetached, "nothing to export: no rendered view is attached")
	}
	f := e.Format
	if f == "" {
		f = FormatPNG
	}
	data, err := Encode(s, f)
	if err != nil {
		return Result{}, err
	}
	return e.Write(ctx, data, f, hint)
}

// Write stores already encoded bytes under a fresh file name.
func (e Exporter) Write(ctx context.Context, data []byte, f Format, hint string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeExportFailed, err, "export cancelled")
	}

	id := e.newID()
	name := fmt.Sprintf("%s-%s.%s", errors.SanitizeFileNameHint(hint), shortID(id), f)
	path := filepath.Join(e.Dir, name)

	if e.Dir != "" {
		if err := os.MkdirAll(e.Dir, 0o755); err != nil {
			return Result{}, errors.Wrap(errors.ErrCodeExportFailed, err, "create export dir %s", e.Dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeExportFailed, err, "write %s", path)
	}
	return Result{ID: id, Path: path, Format: f, Size: len(data)}, nil
}

func (e Exporter) newID() string {
	if e.NewID != nil {
		return e.NewID()
	}
	return uuid.NewString()
}

func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
