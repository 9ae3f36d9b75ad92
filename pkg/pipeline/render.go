package pipeline

import (
	"context"

	"github.com/matzehuels/stakemap/pkg/errors"
	"github.com/matzehuels/stakemap/pkg/explore"
	"github.com/matzehuels/stakemap/pkg/render"
	"github.com/matzehuels/stakemap/pkg/render/nodelink"
)

// Render encodes a view without caching. PNG and SVG are drawn from a
// [render.Surface]; DOT and Graphviz SVG go through the nodelink renderer.
func Render(ctx context.Context, v explore.View, opts Options) ([]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	switch {
	case opts.Format == render.FormatDOT:
		return []byte(nodelink.ToDOT(v, nodelink.Options{Detailed: true})), nil
	case opts.Graphviz:
		svg, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(v, nodelink.Options{Detailed: true}))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "render graphviz svg")
		}
		return svg, nil
	default:
		return render.Encode(render.NewSurface(v, opts.Title), opts.Format)
	}
}
