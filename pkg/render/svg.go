package render

import (
	"bytes"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/stakemap/pkg/errors"
)

const svgFont = "font-family:system-ui,sans-serif"

// SVG writes the surface as a standalone SVG document with the same geometry
// as [PNG].
func SVG(s *Surface) ([]byte, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeSurfaceDetached, "nothing to export: no rendered view is attached")
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(s.Width, s.Height)
	canvas.Rect(0, 0, s.Width, s.Height, "fill:"+s.Background)

	for _, l := range s.Lines {
		style := fmt.Sprintf("stroke:%s;stroke-width:%.1f;stroke-opacity:%.2f", l.Color, l.Width, l.Opacity)
		if l.Dashed {
			style += fmt.Sprintf(";stroke-dasharray:%.0f %.0f", dashOn, dashOff)
		}
		canvas.Line(px(l.From.X), px(l.From.Y), px(l.To.X), px(l.To.Y), style)
		if l.Label != "" {
			canvas.Text(px((l.From.X+l.To.X)/2), px((l.From.Y+l.To.Y)/2-6), l.Label,
				fmt.Sprintf("fill:%s;fill-opacity:%.2f;font-size:11px;%s;text-anchor:middle", textSecondary, l.Opacity, svgFont))
		}
	}

	for _, c := range s.Circles {
		canvas.Circle(px(c.Center.X), px(c.Center.Y), px(c.Radius),
			fmt.Sprintf("fill:%s;fill-opacity:%.2f", c.Fill, c.Opacity))
		if c.Selected {
			canvas.Circle(px(c.Center.X), px(c.Center.Y), px(c.Radius+4),
				fmt.Sprintf("fill:none;stroke:%s;stroke-width:3", selectedRing))
		}
		canvas.Text(px(c.Center.X), px(c.Center.Y+c.Radius+16), c.Label,
			fmt.Sprintf("fill:%s;fill-opacity:%.2f;font-size:12px;%s;text-anchor:middle", textPrimary, c.Opacity, svgFont))
	}

	if s.Title != "" {
		canvas.Text(int(Margin), int(Margin/2), s.Title,
			fmt.Sprintf("fill:%s;font-size:18px;%s;font-weight:600", textPrimary, svgFont))
	}
	canvas.Text(int(Margin), int(Margin/2+20), s.Subtitle,
		fmt.Sprintf("fill:%s;font-size:13px;%s", textSecondary, svgFont))

	canvas.End()
	return buf.Bytes(), nil
}

func px(f float64) int { return int(math.Round(f)) }
