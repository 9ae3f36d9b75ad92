package render

import (
	"bytes"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/stakemap/pkg/errors"
)

const (
	dashOn  = 10.0
	dashOff = 6.0
)

// PNG rasterizes a surface. A nil surface returns a SURFACE_DETACHED error.
func PNG(s *Surface) ([]byte, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeSurfaceDetached, "nothing to export: no rendered view is attached")
	}

	dc := gg.NewContext(s.Width, s.Height)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(rgba(s.Background, 1))
	dc.Clear()

	for _, l := range s.Lines {
		drawLine(dc, l)
	}
	for _, c := range s.Circles {
		drawCircle(dc, c)
	}
	drawHeader(dc, s)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "encode png")
	}
	return buf.Bytes(), nil
}

func drawLine(dc *gg.Context, l Line) {
	dc.SetColor(rgba(l.Color, l.Opacity))
	dc.SetLineWidth(l.Width)
	if l.Dashed {
		dc.SetDash(dashOn, dashOff)
	} else {
		dc.SetDash()
	}
	dc.DrawLine(l.From.X, l.From.Y, l.To.X, l.To.Y)
	dc.Stroke()
	dc.SetDash()

	if l.Label == "" {
		return
	}
	mx, my := (l.From.X+l.To.X)/2, (l.From.Y+l.To.Y)/2
	dc.SetColor(rgba(textSecondary, l.Opacity))
	dc.DrawStringAnchored(l.Label, mx, my-6, 0.5, 0.5)
}

func drawCircle(dc *gg.Context, c Circle) {
	dc.SetColor(rgba(c.Fill, c.Opacity))
	dc.DrawCircle(c.Center.X, c.Center.Y, c.Radius)
	dc.Fill()

	if c.Selected {
		dc.SetColor(rgba(selectedRing, 1))
		dc.SetLineWidth(3)
		dc.DrawCircle(c.Center.X, c.Center.Y, c.Radius+4)
		dc.Stroke()
	}

	dc.SetColor(rgba(textPrimary, c.Opacity))
	dc.DrawStringAnchored(c.Label, c.Center.X, c.Center.Y+c.Radius+12, 0.5, 0.5)
}

func drawHeader(dc *gg.Context, s *Surface) {
	if s.Title != "" {
		dc.SetColor(rgba(textPrimary, 1))
		dc.DrawStringAnchored(s.Title, Margin, Margin/2, 0, 0.5)
	}
	dc.SetColor(rgba(textSecondary, 1))
	dc.DrawStringAnchored(s.Subtitle, Margin, Margin/2+20, 0, 0.5)
}
