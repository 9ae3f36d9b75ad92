package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

var fallbackColor = color.NRGBA{R: 0x6B, G: 0x72, B: 0x80, A: 0xFF}

// rgba parses a #RRGGBB color and applies opacity. Unparseable input falls
// back to neutral gray.
func rgba(hex string, opacity float64) color.NRGBA {
	c := fallbackColor
	if parsed, err := colorful.Hex(hex); err == nil {
		c.R, c.G, c.B = parsed.RGB255()
	}
	c.A = uint8(clamp01(opacity)*255 + 0.5)
	return c
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
