package globe

import (
	"image/color"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/spatial/r3"
)

// RGB is a straight (non-premultiplied) color.
// Each component is nominally in the range [0, 1].
type RGB struct {
	R, G, B float32
}

// Common colors.
var (
	Black = RGB{}
	White = RGB{R: 1, G: 1, B: 1}
	Red   = RGB{R: 1}
	Green = RGB{G: 1}
	Blue  = RGB{B: 1}
)

// Scale returns c with every channel multiplied by f.
func (c RGB) Scale(f float32) RGB {
	return RGB{R: c.R * f, G: c.G * f, B: c.B * f}
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b RGB, t float32) RGB {
	return RGB{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
	}
}

// Color converts c to an opaque color.NRGBA, clamping each channel.
func (c RGB) Color() color.Color {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: 255,
	}
}

// to8 quantizes a channel for 8-bit export. NaN has no defined uint8
// conversion, so it exports as 0; the float canvas keeps it as is.
func to8(v float32) uint8 {
	if math32.IsNaN(v) {
		return 0
	}
	return uint8(clamp01(v)*255 + 0.5)
}

func clamp01(v float32) float32 {
	return math32.Min(1, math32.Max(0, v))
}

// Shade is a color paired with the opacity it should be composited with.
type Shade struct {
	Color RGB
	Alpha float32
}

// Palette maps a normalized parameter t in [0, 1] to a Shade.
// Palettes are supplied by effect code; the core only transforms and
// attenuates what they return.
type Palette interface {
	Get(t float64) Shade
}

// FragmentShader computes the Shade of a rasterized sample at p.
type FragmentShader func(p r3.Vec, f Fragment) Shade

// TrailShader computes the Shade of a replayed trail sample at p.
// t is the normalized age of the sample: 0 when fresh, approaching 1 as it
// is about to expire.
type TrailShader func(p r3.Vec, t float64) Shade
