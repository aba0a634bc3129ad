package globe

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Grid is the W×H equirectangular discretization of the unit sphere.
//
// Longitude maps to x and wraps around; colatitude maps to y and clamps.
// +Y is the polar axis: the north pole (0, 1, 0) lies on row 0 and the
// south pole on row H−1. Longitude zero is the +X direction and increases
// towards +Z.
type Grid struct {
	Width, Height int
}

// Size returns the number of pixels in the grid.
func (g Grid) Size() int { return g.Width * g.Height }

// PixelAngle returns the angular width of one pixel column at the equator.
// It is the base step of the rasterizer.
func (g Grid) PixelAngle() float64 {
	return 2 * math.Pi / float64(g.Width)
}

// Project maps a unit vector to continuous pixel coordinates.
// x lies in [0, W) and y in [0, H−1].
func (g Grid) Project(v r3.Vec) (x, y float64) {
	lon := math.Atan2(v.Z, v.X)
	if lon < 0 {
		lon += 2 * math.Pi
	}
	x = lon / (2 * math.Pi) * float64(g.Width)
	if x >= float64(g.Width) {
		x -= float64(g.Width)
	}
	y = math.Acos(clampUnit(v.Y)) / math.Pi * float64(g.Height-1)
	return x, y
}

// Unproject maps continuous pixel coordinates back to a unit vector.
func (g Grid) Unproject(x, y float64) r3.Vec {
	lon := x / float64(g.Width) * 2 * math.Pi
	colat := y / float64(g.Height-1) * math.Pi
	sinColat, cosColat := math.Sincos(colat)
	sinLon, cosLon := math.Sincos(lon)
	return r3.Vec{X: sinColat * cosLon, Y: cosColat, Z: sinColat * sinLon}
}

// Index returns the flat pixel index of (x, y) with x wrapped into
// [0, W) and y clamped into [0, H−1].
func (g Grid) Index(x, y int) int {
	return g.clampY(y)*g.Width + g.wrapX(x)
}

func (g Grid) wrapX(x int) int {
	x %= g.Width
	if x < 0 {
		x += g.Width
	}
	return x
}

func (g Grid) clampY(y int) int {
	if y < 0 {
		return 0
	}
	if y >= g.Height {
		return g.Height - 1
	}
	return y
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
