package globe

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// epstol gates every degenerate-geometry fallback: cross products, plane
// projections and segment lengths shorter than this are treated as zero.
const epstol = 1e-9

var (
	axisX = r3.Vec{X: 1}
	axisY = r3.Vec{Y: 1}
)

// Interpolator is a strategy for walking between two points on the sphere.
type Interpolator interface {
	// Dist returns the length of the path in radians (or plane units).
	Dist() float64
	// At returns the point at parameter t in [0, 1].
	At(t float64) r3.Vec
	// Degenerate reports whether the endpoints were too close (or too
	// opposed) to define a unique path.
	Degenerate() bool
}

// Geodesic interpolates along the great circle through two points by
// rotating the start point about their common perpendicular.
type Geodesic struct {
	from       r3.Vec
	axis       r3.Vec
	angle      float64
	degenerate bool
}

// NewGeodesic returns a Geodesic from a to b.
func NewGeodesic(from, to r3.Vec) Geodesic {
	var g Geodesic
	g.Reset(from, to)
	return g
}

// Reset reinitializes g for the segment from → to.
// Coincident or antipodal endpoints fall back to a fixed reference axis.
func (g *Geodesic) Reset(from, to r3.Vec) {
	c := r3.Cross(from, to)
	s := r3.Norm(c)
	g.from = from
	g.angle = math.Atan2(s, r3.Dot(from, to))
	g.degenerate = s < epstol
	if g.degenerate {
		g.axis = referenceAxis(from)
		return
	}
	g.axis = r3.Scale(1/s, c)
}

// Dist implements Interpolator.
func (g *Geodesic) Dist() float64 { return g.angle }

// Degenerate implements Interpolator.
func (g *Geodesic) Degenerate() bool { return g.degenerate }

// At implements Interpolator.
func (g *Geodesic) At(t float64) r3.Vec {
	if t == 0 {
		return g.from
	}
	return r3.Rotate(g.from, g.angle*t, g.axis)
}

// PlanarAzimuthal interpolates in the azimuthal-equidistant plane about a
// pole: both endpoints are projected into the plane, joined by a straight
// line, and unprojected. Paths drawn this way look locally flat around the
// pole, which suits polygon and star outlines.
type PlanarAzimuthal struct {
	pole       r3.Vec
	a, b       r3.Vec // plane coordinates, tangent to the sphere at pole
	dist       float64
	degenerate bool
}

// NewPlanarAzimuthal returns a PlanarAzimuthal walk from a to b about pole.
func NewPlanarAzimuthal(pole, from, to r3.Vec) PlanarAzimuthal {
	var p PlanarAzimuthal
	p.Reset(pole, from, to)
	return p
}

// Reset reinitializes p for the segment from → to about pole.
func (p *PlanarAzimuthal) Reset(pole, from, to r3.Vec) {
	p.pole = pole
	p.a = azimuthalProject(pole, from)
	p.b = azimuthalProject(pole, to)
	p.dist = r3.Norm(r3.Sub(p.b, p.a))
	p.degenerate = p.dist < epstol
}

// Dist implements Interpolator.
func (p *PlanarAzimuthal) Dist() float64 { return p.dist }

// Degenerate implements Interpolator.
func (p *PlanarAzimuthal) Degenerate() bool { return p.degenerate }

// At implements Interpolator.
func (p *PlanarAzimuthal) At(t float64) r3.Vec {
	q := r3.Add(r3.Scale(1-t, p.a), r3.Scale(t, p.b))
	return azimuthalUnproject(p.pole, q)
}

// azimuthalProject maps v into the tangent plane at pole, preserving the
// angular distance from pole as the planar radius.
func azimuthalProject(pole, v r3.Vec) r3.Vec {
	d := r3.Dot(pole, v)
	perp := r3.Sub(v, r3.Scale(d, pole))
	s := r3.Norm(perp)
	theta := math.Atan2(s, d)
	if s < epstol {
		if d > 0 {
			return r3.Vec{}
		}
		// Antipode: every direction is equally valid, pick a fixed one.
		return r3.Scale(theta, referenceAxis(pole))
	}
	return r3.Scale(theta/s, perp)
}

func azimuthalUnproject(pole, q r3.Vec) r3.Vec {
	theta := r3.Norm(q)
	if theta < epstol {
		return pole
	}
	sin, cos := math.Sincos(theta)
	return r3.Add(r3.Scale(cos, pole), r3.Scale(sin/theta, q))
}

// referenceAxis returns a fixed unit vector perpendicular to v.
func referenceAxis(v r3.Vec) r3.Vec {
	ref := axisY
	if math.Abs(v.Y) > 0.9 {
		ref = axisX
	}
	return unitOr(r3.Cross(v, ref), axisX)
}

// unitOr normalizes v, returning fallback when v is too short to have a
// direction.
func unitOr(v, fallback r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n < epstol {
		return fallback
	}
	return r3.Scale(1/n, v)
}
