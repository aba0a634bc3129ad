package globe

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// defaultRingSamples is the vertex count used when a caller passes n <= 0.
// The rasterizer fills the gaps, so vertices only need to follow the
// curvature.
const defaultRingSamples = 64

// Radii follow one convention across every primitive: 0 is the pole of the
// basis (W), 1 the equator of the basis and 2 the antipode. Radii above 1
// flip the frame and use 2 − radius, so a primitive centered on W with
// radius 1.5 is the same outline as one centered on −W with radius 0.5.

// shapeFrame resolves the frame for a primitive with the given primary
// radius and reports whether the frame was flipped, in which case
// secondary radii must be mapped to 2 − r as well.
func shapeFrame(b Basis, radius float64) (Basis, float64, bool) {
	f, r := ringFrame(b, radius)
	return f, r, radius > 1
}

// polarAngle converts a radius in the 0..1 convention to an angle from W.
func polarAngle(r float64) float64 { return r * math.Pi / 2 }

// putFragment overwrites every field of f, since pool slots are not cleared.
func putFragment(f *Fragment, p r3.Vec, u float64) {
	f.Pos = p
	f.V = [4]float64{u}
	f.T = 0
}

// SampleRingPoints returns n points of the circle of the given radius about
// b.W, starting at azimuth phase. The slice is backed by the arena's vector
// pool and is valid until the next Arena.Reset.
func SampleRingPoints(a *Arena, b Basis, radius, phase float64, n int) []r3.Vec {
	if n <= 0 {
		n = defaultRingSamples
	}
	f, r, _ := shapeFrame(b, radius)
	theta := polarAngle(r)
	pts := a.Vectors.AcquireN(n)
	step := 2 * math.Pi / float64(n)
	for i := range pts {
		pts[i] = f.Point(theta, phase+float64(i)*step)
	}
	return pts
}

// SampleRing returns n fragments on the circle of the given radius about
// b.W. V[0] of each fragment holds its azimuth as a fraction of a turn.
func SampleRing(a *Arena, b Basis, radius, phase float64, n int) []Fragment {
	if n <= 0 {
		n = defaultRingSamples
	}
	f, r, _ := shapeFrame(b, radius)
	theta := polarAngle(r)
	frags := a.Fragments.AcquireN(n)
	step := 2 * math.Pi / float64(n)
	for i := range frags {
		putFragment(&frags[i], f.Point(theta, phase+float64(i)*step), float64(i)/float64(n))
	}
	return frags
}

// SamplePolygon returns n fragments on the outline of a regular polygon
// with the given number of sides, its vertices at radius. Each sample's
// distance from W follows the sector boundary R(φ) = apothem / cos(φ),
// where φ is the azimuth measured from the middle of the sample's sector.
// The first vertex lies at azimuth phase. Passing n == sides samples the
// vertices only.
func SamplePolygon(a *Arena, b Basis, radius, phase float64, sides, n int) []Fragment {
	sides = max(sides, 3)
	if n <= 0 {
		n = sides
	}
	f, r, _ := shapeFrame(b, radius)
	sector := 2 * math.Pi / float64(sides)
	apothem := r * math.Cos(sector/2)
	frags := a.Fragments.AcquireN(n)
	step := 2 * math.Pi / float64(n)
	for i := range frags {
		phi := float64(i) * step
		rr := apothem / math.Cos(sectorOffset(phi, sector))
		putFragment(&frags[i], f.Point(polarAngle(rr), phase+phi), float64(i)/float64(n))
	}
	return frags
}

// SampleStar returns the 2·points vertices of a star, alternating between
// the outer and inner radius.
func SampleStar(a *Arena, b Basis, outer, inner, phase float64, points int) []Fragment {
	points = max(points, 2)
	f, ro, flipped := shapeFrame(b, outer)
	ri := inner
	if flipped {
		ri = 2 - inner
	}
	n := 2 * points
	frags := a.Fragments.AcquireN(n)
	step := 2 * math.Pi / float64(n)
	for i := range frags {
		r := ro
		if i%2 == 1 {
			r = ri
		}
		putFragment(&frags[i], f.Point(polarAngle(r), phase+float64(i)*step), float64(i)/float64(n))
	}
	return frags
}

// SampleFlower returns n fragments on a flower outline: one cosine petal per
// sector, reaching radius at the sector middle and W at its edges. The
// first sample sits on W.
func SampleFlower(a *Arena, b Basis, radius, phase float64, petals, n int) []Fragment {
	petals = max(petals, 1)
	if n <= 0 {
		n = 16 * petals
	}
	f, r, _ := shapeFrame(b, radius)
	sector := 2 * math.Pi / float64(petals)
	frags := a.Fragments.AcquireN(n)
	step := 2 * math.Pi / float64(n)
	for i := range frags {
		phi := float64(i) * step
		rr := r * math.Cos(sectorOffset(phi, sector)*float64(petals)/2)
		putFragment(&frags[i], f.Point(polarAngle(rr), phase+phi), float64(i)/float64(n))
	}
	return frags
}

// SampleDistortedRing returns n fragments on a ring whose samples are each
// pushed off the circle by shift(φ) radians, applied as a rotation about
// the ring's local tangent. Positive shifts move away from W. A nil shift
// samples a plain ring.
func SampleDistortedRing(a *Arena, b Basis, radius, phase float64, n int, shift func(phi float64) float64) []Fragment {
	if n <= 0 {
		n = defaultRingSamples
	}
	f, r, _ := shapeFrame(b, radius)
	theta := polarAngle(r)
	frags := a.Fragments.AcquireN(n)
	step := 2 * math.Pi / float64(n)
	for i := range frags {
		phi := float64(i) * step
		p := f.Point(theta, phase+phi)
		if shift != nil {
			if d := shift(phi); d != 0 {
				// Rotating about the tangent moves p along its meridian.
				p = r3.Rotate(p, d, f.Tangent(phase+phi))
			}
		}
		putFragment(&frags[i], p, float64(i)/float64(n))
	}
	return frags
}

// sectorOffset returns phi measured from the middle of its sector, in
// [−sector/2, sector/2). Sector edges lie at multiples of sector.
func sectorOffset(phi, sector float64) float64 {
	return math.Mod(phi, sector) - sector/2
}

// DrawRing rasterizes a closed ring along great-circle segments and returns
// the number of segments drawn.
func DrawRing(a *Arena, pl Plotter, b Basis, radius, phase float64, n int, shader FragmentShader) int {
	return Rasterize(a, pl, SampleRing(a, b, radius, phase, n), shader, RasterOptions{CloseLoop: true})
}

// DrawPolygon rasterizes a regular polygon with edges straight in the
// azimuthal plane about its center.
func DrawPolygon(a *Arena, pl Plotter, b Basis, radius, phase float64, sides int, shader FragmentShader) int {
	f, _ := ringFrame(b, radius)
	return Rasterize(a, pl, SamplePolygon(a, b, radius, phase, sides, sides), shader,
		RasterOptions{CloseLoop: true, Planar: true, Pole: f.W})
}

// DrawStar rasterizes a star outline.
func DrawStar(a *Arena, pl Plotter, b Basis, outer, inner, phase float64, points int, shader FragmentShader) int {
	f, _ := ringFrame(b, outer)
	return Rasterize(a, pl, SampleStar(a, b, outer, inner, phase, points), shader,
		RasterOptions{CloseLoop: true, Planar: true, Pole: f.W})
}

// DrawFlower rasterizes a flower outline.
func DrawFlower(a *Arena, pl Plotter, b Basis, radius, phase float64, petals, n int, shader FragmentShader) int {
	f, _ := ringFrame(b, radius)
	return Rasterize(a, pl, SampleFlower(a, b, radius, phase, petals, n), shader,
		RasterOptions{CloseLoop: true, Planar: true, Pole: f.W})
}

// DrawDistortedRing rasterizes a distorted ring.
func DrawDistortedRing(a *Arena, pl Plotter, b Basis, radius, phase float64, n int, shift func(phi float64) float64, shader FragmentShader) int {
	return Rasterize(a, pl, SampleDistortedRing(a, b, radius, phase, n, shift), shader, RasterOptions{CloseLoop: true})
}
