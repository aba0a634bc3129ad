package globe

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Plotter receives rasterized samples. *Pipeline implements it.
type Plotter interface {
	Plot(p r3.Vec, c RGB, age float64, alpha float32)
	Grid() Grid
}

// RasterOptions control how DrawLine and Rasterize walk their segments.
type RasterOptions struct {
	// CloseLoop joins the last point of a Rasterize list back to the first.
	CloseLoop bool
	// OmitLast skips the final sample, so chained lines do not plot their
	// shared vertex twice.
	OmitLast bool
	// Planar selects the planar-azimuthal strategy about Pole instead of
	// the great-circle strategy. A zero Pole uses each segment's start.
	Planar bool
	Pole   r3.Vec
	// Age is forwarded with every plotted sample.
	Age float64
}

const (
	// minDensity bounds how much the step shrinks towards the poles.
	minDensity = 0.05
	// maxSegmentSteps caps the simulation for non-finite segment lengths.
	maxSegmentSteps = 1 << 16
)

// segmentPath is the interpolation strategy of one segment. It holds both
// strategies by value so walking a segment never allocates.
type segmentPath struct {
	planar bool
	geo    Geodesic
	flat   PlanarAzimuthal
}

func (sp *segmentPath) reset(from, to r3.Vec, opts *RasterOptions) {
	sp.planar = opts.Planar
	if sp.planar {
		sp.flat.Reset(unitOr(opts.Pole, from), from, to)
		return
	}
	sp.geo.Reset(from, to)
}

func (sp *segmentPath) dist() float64 {
	if sp.planar {
		return sp.flat.Dist()
	}
	return sp.geo.Dist()
}

func (sp *segmentPath) degenerate() bool {
	if sp.planar {
		return sp.flat.Degenerate()
	}
	return sp.geo.Degenerate()
}

func (sp *segmentPath) at(t float64) r3.Vec {
	if sp.planar {
		return sp.flat.At(t)
	}
	return sp.geo.At(t)
}

// DrawLine rasterizes the path from → to, calling shader for every sample
// and plotting the result into pl.
//
// Sample density follows the grid: the base step is one pixel column at
// the equator and shrinks with the cosine of latitude, because the
// equirectangular grid packs more columns per radian near the poles. The
// simulated steps are then rescaled so the walk ends exactly on to.
// Coincident or antipodal endpoints draw the single point from.
func DrawLine(a *Arena, pl Plotter, from, to Fragment, shader FragmentShader, opts RasterOptions) {
	drawSegment(a, pl, &from, &to, shader, &opts, opts.OmitLast, 0, 1)
}

// Rasterize draws the polyline through points, or the closed loop when
// opts.CloseLoop is set, and returns the number of segments walked.
//
// Every segment except the final one of an open polyline omits its last
// sample, so shared vertices are plotted once. Each sample's Fragment.T is
// the global path parameter (segment + localT) / segments.
func Rasterize(a *Arena, pl Plotter, points []Fragment, shader FragmentShader, opts RasterOptions) int {
	n := len(points)
	switch n {
	case 0:
		return 0
	case 1:
		f := points[0]
		plotFragment(pl, &f, shader, opts.Age)
		return 0
	}
	segs := n - 1
	if opts.CloseLoop {
		segs = n
	}
	for i := range segs {
		omit := opts.CloseLoop || opts.OmitLast || i < segs-1
		drawSegment(a, pl, &points[i], &points[(i+1)%n], shader, &opts, omit, i, segs)
	}
	return segs
}

func drawSegment(a *Arena, pl Plotter, from, to *Fragment, shader FragmentShader, opts *RasterOptions, omitLast bool, seg, segs int) {
	var sp segmentPath
	sp.reset(from.Pos, to.Pos, opts)
	dist := sp.dist()
	if sp.degenerate() {
		f := *from
		f.T = float64(seg) / float64(segs)
		plotFragment(pl, &f, shader, opts.Age)
		return
	}

	// Simulate: walk with latitude-throttled steps until the true length
	// is covered.
	base := pl.Grid().PixelAngle()
	steps := a.steps[:0]
	var sim float64
	for sim < dist && len(steps) < maxSegmentSteps {
		p := sp.at(sim / dist)
		s := base * math.Max(minDensity, math.Sqrt(math.Max(0, 1-p.Y*p.Y)))
		steps = append(steps, s)
		sim += s
	}
	a.steps = steps

	// Scale: stretch the simulated steps so they sum to dist, then emit.
	scale := dist / sim
	var f Fragment
	emit := func(t float64) {
		f.Pos = sp.at(t)
		lerpRegisters(&f, from, to, t)
		f.T = (float64(seg) + t) / float64(segs)
		plotFragment(pl, &f, shader, opts.Age)
	}
	emit(0)
	var acc float64
	last := len(steps) - 1
	for i, s := range steps {
		if i == last {
			if !omitLast {
				emit(1)
			}
			break
		}
		acc += s * scale
		emit(acc / dist)
	}
}

func plotFragment(pl Plotter, f *Fragment, shader FragmentShader, age float64) {
	sh := shader(f.Pos, *f)
	pl.Plot(f.Pos, sh.Color, age, sh.Alpha)
}
