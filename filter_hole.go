package globe

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Hole darkens samples within an angular radius of an origin. Brightness
// rises from zero at the origin to full at the rim along the quintic
// smootherstep.
type Hole struct {
	origin r3.Vec
	radius float64
}

// NewHole returns a Hole of the given angular radius, in radians, centered
// on origin. A zero origin falls back to +Y.
func NewHole(origin r3.Vec, radius float64) *Hole {
	h := &Hole{}
	h.Set(origin, radius)
	return h
}

// Set moves and resizes the hole.
func (h *Hole) Set(origin r3.Vec, radius float64) {
	h.origin = unitOr(origin, axisY)
	h.radius = radius
}

// Is2D implements Filter.
func (*Hole) Is2D() bool { return false }

// Apply implements Filter.
func (h *Hole) Apply(s Sample, next Emitter) {
	if h.radius > 0 {
		d := math.Atan2(r3.Norm(r3.Cross(h.origin, s.Pos)), r3.Dot(h.origin, s.Pos))
		if d < h.radius {
			s.Color = s.Color.Scale(float32(quintic(d / h.radius)))
		}
	}
	next.Emit(s)
}

// String implements fmt.Stringer.
func (*Hole) String() string { return "Hole" }
