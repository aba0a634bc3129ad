package globe

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"
)

// Replicate emits n copies of every sample, rotated by 2πk/n about an axis,
// giving the scene discrete rotational symmetry.
type Replicate struct {
	n    int
	axis r3.Vec
	rots []r3.Rotation
}

// NewReplicate returns a Replicate stage with n copies about the polar
// axis +Y. n < 1 is treated as 1.
func NewReplicate(n int) *Replicate {
	return NewReplicateAbout(n, axisY)
}

// NewReplicateAbout returns a Replicate stage with n copies about axis.
// A zero axis falls back to +Y.
func NewReplicateAbout(n int, axis r3.Vec) *Replicate {
	n = max(n, 1)
	axis = unitOr(axis, axisY)
	r := &Replicate{n: n, axis: axis, rots: make([]r3.Rotation, n)}
	for k := range r.rots {
		r.rots[k] = r3.NewRotation(2*math.Pi*float64(k)/float64(n), axis)
	}
	return r
}

// Count returns the number of copies.
func (r *Replicate) Count() int { return r.n }

// Is2D implements Filter.
func (*Replicate) Is2D() bool { return false }

// Apply implements Filter.
func (r *Replicate) Apply(s Sample, next Emitter) {
	pos := s.Pos
	for _, q := range r.rots {
		s.Pos = q.Rotate(pos)
		next.Emit(s)
	}
}

// String implements fmt.Stringer.
func (r *Replicate) String() string { return "Replicate(" + strconv.Itoa(r.n) + ")" }
