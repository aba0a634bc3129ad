package globe

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Identity is the rotation that leaves every vector unchanged.
var Identity = r3.Rotation{Real: 1}

// Orientation is a replayable rotation: the ordered sub-steps of one
// logical rotation since the last Collapse.
//
// Animators advance an Orientation in several small steps per frame, each
// no larger than one pixel's angular width, instead of one large jump.
// Trail-rendering filters can then replay the whole sub-path with Tween, so
// fast rotations do not skip across the coarse grid.
//
// An Orientation always holds at least one rotation; the current one is the
// last. Every consumer must Collapse it exactly once per frame or the
// history grows without bound.
type Orientation struct {
	steps []r3.Rotation
}

// NewOrientation returns an Orientation holding the identity rotation.
func NewOrientation() *Orientation {
	return &Orientation{steps: []r3.Rotation{Identity}}
}

// Len returns the number of stored rotations (at least 1).
func (o *Orientation) Len() int { return len(o.steps) }

// At returns the i-th stored rotation, oldest first.
func (o *Orientation) At(i int) r3.Rotation { return o.steps[i] }

// Get returns the current rotation.
func (o *Orientation) Get() r3.Rotation { return o.steps[len(o.steps)-1] }

// Set discards the history and makes q the only stored rotation.
func (o *Orientation) Set(q r3.Rotation) {
	o.steps = append(o.steps[:0], q)
}

// Push appends q as the newest sub-step.
func (o *Orientation) Push(q r3.Rotation) {
	o.steps = append(o.steps, q)
}

// Collapse truncates the history to the current rotation.
func (o *Orientation) Collapse() {
	o.steps[0] = o.steps[len(o.steps)-1]
	o.steps = o.steps[:1]
}

// Orient applies the current rotation to v.
func (o *Orientation) Orient(v r3.Vec) r3.Vec { return o.Get().Rotate(v) }

// OrientAt applies the i-th stored rotation to v.
func (o *Orientation) OrientAt(v r3.Vec, i int) r3.Vec { return o.steps[i].Rotate(v) }

// Unorient applies the inverse of the current rotation to v.
func (o *Orientation) Unorient(v r3.Vec) r3.Vec { return inverse(o.Get()).Rotate(v) }

// UnorientAt applies the inverse of the i-th stored rotation to v.
func (o *Orientation) UnorientAt(v r3.Vec, i int) r3.Vec { return inverse(o.steps[i]).Rotate(v) }

// Tween calls fn once per sub-step recorded since the last Collapse, oldest
// first, with t rising to 1 for the current rotation.
//
// The rotation at index 0 is the attitude the previous frame ended on and
// was already drawn then, so it is skipped while newer sub-steps exist. A
// collapsed Orientation yields a single call with t == 1.
func (o *Orientation) Tween(fn func(q r3.Rotation, t float64)) {
	n := len(o.steps)
	if n == 1 {
		fn(o.steps[0], 1)
		return
	}
	last := float64(n - 1)
	for i := 1; i < n; i++ {
		fn(o.steps[i], float64(i)/last)
	}
}

// Rotate pushes a sub-step that rotates the current attitude by angle
// radians about the world-space axis. A zero axis or angle pushes nothing.
func (o *Orientation) Rotate(axis r3.Vec, angle float64) {
	if angle == 0 || r3.Norm(axis) < epstol {
		return
	}
	o.Push(compose(r3.NewRotation(angle, axis), o.Get()))
}

// RotateBy splits a rotation into equal sub-steps no larger than maxStep
// radians and pushes each one. A non-positive maxStep pushes a single step.
//
// Drivers typically pass Grid.PixelAngle so every sub-step moves a sample
// by at most one pixel.
func (o *Orientation) RotateBy(axis r3.Vec, angle, maxStep float64) {
	if angle == 0 || r3.Norm(axis) < epstol {
		return
	}
	n := 1
	if maxStep > 0 {
		n = max(1, int(math.Ceil(math.Abs(angle)/maxStep)))
	}
	step := r3.NewRotation(angle/float64(n), axis)
	for range n {
		o.Push(compose(step, o.Get()))
	}
}

// compose returns the rotation that applies b and then a.
// The product is renormalized so long chains do not drift off unit length.
func compose(a, b r3.Rotation) r3.Rotation {
	q := quat.Mul(quat.Number(a), quat.Number(b))
	if n := quat.Abs(q); n > 0 && n != 1 {
		q = quat.Scale(1/n, q)
	}
	return r3.Rotation(q)
}

// inverse returns the inverse of a unit rotation.
func inverse(r r3.Rotation) r3.Rotation {
	return r3.Rotation(quat.Conj(quat.Number(r)))
}
