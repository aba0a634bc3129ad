package globe

import "gonum.org/v1/gonum/spatial/r3"

// Orient rotates sphere samples by an Orientation.
//
// Every incoming sample is fanned out across the sub-steps recorded since
// the last collapse, oldest first, so a rotation faster than one pixel per
// frame leaves a continuous smear instead of isolated copies. Older
// sub-steps are tagged with a larger age: a sub-step at tween parameter t
// adds 1 − t. The Orientation is collapsed by Pipeline.EndFrame.
type Orient struct {
	o *Orientation
}

// NewOrient returns an Orient stage driven by o. A nil o gets a fresh
// identity Orientation.
func NewOrient(o *Orientation) *Orient {
	if o == nil {
		o = NewOrientation()
	}
	return &Orient{o: o}
}

// Orientation returns the driving Orientation.
func (f *Orient) Orientation() *Orientation { return f.o }

// Is2D implements Filter.
func (*Orient) Is2D() bool { return false }

// Apply implements Filter.
func (f *Orient) Apply(s Sample, next Emitter) {
	tweenSample(f.o, s, next)
}

// EndFrame implements FrameEnder.
func (f *Orient) EndFrame() { f.o.Collapse() }

// String implements fmt.Stringer.
func (*Orient) String() string { return "Orient" }

// tweenSample emits s once per sub-step of o.
func tweenSample(o *Orientation, s Sample, next Emitter) {
	pos, age := s.Pos, s.Age
	o.Tween(func(q r3.Rotation, t float64) {
		s.Pos = q.Rotate(pos)
		s.Age = age + 1 - t
		next.Emit(s)
	})
}
