package globe

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/spatial/r3"
)

// mobiusEps gates the point-at-infinity branches.
const mobiusEps = 1e-12

// Mobius warps the sphere with the Möbius transformation
// w = (a·z + b) / (c·z + d) of the Riemann sphere.
//
// Points are mapped to the complex plane by stereographic projection from
// the north pole (0, 1, 0), which corresponds to z = ∞. The pole, and any
// point sent to infinity by the transform, are handled by explicit
// branches instead of dividing by zero.
type Mobius struct {
	a, b, c, d complex128
}

// NewMobius returns a Mobius stage with the identity transform.
func NewMobius() *Mobius {
	return &Mobius{a: 1, d: 1}
}

// Set replaces the transform coefficients. It may be called between
// frames to animate the warp. Coefficients with a·d − b·c == 0 collapse
// the sphere to a point.
func (m *Mobius) Set(a, b, c, d complex128) {
	m.a, m.b, m.c, m.d = a, b, c, d
}

// Params returns the current coefficients.
func (m *Mobius) Params() (a, b, c, d complex128) {
	return m.a, m.b, m.c, m.d
}

// Is2D implements Filter.
func (*Mobius) Is2D() bool { return false }

// Apply implements Filter.
func (m *Mobius) Apply(s Sample, next Emitter) {
	s.Pos = m.Transform(s.Pos)
	next.Emit(s)
}

// Transform applies the warp to a single unit vector.
func (m *Mobius) Transform(p r3.Vec) r3.Vec {
	z, inf := stereographic(p)
	var w complex128
	if inf {
		// w(∞) = a / c.
		if cmplx.Abs(m.c) < mobiusEps {
			return axisY
		}
		w = m.a / m.c
	} else {
		den := m.c*z + m.d
		if cmplx.Abs(den) < mobiusEps {
			return axisY
		}
		w = (m.a*z + m.b) / den
	}
	if cmplx.IsInf(w) || cmplx.IsNaN(w) {
		return axisY
	}
	return inverseStereographic(w)
}

// String implements fmt.Stringer.
func (*Mobius) String() string { return "Mobius" }

// stereographic projects p from the north pole onto the plane y = 0.
// It reports inf for the pole itself.
func stereographic(p r3.Vec) (complex128, bool) {
	den := 1 - p.Y
	if den < mobiusEps {
		return 0, true
	}
	return complex(p.X/den, p.Z/den), false
}

func inverseStereographic(w complex128) r3.Vec {
	u, v := real(w), imag(w)
	r2 := u*u + v*v
	if math.IsInf(r2, 1) {
		return axisY
	}
	k := 1 / (r2 + 1)
	return r3.Vec{X: 2 * u * k, Y: (r2 - 1) * k, Z: 2 * v * k}
}
