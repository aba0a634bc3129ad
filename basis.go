package globe

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Basis is an orthonormal frame on the sphere: W is the normal a shape is
// centered on, U and V span the tangent plane at W.
type Basis struct {
	U, V, W r3.Vec
}

// MakeBasis derives a Basis from normal, rotated by the current rotation
// of o. A nil o leaves the normal as is.
func MakeBasis(o *Orientation, normal r3.Vec) Basis {
	w := unitOr(normal, axisY)
	if o != nil {
		w = o.Orient(w)
	}
	ref := axisY
	if math.Abs(r3.Dot(w, ref)) > 0.99 {
		ref = axisX
	}
	u := unitOr(r3.Cross(ref, w), referenceAxis(w))
	v := r3.Cross(w, u)
	return Basis{U: u, V: v, W: w}
}

// Negate returns the frame reflected through the origin: W points at the
// antipode and the handedness of the tangent plane is preserved.
func (b Basis) Negate() Basis {
	return Basis{
		U: r3.Scale(-1, b.U),
		V: b.V,
		W: r3.Scale(-1, b.W),
	}
}

// Point returns the point at polar angle theta from W and azimuth phi,
// measured in the (U, V) plane from U towards V.
func (b Basis) Point(theta, phi float64) r3.Vec {
	sinT, cosT := math.Sincos(theta)
	sinP, cosP := math.Sincos(phi)
	return r3.Add(
		r3.Scale(cosT, b.W),
		r3.Add(r3.Scale(sinT*cosP, b.U), r3.Scale(sinT*sinP, b.V)),
	)
}

// Tangent returns the unit tangent of the circle of constant theta at
// azimuth phi, pointing in the direction of increasing phi.
func (b Basis) Tangent(phi float64) r3.Vec {
	sinP, cosP := math.Sincos(phi)
	return r3.Add(r3.Scale(-sinP, b.U), r3.Scale(cosP, b.V))
}

// ringFrame resolves the radius convention used by every sampling
// primitive: 0 is the pole W, 1 is the equator, and radii above 1 land in
// the antipodal hemisphere by negating the frame and mapping r to 2 − r.
func ringFrame(b Basis, radius float64) (Basis, float64) {
	if radius > 1 {
		return b.Negate(), 2 - radius
	}
	return b, radius
}
