package globe

import "gonum.org/v1/gonum/spatial/r3"

// Fragment is a sample point on the unit sphere plus four scalar
// registers interpolated alongside it by the rasterizer.
//
// T is filled in by Rasterize with the global path parameter
// (segment + localT) / segments; it is zero for samples that did not come
// through Rasterize.
type Fragment struct {
	Pos r3.Vec
	V   [4]float64
	T   float64
}

// Frag returns a Fragment at p with the given registers.
func Frag(p r3.Vec, v ...float64) Fragment {
	f := Fragment{Pos: p}
	copy(f.V[:], v)
	return f
}

// lerpRegisters interpolates the registers of a and b into dst.
func lerpRegisters(dst *Fragment, a, b *Fragment, t float64) {
	for i := range dst.V {
		dst.V[i] = a.V[i] + (b.V[i]-a.V[i])*t
	}
}
