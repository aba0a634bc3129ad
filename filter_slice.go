package globe

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"
)

// OrientSlice cuts the sphere into bands by angle from an axis and rotates
// each band by its own Orientation, as Orient does for the whole sphere.
// Band k covers angles [kπ/n, (k+1)π/n) from the axis; a sample's band is
// chosen from its incoming position. Every band is collapsed by
// Pipeline.EndFrame.
type OrientSlice struct {
	axis  r3.Vec
	bands []*Orientation
}

// NewOrientSlice returns an OrientSlice with n bands about axis, each with
// a fresh identity Orientation. A zero axis falls back to +Y.
func NewOrientSlice(axis r3.Vec, n int) *OrientSlice {
	n = max(n, 1)
	s := &OrientSlice{axis: unitOr(axis, axisY), bands: make([]*Orientation, n)}
	for i := range s.bands {
		s.bands[i] = NewOrientation()
	}
	return s
}

// Bands returns the number of bands.
func (s *OrientSlice) Bands() int { return len(s.bands) }

// Band returns the Orientation of band i.
func (s *OrientSlice) Band(i int) *Orientation { return s.bands[i] }

// BandOf returns the band index of p.
func (s *OrientSlice) BandOf(p r3.Vec) int {
	angle := math.Acos(clampUnit(r3.Dot(s.axis, p)))
	k := int(angle / math.Pi * float64(len(s.bands)))
	return min(max(k, 0), len(s.bands)-1)
}

// Is2D implements Filter.
func (*OrientSlice) Is2D() bool { return false }

// Apply implements Filter.
func (s *OrientSlice) Apply(smp Sample, next Emitter) {
	tweenSample(s.bands[s.BandOf(smp.Pos)], smp, next)
}

// EndFrame implements FrameEnder.
func (s *OrientSlice) EndFrame() {
	for _, o := range s.bands {
		o.Collapse()
	}
}

// String implements fmt.Stringer.
func (s *OrientSlice) String() string { return "OrientSlice(" + strconv.Itoa(len(s.bands)) + ")" }
