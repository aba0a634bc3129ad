// Package blend implements the compositing operators used by the canvas.
//
// All operators work on straight-alpha float32 RGB triples. The destination
// carries no alpha channel: it is an accumulator for an emissive display,
// so the source alpha only decides how much of the source reaches it.
//
// Every function here runs once per emitted sample per frame and must stay
// allocation-free.
package blend

import "github.com/chewxy/math32"

// Mode represents a compositing operator.
type Mode uint8

const (
	// Over is straight-alpha blending: D*(1-Sa) + S*Sa.
	Over Mode = iota
	// Add sums the scaled source into the destination, clamped to 1.
	Add
	// Max keeps the per-channel maximum of the scaled source and the destination.
	Max
)

// opaqueThreshold is the alpha at and above which Over overwrites the
// destination outright.
const opaqueThreshold = 0.999

// String returns the lowercase operator name.
func (m Mode) String() string {
	switch m {
	case Over:
		return "over"
	case Add:
		return "add"
	case Max:
		return "max"
	default:
		return "unknown"
	}
}

// Apply composites (r, g, b) with alpha a into dst[0:3] using mode.
// Unknown modes behave like Over.
func Apply(mode Mode, dst []float32, r, g, b, a float32) {
	switch mode {
	case Add:
		add(dst, r, g, b, a)
	case Max:
		maximum(dst, r, g, b, a)
	default:
		over(dst, r, g, b, a)
	}
}

func over(dst []float32, r, g, b, a float32) {
	_ = dst[2]
	if a <= 0 {
		return
	}
	if a >= opaqueThreshold {
		dst[0], dst[1], dst[2] = r, g, b
		return
	}
	inv := 1 - a
	dst[0] = dst[0]*inv + r*a
	dst[1] = dst[1]*inv + g*a
	dst[2] = dst[2]*inv + b*a
}

func add(dst []float32, r, g, b, a float32) {
	_ = dst[2]
	if a <= 0 {
		return
	}
	dst[0] = math32.Min(1, dst[0]+r*a)
	dst[1] = math32.Min(1, dst[1]+g*a)
	dst[2] = math32.Min(1, dst[2]+b*a)
}

// maximum takes the per-channel max of the alpha-scaled source and the
// destination. It does not compare whole-color magnitudes.
func maximum(dst []float32, r, g, b, a float32) {
	_ = dst[2]
	if a <= 0 {
		return
	}
	dst[0] = math32.Max(dst[0], r*a)
	dst[1] = math32.Max(dst[1], g*a)
	dst[2] = math32.Max(dst[2], b*a)
}
