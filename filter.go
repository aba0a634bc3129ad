package globe

import "gonum.org/v1/gonum/spatial/r3"

// Sample is one colored point travelling through a Pipeline.
//
// 3D stages read and write Pos. 2D stages read and write the continuous
// pixel coordinates X and Y; Pos is carried along unchanged so replaying
// stages can still hand a sphere position to their shaders.
type Sample struct {
	Pos   r3.Vec
	X, Y  float64
	Color RGB
	Age   float64
	Alpha float32
}

// Emitter accepts samples. Each link of a built Pipeline is an Emitter
// wrapping the rest of the chain.
type Emitter interface {
	Emit(s Sample)
}

// Filter is one pipeline stage.
//
// Apply receives a sample and may forward it to next unchanged, modified,
// duplicated, or not at all. Apply must not call back into the owning
// Pipeline's Plot or Plot2D.
type Filter interface {
	// Is2D reports whether the stage works in pixel space (X, Y) rather
	// than on the sphere (Pos).
	Is2D() bool
	Apply(s Sample, next Emitter)
}

// Trailer is implemented by stages that buffer samples for later replay.
// Pipeline.Trail calls it once per frame, after live plotting, with the
// part of the chain downstream of the stage.
type Trailer interface {
	Trail(next Emitter, shader TrailShader, alpha float32)
}

// FrameEnder is implemented by stages with per-frame state.
// Pipeline.EndFrame calls it once the frame has been drawn.
type FrameEnder interface {
	EndFrame()
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(s Sample)

// Emit calls f(s).
func (f EmitterFunc) Emit(s Sample) { f(s) }

// quintic is Perlin's smootherstep 6t⁵ − 15t⁴ + 10t³ on [0, 1]. Its first
// and second derivatives vanish at both ends.
func quintic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * t * (t*(t*6-15) + 10)
}
