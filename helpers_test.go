package globe

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// plotted is one sample captured by recorder.
type plotted struct {
	pos   r3.Vec
	color RGB
	age   float64
	alpha float32
}

// recorder is a Plotter that keeps everything plotted into it.
type recorder struct {
	grid    Grid
	samples []plotted
}

func newRecorder(w, h int) *recorder {
	return &recorder{grid: Grid{Width: w, Height: h}}
}

func (r *recorder) Plot(p r3.Vec, c RGB, age float64, alpha float32) {
	r.samples = append(r.samples, plotted{pos: p, color: c, age: age, alpha: alpha})
}

func (r *recorder) Grid() Grid { return r.grid }

func (r *recorder) last() plotted { return r.samples[len(r.samples)-1] }

// collector is an Emitter that keeps every sample.
type collector struct {
	samples []Sample
}

func (c *collector) Emit(s Sample) { c.samples = append(c.samples, s) }

// fragLog returns a shader that records every fragment it is called with.
func fragLog(frags *[]Fragment) FragmentShader {
	return func(_ r3.Vec, f Fragment) Shade {
		*frags = append(*frags, f)
		return Shade{Color: White, Alpha: 1}
	}
}

func solidShader(p r3.Vec, f Fragment) Shade {
	return Shade{Color: Red, Alpha: 1}
}

func vecNear(a, b r3.Vec, tol float64) bool {
	return r3.Norm(r3.Sub(a, b)) <= tol
}

func hasNaN(v r3.Vec) bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z)
}

func angleBetween(a, b r3.Vec) float64 {
	return math.Atan2(r3.Norm(r3.Cross(a, b)), r3.Dot(a, b))
}

func randUnit(rng *rand.Rand) r3.Vec {
	for {
		v := r3.Vec{X: rng.Float64()*2 - 1, Y: rng.Float64()*2 - 1, Z: rng.Float64()*2 - 1}
		if n := r3.Norm(v); n > 0.1 && n <= 1 {
			return r3.Scale(1/n, v)
		}
	}
}
