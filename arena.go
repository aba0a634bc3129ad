package globe

import "gonum.org/v1/gonum/spatial/r3"

// ArenaConfig holds the initial capacities of an Arena's pools.
// Zero values select the defaults.
type ArenaConfig struct {
	Fragments int
	Vectors   int
	Steps     int
}

const (
	defaultFragmentCap = 1024
	defaultVectorCap   = 1024
	defaultStepCap     = 512
)

// Arena groups the frame-scoped scratch storage the core draws from.
//
// Vectors, rotations and colors are plain values in Go and live on the
// stack; only variable-length lists need pooling. An Arena is owned by the
// frame driver, passed by reference into every drawing call and Reset
// exactly once per frame.
type Arena struct {
	Fragments *Pool[Fragment]
	Vectors   *Pool[r3.Vec]

	// steps is the rasterizer's simulated step list, reused per segment.
	steps []float64
}

// NewArena creates an Arena with the capacities in cfg.
func NewArena(cfg ArenaConfig) *Arena {
	if cfg.Fragments <= 0 {
		cfg.Fragments = defaultFragmentCap
	}
	if cfg.Vectors <= 0 {
		cfg.Vectors = defaultVectorCap
	}
	if cfg.Steps <= 0 {
		cfg.Steps = defaultStepCap
	}
	return &Arena{
		Fragments: NewPool[Fragment]("fragments", cfg.Fragments, nil),
		Vectors:   NewPool[r3.Vec]("vectors", cfg.Vectors, nil),
		steps:     make([]float64, 0, cfg.Steps),
	}
}

// Reset rewinds every pool. Values handed out during the previous frame
// must no longer be in use.
func (a *Arena) Reset() {
	a.Fragments.Reset()
	a.Vectors.Reset()
	a.steps = a.steps[:0]
}
