package globe

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Pipeline construction errors.
var (
	ErrNilCanvas = errors.New("globe: pipeline requires a canvas")
	ErrNilStage  = errors.New("globe: nil pipeline stage")
)

// link runs one stage in front of the rest of the chain.
type link struct {
	f    Filter
	next Emitter
}

func (l *link) Emit(s Sample) { l.f.Apply(s, l.next) }

// projection converts sphere samples to pixel coordinates.
type projection struct {
	grid Grid
	next Emitter
}

func (p *projection) Emit(s Sample) {
	s.X, s.Y = p.grid.Project(s.Pos)
	p.next.Emit(s)
}

// unprojection converts pixel samples back onto the sphere.
type unprojection struct {
	grid Grid
	next Emitter
}

func (u *unprojection) Emit(s Sample) {
	s.Pos = u.grid.Unproject(s.X, s.Y)
	u.next.Emit(s)
}

// sink rounds a pixel sample to the nearest cell and blends it.
type sink struct {
	canvas *Canvas
}

func (k *sink) Emit(s Sample) {
	k.canvas.Blend(int(math.Floor(s.X+0.5)), int(math.Floor(s.Y+0.5)), s.Color, s.Alpha)
}

type trailLink struct {
	t    Trailer
	next Emitter
}

// Pipeline is a built chain of filter stages ending in a Canvas.
//
// The chain is folded once at construction. Wherever a sphere stage feeds
// a pixel stage a projection is inserted, and wherever a pixel stage feeds
// a sphere stage an unprojection is inserted, so authors never convert
// coordinates by hand. The terminal sink is a pixel stage: a chain of
// sphere stages gets exactly one projection, in front of the sink.
//
// Pipeline is not safe for concurrent use.
type Pipeline struct {
	canvas   *Canvas
	grid     Grid
	head     Emitter
	plot3D   Emitter
	trailers []trailLink
	enders   []FrameEnder
	stages   []string
}

// NewPipeline builds a pipeline that runs stages in order and composites
// the result into canvas.
func NewPipeline(canvas *Canvas, stages ...Filter) (*Pipeline, error) {
	if canvas == nil {
		return nil, ErrNilCanvas
	}
	for i, f := range stages {
		if f == nil {
			return nil, fmt.Errorf("stage %d: %w", i, ErrNilStage)
		}
	}

	grid := canvas.Grid()
	p := &Pipeline{canvas: canvas, grid: grid}

	var next Emitter = &sink{canvas: canvas}
	next2D := true
	desc := []string{"sink"}
	for i := len(stages) - 1; i >= 0; i-- {
		f := stages[i]
		switch {
		case !f.Is2D() && next2D:
			next = &projection{grid: grid, next: next}
			desc = append(desc, "project")
		case f.Is2D() && !next2D:
			next = &unprojection{grid: grid, next: next}
			desc = append(desc, "unproject")
		}
		if t, ok := f.(Trailer); ok {
			p.trailers = append(p.trailers, trailLink{t: t, next: next})
		}
		if e, ok := f.(FrameEnder); ok {
			p.enders = append(p.enders, e)
		}
		next = &link{f: f, next: next}
		next2D = f.Is2D()
		desc = append(desc, stageName(f))
	}

	// Trailers and stage names were collected tail first.
	slices.Reverse(p.trailers)
	slices.Reverse(p.enders)
	slices.Reverse(desc)
	p.stages = desc

	p.head = next
	p.plot3D = next
	if next2D {
		p.plot3D = &projection{grid: grid, next: next}
	}

	Logger().Debug("globe: pipeline built",
		"stages", strings.Join(desc, " -> "),
		"grid", fmt.Sprintf("%dx%d", grid.Width, grid.Height))
	return p, nil
}

// Plot sends a sphere sample into the head of the pipeline.
func (p *Pipeline) Plot(pos r3.Vec, c RGB, age float64, alpha float32) {
	p.plot3D.Emit(Sample{Pos: pos, Color: c, Age: age, Alpha: alpha})
}

// Plot2D sends a pixel-space sample into the head of the pipeline.
// The sample carries both coordinate forms, so it can enter a head stage
// of either kind.
func (p *Pipeline) Plot2D(x, y float64, c RGB, age float64, alpha float32) {
	p.head.Emit(Sample{Pos: p.grid.Unproject(x, y), X: x, Y: y, Color: c, Age: age, Alpha: alpha})
}

// Trail asks every buffering stage, head first, to replay its history
// through the stages below it. Call it after the frame's live plotting.
func (p *Pipeline) Trail(shader TrailShader, alpha float32) {
	for _, t := range p.trailers {
		t.t.Trail(t.next, shader, alpha)
	}
}

// EndFrame notifies every stage with per-frame state that the frame is
// complete. Orientation-driven stages collapse their history here.
func (p *Pipeline) EndFrame() {
	for _, e := range p.enders {
		e.EndFrame()
	}
}

// Grid returns the grid of the destination canvas.
func (p *Pipeline) Grid() Grid { return p.grid }

// Canvas returns the destination canvas.
func (p *Pipeline) Canvas() *Canvas { return p.canvas }

// Stages returns the built chain, head first, including the inserted
// coordinate conversions and the terminal sink.
func (p *Pipeline) Stages() []string {
	return slices.Clone(p.stages)
}

func stageName(f Filter) string {
	if s, ok := f.(fmt.Stringer); ok {
		return s.String()
	}
	name := fmt.Sprintf("%T", f)
	return name[strings.LastIndexByte(name, '.')+1:]
}
