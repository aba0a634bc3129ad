package globe

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// decayBuffer is a fixed-capacity structure-of-arrays of recorded samples
// and their remaining time to live. count never exceeds the capacity;
// expired entries are removed by swapping in the last one.
type decayBuffer struct {
	pos   []r3.Vec
	x, y  []float64
	ttl   []float64
	count int
}

func newDecayBuffer(capacity int) decayBuffer {
	capacity = max(capacity, 1)
	return decayBuffer{
		pos: make([]r3.Vec, capacity),
		x:   make([]float64, capacity),
		y:   make([]float64, capacity),
		ttl: make([]float64, capacity),
	}
}

func (b *decayBuffer) full() bool { return b.count == len(b.ttl) }

func (b *decayBuffer) push(s *Sample, ttl float64) {
	i := b.count
	b.pos[i], b.x[i], b.y[i], b.ttl[i] = s.Pos, s.X, s.Y, ttl
	b.count++
}

// age decrements every ttl by one and drops the entries that reach zero.
func (b *decayBuffer) age() {
	for i := 0; i < b.count; {
		b.ttl[i]--
		if b.ttl[i] > 0 {
			i++
			continue
		}
		b.count--
		b.Swap(i, b.count)
	}
}

// Len, Less and Swap sort the live entries by ascending ttl.
func (b *decayBuffer) Len() int           { return b.count }
func (b *decayBuffer) Less(i, j int) bool { return b.ttl[i] < b.ttl[j] }
func (b *decayBuffer) Swap(i, j int) {
	b.pos[i], b.pos[j] = b.pos[j], b.pos[i]
	b.x[i], b.x[j] = b.x[j], b.x[i]
	b.y[i], b.y[j] = b.y[j], b.y[i]
	b.ttl[i], b.ttl[j] = b.ttl[j], b.ttl[i]
}

// Trail records the samples passing through it and replays them on
// Pipeline.Trail with a color that depends on their age.
//
// A sample plotted with age a is kept for lifespan − a more Trail calls.
// Each Trail call ages every entry by one, evicts the expired ones, sorts
// the rest by ascending time to live and replays them downstream, most
// decayed first, so fresher samples composite on top. A full buffer drops
// new samples and counts them; the live sample is forwarded regardless.
//
// NewTrail records sphere positions; NewScreenTrail records pixel
// positions and sits among the 2D stages.
type Trail struct {
	buf      decayBuffer
	lifespan float64
	screen   bool
	dropped  int
}

// NewTrail returns a sphere-space Trail holding up to capacity samples for
// lifespan frames.
func NewTrail(lifespan float64, capacity int) *Trail {
	return &Trail{buf: newDecayBuffer(capacity), lifespan: lifespan}
}

// NewScreenTrail returns a pixel-space Trail.
func NewScreenTrail(lifespan float64, capacity int) *Trail {
	t := NewTrail(lifespan, capacity)
	t.screen = true
	return t
}

// Is2D implements Filter.
func (t *Trail) Is2D() bool { return t.screen }

// Apply implements Filter.
func (t *Trail) Apply(s Sample, next Emitter) {
	if ttl := t.lifespan - s.Age; ttl > 0 {
		if t.buf.full() {
			t.dropped++
		} else {
			t.buf.push(&s, ttl)
		}
	}
	next.Emit(s)
}

// Trail implements Trailer.
func (t *Trail) Trail(next Emitter, shader TrailShader, alpha float32) {
	t.buf.age()
	sort.Sort(&t.buf)
	b := &t.buf
	for i := range b.count {
		ttl := b.ttl[i]
		sh := shader(b.pos[i], 1-ttl/t.lifespan)
		next.Emit(Sample{
			Pos:   b.pos[i],
			X:     b.x[i],
			Y:     b.y[i],
			Color: sh.Color,
			Age:   t.lifespan - ttl,
			Alpha: sh.Alpha * alpha,
		})
	}
}

// Len returns the number of buffered samples.
func (t *Trail) Len() int { return t.buf.count }

// Cap returns the buffer capacity.
func (t *Trail) Cap() int { return len(t.buf.ttl) }

// Dropped returns the number of samples rejected because the buffer was
// full.
func (t *Trail) Dropped() int { return t.dropped }

// Clear empties the buffer.
func (t *Trail) Clear() {
	t.buf.count = 0
	t.dropped = 0
}

// String implements fmt.Stringer.
func (t *Trail) String() string {
	if t.screen {
		return "ScreenTrail"
	}
	return "Trail"
}
