package globe

import "errors"

// ErrStaleHandle is the panic value raised when a Handle from an earlier
// pool generation is dereferenced.
var ErrStaleHandle = errors.New("globe: stale pool handle")

// Handle is a frame-scoped reference to a pool slot.
// It stays valid across capacity growth but not across Reset.
// The zero value is never valid.
type Handle struct {
	index uint32
	gen   uint32
}

// Pool is a fixed-capacity, frame-scoped arena of T values.
//
// Acquire hands out the next slot without clearing it: callers must
// overwrite every field they depend on. Reset rewinds the cursor and must
// run exactly once per frame, after every consumer of the previous frame's
// values is done. When the pool runs out it doubles its capacity and logs a
// warning; growth reallocates the backing array, so pointers and slices
// taken before the growth detach from the pool. They stay readable, but only
// handles keep addressing pool memory.
//
// Pool is not safe for concurrent use.
type Pool[T any] struct {
	name   string
	items  []T
	cursor int
	built  int    // slots passed through newFn so far
	gen    uint32 // starts at 1 so the zero Handle is invalid
	newFn  func(*T)
}

// NewPool creates a pool with the given initial capacity.
// If newFn is non-nil it runs once per slot, the first time that slot is
// handed out.
func NewPool[T any](name string, capacity int, newFn func(*T)) *Pool[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Pool[T]{
		name:  name,
		items: make([]T, capacity),
		gen:   1,
		newFn: newFn,
	}
}

// Acquire returns the next slot. The pointer is valid until the next Reset
// or growth, whichever comes first.
func (p *Pool[T]) Acquire() *T {
	p.reserve(1)
	v := &p.items[p.cursor]
	p.cursor++
	return v
}

// AcquireN returns n contiguous slots.
func (p *Pool[T]) AcquireN(n int) []T {
	if n <= 0 {
		return p.items[p.cursor:p.cursor]
	}
	p.reserve(n)
	s := p.items[p.cursor : p.cursor+n : p.cursor+n]
	p.cursor += n
	return s
}

// AcquireHandle returns a handle to the next slot.
func (p *Pool[T]) AcquireHandle() Handle {
	p.reserve(1)
	h := Handle{index: uint32(p.cursor), gen: p.gen} //nolint:gosec // cursor is bounded by capacity
	p.cursor++
	return h
}

// At dereferences h. It panics with ErrStaleHandle if h was issued before
// the last Reset.
func (p *Pool[T]) At(h Handle) *T {
	if !p.Valid(h) {
		panic(ErrStaleHandle)
	}
	return &p.items[h.index]
}

// Valid reports whether h belongs to the current generation.
func (p *Pool[T]) Valid(h Handle) bool {
	return h.gen == p.gen && int(h.index) < p.cursor
}

// Reset rewinds the pool, invalidating every handle issued so far.
func (p *Pool[T]) Reset() {
	p.cursor = 0
	p.gen++
	if p.gen == 0 {
		p.gen = 1
	}
}

// Len returns the number of slots handed out since the last Reset.
func (p *Pool[T]) Len() int { return p.cursor }

// Cap returns the current capacity.
func (p *Pool[T]) Cap() int { return len(p.items) }

// Generation returns the current generation, bumped by every Reset.
func (p *Pool[T]) Generation() uint32 { return p.gen }

// reserve makes room for n more slots and runs the lazy constructor on
// slots touched for the first time.
func (p *Pool[T]) reserve(n int) {
	need := p.cursor + n
	if need > len(p.items) {
		newCap := max(2*len(p.items), need)
		Logger().Warn("globe: pool exhausted, growing",
			"pool", p.name, "from", len(p.items), "to", newCap)
		items := make([]T, newCap)
		copy(items, p.items)
		p.items = items
	}
	if p.newFn != nil {
		for ; p.built < need; p.built++ {
			p.newFn(&p.items[p.built])
		}
	}
}
