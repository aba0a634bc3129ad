package globe

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// loopLength sums the great-circle lengths of the closed polyline pts.
func loopLength(pts []Fragment) float64 {
	var sum float64
	for i := range pts {
		sum += angleBetween(pts[i].Pos, pts[(i+1)%len(pts)].Pos)
	}
	return sum
}

func TestRingEquatorLength(t *testing.T) {
	a := NewArena(ArenaConfig{})
	b := MakeBasis(nil, r3.Vec{Y: 1})
	ring := SampleRing(a, b, 1, 0, 8)
	if len(ring) != 8 {
		t.Fatalf("len(SampleRing) = %d, want 8", len(ring))
	}
	if got := loopLength(ring); math.Abs(got-2*math.Pi) > 1e-9 {
		t.Errorf("ring length = %v, want 2π", got)
	}
	rec := newRecorder(96, 20)
	if segs := Rasterize(a, rec, ring, solidShader, RasterOptions{CloseLoop: true}); segs != 8 {
		t.Errorf("Rasterize(closed ring) = %d segments, want 8", segs)
	}
	// Every plotted sample stays on the equator row.
	for _, s := range rec.samples {
		if _, y := rec.grid.Project(s.pos); math.Abs(y-9.5) > 1e-6 {
			t.Fatalf("sample %v off the equator (y = %v)", s.pos, y)
		}
	}
}

func TestRingRadius(t *testing.T) {
	a := NewArena(ArenaConfig{})
	b := MakeBasis(nil, r3.Vec{X: 1, Y: 1, Z: 0.5})
	tests := []struct {
		radius float64
		angle  float64
	}{
		{0, 0},
		{0.25, math.Pi / 8},
		{0.5, math.Pi / 4},
		{1, math.Pi / 2},
		{1.5, 3 * math.Pi / 4},
		{2, math.Pi},
	}
	for _, tt := range tests {
		ring := SampleRing(a, b, tt.radius, 0.3, 12)
		for i, f := range ring {
			if got := angleBetween(f.Pos, b.W); math.Abs(got-tt.angle) > 1e-9 {
				t.Errorf("radius %v: sample %d at %v from W, want %v", tt.radius, i, got, tt.angle)
			}
			if want := float64(i) / 12; f.V[0] != want {
				t.Errorf("radius %v: V[0] = %v, want %v", tt.radius, f.V[0], want)
			}
		}
	}
}

func TestSampleRingPoints(t *testing.T) {
	a := NewArena(ArenaConfig{Vectors: 4})
	b := MakeBasis(nil, axisY)
	pts := SampleRingPoints(a, b, 0.5, 0, 16)
	if len(pts) != 16 || a.Vectors.Len() != 16 {
		t.Fatalf("len = %d, pool Len = %d, want 16, 16", len(pts), a.Vectors.Len())
	}
	frags := SampleRing(a, b, 0.5, 0, 16)
	for i := range pts {
		if !vecNear(pts[i], frags[i].Pos, 1e-12) {
			t.Errorf("point %d = %v, want %v", i, pts[i], frags[i].Pos)
		}
	}
}

func TestSampleRingOverwritesPoolSlots(t *testing.T) {
	a := NewArena(ArenaConfig{Fragments: 8})
	b := MakeBasis(nil, axisY)
	junk := a.Fragments.AcquireN(8)
	for i := range junk {
		junk[i] = Fragment{V: [4]float64{9, 9, 9, 9}, T: 9}
	}
	a.Reset()
	for _, f := range SampleRing(a, b, 0.5, 0, 8) {
		if f.V[1] != 0 || f.V[2] != 0 || f.V[3] != 0 || f.T != 0 {
			t.Fatalf("stale registers leaked: %+v", f)
		}
	}
}

func TestSamplePolygon(t *testing.T) {
	a := NewArena(ArenaConfig{})
	b := MakeBasis(nil, axisY)
	const sides = 5
	verts := SamplePolygon(a, b, 0.5, 0, sides, sides)
	for i, f := range verts {
		if got := angleBetween(f.Pos, b.W); math.Abs(got-math.Pi/4) > 1e-9 {
			t.Errorf("vertex %d at %v from W, want π/4", i, got)
		}
	}
	// The middle of each edge sits at the apothem.
	dense := SamplePolygon(a, b, 0.5, 0, sides, 2*sides)
	apothem := 0.5 * math.Cos(math.Pi/sides) * math.Pi / 2
	for i := 1; i < len(dense); i += 2 {
		if got := angleBetween(dense[i].Pos, b.W); math.Abs(got-apothem) > 1e-9 {
			t.Errorf("edge middle %d at %v from W, want %v", i, got, apothem)
		}
	}
}

func TestSampleStar(t *testing.T) {
	a := NewArena(ArenaConfig{})
	b := MakeBasis(nil, axisY)
	star := SampleStar(a, b, 0.6, 0.3, 0, 5)
	if len(star) != 10 {
		t.Fatalf("len(SampleStar) = %d, want 10", len(star))
	}
	for i, f := range star {
		want := 0.6 * math.Pi / 2
		if i%2 == 1 {
			want = 0.3 * math.Pi / 2
		}
		if got := angleBetween(f.Pos, b.W); math.Abs(got-want) > 1e-9 {
			t.Errorf("vertex %d at %v from W, want %v", i, got, want)
		}
	}

	// Flipped frame: both radii are measured from the antipode.
	flipped := SampleStar(a, b, 1.4, 1.7, 0, 3)
	for i, f := range flipped {
		want := 1.4 * math.Pi / 2
		if i%2 == 1 {
			want = 1.7 * math.Pi / 2
		}
		if got := angleBetween(f.Pos, b.W); math.Abs(got-want) > 1e-9 {
			t.Errorf("flipped vertex %d at %v from W, want %v", i, got, want)
		}
	}
}

func TestSampleFlower(t *testing.T) {
	a := NewArena(ArenaConfig{})
	b := MakeBasis(nil, axisY)
	flower := SampleFlower(a, b, 0.8, 0, 4, 32)
	if got := angleBetween(flower[0].Pos, b.W); got > 1e-9 {
		t.Errorf("first sample %v from W, want on W", got)
	}
	// Sector middles, every 8 samples offset by 4, reach the full radius.
	for i := 4; i < 32; i += 8 {
		if got := angleBetween(flower[i].Pos, b.W); math.Abs(got-0.8*math.Pi/2) > 1e-9 {
			t.Errorf("petal tip %d at %v from W, want %v", i, got, 0.8*math.Pi/2)
		}
	}
}

func TestSampleDistortedRing(t *testing.T) {
	a := NewArena(ArenaConfig{})
	b := MakeBasis(nil, r3.Vec{Z: 1})
	const d = 0.1
	ring := SampleDistortedRing(a, b, 0.5, 0, 24, func(float64) float64 { return d })
	for i, f := range ring {
		if got := angleBetween(f.Pos, b.W); math.Abs(got-(math.Pi/4+d)) > 1e-9 {
			t.Errorf("sample %d at %v from W, want %v", i, got, math.Pi/4+d)
		}
	}
	plain := SampleDistortedRing(a, b, 0.5, 0, 24, nil)
	want := SampleRing(a, b, 0.5, 0, 24)
	for i := range plain {
		if !vecNear(plain[i].Pos, want[i].Pos, 1e-12) {
			t.Errorf("nil shift sample %d = %v, want %v", i, plain[i].Pos, want[i].Pos)
		}
	}
}

func TestDrawShapesClosed(t *testing.T) {
	b := MakeBasis(nil, r3.Vec{X: 0.2, Y: 1})
	tests := []struct {
		name string
		draw func(a *Arena, pl Plotter) int
		want int
	}{
		{"ring", func(a *Arena, pl Plotter) int { return DrawRing(a, pl, b, 0.4, 0, 20, solidShader) }, 20},
		{"polygon", func(a *Arena, pl Plotter) int { return DrawPolygon(a, pl, b, 0.4, 0, 6, solidShader) }, 6},
		{"star", func(a *Arena, pl Plotter) int { return DrawStar(a, pl, b, 0.5, 0.2, 0, 5, solidShader) }, 10},
		{"flower", func(a *Arena, pl Plotter) int { return DrawFlower(a, pl, b, 0.5, 0, 3, 30, solidShader) }, 30},
		{"distorted", func(a *Arena, pl Plotter) int {
			return DrawDistortedRing(a, pl, b, 0.5, 0, 40, math.Sin, solidShader)
		}, 40},
		{"antipodal", func(a *Arena, pl Plotter) int { return DrawRing(a, pl, b, 1.6, 0, 20, solidShader) }, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewArena(ArenaConfig{})
			rec := newRecorder(96, 20)
			if got := tt.draw(a, rec); got != tt.want {
				t.Errorf("segments = %d, want %d", got, tt.want)
			}
			if len(rec.samples) < tt.want {
				t.Errorf("samples = %d, want >= %d", len(rec.samples), tt.want)
			}
			for _, s := range rec.samples {
				if hasNaN(s.pos) {
					t.Fatalf("NaN sample %v", s.pos)
				}
			}
		})
	}
}
