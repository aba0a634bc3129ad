package palette

import (
	"errors"
	"testing"

	math "github.com/chewxy/math32"

	"github.com/gogpu/globe"
)

var _ globe.Palette = Solid{}
var _ globe.Palette = (*Gradient)(nil)
var _ globe.Palette = Hue{}

func near(a, b globe.RGB) bool {
	const eps = 1e-5
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps && math.Abs(a.B-b.B) < eps
}

func TestSolid(t *testing.T) {
	p := Solid{Color: globe.Red, Alpha: 0.5}
	for _, tt := range []float64{0, 0.3, 1} {
		if got := p.Get(tt); got.Color != globe.Red || got.Alpha != 0.5 {
			t.Errorf("Get(%v) = %+v", tt, got)
		}
	}
}

func TestGradient(t *testing.T) {
	g, err := NewGradient(
		Stop{T: 1, Color: globe.Blue, Alpha: 1},
		Stop{T: 0, Color: globe.Red, Alpha: 0},
	)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name  string
		t     float64
		color globe.RGB
		alpha float32
	}{
		{"before", -1, globe.Red, 0},
		{"start", 0, globe.Red, 0},
		{"end", 1, globe.Blue, 1},
		{"after", 2, globe.Blue, 1},
		// Red (h=0) to blue (h=2/3) wraps through magenta (h=5/6).
		{"middle", 0.5, globe.RGB{R: 1, B: 1}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Get(tt.t)
			if !near(got.Color, tt.color) || math.Abs(got.Alpha-tt.alpha) > 1e-6 {
				t.Errorf("Get(%v) = %+v, want {%v %v}", tt.t, got, tt.color, tt.alpha)
			}
		})
	}
}

func TestGradientNoStops(t *testing.T) {
	if _, err := NewGradient(); !errors.Is(err, ErrNoStops) {
		t.Errorf("NewGradient() error = %v, want ErrNoStops", err)
	}
}

func TestHue(t *testing.T) {
	tests := []struct {
		t    float64
		want globe.RGB
	}{
		{0, globe.Red},
		{1.0 / 3, globe.Green},
		{2.0 / 3, globe.Blue},
		{1, globe.Red},
		{-1.0 / 3, globe.Blue},
	}
	for _, tt := range tests {
		if got := (Hue{Alpha: 1}).Get(tt.t); !near(got.Color, tt.want) {
			t.Errorf("Hue.Get(%v) = %v, want %v", tt.t, got.Color, tt.want)
		}
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    globe.RGB
		wantErr bool
	}{
		{"#ff0000", globe.Red, false},
		{"00ff00", globe.Green, false},
		{"#000000", globe.Black, false},
		{"#fff", globe.RGB{}, true},
		{"#gg0000", globe.RGB{}, true},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHSVRoundTrip(t *testing.T) {
	for _, c := range []globe.RGB{globe.Red, globe.Green, globe.Blue, {R: 0.2, G: 0.6, B: 0.4}, {R: 0.9, G: 0.1, B: 0.7}} {
		h, s, v := rgbToHSV(c.R, c.G, c.B)
		r, g, b := hsvToRGB(h, s, v)
		if got := (globe.RGB{R: r, G: g, B: b}); !near(got, c) {
			t.Errorf("hsv round trip of %v = %v", c, got)
		}
	}
}
