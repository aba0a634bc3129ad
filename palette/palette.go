// Package palette provides simple palettes for globe drivers and tests.
//
// Effects normally bring their own palettes; these cover the common cases of
// a flat color, a multi-stop gradient and a full hue cycle.
package palette

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	math "github.com/chewxy/math32"

	"github.com/gogpu/globe"
)

// ErrNoStops is returned by NewGradient when called without stops.
var ErrNoStops = errors.New("palette: gradient needs at least one stop")

// Solid returns the same shade for every t.
type Solid struct {
	Color globe.RGB
	Alpha float32
}

// Get implements globe.Palette.
func (s Solid) Get(float64) globe.Shade {
	return globe.Shade{Color: s.Color, Alpha: s.Alpha}
}

// Stop is one control point of a Gradient.
type Stop struct {
	T     float64
	Color globe.RGB
	Alpha float32
}

type hsvStop struct {
	t       float64
	h, s, v float32
	alpha   float32
}

// Gradient interpolates between stops in HSV space. Hue takes the short way
// around the color wheel. t outside the first and last stop clamps.
type Gradient struct {
	stops []hsvStop
}

// NewGradient builds a Gradient from stops in any order.
func NewGradient(stops ...Stop) (*Gradient, error) {
	if len(stops) == 0 {
		return nil, ErrNoStops
	}
	g := &Gradient{stops: make([]hsvStop, len(stops))}
	for i, st := range stops {
		h, s, v := rgbToHSV(st.Color.R, st.Color.G, st.Color.B)
		g.stops[i] = hsvStop{t: st.T, h: h, s: s, v: v, alpha: st.Alpha}
	}
	slices.SortStableFunc(g.stops, func(a, b hsvStop) int {
		switch {
		case a.t < b.t:
			return -1
		case a.t > b.t:
			return 1
		}
		return 0
	})
	return g, nil
}

// Get implements globe.Palette.
func (g *Gradient) Get(t float64) globe.Shade {
	first, last := g.stops[0], g.stops[len(g.stops)-1]
	if t <= first.t {
		return first.shade()
	}
	if t >= last.t {
		return last.shade()
	}
	i := 1
	for g.stops[i].t < t {
		i++
	}
	a, b := g.stops[i-1], g.stops[i]
	if b.t == a.t {
		return b.shade()
	}
	f := float32((t - a.t) / (b.t - a.t))
	h, s, v := interpHSV(a.h, a.s, a.v, b.h, b.s, b.v, f)
	r, gr, bl := hsvToRGB(h, s, v)
	return globe.Shade{
		Color: globe.RGB{R: r, G: gr, B: bl},
		Alpha: a.alpha + (b.alpha-a.alpha)*f,
	}
}

func (s hsvStop) shade() globe.Shade {
	r, g, b := hsvToRGB(s.h, s.s, s.v)
	return globe.Shade{Color: globe.RGB{R: r, G: g, B: b}, Alpha: s.alpha}
}

// Hue cycles once through the fully saturated hues as t goes from 0 to 1,
// starting at red.
type Hue struct {
	Alpha float32
	// Offset shifts the starting hue, in turns.
	Offset float64
}

// Get implements globe.Palette.
func (p Hue) Get(t float64) globe.Shade {
	h := math.Mod(float32(t+p.Offset), 1)
	if h < 0 {
		h++
	}
	r, g, b := hsvToRGB(h, 1, 1)
	return globe.Shade{Color: globe.RGB{R: r, G: g, B: b}, Alpha: p.Alpha}
}

// ParseHex parses a color written as "#rrggbb" or "rrggbb".
func ParseHex(s string) (globe.RGB, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return globe.RGB{}, fmt.Errorf("palette: invalid hex color %q", s)
	}
	c, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return globe.RGB{}, fmt.Errorf("palette: invalid hex color %q: %w", s, err)
	}
	return globe.RGB{
		R: float32(uint8(c>>16)) / math.MaxUint8,
		G: float32(uint8(c>>8)) / math.MaxUint8,
		B: float32(uint8(c)) / math.MaxUint8,
	}, nil
}
