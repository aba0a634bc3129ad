package globe

import (
	"image/color"
	"testing"

	"github.com/chewxy/math32"
)

func TestRGBScale(t *testing.T) {
	got := RGB{R: 1, G: 0.5, B: 0.25}.Scale(0.5)
	want := RGB{R: 0.5, G: 0.25, B: 0.125}
	if got != want {
		t.Errorf("Scale(0.5) = %v, want %v", got, want)
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		name string
		t    float32
		want RGB
	}{
		{"start", 0, Red},
		{"end", 1, Blue},
		{"middle", 0.5, RGB{R: 0.5, B: 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lerp(Red, Blue, tt.t); got != tt.want {
				t.Errorf("Lerp(Red, Blue, %v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestRGBColor(t *testing.T) {
	tests := []struct {
		name string
		c    RGB
		want color.NRGBA
	}{
		{"black", Black, color.NRGBA{A: 255}},
		{"white", White, color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"clamped", RGB{R: 2, G: -1, B: 0.5}, color.NRGBA{R: 255, G: 0, B: 128, A: 255}},
		{"nan", RGB{R: math32.NaN()}, color.NRGBA{A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Color(); got != tt.want {
				t.Errorf("%v.Color() = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}
