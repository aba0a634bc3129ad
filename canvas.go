package globe

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/gogpu/globe/internal/blend"
)

// BlendMode selects how the canvas composites incoming samples.
type BlendMode uint8

const (
	// BlendOver is straight-alpha blending with a full-overwrite fast path
	// at alpha >= 0.999.
	BlendOver BlendMode = iota
	// BlendAdd sums the alpha-scaled source and clamps to 1.
	BlendAdd
	// BlendMax keeps the per-channel maximum of the alpha-scaled source and
	// the destination.
	BlendMax
)

// String returns the lowercase mode name, as used in configuration files.
func (m BlendMode) String() string {
	return m.internal().String()
}

func (m BlendMode) internal() blend.Mode {
	switch m {
	case BlendAdd:
		return blend.Add
	case BlendMax:
		return blend.Max
	default:
		return blend.Over
	}
}

// ParseBlendMode returns the BlendMode named s ("over", "add" or "max").
func ParseBlendMode(s string) (BlendMode, bool) {
	switch s {
	case "over", "":
		return BlendOver, true
	case "add":
		return BlendAdd, true
	case "max":
		return BlendMax, true
	default:
		return BlendOver, false
	}
}

// Canvas is the destination buffer: a flat RGB accumulator over a Grid.
//
// Blend is the only place pixel memory is mutated. The canvas performs no
// double-buffering; drivers snapshot it (ToImage, Preview) for display.
type Canvas struct {
	grid Grid
	pix  []float32 // RGB, 3 floats per pixel
	mode blend.Mode
}

// NewCanvas creates a black canvas of the given dimensions.
func NewCanvas(width, height int) *Canvas {
	width = max(width, 1)
	height = max(height, 2)
	return &Canvas{
		grid: Grid{Width: width, Height: height},
		pix:  make([]float32, width*height*3),
	}
}

// Grid returns the canvas grid.
func (c *Canvas) Grid() Grid { return c.grid }

// Pix returns the raw RGB data, 3 floats per pixel in row-major order.
func (c *Canvas) Pix() []float32 { return c.pix }

// SetBlendMode sets the compositing operator used by Blend.
func (c *Canvas) SetBlendMode(m BlendMode) { c.mode = m.internal() }

// BlendMode returns the current compositing operator.
func (c *Canvas) BlendMode() BlendMode {
	switch c.mode {
	case blend.Add:
		return BlendAdd
	case blend.Max:
		return BlendMax
	default:
		return BlendOver
	}
}

// Blend composites col with the given alpha into pixel (x, y).
// x wraps around and y is clamped.
func (c *Canvas) Blend(x, y int, col RGB, alpha float32) {
	i := c.grid.Index(x, y) * 3
	blend.Apply(c.mode, c.pix[i:i+3], col.R, col.G, col.B, alpha)
}

// Pixel returns the color stored at (x, y).
func (c *Canvas) Pixel(x, y int) RGB {
	i := c.grid.Index(x, y) * 3
	return RGB{R: c.pix[i], G: c.pix[i+1], B: c.pix[i+2]}
}

// Clear sets every pixel to black.
func (c *Canvas) Clear() {
	clear(c.pix)
}

// Fade multiplies every channel by f.
func (c *Canvas) Fade(f float32) {
	for i := range c.pix {
		c.pix[i] *= f
	}
}

// ToImage converts the canvas to an 8-bit image.RGBA.
func (c *Canvas) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.grid.Width, c.grid.Height))
	for p, o := 0, 0; p < len(c.pix); p, o = p+3, o+4 {
		img.Pix[o+0] = to8(c.pix[p+0])
		img.Pix[o+1] = to8(c.pix[p+1])
		img.Pix[o+2] = to8(c.pix[p+2])
		img.Pix[o+3] = 255
	}
	return img
}

// Preview returns the canvas upscaled by an integer factor with
// nearest-neighbor sampling, so each grid cell stays a crisp block.
func (c *Canvas) Preview(scale int) *image.RGBA {
	src := c.ToImage()
	if scale <= 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, c.grid.Width*scale, c.grid.Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// SavePNG writes Preview(scale) to a PNG file.
func (c *Canvas) SavePNG(path string, scale int) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, c.Preview(scale))
}

// At implements the image.Image interface.
func (c *Canvas) At(x, y int) color.Color {
	if x < 0 || x >= c.grid.Width || y < 0 || y >= c.grid.Height {
		return color.NRGBA{}
	}
	return c.Pixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.grid.Width, c.grid.Height)
}

// ColorModel implements the image.Image interface.
func (c *Canvas) ColorModel() color.Model {
	return color.NRGBAModel
}
