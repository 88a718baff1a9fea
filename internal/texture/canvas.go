// Package texture implements the deterministic 16x16 block texture engine:
// color helpers, the seeded stream, base layers, feature passes and the
// recipe catalog.
package texture

import (
	"image"
	"image/color"
)

// Size is the edge length of every canvas.
const Size = 16

// Pixel is one RGBA canvas cell.
type Pixel struct {
	R, G, B, A uint8
}

// Opaque reports whether the pixel has full alpha.
func (p Pixel) Opaque() bool {
	return p.A == 255
}

// Canvas is a fixed Size x Size RGBA grid stored row-major. The zero value is
// fully transparent.
type Canvas struct {
	pix [Size * Size]Pixel
}

// NewCanvas returns a canvas with every pixel set to fill.
func NewCanvas(fill Pixel) *Canvas {
	c := &Canvas{}
	for i := range c.pix {
		c.pix[i] = fill
	}
	return c
}

// InBounds reports whether (x, y) lies on the canvas.
func InBounds(x, y int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}

func clampCoord(v int) int {
	return Clamp(v, 0, Size-1)
}

// Set writes an opaque color at (x, y). Coordinates are clamped to the canvas
// and channels to [0,255] before the write.
func (c *Canvas) Set(x, y int, col Color) {
	cc := col.Clamp()
	c.pix[clampCoord(y)*Size+clampCoord(x)] = Pixel{
		R: uint8(cc.R),
		G: uint8(cc.G),
		B: uint8(cc.B),
		A: 255,
	}
}

// At returns the pixel at (x, y), with coordinates clamped.
func (c *Canvas) At(x, y int) Pixel {
	return c.pix[clampCoord(y)*Size+clampCoord(x)]
}

// Bytes returns the canvas as Size*Size*4 bytes, RGBA, row-major.
func (c *Canvas) Bytes() []byte {
	out := make([]byte, 0, len(c.pix)*4)
	for _, p := range c.pix {
		out = append(out, p.R, p.G, p.B, p.A)
	}
	return out
}

// Equal reports whether both canvases hold identical pixels.
func (c *Canvas) Equal(other *Canvas) bool {
	if other == nil {
		return false
	}
	return c.pix == other.pix
}

// Clone returns an independent copy.
func (c *Canvas) Clone() *Canvas {
	cp := *c
	return &cp
}

// Image converts the canvas to a standard library image.
func (c *Canvas) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, Size, Size))
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			p := c.pix[y*Size+x]
			img.SetNRGBA(x, y, color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A})
		}
	}
	return img
}
