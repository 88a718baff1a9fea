package texture

import "fmt"

// StoneParams configures StoneBase.
type StoneParams struct {
	Base           Color
	Variation      int
	DarkFleckRate  float64
	LightFleckRate float64
}

// DefaultStoneParams returns stone parameters with the standard variation and
// fleck rates for the given base color.
func DefaultStoneParams(base Color) StoneParams {
	return StoneParams{
		Base:           base,
		Variation:      12,
		DarkFleckRate:  0.12,
		LightFleckRate: 0.08,
	}
}

// Validate checks the parameter ranges.
func (p StoneParams) Validate() error {
	if p.Variation < 0 {
		return fmt.Errorf("%w: stone variation must be >= 0, got %d", ErrInvalidRecipe, p.Variation)
	}
	if err := validateRate("dark fleck rate", p.DarkFleckRate); err != nil {
		return err
	}
	return validateRate("light fleck rate", p.LightFleckRate)
}

// StoneBase fills an opaque canvas with jittered stone, occasionally
// darkening or lightening a pixel by 8..20 per channel.
func StoneBase(s *Stream, p StoneParams) *Canvas {
	c := &Canvas{}
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			col := Jitter(p.Base, p.Variation, s)
			if s.Chance(p.DarkFleckRate) {
				col = fleck(col, -1, s)
			} else if s.Chance(p.LightFleckRate) {
				col = fleck(col, 1, s)
			}
			c.Set(x, y, col)
		}
	}
	return c
}

func fleck(c Color, sign int, s *Stream) Color {
	r := c.R + sign*s.IntRange(8, 20)
	g := c.G + sign*s.IntRange(8, 20)
	b := c.B + sign*s.IntRange(8, 20)
	return Color{R: r, G: g, B: b}.Clamp()
}

// BandedParams configures BandedBase.
type BandedParams struct {
	Top    Color
	Bottom Color
	Mix    float64
}

// DefaultBandedMix is the share of the top-to-bottom gradient applied by
// BandedBase when a recipe does not override it.
const DefaultBandedMix = 0.35

// Validate checks the parameter ranges.
func (p BandedParams) Validate() error {
	return validateRate("banded mix", p.Mix)
}

// BandedBase builds an opaque sedimentary gradient: a vertical blend from Top
// toward Bottom, alternating horizontal stripes, per-pixel noise and a
// diagonal drift on the red channel.
func BandedBase(s *Stream, p BandedParams) *Canvas {
	c := &Canvas{}
	for y := 0; y < Size; y++ {
		t := float64(y) / float64(Size-1)
		row := Blend(p.Top, p.Bottom, t*p.Mix)
		stripe := 5
		if m := y % 4; m == 1 || m == 2 {
			stripe = -7
		}
		for x := 0; x < Size; x++ {
			noise := s.IntRange(-5, 5)
			drift := (x+y)%5 - 2
			c.Set(x, y, Color{
				R: row.R + stripe + noise + drift,
				G: row.G + stripe + floorDiv(noise, 2),
				B: row.B + stripe + floorDiv(noise, 3),
			})
		}
	}
	return c
}

// TransparentBase returns a canvas with every pixel (0,0,0,0).
func TransparentBase() *Canvas {
	return &Canvas{}
}

func validateRate(what string, v float64) error {
	if !(v >= 0 && v <= 1) {
		return fmt.Errorf("%w: %s must be within [0,1], got %v", ErrInvalidRecipe, what, v)
	}
	return nil
}
