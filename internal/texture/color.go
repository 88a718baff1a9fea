package texture

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is an RGB triple used as algorithm input. Channels are plain ints so
// intermediate arithmetic can leave [0,255]; every write into a Canvas clamps.
type Color struct {
	R, G, B int
}

// RGB is a shorthand constructor for Color.
func RGB(r, g, b int) Color {
	return Color{R: r, G: g, B: b}
}

// Clamp constrains value to [lo, hi].
func Clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// ClampChannel constrains a channel value to [0, 255].
func ClampChannel(v int) int {
	return Clamp(v, 0, 255)
}

// Clamp returns c with every channel constrained to [0, 255].
func (c Color) Clamp() Color {
	return Color{R: ClampChannel(c.R), G: ClampChannel(c.G), B: ClampChannel(c.B)}
}

// Add returns c with delta added to every channel, clamped.
func (c Color) Add(delta int) Color {
	return Color{R: c.R + delta, G: c.G + delta, B: c.B + delta}.Clamp()
}

// Hex returns the "#rrggbb" form of the clamped color.
func (c Color) Hex() string {
	cc := c.Clamp()
	return fmt.Sprintf("#%02x%02x%02x", cc.R, cc.G, cc.B)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// ParseHex parses "#rrggbb" (the leading '#' is optional).
func ParseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: expected 6-char hex", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, nil
}

// Jitter adds an independent value drawn from [-amount, amount] to each
// channel, in R, G, B order, and clamps. It always consumes exactly three
// draws from s, so an amount of zero leaves the color unchanged without
// shifting the positions of later draws. A negative amount panics.
func Jitter(c Color, amount int, s *Stream) Color {
	if amount < 0 {
		panic(fmt.Sprintf("texture: negative jitter amount %d", amount))
	}
	r := c.R + s.IntRange(-amount, amount)
	g := c.G + s.IntRange(-amount, amount)
	b := c.B + s.IntRange(-amount, amount)
	return Color{R: r, G: g, B: b}.Clamp()
}

// Blend linearly interpolates from c1 to c2 by t, truncating toward zero.
// t outside [0,1] extrapolates; the result is still clamped.
func Blend(c1, c2 Color, t float64) Color {
	if math.IsNaN(t) {
		t = 0
	}
	return Color{
		R: lerpChannel(c1.R, c2.R, t),
		G: lerpChannel(c1.G, c2.G, t),
		B: lerpChannel(c1.B, c2.B, t),
	}
}

func lerpChannel(a, b int, t float64) int {
	v := float64(a) + float64(b-a)*t
	// Bound before the int conversion so extreme t cannot overflow it.
	v = math.Max(-1, math.Min(256, v))
	return ClampChannel(int(v))
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
