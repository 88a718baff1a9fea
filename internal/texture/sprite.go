package texture

var (
	grassRoot     = RGB(58, 112, 44)
	grassTip      = RGB(136, 186, 79)
	grassSideRoot = RGB(48, 96, 38)
	grassSideTip  = RGB(118, 170, 73)

	stemBottom    = RGB(44, 104, 41)
	stemTop       = RGB(98, 156, 72)
	leafColor     = RGB(76, 142, 63)
	leafHighlight = RGB(64, 128, 56)
	flowerCenter  = RGB(242, 215, 106)
	petalPalette  = []Color{RGB(212, 70, 70), RGB(241, 206, 82), RGB(226, 125, 171)}
	petalOffsets  = []offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, -1}, {1, -1}}
)

// GrassBlades draws a tuft of leaning blades rooted on the bottom row.
type GrassBlades struct{}

// Validate implements Feature.
func (GrassBlades) Validate() error { return nil }

// Apply implements Feature.
func (GrassBlades) Apply(c *Canvas, s *Stream) {
	blades := s.IntRange(6, 8)
	for range blades {
		x := s.IntRange(1, Size-2)
		height := s.IntRange(6, 12)
		lean := Choose(s, stepAny)
		for i := range height {
			y := Size - 1 - i
			bx := clampCoord(x + (i/3)*lean)
			t := float64(i) / float64(max(1, height-1))
			c.Set(bx, y, Blend(grassRoot, grassTip, t))
			// The draw happens even when the side pixel would fall off the canvas.
			if s.Chance(0.20) && bx+1 < Size {
				c.Set(bx+1, y, Blend(grassSideRoot, grassSideTip, t))
			}
		}
	}
}

// Flower draws a single stemmed flower with two leaves and a petal ring.
type Flower struct{}

// Validate implements Feature.
func (Flower) Validate() error { return nil }

// Apply implements Feature.
func (Flower) Apply(c *Canvas, s *Stream) {
	stemX := s.IntRange(7, 8)
	top := s.IntRange(5, 7)
	for y := Size - 1; y >= top; y-- {
		x := stemX
		if y%4 == 0 && s.Chance(0.4) {
			x++
		}
		t := float64(Size-1-y) / 10.0
		c.Set(x, y, Blend(stemBottom, stemTop, t))
	}

	for _, leaf := range []offset{{stemX - 1, 11}, {stemX + 1, 9}} {
		if !InBounds(leaf.dx, leaf.dy) {
			continue
		}
		c.Set(leaf.dx, leaf.dy, leafColor)
		if leaf.dx+1 < Size && s.Chance(0.5) {
			c.Set(leaf.dx+1, leaf.dy, leafHighlight)
		}
	}

	c.Set(stemX, top, flowerCenter)
	for i, off := range petalOffsets {
		x, y := stemX+off.dx, top+off.dy
		if InBounds(x, y) {
			c.Set(x, y, petalPalette[i%len(petalPalette)])
		}
	}
}
