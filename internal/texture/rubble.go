package texture

const (
	DefaultSeamLines   = 5
	DefaultMossPatches = 7
)

var (
	seamColor     = RGB(47, 51, 49)
	seamHighlight = RGB(124, 129, 124)
	seamShadow    = RGB(87, 93, 88)

	mossShades = []Color{RGB(65, 102, 55), RGB(78, 121, 64), RGB(92, 136, 74)}
	mossDark   = RGB(49, 81, 43)
)

// mossStamp is a plus shape: center, right, below, left, up.
var mossStamp = []offset{{0, 0}, {1, 0}, {0, 1}, {-1, 0}, {0, -1}}

// Seams draws wandering mortar lines between rubble stones.
type Seams struct {
	Lines int
}

// Validate implements Feature.
func (m Seams) Validate() error {
	return validateCount("seam lines", m.Lines)
}

// Apply implements Feature. Every line is walked before any pixel is
// painted, so all walk draws precede all paint draws.
func (m Seams) Apply(c *Canvas, s *Stream) {
	var points []offset
	for range m.Lines {
		x := s.IntRange(1, Size-2)
		y := s.IntRange(0, Size-1)
		length := s.IntRange(10, 18)
		for range length {
			points = append(points, offset{x, y})
			x = clampCoord(x + Choose(s, stepAny))
			y = clampCoord(y + Choose(s, stepAny))
		}
	}

	for _, p := range points {
		c.Set(p.dx, p.dy, seamColor)
		if p.dx+1 < Size && s.Chance(0.4) {
			c.Set(p.dx+1, p.dy, seamHighlight)
		}
		if p.dy+1 < Size && s.Chance(0.3) {
			c.Set(p.dx, p.dy+1, seamShadow)
		}
	}
}

// Moss stamps plus-shaped patches of green.
type Moss struct {
	Patches int
}

// Validate implements Feature.
func (m Moss) Validate() error {
	return validateCount("moss patches", m.Patches)
}

// Apply implements Feature.
func (m Moss) Apply(c *Canvas, s *Stream) {
	for range m.Patches {
		cx := s.IntRange(1, Size-2)
		cy := s.IntRange(1, Size-2)
		for _, off := range mossStamp {
			x, y := cx+off.dx, cy+off.dy
			if InBounds(x, y) && s.Chance(0.75) {
				c.Set(x, y, Choose(s, mossShades))
				if y+1 < Size && s.Chance(0.35) {
					c.Set(x, y+1, mossDark)
				}
			}
		}
	}
}
