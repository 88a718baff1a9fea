package texture

// Default counts and colors for ore veins.
const (
	DefaultOreClusters  = 22
	DefaultOreVariation = 11
)

var (
	DefaultCrackColor     = RGB(26, 28, 31)
	DefaultCrackHighlight = RGB(60, 62, 66)
)

const (
	speckleDarkShare  = 0.20
	speckleLightFrom  = 0.80
	speckleRightLight = 0.35
	speckleBelowDark  = 0.30
	crackHighlight    = 0.25
)

// clusterShapes lists the ore cluster stamps in choice order.
var clusterShapes = [][]offset{
	{{0, 0}},
	{{0, 0}, {1, 0}},
	{{0, 0}, {0, 1}},
	{{0, 0}, {1, 0}, {0, 1}},
	{{0, 0}, {-1, 0}, {0, 1}},
}

var crackStepY = []int{0, 1}

// OreSpeckles stamps small clusters of mineral-colored pixels.
type OreSpeckles struct {
	Dark     Color
	Mid      Color
	Light    Color
	Clusters int
}

// Validate implements Feature.
func (o OreSpeckles) Validate() error {
	return validateCount("ore clusters", o.Clusters)
}

// Apply implements Feature.
func (o OreSpeckles) Apply(c *Canvas, s *Stream) {
	for range o.Clusters {
		cx := s.IntRange(1, Size-2)
		cy := s.IntRange(1, Size-2)
		shape := Choose(s, clusterShapes)
		for _, off := range shape {
			x := clampCoord(cx + off.dx)
			y := clampCoord(cy + off.dy)

			pick := s.Float64()
			col := o.Mid
			switch {
			case pick < speckleDarkShare:
				col = o.Dark
			case pick >= speckleLightFrom:
				col = o.Light
			}
			c.Set(x, y, col)

			if x+1 < Size && s.Chance(speckleRightLight) {
				c.Set(x+1, y, o.Light)
			}
			if y+1 < Size && s.Chance(speckleBelowDark) {
				c.Set(x, y+1, o.Dark)
			}
		}
	}
}

// Cracks walks short dark fractures down the canvas.
type Cracks struct {
	Count     int
	Color     Color
	Highlight Color
}

// NewCracks returns count cracks using the default crack colors.
func NewCracks(count int) Cracks {
	return Cracks{Count: count, Color: DefaultCrackColor, Highlight: DefaultCrackHighlight}
}

// Validate implements Feature.
func (k Cracks) Validate() error {
	return validateCount("cracks count", k.Count)
}

// Apply implements Feature.
func (k Cracks) Apply(c *Canvas, s *Stream) {
	for range k.Count {
		k.walk(s, func(x, y int, highlight bool) {
			c.Set(x, y, k.Color)
			if highlight {
				c.Set(x+1, y, k.Highlight)
			}
		})
	}
}

// walk draws one crack path and calls visit for each step. y never
// decreases along the path.
func (k Cracks) walk(s *Stream, visit func(x, y int, highlight bool)) {
	x := s.IntRange(2, Size-3)
	y := s.IntRange(1, Size-2)
	length := s.IntRange(5, 10)
	for range length {
		highlight := x+1 < Size && s.Chance(crackHighlight)
		visit(x, y, highlight)
		x = clampCoord(x + Choose(s, stepAny))
		y = clampCoord(y + Choose(s, crackStepY))
	}
}
