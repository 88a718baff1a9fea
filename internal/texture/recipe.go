package texture

import (
	"fmt"
	"strings"
)

// Family selects how a recipe builds its texture
type Family string

const (
	FamilyOre    Family = "ore"
	FamilyBanded Family = "banded"
	FamilyRubble Family = "rubble"
	FamilySprite Family = "sprite"
)

// AllFamilies returns all valid recipe families
func AllFamilies() []Family {
	return []Family{FamilyOre, FamilyBanded, FamilyRubble, FamilySprite}
}

// ParseFamily parses a family name, case-insensitively.
func ParseFamily(input string) (Family, error) {
	f := Family(strings.ToLower(strings.TrimSpace(input)))
	for _, valid := range AllFamilies() {
		if f == valid {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown family %q, valid families: %v", ErrInvalidRecipe, input, AllFamilies())
}

// SpriteKind selects the drawing used by a sprite recipe
type SpriteKind string

const (
	SpriteGrass  SpriteKind = "grass"
	SpriteFlower SpriteKind = "flower"
)

// AllSpriteKinds returns all valid sprite kinds
func AllSpriteKinds() []SpriteKind {
	return []SpriteKind{SpriteGrass, SpriteFlower}
}

// OreParams configures an ore vein: stone base, cracks, then mineral clusters.
type OreParams struct {
	Base      Color
	Dark      Color
	Mid       Color
	Light     Color
	Cracks    int
	Clusters  int
	Variation int
}

// RubbleParams configures mossy rubble: stone base, seams, then moss.
type RubbleParams struct {
	Stone       StoneParams
	Seams       int
	MossPatches int
}

// SpriteParams configures a transparent sprite.
type SpriteParams struct {
	Kind SpriteKind
}

// Recipe is a named, pure description of one texture. Family is the tag of
// a closed variant: only the params block matching Family is read.
type Recipe struct {
	Name   string
	Seed   int64
	Family Family

	Ore    OreParams
	Banded BandedParams
	Rubble RubbleParams
	Sprite SpriteParams
}

// layerPlan is a validated recipe: the base layer and the ordered passes.
type layerPlan struct {
	base     func(*Stream) *Canvas
	features []Feature
}

// WithSeed returns a copy of r using seed.
func (r Recipe) WithSeed(seed int64) Recipe {
	r.Seed = seed
	return r
}

// Validate checks the recipe without generating it.
func (r Recipe) Validate() error {
	_, err := r.plan()
	return err
}

// Generate runs the recipe: one stream from Seed, the base layer, then each
// feature pass in order. The same recipe always produces the same pixels.
func (r Recipe) Generate() (*Canvas, error) {
	p, err := r.plan()
	if err != nil {
		return nil, err
	}
	s := NewStream(r.Seed)
	c := p.base(s)
	for _, f := range p.features {
		f.Apply(c, s)
	}
	return c, nil
}

// Features lists the passes applied after the base layer, in order.
func (r Recipe) Features() ([]Feature, error) {
	p, err := r.plan()
	if err != nil {
		return nil, err
	}
	return p.features, nil
}

func (r Recipe) plan() (layerPlan, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return layerPlan{}, fmt.Errorf("%w: name is required", ErrInvalidRecipe)
	}
	// Names become output file names.
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return layerPlan{}, fmt.Errorf("%w: name %q must be a plain file name", ErrInvalidRecipe, r.Name)
	}

	var p layerPlan
	switch r.Family {
	case FamilyOre:
		o := r.Ore
		stone := StoneParams{
			Base:           o.Base,
			Variation:      o.Variation,
			DarkFleckRate:  0.12,
			LightFleckRate: 0.08,
		}
		if err := stone.Validate(); err != nil {
			return layerPlan{}, r.wrap(err)
		}
		p.base = func(s *Stream) *Canvas { return StoneBase(s, stone) }
		p.features = []Feature{
			NewCracks(o.Cracks),
			OreSpeckles{Dark: o.Dark, Mid: o.Mid, Light: o.Light, Clusters: o.Clusters},
		}
	case FamilyBanded:
		banded := r.Banded
		if err := banded.Validate(); err != nil {
			return layerPlan{}, r.wrap(err)
		}
		p.base = func(s *Stream) *Canvas { return BandedBase(s, banded) }
	case FamilyRubble:
		rb := r.Rubble
		if err := rb.Stone.Validate(); err != nil {
			return layerPlan{}, r.wrap(err)
		}
		p.base = func(s *Stream) *Canvas { return StoneBase(s, rb.Stone) }
		p.features = []Feature{Seams{Lines: rb.Seams}, Moss{Patches: rb.MossPatches}}
	case FamilySprite:
		p.base = func(*Stream) *Canvas { return TransparentBase() }
		switch r.Sprite.Kind {
		case SpriteGrass:
			p.features = []Feature{GrassBlades{}}
		case SpriteFlower:
			p.features = []Feature{Flower{}}
		default:
			return layerPlan{}, fmt.Errorf("%w: %s: unknown sprite kind %q, valid kinds: %v",
				ErrInvalidRecipe, r.Name, r.Sprite.Kind, AllSpriteKinds())
		}
	default:
		return layerPlan{}, fmt.Errorf("%w: %s: unknown family %q", ErrInvalidRecipe, r.Name, r.Family)
	}

	for _, f := range p.features {
		if err := f.Validate(); err != nil {
			return layerPlan{}, r.wrap(err)
		}
	}
	return p, nil
}

func (r Recipe) wrap(err error) error {
	return fmt.Errorf("%s: %w", r.Name, err)
}

// Describe returns a short human readable summary of the recipe's layers.
func (r Recipe) Describe() string {
	switch r.Family {
	case FamilyOre:
		return fmt.Sprintf("stone + %d cracks + %d clusters", r.Ore.Cracks, r.Ore.Clusters)
	case FamilyBanded:
		return fmt.Sprintf("banded gradient %s -> %s", r.Banded.Top.Hex(), r.Banded.Bottom.Hex())
	case FamilyRubble:
		return fmt.Sprintf("stone + %d seams + %d moss", r.Rubble.Seams, r.Rubble.MossPatches)
	case FamilySprite:
		return fmt.Sprintf("%s sprite", r.Sprite.Kind)
	}
	return string(r.Family)
}
