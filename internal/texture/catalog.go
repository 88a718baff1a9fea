package texture

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mrsinham/blockforge/internal/util"
)

// Catalog is a set of recipes keyed by unique name.
type Catalog struct {
	recipes map[string]Recipe
}

// NewCatalog builds a catalog, rejecting invalid recipes and duplicate names.
func NewCatalog(recipes ...Recipe) (*Catalog, error) {
	c := &Catalog{recipes: make(map[string]Recipe, len(recipes))}
	for _, r := range recipes {
		if _, exists := c.recipes[r.Name]; exists {
			return nil, fmt.Errorf("%w: duplicate texture name %q", ErrInvalidRecipe, r.Name)
		}
		if err := c.Add(r); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// DefaultCatalog returns the built-in block textures.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultRecipes()...)
	if err != nil {
		panic(fmt.Sprintf("texture: default catalog is invalid: %v", err))
	}
	return c
}

func oreRecipe(name string, seed int64, base, dark, mid, light Color, cracks int) Recipe {
	return Recipe{
		Name:   name,
		Seed:   seed,
		Family: FamilyOre,
		Ore: OreParams{
			Base:      base,
			Dark:      dark,
			Mid:       mid,
			Light:     light,
			Cracks:    cracks,
			Clusters:  DefaultOreClusters,
			Variation: DefaultOreVariation,
		},
	}
}

func defaultRecipes() []Recipe {
	return []Recipe{
		oreRecipe("coal_vein", 1001, RGB(98, 98, 100), RGB(14, 14, 15), RGB(28, 29, 31), RGB(52, 54, 56), 3),
		oreRecipe("copper_vein", 1002, RGB(101, 103, 106), RGB(112, 65, 37), RGB(153, 89, 49), RGB(198, 127, 72), 4),
		oreRecipe("gold_vein", 1003, RGB(101, 103, 106), RGB(132, 106, 27), RGB(177, 146, 38), RGB(227, 196, 84), 4),
		oreRecipe("diamond_vein", 1004, RGB(99, 102, 105), RGB(62, 135, 145), RGB(88, 178, 190), RGB(159, 229, 235), 3),
		{
			Name:   "tall_grass",
			Seed:   2001,
			Family: FamilySprite,
			Sprite: SpriteParams{Kind: SpriteGrass},
		},
		{
			Name:   "wildflower",
			Seed:   2002,
			Family: FamilySprite,
			Sprite: SpriteParams{Kind: SpriteFlower},
		},
		{
			Name:   "clay_deposit",
			Seed:   3001,
			Family: FamilyBanded,
			Banded: BandedParams{Top: RGB(152, 144, 134), Bottom: RGB(166, 156, 146), Mix: DefaultBandedMix},
		},
		{
			Name:   "mossy_rubble",
			Seed:   4001,
			Family: FamilyRubble,
			Rubble: RubbleParams{
				Stone: StoneParams{
					Base:           RGB(104, 110, 106),
					Variation:      14,
					DarkFleckRate:  0.15,
					LightFleckRate: 0.10,
				},
				Seams:       DefaultSeamLines,
				MossPatches: DefaultMossPatches,
			},
		},
	}
}

// Add validates r and inserts it, replacing any recipe with the same name.
func (c *Catalog) Add(r Recipe) error {
	if err := r.Validate(); err != nil {
		return err
	}
	c.recipes[r.Name] = r
	return nil
}

// Merge adds every recipe of other, overriding same-named entries.
func (c *Catalog) Merge(other *Catalog) {
	for name, r := range other.recipes {
		c.recipes[name] = r
	}
}

// Len returns the number of recipes.
func (c *Catalog) Len() int {
	return len(c.recipes)
}

// Names returns the recipe names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.recipes))
	for name := range c.recipes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Recipes returns every recipe, sorted by name.
func (c *Catalog) Recipes() []Recipe {
	out := make([]Recipe, 0, len(c.recipes))
	for _, name := range c.Names() {
		out = append(out, c.recipes[name])
	}
	return out
}

// Lookup returns the recipe called name. The lookup is case-insensitive; an
// unknown name yields an error suggesting the closest known name.
func (c *Catalog) Lookup(name string) (Recipe, error) {
	if r, ok := c.recipes[name]; ok {
		return r, nil
	}
	// Names differing only by case resolve to the first in sorted order.
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, key := range c.Names() {
		if strings.ToLower(key) == normalized {
			return c.recipes[key], nil
		}
	}

	if suggestion := util.ClosestName(name, c.Names()); suggestion != "" {
		return Recipe{}, fmt.Errorf("unknown texture %q, did you mean %q?", name, suggestion)
	}
	return Recipe{}, fmt.Errorf("unknown texture %q, known textures: %s", name, strings.Join(c.Names(), ", "))
}

// Select resolves names and glob patterns to recipes in catalog order,
// without duplicates. No arguments selects everything. A plain name must
// exist; a pattern must match at least one recipe.
func (c *Catalog) Select(patterns ...string) ([]Recipe, error) {
	if len(patterns) == 0 {
		return c.Recipes(), nil
	}

	wanted := make(map[string]bool)
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !util.IsPattern(p) {
			r, err := c.Lookup(p)
			if err != nil {
				return nil, err
			}
			wanted[r.Name] = true
			continue
		}
		filter, err := util.NewNameFilter([]string{p})
		if err != nil {
			return nil, err
		}
		matched := false
		for _, name := range c.Names() {
			if filter.Match(name) {
				wanted[name] = true
				matched = true
			}
		}
		if !matched {
			return nil, fmt.Errorf("pattern %q matches no texture", p)
		}
	}

	out := make([]Recipe, 0, len(wanted))
	for _, r := range c.Recipes() {
		if wanted[r.Name] {
			out = append(out, r)
		}
	}
	return out, nil
}
