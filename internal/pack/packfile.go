package pack

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mrsinham/blockforge/internal/export"
	"github.com/mrsinham/blockforge/internal/texture"
)

// PackFile is a saved generation setup. It can be written by the wizard or
// by hand and replayed with `blockforge generate --pack`.
type PackFile struct {
	Name         string       `yaml:"name,omitempty"`
	OutputDir    string       `yaml:"output_dir,omitempty"`
	Seed         int64        `yaml:"seed,omitempty"`
	Workers      int          `yaml:"workers,omitempty"`
	Formats      []string     `yaml:"formats,omitempty"`
	PreviewScale int          `yaml:"preview_scale,omitempty"`
	ContactSheet bool         `yaml:"contact_sheet,omitempty"`
	Atlas        bool         `yaml:"atlas,omitempty"`
	Textures     []string     `yaml:"textures,omitempty"`
	Recipes      []RecipeSpec `yaml:"recipes,omitempty"`
}

// RecipeSpec is the YAML form of a custom recipe. Colors are hex strings;
// only the fields of the recipe's family are read.
type RecipeSpec struct {
	Name   string `yaml:"name"`
	Family string `yaml:"family"`
	Seed   int64  `yaml:"seed"`

	// ore and rubble
	Base      string `yaml:"base,omitempty"`
	Variation *int   `yaml:"variation,omitempty"`
	// ore
	Dark     string `yaml:"dark,omitempty"`
	Mid      string `yaml:"mid,omitempty"`
	Light    string `yaml:"light,omitempty"`
	Cracks   *int   `yaml:"cracks,omitempty"`
	Clusters *int   `yaml:"clusters,omitempty"`
	// banded
	Top    string   `yaml:"top,omitempty"`
	Bottom string   `yaml:"bottom,omitempty"`
	Mix    *float64 `yaml:"mix,omitempty"`
	// rubble
	Seams       *int     `yaml:"seams,omitempty"`
	Moss        *int     `yaml:"moss,omitempty"`
	DarkFlecks  *float64 `yaml:"dark_flecks,omitempty"`
	LightFlecks *float64 `yaml:"light_flecks,omitempty"`
	// sprite
	Kind string `yaml:"kind,omitempty"`
}

// LoadPackFile reads and validates a pack file.
func LoadPackFile(path string) (*PackFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pack file: %w", err)
	}
	var pf PackFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse pack file: %w", err)
	}
	if err := pf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pack file %s: %w", path, err)
	}
	return &pf, nil
}

// SavePackFile writes pf as YAML, creating parent directories.
func SavePackFile(path string, pf *PackFile) error {
	if err := pf.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(pf)
	if err != nil {
		return fmt.Errorf("encode pack file: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create pack directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write pack file: %w", err)
	}
	return nil
}

// Validate checks formats, custom recipes and the texture selection.
func (pf *PackFile) Validate() error {
	if _, err := export.ParseFormats(strings.Join(pf.Formats, ",")); err != nil {
		return err
	}
	if pf.PreviewScale < 0 {
		return fmt.Errorf("preview_scale must be >= 0, got %d", pf.PreviewScale)
	}
	if pf.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", pf.Workers)
	}
	_, err := pf.Selected()
	return err
}

// Catalog returns the default catalog with the custom recipes merged over
// it. A custom recipe replaces a built-in one of the same name.
func (pf *PackFile) Catalog() (*texture.Catalog, error) {
	custom := make([]texture.Recipe, 0, len(pf.Recipes))
	for i, spec := range pf.Recipes {
		r, err := spec.Recipe()
		if err != nil {
			return nil, fmt.Errorf("recipes[%d]: %w", i, err)
		}
		custom = append(custom, r)
	}
	customCatalog, err := texture.NewCatalog(custom...)
	if err != nil {
		return nil, err
	}
	catalog := texture.DefaultCatalog()
	catalog.Merge(customCatalog)
	return catalog, nil
}

// Selected resolves Textures against the merged catalog. An empty list
// selects every texture.
func (pf *PackFile) Selected() ([]texture.Recipe, error) {
	catalog, err := pf.Catalog()
	if err != nil {
		return nil, err
	}
	return catalog.Select(pf.Textures...)
}

// Options converts the pack file to generation options. outputDir, when
// set, overrides the file's output_dir.
func (pf *PackFile) Options(outputDir string) (Options, error) {
	recipes, err := pf.Selected()
	if err != nil {
		return Options{}, err
	}
	formats, err := export.ParseFormats(strings.Join(pf.Formats, ","))
	if err != nil {
		return Options{}, err
	}
	if outputDir == "" {
		outputDir = pf.OutputDir
	}
	return Options{
		OutputDir:    outputDir,
		Recipes:      recipes,
		Seed:         pf.Seed,
		Workers:      pf.Workers,
		Formats:      formats,
		PreviewScale: pf.PreviewScale,
		ContactSheet: pf.ContactSheet,
		Atlas:        pf.Atlas,
		Name:         pf.Name,
	}, nil
}

// Recipe converts the spec to a validated recipe. Missing counts take the
// built-in defaults.
func (s RecipeSpec) Recipe() (texture.Recipe, error) {
	family, err := texture.ParseFamily(s.Family)
	if err != nil {
		return texture.Recipe{}, fmt.Errorf("%s: %w", s.Name, err)
	}
	r := texture.Recipe{Name: strings.TrimSpace(s.Name), Seed: s.Seed, Family: family}

	var colorErr error
	color := func(field, value string) texture.Color {
		if colorErr != nil {
			return texture.Color{}
		}
		c, err := texture.ParseHex(value)
		if err != nil {
			colorErr = fmt.Errorf("%s: %s: %w", s.Name, field, err)
		}
		return c
	}

	switch family {
	case texture.FamilyOre:
		r.Ore = texture.OreParams{
			Base:      color("base", s.Base),
			Dark:      color("dark", s.Dark),
			Mid:       color("mid", s.Mid),
			Light:     color("light", s.Light),
			Cracks:    intOr(s.Cracks, 0),
			Clusters:  intOr(s.Clusters, texture.DefaultOreClusters),
			Variation: intOr(s.Variation, texture.DefaultOreVariation),
		}
	case texture.FamilyBanded:
		r.Banded = texture.BandedParams{
			Top:    color("top", s.Top),
			Bottom: color("bottom", s.Bottom),
			Mix:    floatOr(s.Mix, texture.DefaultBandedMix),
		}
	case texture.FamilyRubble:
		stone := texture.DefaultStoneParams(color("base", s.Base))
		stone.Variation = intOr(s.Variation, stone.Variation)
		stone.DarkFleckRate = floatOr(s.DarkFlecks, stone.DarkFleckRate)
		stone.LightFleckRate = floatOr(s.LightFlecks, stone.LightFleckRate)
		r.Rubble = texture.RubbleParams{
			Stone:       stone,
			Seams:       intOr(s.Seams, texture.DefaultSeamLines),
			MossPatches: intOr(s.Moss, texture.DefaultMossPatches),
		}
	case texture.FamilySprite:
		r.Sprite = texture.SpriteParams{Kind: texture.SpriteKind(strings.ToLower(strings.TrimSpace(s.Kind)))}
	}
	if colorErr != nil {
		return texture.Recipe{}, fmt.Errorf("%w: %v", texture.ErrInvalidRecipe, colorErr)
	}
	if err := r.Validate(); err != nil {
		return texture.Recipe{}, err
	}
	return r, nil
}

// SpecFromRecipe is the inverse of RecipeSpec.Recipe.
func SpecFromRecipe(r texture.Recipe) RecipeSpec {
	s := RecipeSpec{Name: r.Name, Family: string(r.Family), Seed: r.Seed}
	switch r.Family {
	case texture.FamilyOre:
		o := r.Ore
		s.Base, s.Dark, s.Mid, s.Light = o.Base.Hex(), o.Dark.Hex(), o.Mid.Hex(), o.Light.Hex()
		s.Cracks, s.Clusters, s.Variation = &o.Cracks, &o.Clusters, &o.Variation
	case texture.FamilyBanded:
		b := r.Banded
		s.Top, s.Bottom, s.Mix = b.Top.Hex(), b.Bottom.Hex(), &b.Mix
	case texture.FamilyRubble:
		rb := r.Rubble
		s.Base = rb.Stone.Base.Hex()
		s.Variation, s.Seams, s.Moss = &rb.Stone.Variation, &rb.Seams, &rb.MossPatches
		s.DarkFlecks, s.LightFlecks = &rb.Stone.DarkFleckRate, &rb.Stone.LightFleckRate
	case texture.FamilySprite:
		s.Kind = string(r.Sprite.Kind)
	}
	return s
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
