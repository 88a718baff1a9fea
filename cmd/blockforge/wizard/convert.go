package wizard

import (
	"fmt"
	"path/filepath"

	"github.com/mrsinham/blockforge/internal/pack"
	"github.com/mrsinham/blockforge/internal/texture"
)

// ToPackFile converts the wizard state to a pack file.
func ToPackFile(s *WizardState) *pack.PackFile {
	pf := &pack.PackFile{
		Name:         s.Global.Name,
		OutputDir:    s.Global.OutputDir,
		Seed:         s.Global.Seed,
		Formats:      append([]string(nil), s.Global.Formats...),
		PreviewScale: s.Global.PreviewScale,
		ContactSheet: s.Global.ContactSheet,
		Atlas:        s.Global.Atlas,
		Textures:     append([]string(nil), s.Textures...),
	}
	for _, rc := range s.Custom {
		pf.Recipes = append(pf.Recipes, toRecipeSpec(rc))
	}
	return pf
}

func toRecipeSpec(rc RecipeConfig) pack.RecipeSpec {
	spec := pack.RecipeSpec{Name: rc.Name, Family: rc.Family, Seed: rc.Seed}
	switch texture.Family(rc.Family) {
	case texture.FamilyOre:
		cracks, clusters := rc.Cracks, rc.Clusters
		spec.Base, spec.Dark, spec.Mid, spec.Light = rc.Base, rc.Dark, rc.Mid, rc.Light
		spec.Cracks, spec.Clusters = &cracks, &clusters
	case texture.FamilyBanded:
		spec.Top, spec.Bottom = rc.Top, rc.Bottom
	case texture.FamilyRubble:
		seams, moss := rc.Seams, rc.Moss
		spec.Base = rc.Base
		spec.Seams, spec.Moss = &seams, &moss
	case texture.FamilySprite:
		spec.Kind = rc.Kind
	}
	return spec
}

// FromPackFile converts a pack file to wizard state. Recipe settings the
// wizard does not edit (variation, fleck rates, banded mix) take their
// defaults when the state is saved again.
func FromPackFile(pf *pack.PackFile) *WizardState {
	s := &WizardState{
		Global: GlobalConfig{
			Name:         pf.Name,
			OutputDir:    pf.OutputDir,
			Seed:         pf.Seed,
			Formats:      append([]string(nil), pf.Formats...),
			PreviewScale: pf.PreviewScale,
			ContactSheet: pf.ContactSheet,
			Atlas:        pf.Atlas,
		},
		Textures: append([]string(nil), pf.Textures...),
	}
	if s.Global.OutputDir == "" {
		s.Global.OutputDir = "textures"
	}
	if len(s.Global.Formats) == 0 {
		s.Global.Formats = []string{"png"}
	}
	for _, spec := range pf.Recipes {
		s.Custom = append(s.Custom, fromRecipeSpec(spec))
	}
	return s
}

func fromRecipeSpec(spec pack.RecipeSpec) RecipeConfig {
	rc := NewRecipeConfig(spec.Family)
	rc.Name, rc.Seed = spec.Name, spec.Seed
	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	setString(&rc.Base, spec.Base)
	setString(&rc.Dark, spec.Dark)
	setString(&rc.Mid, spec.Mid)
	setString(&rc.Light, spec.Light)
	setString(&rc.Top, spec.Top)
	setString(&rc.Bottom, spec.Bottom)
	setString(&rc.Kind, spec.Kind)
	setInt(&rc.Cracks, spec.Cracks)
	setInt(&rc.Clusters, spec.Clusters)
	setInt(&rc.Seams, spec.Seams)
	setInt(&rc.Moss, spec.Moss)
	return rc
}

// NewRecipeConfig returns a custom recipe prefilled with a stone palette.
func NewRecipeConfig(family string) RecipeConfig {
	if family == "" {
		family = string(texture.FamilyOre)
	}
	return RecipeConfig{
		Family:   family,
		Seed:     5001,
		Base:     "#65676a",
		Dark:     "#5a0a14",
		Mid:      "#a01428",
		Light:    "#e65064",
		Top:      "#98907f",
		Bottom:   "#a69c92",
		Kind:     string(texture.SpriteGrass),
		Cracks:   3,
		Clusters: texture.DefaultOreClusters,
		Seams:    texture.DefaultSeamLines,
		Moss:     texture.DefaultMossPatches,
	}
}

// Validate checks that the state describes a pack that can be generated.
func Validate(s *WizardState) error {
	return ToPackFile(s).Validate()
}

// LoadState reads a pack file into wizard state.
func LoadState(path string) (*WizardState, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving pack path: %w", err)
	}
	pf, err := pack.LoadPackFile(absPath)
	if err != nil {
		return nil, err
	}
	return FromPackFile(pf), nil
}

// SaveState writes wizard state as a pack file.
func SaveState(s *WizardState, path string) error {
	return pack.SavePackFile(path, ToPackFile(s))
}

// ToOptions converts the state to pack generation options.
func ToOptions(s *WizardState) (pack.Options, error) {
	return ToPackFile(s).Options("")
}
