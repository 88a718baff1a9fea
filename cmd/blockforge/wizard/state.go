// Package wizard provides an interactive TUI for configuring a texture pack.
package wizard

import "github.com/mrsinham/blockforge/cmd/blockforge/wizard/types"

// Type aliases so callers can use wizard.WizardState etc.
type (
	WizardState  = types.WizardState
	GlobalConfig = types.GlobalConfig
	RecipeConfig = types.RecipeConfig
)

// DefaultState is the starting point of a new wizard session.
func DefaultState(outputDir string) *WizardState {
	if outputDir == "" {
		outputDir = "textures"
	}
	return &WizardState{
		Global: GlobalConfig{
			Name:      "blockforge",
			OutputDir: outputDir,
			Formats:   []string{"png"},
		},
	}
}
