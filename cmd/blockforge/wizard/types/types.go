// Package types holds the wizard state shared by the wizard and its screens.
package types

// WizardState holds the complete state for the wizard interface.
type WizardState struct {
	Global   GlobalConfig
	Textures []string // selected texture names, empty means all
	Custom   []RecipeConfig
}

// GlobalConfig holds the pack-wide settings.
type GlobalConfig struct {
	Name         string
	OutputDir    string
	Seed         int64
	Formats      []string
	PreviewScale int
	ContactSheet bool
	Atlas        bool
}

// RecipeConfig is a custom recipe as edited in the wizard. Colors are hex
// strings; only the fields of Family are used.
type RecipeConfig struct {
	Name   string
	Family string
	Seed   int64

	Base   string
	Dark   string
	Mid    string
	Light  string
	Top    string
	Bottom string
	Kind   string

	Cracks   int
	Clusters int
	Seams    int
	Moss     int
}
