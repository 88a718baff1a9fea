// Package help holds the contextual help shown next to wizard fields.
package help

// HelpText contains information about a field
type HelpText struct {
	Title       string
	Description string
	Details     string
}

// Texts contains help information for all wizard fields, keyed by form field key.
var Texts = map[string]HelpText{
	"name": {
		Title:       "PACK NAME",
		Description: "Label of the pack.",
		Details:     "Written to manifest.yaml and used as the study description of DICOM exports.",
	},
	"output": {
		Title:       "OUTPUT DIRECTORY",
		Description: "Directory where textures will be written.",
		Details:     "Created if missing. Existing files with the same names are overwritten.",
	},
	"seed": {
		Title:       "PACK SEED",
		Description: "Reseeds every texture from one number.",
		Details: `0 keeps each recipe's own seed, so output matches the reference textures.
Any other value derives a per-texture seed from this number and the texture name.`,
	},
	"formats": {
		Title:       "OUTPUT FORMATS",
		Description: "File formats written for each texture.",
		Details: `png   - 16x16 RGBA image
dicom - RGB secondary capture (.dcm), alpha composited over black`,
	},
	"preview_scale": {
		Title:       "PREVIEW SCALE",
		Description: "Also write enlarged copies under preview/.",
		Details:     "Nearest-neighbour upscale factor. 0 or 1 disables previews; 8 gives 128x128.",
	},
	"contact_sheet": {
		Title:       "CONTACT SHEET",
		Description: "One labelled overview image of every texture.",
		Details:     "Written as contact_sheet.png at the root of the output directory.",
	},
	"atlas": {
		Title:       "TEXTURE ATLAS",
		Description: "Pack every texture into a 512x512 atlas.",
		Details:     "Writes atlas.png and atlas.yaml with the UV offset of each tile. Holds up to 1024 tiles.",
	},
	"textures": {
		Title:       "TEXTURES",
		Description: "Textures to generate.",
		Details:     "Space toggles a texture. Selecting none generates the whole catalog.",
	},
	"add_custom": {
		Title:       "CUSTOM RECIPE",
		Description: "Define a new texture from a family and a palette.",
		Details:     "Custom recipes are saved in the pack file and replace built-ins of the same name.",
	},
	"recipe_name": {
		Title:       "TEXTURE NAME",
		Description: "File name of the texture, without extension.",
		Details:     "Letters, digits, '_' and '-' only.",
	},
	"recipe_family": {
		Title:       "FAMILY",
		Description: "How the texture is built.",
		Details: `ore    - speckled stone with cracks and mineral clusters
banded - sedimentary gradient with stripes
rubble - stone with dark seams and moss
sprite - transparent grass or flower`,
	},
	"recipe_seed": {
		Title:       "RECIPE SEED",
		Description: "Seed of the random stream for this texture.",
		Details:     "The same seed and palette always produce the same pixels.",
	},
	"recipe_base": {
		Title:       "BASE COLOR",
		Description: "Stone color, as #rrggbb.",
	},
	"recipe_dark": {
		Title:       "DARK MINERAL",
		Description: "Darkest cluster color, as #rrggbb.",
	},
	"recipe_mid": {
		Title:       "MID MINERAL",
		Description: "Main cluster color, as #rrggbb.",
	},
	"recipe_light": {
		Title:       "LIGHT MINERAL",
		Description: "Highlight cluster color, as #rrggbb.",
	},
	"recipe_cracks": {
		Title:       "CRACKS",
		Description: "Number of dark random-walk cracks.",
	},
	"recipe_clusters": {
		Title:       "CLUSTERS",
		Description: "Number of mineral cluster seeds.",
		Details:     "Each cluster paints one to three pixels in the dark, mid or light mineral color.",
	},
	"recipe_top": {
		Title:       "TOP COLOR",
		Description: "Gradient start, as #rrggbb.",
	},
	"recipe_bottom": {
		Title:       "BOTTOM COLOR",
		Description: "Gradient end, as #rrggbb.",
	},
	"recipe_seams": {
		Title:       "SEAMS",
		Description: "Number of dark seam lines.",
	},
	"recipe_moss": {
		Title:       "MOSS PATCHES",
		Description: "Number of plus-shaped moss stamps.",
	},
	"recipe_kind": {
		Title:       "SPRITE KIND",
		Description: "Drawing used by the sprite.",
		Details:     "grass or flower",
	},
	"action": {
		Title:       "ACTION",
		Description: "What to do with this configuration.",
		Details:     "A saved pack file can be replayed with: blockforge generate --pack FILE",
	},
}
