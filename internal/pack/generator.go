// Package pack renders a set of recipes to disk: texture files in every
// requested format, optional previews, a contact sheet, an atlas and a
// manifest describing the run.
package pack

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/mrsinham/blockforge/internal/atlas"
	"github.com/mrsinham/blockforge/internal/export"
	"github.com/mrsinham/blockforge/internal/texture"
	"github.com/mrsinham/blockforge/internal/util"
)

const (
	// ManifestFile is written at the root of every output directory.
	ManifestFile = "manifest.yaml"
	// ContactSheetFile is the optional overview image.
	ContactSheetFile = contactSheetName + ".png"
	// PreviewDir holds the upscaled copies.
	PreviewDir = "preview"

	contactSheetName  = "contact_sheet"
	defaultSheetScale = 4
	defaultPackName   = "blockforge"
)

// Options configures one pack generation run.
type Options struct {
	OutputDir string
	Recipes   []texture.Recipe
	// Seed, when non-zero, replaces each recipe's seed with one derived
	// from Seed and the recipe name.
	Seed    int64
	Workers int
	// Formats defaults to PNG only.
	Formats []export.Format
	// PreviewScale > 1 also writes preview/<name>@<scale>x.png.
	PreviewScale int
	ContactSheet bool
	Atlas        bool
	// Name labels the pack in DICOM studies and the manifest.
	Name string

	Logger           zerolog.Logger
	ProgressCallback func(current, total int) // Optional callback for progress updates
}

// GeneratedFile describes one rendered texture.
type GeneratedFile struct {
	Name   string         `yaml:"name"`
	Family texture.Family `yaml:"family"`
	Seed   int64          `yaml:"seed"`
	// SHA256 of the raw RGBA bytes, independent of the file encoding.
	SHA256 string   `yaml:"sha256"`
	Files  []string `yaml:"files"`
}

// Manifest is the content of manifest.yaml. Paths are relative to the
// output directory and use forward slashes.
type Manifest struct {
	Name         string          `yaml:"name"`
	Seed         int64           `yaml:"seed,omitempty"`
	Formats      []string        `yaml:"formats"`
	Textures     []GeneratedFile `yaml:"textures"`
	ContactSheet string          `yaml:"contact_sheet,omitempty"`
	Atlas        string          `yaml:"atlas,omitempty"`
	AtlasMapping string          `yaml:"atlas_mapping,omitempty"`
}

func (opts *Options) validate() error {
	if opts.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if len(opts.Recipes) == 0 {
		return fmt.Errorf("no textures selected")
	}
	if opts.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", opts.Workers)
	}
	if opts.PreviewScale < 0 {
		return fmt.Errorf("preview scale must be >= 0, got %d", opts.PreviewScale)
	}
	if opts.Atlas && len(opts.Recipes) > atlas.Capacity {
		return fmt.Errorf("%w: %d textures", atlas.ErrAtlasFull, len(opts.Recipes))
	}
	seen := make(map[string]bool, len(opts.Recipes))
	for _, r := range opts.Recipes {
		if seen[r.Name] {
			return fmt.Errorf("duplicate texture %q", r.Name)
		}
		seen[r.Name] = true
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ResolveRecipes applies the seed override. It returns a new slice.
func ResolveRecipes(recipes []texture.Recipe, seed int64) []texture.Recipe {
	out := make([]texture.Recipe, len(recipes))
	for i, r := range recipes {
		if seed != 0 {
			r = r.WithSeed(util.DeriveSeed(seed, r.Name))
		}
		out[i] = r
	}
	return out
}

// Generate renders every recipe in parallel and writes the pack. Results
// are returned in recipe order and do not depend on the worker count.
func Generate(ctx context.Context, opts Options) ([]GeneratedFile, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	formats := opts.Formats
	if len(formats) == 0 {
		formats = []export.Format{export.FormatPNG}
	}
	name := opts.Name
	if name == "" {
		name = defaultPackName
	}
	recipes := ResolveRecipes(opts.Recipes, opts.Seed)
	logger := opts.Logger

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	numWorkers := opts.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	// Don't use more workers than textures
	if numWorkers > len(recipes) {
		numWorkers = len(recipes)
	}
	logger.Debug().Int("textures", len(recipes)).Int("workers", numWorkers).Msg("generating pack")

	results := make([]GeneratedFile, len(recipes))
	canvases := make([]*texture.Canvas, len(recipes))

	var (
		mu        sync.Mutex
		completed int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(numWorkers)
	for i, r := range recipes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c, err := r.Generate()
			if err != nil {
				return err
			}
			files, err := writeTexture(opts.OutputDir, name, r, c, formats, opts.PreviewScale)
			if err != nil {
				return fmt.Errorf("write %s: %w", r.Name, err)
			}
			sum := sha256.Sum256(c.Bytes())
			canvases[i] = c
			results[i] = GeneratedFile{
				Name:   r.Name,
				Family: r.Family,
				Seed:   r.Seed,
				SHA256: hex.EncodeToString(sum[:]),
				Files:  files,
			}
			logger.Debug().Str("texture", r.Name).Int64("seed", r.Seed).Msg("texture written")

			mu.Lock()
			completed++
			if opts.ProgressCallback != nil {
				opts.ProgressCallback(completed, len(recipes))
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	manifest := Manifest{
		Name:     name,
		Seed:     opts.Seed,
		Formats:  export.FormatStrings(formats),
		Textures: results,
	}

	if opts.ContactSheet {
		path, err := writeContactSheet(opts.OutputDir, recipes, canvases, opts.PreviewScale)
		if err != nil {
			return nil, err
		}
		manifest.ContactSheet = relPath(opts.OutputDir, path)
		logger.Info().Str("path", path).Msg("contact sheet written")
	}

	if opts.Atlas {
		tiles := make(map[string]image.Image, len(recipes))
		for i, r := range recipes {
			tiles[r.Name] = canvases[i].Image()
		}
		a, err := atlas.Build(tiles)
		if err != nil {
			return nil, err
		}
		pngPath, mappingPath, err := a.Write(opts.OutputDir)
		if err != nil {
			return nil, err
		}
		manifest.Atlas = relPath(opts.OutputDir, pngPath)
		manifest.AtlasMapping = relPath(opts.OutputDir, mappingPath)
		logger.Info().Str("path", pngPath).Int("tiles", len(tiles)).Msg("atlas written")
	}

	if err := writeManifest(filepath.Join(opts.OutputDir, ManifestFile), manifest); err != nil {
		return nil, err
	}
	return results, nil
}

func writeTexture(dir, pack string, r texture.Recipe, c *texture.Canvas, formats []export.Format, previewScale int) ([]string, error) {
	var files []string
	for _, f := range formats {
		var (
			path string
			err  error
		)
		switch f {
		case export.FormatPNG:
			path, err = export.WritePNG(dir, r.Name, c.Image())
		case export.FormatDICOM:
			path, err = export.WriteDICOM(dir, export.DICOMInfo{Name: r.Name, Seed: r.Seed, Pack: pack}, c)
		default:
			err = fmt.Errorf("unsupported format %q", f)
		}
		if err != nil {
			return nil, err
		}
		files = append(files, relPath(dir, path))
	}

	if previewScale > 1 {
		img, err := export.Upscale(c.Image(), previewScale)
		if err != nil {
			return nil, err
		}
		path, err := export.WritePNG(filepath.Join(dir, PreviewDir), fmt.Sprintf("%s@%dx", r.Name, previewScale), img)
		if err != nil {
			return nil, err
		}
		files = append(files, relPath(dir, path))
	}
	return files, nil
}

func writeContactSheet(dir string, recipes []texture.Recipe, canvases []*texture.Canvas, scale int) (string, error) {
	if scale <= 1 {
		scale = defaultSheetScale
	}
	entries := make([]export.Entry, len(recipes))
	for i, r := range recipes {
		entries[i] = export.Entry{Name: r.Name, Image: canvases[i].Image()}
	}
	sheet, err := export.ContactSheet(entries, scale)
	if err != nil {
		return "", err
	}
	return export.WritePNG(dir, contactSheetName, sheet)
}

func writeManifest(path string, m Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads a manifest written by Generate.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}

func relPath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
