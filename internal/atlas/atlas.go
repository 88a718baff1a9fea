// Package atlas packs 16px block tiles into a single texture atlas with a
// name to UV offset mapping.
package atlas

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/draw"
	"gopkg.in/yaml.v3"

	"github.com/mrsinham/blockforge/internal/export"
)

const (
	Size        = 512
	TileSize    = 16
	TilesPerRow = Size / TileSize
	Capacity    = TilesPerRow * TilesPerRow

	// ImageFile and MappingFile are written by Write.
	ImageFile   = "atlas.png"
	MappingFile = "atlas.yaml"
)

// ErrAtlasFull is returned when more tiles are given than the atlas holds.
var ErrAtlasFull = errors.New("atlas is full")

// Offset locates a tile: U and V are the normalized top-left corner.
type Offset struct {
	Slot int     `yaml:"slot"`
	U    float32 `yaml:"u"`
	V    float32 `yaml:"v"`
}

// Atlas is a packed image and the offset of every tile in it.
type Atlas struct {
	Image   *image.NRGBA
	Mapping map[string]Offset
}

// mappingFile is the on-disk form of the mapping.
type mappingFile struct {
	AtlasSize int               `yaml:"atlas_size"`
	TileSize  int               `yaml:"tile_size"`
	Textures  map[string]Offset `yaml:"textures"`
}

// Build places tiles in sorted name order, slot i at tile (i%32, i/32).
// Tiles that are not 16x16 are resized with nearest-neighbour sampling.
func Build(tiles map[string]image.Image) (*Atlas, error) {
	if len(tiles) > Capacity {
		return nil, fmt.Errorf("%w: %d tiles, capacity %d", ErrAtlasFull, len(tiles), Capacity)
	}

	names := make([]string, 0, len(tiles))
	for name := range tiles {
		names = append(names, name)
	}
	sort.Strings(names)

	a := &Atlas{
		Image:   image.NewNRGBA(image.Rect(0, 0, Size, Size)),
		Mapping: make(map[string]Offset, len(names)),
	}
	for slot, name := range names {
		tileX := slot % TilesPerRow
		tileY := slot / TilesPerRow
		dst := image.Rect(tileX*TileSize, tileY*TileSize, (tileX+1)*TileSize, (tileY+1)*TileSize)

		src := tiles[name]
		draw.NearestNeighbor.Scale(a.Image, dst, src, src.Bounds(), draw.Src, nil)

		a.Mapping[name] = Offset{
			Slot: slot,
			U:    float32(tileX*TileSize) / float32(Size),
			V:    float32(tileY*TileSize) / float32(Size),
		}
	}
	return a, nil
}

// Write stores ImageFile and MappingFile in dir and returns both paths.
func (a *Atlas) Write(dir string) (pngPath, mappingPath string, err error) {
	pngPath, err = export.WritePNG(dir, strings.TrimSuffix(ImageFile, ".png"), a.Image)
	if err != nil {
		return "", "", err
	}

	data, err := yaml.Marshal(mappingFile{AtlasSize: Size, TileSize: TileSize, Textures: a.Mapping})
	if err != nil {
		return "", "", fmt.Errorf("marshal atlas mapping: %w", err)
	}
	mappingPath = filepath.Join(dir, MappingFile)
	if err := os.WriteFile(mappingPath, data, 0644); err != nil {
		return "", "", fmt.Errorf("write atlas mapping: %w", err)
	}
	return pngPath, mappingPath, nil
}

// ReadMapping loads a mapping written by Write.
func ReadMapping(path string) (map[string]Offset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read atlas mapping: %w", err)
	}
	var mf mappingFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parse atlas mapping: %w", err)
	}
	return mf.Textures, nil
}

// LoadError describes which step failed while loading tiles.
type LoadError struct {
	Op   string // read-dir, read-file, decode or file-stem
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	switch e.Op {
	case "read-dir":
		return fmt.Sprintf("failed to read texture directory %s: %v", e.Path, e.Err)
	case "read-file":
		return fmt.Sprintf("failed to read texture file %s: %v", e.Path, e.Err)
	case "decode":
		return fmt.Sprintf("failed to decode png %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("texture path has no valid file stem: %s", e.Path)
	}
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadDir reads every *.png in dir (extension matched case-insensitively),
// keyed by file stem. Subdirectories are not visited.
func LoadDir(dir string) (map[string]image.Image, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{Op: "read-dir", Path: dir, Err: err}
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	tiles := make(map[string]image.Image, len(paths))
	for _, path := range paths {
		base := filepath.Base(path)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		if stem == "" {
			return nil, &LoadError{Op: "file-stem", Path: path}
		}

		img, err := export.ReadPNG(path)
		if err != nil {
			var pathErr *os.PathError
			if errors.As(err, &pathErr) {
				return nil, &LoadError{Op: "read-file", Path: path, Err: err}
			}
			return nil, &LoadError{Op: "decode", Path: path, Err: err}
		}
		tiles[stem] = img
	}
	return tiles, nil
}
