package atlas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/mrsinham/blockforge/internal/export"
)

func solidTile(size int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestBuild_SortedSlotsAndOffsets(t *testing.T) {
	red := color.NRGBA{255, 0, 0, 255}
	blue := color.NRGBA{0, 0, 255, 255}
	tiles := map[string]image.Image{
		"zeta":  solidTile(16, blue),
		"alpha": solidTile(16, red),
	}

	a, err := Build(tiles)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if a.Image.Bounds().Dx() != Size || a.Image.Bounds().Dy() != Size {
		t.Fatalf("bounds = %v", a.Image.Bounds())
	}

	if got := a.Mapping["alpha"]; got != (Offset{Slot: 0, U: 0, V: 0}) {
		t.Errorf("alpha offset = %+v", got)
	}
	if got := a.Mapping["zeta"]; got != (Offset{Slot: 1, U: 16.0 / 512, V: 0}) {
		t.Errorf("zeta offset = %+v", got)
	}
	if a.Image.NRGBAAt(0, 0) != red || a.Image.NRGBAAt(16, 0) != blue {
		t.Error("tiles were not placed at their slots")
	}
	if a.Image.NRGBAAt(32, 0).A != 0 {
		t.Error("unused slots should stay transparent")
	}
}

func TestBuild_WrapsRows(t *testing.T) {
	tiles := map[string]image.Image{}
	for i := 0; i < TilesPerRow+1; i++ {
		tiles[fmt.Sprintf("tile_%03d", i)] = solidTile(16, color.NRGBA{uint8(i), 0, 0, 255})
	}
	a, err := Build(tiles)
	if err != nil {
		t.Fatal(err)
	}
	last := a.Mapping[fmt.Sprintf("tile_%03d", TilesPerRow)]
	if last.Slot != TilesPerRow || last.U != 0 || last.V != 16.0/512 {
		t.Errorf("slot %d offset = %+v", TilesPerRow, last)
	}
}

func TestBuild_ResizesTiles(t *testing.T) {
	green := color.NRGBA{0, 200, 0, 255}
	a, err := Build(map[string]image.Image{"big": solidTile(64, green)})
	if err != nil {
		t.Fatal(err)
	}
	if a.Image.NRGBAAt(15, 15) != green {
		t.Errorf("resized tile corner = %v", a.Image.NRGBAAt(15, 15))
	}
	if a.Image.NRGBAAt(16, 16).A != 0 {
		t.Error("resized tile overflowed its slot")
	}
}

func TestBuild_Full(t *testing.T) {
	tiles := make(map[string]image.Image, Capacity+1)
	tile := solidTile(16, color.NRGBA{1, 1, 1, 255})
	for i := 0; i <= Capacity; i++ {
		tiles[fmt.Sprintf("t%05d", i)] = tile
	}
	if _, err := Build(tiles); !errors.Is(err, ErrAtlasFull) {
		t.Errorf("Build error = %v, want ErrAtlasFull", err)
	}
}

func TestLoadDirAndWrite(t *testing.T) {
	in := t.TempDir()
	if _, err := export.WritePNG(in, "coal_vein", solidTile(16, color.NRGBA{20, 20, 20, 255})); err != nil {
		t.Fatal(err)
	}
	// Upper-case extension is accepted.
	if err := os.Rename(filepath.Join(in, "coal_vein.png"), filepath.Join(in, "coal_vein.PNG")); err != nil {
		t.Fatal(err)
	}
	if _, err := export.WritePNG(in, "gold_vein", solidTile(16, color.NRGBA{200, 160, 40, 255})); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(in, "notes.txt"), []byte("ignored"), 0644); err != nil {
		t.Fatal(err)
	}

	tiles, err := LoadDir(in)
	if err != nil {
		t.Fatalf("LoadDir error: %v", err)
	}
	if len(tiles) != 2 {
		t.Fatalf("loaded %d tiles, want 2", len(tiles))
	}

	a, err := Build(tiles)
	if err != nil {
		t.Fatal(err)
	}
	out := t.TempDir()
	pngPath, mappingPath, err := a.Write(out)
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if _, err := os.Stat(pngPath); err != nil {
		t.Errorf("atlas.png missing: %v", err)
	}
	mapping, err := ReadMapping(mappingPath)
	if err != nil {
		t.Fatal(err)
	}
	if mapping["gold_vein"].Slot != 1 {
		t.Errorf("gold_vein slot = %d, want 1", mapping["gold_vein"].Slot)
	}
}

func TestLoadDir_Errors(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "missing"))
	var loadErr *LoadError
	if !errors.As(err, &loadErr) || loadErr.Op != "read-dir" {
		t.Errorf("missing dir error = %v", err)
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = LoadDir(dir)
	if !errors.As(err, &loadErr) || loadErr.Op != "decode" {
		t.Errorf("broken png error = %v", err)
	}
}
