package export

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Upscale enlarges img by an integer factor with nearest-neighbour sampling,
// so every source pixel becomes a factor x factor block.
func Upscale(img image.Image, factor int) (*image.NRGBA, error) {
	if factor < 1 {
		return nil, fmt.Errorf("preview scale must be >= 1, got %d", factor)
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst, nil
}

// Entry is one labelled tile on a contact sheet.
type Entry struct {
	Name  string
	Image image.Image
}

const (
	sheetPadding = 8
	labelHeight  = 13
	labelGap     = 4
)

var (
	sheetBackground = color.NRGBA{R: 32, G: 32, B: 36, A: 255}
	labelColor      = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
)

// ContactSheet lays out entries on a near-square grid, each tile upscaled by
// scale and labelled with its name underneath.
func ContactSheet(entries []Entry, scale int) (*image.NRGBA, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("contact sheet needs at least one entry")
	}

	face := basicfont.Face7x13
	tiles := make([]*image.NRGBA, len(entries))
	cellWidth := 0
	tileHeight := 0
	for i, e := range entries {
		up, err := Upscale(e.Image, scale)
		if err != nil {
			return nil, err
		}
		tiles[i] = up
		cellWidth = max(cellWidth, up.Bounds().Dx(), font.MeasureString(face, e.Name).Ceil())
		tileHeight = max(tileHeight, up.Bounds().Dy())
	}
	cellHeight := tileHeight + labelGap + labelHeight

	cols := int(math.Ceil(math.Sqrt(float64(len(entries)))))
	rows := (len(entries) + cols - 1) / cols

	width := sheetPadding + cols*(cellWidth+sheetPadding)
	height := sheetPadding + rows*(cellHeight+sheetPadding)
	sheet := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(sheet, sheet.Bounds(), image.NewUniform(sheetBackground), image.Point{}, draw.Src)

	for i, tile := range tiles {
		x := sheetPadding + (i%cols)*(cellWidth+sheetPadding)
		y := sheetPadding + (i/cols)*(cellHeight+sheetPadding)

		tx := x + (cellWidth-tile.Bounds().Dx())/2
		draw.Draw(sheet, image.Rect(tx, y, tx+tile.Bounds().Dx(), y+tile.Bounds().Dy()), tile, image.Point{}, draw.Over)

		drawer := &font.Drawer{
			Dst:  sheet,
			Src:  image.NewUniform(labelColor),
			Face: face,
			// Baseline sits at the bottom of the label band.
			Dot: fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y + tileHeight + labelGap + labelHeight - 2)},
		}
		drawer.DrawString(entries[i].Name)
	}
	return sheet, nil
}
