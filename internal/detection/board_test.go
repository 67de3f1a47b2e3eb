package detection

import (
	"image"
	"image/color"
	"image/draw"
)

var (
	tileGray  = color.RGBA{220, 220, 220, 255}
	tileBlue  = color.RGBA{50, 50, 200, 255}
	tileRed   = color.RGBA{200, 50, 50, 255}
	tileGreen = color.RGBA{50, 200, 50, 255}
)

// createBlankImage creates a white image of the given size
func createBlankImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}

// fillRect paints a solid rectangle onto img
func fillRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// createBoardImage draws a grid of solid tiles on a white background.
// Tiles are tile pixels wide, separated (and framed) by gap pixels.
func createBoardImage(colors [][]color.RGBA, tile, gap int) *image.RGBA {
	rows := len(colors)
	cols := 0
	if rows > 0 {
		cols = len(colors[0])
	}
	img := createBlankImage(cols*(tile+gap)+gap, rows*(tile+gap)+gap)
	for r, row := range colors {
		for c, col := range row {
			fillRect(img, tileRect(r, c, tile, gap), col)
		}
	}
	return img
}

// tileRect returns the pixel rectangle of the tile at (row, col)
func tileRect(row, col, tile, gap int) image.Rectangle {
	x := gap + col*(tile+gap)
	y := gap + row*(tile+gap)
	return image.Rect(x, y, x+tile, y+tile)
}

// patternColors returns a k x k palette cycling through the three tile colors
func patternColors(k int) [][]color.RGBA {
	palette := []color.RGBA{tileBlue, tileRed, tileGray}
	out := make([][]color.RGBA, k)
	for r := range out {
		out[r] = make([]color.RGBA, k)
		for c := range out[r] {
			out[r][c] = palette[(r*k+c)%len(palette)]
		}
	}
	return out
}

// labelOf maps a test tile color to the expected label
func labelOf(c color.RGBA) ColorLabel {
	switch c {
	case tileBlue:
		return Blue
	case tileRed:
		return Red
	default:
		return Gray
	}
}
