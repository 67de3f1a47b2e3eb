package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Annotation is one shape to draw on the debug overlay: a closed outline and
// a text label whose baseline starts at At.
type Annotation struct {
	Outline []image.Point
	At      image.Point
	Label   string
}

// OverlayStyle controls how annotations are drawn.
type OverlayStyle struct {
	LineColor  color.Color
	LabelColor color.Color
	// Thickness is the outline width in pixels.
	Thickness int
}

// DefaultOverlayStyle draws black two-pixel outlines and black labels.
func DefaultOverlayStyle() OverlayStyle {
	return OverlayStyle{
		LineColor:  color.Black,
		LabelColor: color.Black,
		Thickness:  2,
	}
}

// DrawOverlay returns a copy of img with every annotation drawn on it. The
// source image is left untouched. Annotation coordinates are relative to the
// top-left corner of img.
func DrawOverlay(img image.Image, annotations []Annotation, style OverlayStyle) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)

	thickness := style.Thickness
	if thickness < 1 {
		thickness = 1
	}

	for _, a := range annotations {
		n := len(a.Outline)
		for i := 0; i < n && n > 1; i++ {
			drawLine(out, a.Outline[i], a.Outline[(i+1)%n], thickness, style.LineColor)
		}
		if n == 1 {
			drawLine(out, a.Outline[0], a.Outline[0], thickness, style.LineColor)
		}
		if a.Label != "" {
			drawText(out, a.At, a.Label, style.LabelColor)
		}
	}
	return out
}

// drawText renders text with the 7x13 bitmap face, baseline at p.
func drawText(img *image.RGBA, p image.Point, text string, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(p.X, p.Y),
	}
	d.DrawString(text)
}

// drawLine draws a line of the given thickness with Bresenham's algorithm.
// Pixels outside the image are skipped.
func drawLine(img *image.RGBA, a, b image.Point, thickness int, c color.Color) {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	for {
		plot(img, x, y, thickness, c)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// plot paints a thickness x thickness square anchored at (x, y).
func plot(img *image.RGBA, x, y, thickness int, c color.Color) {
	bounds := img.Bounds()
	for oy := 0; oy < thickness; oy++ {
		for ox := 0; ox < thickness; ox++ {
			p := image.Pt(x+ox, y+oy)
			if p.In(bounds) {
				img.Set(p.X, p.Y, c)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// RenderSwatches draws a preview of a grid: one cellSize x cellSize square
// per entry, separated by a one-pixel white border. Short rows leave the
// rest of their line white.
func RenderSwatches(rows [][]color.Color, cellSize int) *image.NRGBA {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cellSize < 1 {
		cellSize = 1
	}
	stride := cellSize + 1
	img := imaging.New(cols*stride+1, len(rows)*stride+1, color.White)
	for r, row := range rows {
		for c, col := range row {
			cell := imaging.New(cellSize, cellSize, col)
			img = imaging.Paste(img, cell, image.Pt(c*stride+1, r*stride+1))
		}
	}
	return img
}
