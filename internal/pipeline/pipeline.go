// Package pipeline runs the full read of one board photo: load, crop to the
// board, detect tiles and, on request, draw the debug overlay.
package pipeline

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ironsheep/grid-reader/internal/config"
	"github.com/ironsheep/grid-reader/internal/detection"
	"github.com/ironsheep/grid-reader/internal/imaging"
)

// Output is everything produced for one photo.
type Output struct {
	// Board is the cropped board region. Tile coordinates refer to it.
	Board image.Image

	Result *detection.Result
}

// Reader reads grids from photos with a fixed crop and detector.
type Reader struct {
	cache    *imaging.ImageCache
	crop     config.Rect
	detector *detection.Detector
}

// NewReader returns a Reader. A nil cache disables caching between calls.
func NewReader(cache *imaging.ImageCache, crop config.Rect, det *detection.Detector) *Reader {
	if cache == nil {
		cache = imaging.NewImageCache()
	}
	return &Reader{cache: cache, crop: crop, detector: det}
}

// ReadFile loads the photo at path and reads its grid.
func (r *Reader) ReadFile(path string) (*Output, error) {
	img, err := r.cache.Load(path)
	if err != nil {
		return nil, err
	}
	return r.Read(img)
}

// Read crops img to the board and detects the grid.
func (r *Reader) Read(img image.Image) (*Output, error) {
	return r.ReadRegion(img, r.crop)
}

// ReadRegion is Read with an explicit crop rectangle.
func (r *Reader) ReadRegion(img image.Image, crop config.Rect) (*Output, error) {
	board, err := imaging.CropRegion(img, crop.TopLeft(), crop.BottomRight())
	if err != nil {
		return nil, fmt.Errorf("failed to crop board: %w", err)
	}

	res, err := r.detector.Detect(board)
	if err != nil {
		return nil, err
	}
	return &Output{Board: board, Result: res}, nil
}

// Overlay draws each tile's outline and its "(row,col)" label at the tile
// centroid on a copy of the board.
func (o *Output) Overlay() *image.RGBA {
	rows := detection.Arrange(o.Result.Tiles)

	var annotations []imaging.Annotation
	for r, row := range rows {
		for c, tile := range row {
			annotations = append(annotations, imaging.Annotation{
				Outline: tile.Boundary,
				At:      tile.Centroid,
				Label:   fmt.Sprintf("(%d,%d)", r, c),
			})
		}
	}
	return imaging.DrawOverlay(o.Board, annotations, imaging.DefaultOverlayStyle())
}

// Preview renders the decoded grid as colored swatches.
func (o *Output) Preview(cellSize int) image.Image {
	rows := make([][]color.Color, len(o.Result.Grid))
	for r, row := range o.Result.Grid {
		rows[r] = make([]color.Color, len(row))
		for c, cell := range row {
			rows[r][c] = cell.Color.Swatch()
		}
	}
	return imaging.RenderSwatches(rows, cellSize)
}
