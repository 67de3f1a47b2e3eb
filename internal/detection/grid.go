package detection

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"
)

// ErrDegenerateContour is returned for polygons with too few vertices to
// locate a centroid.
var ErrDegenerateContour = errors.New("degenerate contour")

// ErrNonSquareGrid is returned when the tile count is not a perfect square
// and the detector is configured to require one.
var ErrNonSquareGrid = errors.New("tile count is not a perfect square")

// Quad is the polygon approximation of a tile border. Clean rectangles give
// four vertices, but nothing guarantees it.
type Quad []image.Point

// Centroid returns the midpoint of the first and third vertices, which are
// diagonal corners for a rectangle. Coordinates are integer-divided.
func (q Quad) Centroid() (image.Point, error) {
	if len(q) < 3 {
		return image.Point{}, fmt.Errorf("%w: %d vertices", ErrDegenerateContour, len(q))
	}
	return image.Pt((q[0].X+q[2].X)/2, (q[0].Y+q[2].Y)/2), nil
}

// Tile is one detected grid cell before it has been placed in the grid.
type Tile struct {
	Centroid image.Point `json:"centroid"`
	Color    ColorLabel  `json:"color"`
	Boundary Quad        `json:"boundary"`
}

// Cell is a tile placed in the grid.
type Cell struct {
	Row   int        `json:"row"`
	Col   int        `json:"col"`
	Color ColorLabel `json:"color"`
}

// Grid is the row-major reconstruction of the board.
type Grid [][]Cell

// Size returns the number of rows.
func (g Grid) Size() int {
	return len(g)
}

// Count returns the total number of cells.
func (g Grid) Count() int {
	n := 0
	for _, row := range g {
		n += len(row)
	}
	return n
}

// Square reports whether every row has exactly Size() cells.
func (g Grid) Square() bool {
	for _, row := range g {
		if len(row) != len(g) {
			return false
		}
	}
	return true
}

// Codes returns the color codes row by row.
func (g Grid) Codes() [][]int {
	out := make([][]int, len(g))
	for r, row := range g {
		out[r] = make([]int, len(row))
		for c, cell := range row {
			out[r][c] = cell.Color.Code()
		}
	}
	return out
}

// gridSize returns floor(sqrt(n)).
func gridSize(n int) int {
	k := int(math.Sqrt(float64(n)))
	// Guard against float rounding on large counts.
	for k*k > n {
		k--
	}
	for (k+1)*(k+1) <= n {
		k++
	}
	return k
}

// Reconstruct orders tiles into a grid using only their centroids.
//
// Tiles are sorted top to bottom, cut into rows of floor(sqrt(n)) tiles and
// each row is sorted left to right. When n is not a perfect square the last
// row holds the leftover tiles. The input slice is not modified and its
// order has no effect on the result.
func Reconstruct(tiles []Tile) Grid {
	rows := Arrange(tiles)
	grid := make(Grid, len(rows))
	for r, row := range rows {
		grid[r] = make([]Cell, len(row))
		for c, t := range row {
			grid[r][c] = Cell{Row: r, Col: c, Color: t.Color}
		}
	}
	return grid
}

// Arrange returns the tiles in grid order, row by row. It is the layout step
// of Reconstruct and keeps the full tiles, for callers that need centroids.
func Arrange(tiles []Tile) [][]Tile {
	n := len(tiles)
	if n == 0 {
		return [][]Tile{}
	}
	size := gridSize(n)

	sorted := make([]Tile, n)
	copy(sorted, tiles)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Centroid, sorted[j].Centroid
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	rows := make([][]Tile, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		chunk := sorted[start:end]
		sort.SliceStable(chunk, func(i, j int) bool {
			a, b := chunk[i].Centroid, chunk[j].Centroid
			if a.X != b.X {
				return a.X < b.X
			}
			return a.Y < b.Y
		})

		rows = append(rows, chunk)
	}
	return rows
}
