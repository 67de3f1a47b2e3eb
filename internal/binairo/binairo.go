// Package binairo solves Binairo (Takuzu) puzzles read from a detected grid.
//
// A solved board of even size n satisfies three rules:
//   - no three equal values in a row, horizontally or vertically
//   - every row and column holds n/2 zeros and n/2 ones
//   - no two complete rows, or two complete columns, are identical
//
// Cell values use the result.txt codes: -1 for an empty cell, 0 and 1 for
// the two colors.
package binairo

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Empty marks an unfilled cell.
const Empty = -1

var (
	// ErrNotSquare is returned when the input rows do not form an n x n board.
	ErrNotSquare = errors.New("board is not square")

	// ErrInvalidValue is returned for a cell value other than -1, 0 or 1.
	ErrInvalidValue = errors.New("invalid cell value")
)

// Placement assigns Value to the cell at (Row, Col).
type Placement struct {
	Row, Col, Value int
}

// Board is a square Binairo board.
type Board struct {
	size  int
	cells [][]int
}

// New returns an empty size x size board.
func New(size int) *Board {
	if size < 0 {
		size = 0
	}
	cells := make([][]int, size)
	for r := range cells {
		cells[r] = make([]int, size)
		for c := range cells[r] {
			cells[r][c] = Empty
		}
	}
	return &Board{size: size, cells: cells}
}

// FromCodes builds a board from rows of cell codes. The rows must form a
// square.
func FromCodes(codes [][]int) (*Board, error) {
	b := New(len(codes))
	for r, row := range codes {
		if len(row) != len(codes) {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNotSquare, r, len(row), len(codes))
		}
		for c, v := range row {
			if v < Empty || v > 1 {
				return nil, fmt.Errorf("%w: %d at (%d,%d)", ErrInvalidValue, v, r, c)
			}
			b.cells[r][c] = v
		}
	}
	return b, nil
}

// SetInitialValues applies placements. Placements outside the board or with
// a value other than -1, 0 or 1 are ignored.
func (b *Board) SetInitialValues(placements []Placement) {
	for _, p := range placements {
		if p.Value < Empty || p.Value > 1 {
			continue
		}
		if p.Row >= 0 && p.Row < b.size && p.Col >= 0 && p.Col < b.size {
			b.cells[p.Row][p.Col] = p.Value
		}
	}
}

// Size returns the board width.
func (b *Board) Size() int {
	return b.size
}

// At returns the value of a cell.
func (b *Board) At(row, col int) int {
	return b.cells[row][col]
}

// Codes returns a copy of the cells, row by row.
func (b *Board) Codes() [][]int {
	out := make([][]int, b.size)
	for r, row := range b.cells {
		out[r] = append([]int(nil), row...)
	}
	return out
}

// Clone returns an independent copy of b.
func (b *Board) Clone() *Board {
	return &Board{size: b.size, cells: b.Codes()}
}

func (b *Board) rowComplete(r int) bool {
	for c := 0; c < b.size; c++ {
		if b.cells[r][c] == Empty {
			return false
		}
	}
	return true
}

func (b *Board) colComplete(c int) bool {
	for r := 0; r < b.size; r++ {
		if b.cells[r][c] == Empty {
			return false
		}
	}
	return true
}

// IsValid reports whether the filled cells break no rule. Empty cells are
// allowed, so a partially filled board can be valid.
func (b *Board) IsValid() bool {
	n := b.size

	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v := b.cells[r][c]
			if v == Empty {
				continue
			}
			if r+2 < n && b.cells[r+1][c] == v && b.cells[r+2][c] == v {
				return false
			}
			if c+2 < n && b.cells[r][c+1] == v && b.cells[r][c+2] == v {
				return false
			}
		}
	}

	half := n / 2
	for i := 0; i < n; i++ {
		var row, col [2]int
		for j := 0; j < n; j++ {
			if v := b.cells[i][j]; v != Empty {
				row[v]++
			}
			if v := b.cells[j][i]; v != Empty {
				col[v]++
			}
		}
		if b.rowComplete(i) && row[0] != row[1] {
			return false
		}
		if b.colComplete(i) && col[0] != col[1] {
			return false
		}
		if row[0] > half || row[1] > half || col[0] > half || col[1] > half {
			return false
		}
	}

	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			if b.rowComplete(i) && b.rowComplete(j) && b.sameRow(i, j) {
				return false
			}
			if b.colComplete(i) && b.colComplete(j) && b.sameCol(i, j) {
				return false
			}
		}
	}
	return true
}

func (b *Board) sameRow(i, j int) bool {
	for c := 0; c < b.size; c++ {
		if b.cells[i][c] != b.cells[j][c] {
			return false
		}
	}
	return true
}

func (b *Board) sameCol(i, j int) bool {
	for r := 0; r < b.size; r++ {
		if b.cells[r][i] != b.cells[r][j] {
			return false
		}
	}
	return true
}

// IsSolved reports whether every cell is filled and the board is valid.
func (b *Board) IsSolved() bool {
	for r := 0; r < b.size; r++ {
		if !b.rowComplete(r) {
			return false
		}
	}
	return b.IsValid()
}

// Solve fills the empty cells in place and reports whether a solution was
// found. On failure the board is left as it was.
//
// The search always branches on the empty cell with the fewest valid values,
// so forced cells are filled before any guess is made.
func (b *Board) Solve() bool {
	if !b.IsValid() {
		return false
	}
	if b.IsSolved() {
		return true
	}

	best, bestRow, bestCol := 3, -1, -1
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			if b.cells[r][c] != Empty {
				continue
			}
			options := 0
			for _, v := range [...]int{0, 1} {
				b.cells[r][c] = v
				if b.IsValid() {
					options++
				}
			}
			b.cells[r][c] = Empty
			if options == 0 {
				return false
			}
			if options < best {
				best, bestRow, bestCol = options, r, c
			}
		}
	}

	for _, v := range [...]int{0, 1} {
		b.cells[bestRow][bestCol] = v
		if b.IsValid() && b.Solve() {
			return true
		}
	}
	b.cells[bestRow][bestCol] = Empty
	return false
}

// Print writes the board to w using one colored square per cell.
func (b *Board) Print(w io.Writer) error {
	var sb strings.Builder
	for _, row := range b.cells {
		for _, v := range row {
			switch v {
			case Empty:
				sb.WriteString("⬜")
			case 0:
				sb.WriteString("🟦")
			case 1:
				sb.WriteString("🟥")
			default:
				sb.WriteString("?")
			}
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
