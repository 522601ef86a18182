package core

import (
	"errors"
	"fmt"
)

// MaxAge is the age ceiling; surviving cells stop aging once they reach it.
const MaxAge = 255

// ErrIndexOutOfBounds is returned for coordinates outside the grid.
var ErrIndexOutOfBounds = errors.New("index out of bounds")

// Grid stores the age of every cell in row-major order. Age 0 is dead, any
// other value is the number of generations the cell has been alive.
type Grid struct {
	rows, cols int
	data       []uint8
}

// NewGrid allocates a dead grid with the given dimensions.
func NewGrid(rows, cols int) *Grid {
	if rows <= 0 {
		rows = 1
	}
	if cols <= 0 {
		cols = 1
	}
	return &Grid{rows: rows, cols: cols, data: make([]uint8, rows*cols)}
}

// NewGridOf allocates a dead grid of the provided size.
func NewGridOf(s Size) *Grid { return NewGrid(s.Rows, s.Cols) }

// Size returns the grid dimensions.
func (g *Grid) Size() Size { return Size{Rows: g.rows, Cols: g.cols} }

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Index returns the linear slice index for (row, col).
func (g *Grid) Index(row, col int) int { return row*g.cols + col }

// Contains reports whether (row, col) addresses a cell of the grid.
func (g *Grid) Contains(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// At returns the age of the cell at (row, col).
func (g *Grid) At(row, col int) (uint8, error) {
	if !g.Contains(row, col) {
		return 0, g.outOfBounds(row, col)
	}
	return g.data[g.Index(row, col)], nil
}

// Alive reports whether the cell at (row, col) is alive. Cells outside the
// grid are dead.
func (g *Grid) Alive(row, col int) bool {
	return g.Contains(row, col) && g.data[g.Index(row, col)] != 0
}

// SetAge stores age at (row, col).
func (g *Grid) SetAge(row, col int, age uint8) error {
	if !g.Contains(row, col) {
		return g.outOfBounds(row, col)
	}
	g.data[g.Index(row, col)] = age
	return nil
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	out := &Grid{rows: g.rows, cols: g.cols, data: make([]uint8, len(g.data))}
	copy(out.data, g.data)
	return out
}

// Cells returns a copy of the ages in row-major order.
func (g *Grid) Cells() []uint8 {
	return append([]uint8(nil), g.data...)
}

// AliveCount returns the number of non-zero cells.
func (g *Grid) AliveCount() int {
	n := 0
	for _, age := range g.data {
		if age != 0 {
			n++
		}
	}
	return n
}

// Equal reports whether both grids have the same size and ages.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i, age := range g.data {
		if other.data[i] != age {
			return false
		}
	}
	return true
}

func (g *Grid) outOfBounds(row, col int) error {
	return fmt.Errorf("cell (%d,%d) in %dx%d grid: %w", row, col, g.rows, g.cols, ErrIndexOutOfBounds)
}

// FromCells wraps cells as a grid of size s. Ownership of cells is
// transferred to the grid; the caller must not modify the slice afterwards.
func FromCells(s Size, cells []uint8) (*Grid, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("grid size %s must be positive", s)
	}
	if len(cells) != s.Rows*s.Cols {
		return nil, fmt.Errorf("grid size %s needs %d cells, got %d", s, s.Rows*s.Cols, len(cells))
	}
	return &Grid{rows: s.Rows, cols: s.Cols, data: cells}, nil
}
