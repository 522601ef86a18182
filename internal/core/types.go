package core

import "fmt"

// Size describes the dimensions of a simulation grid.
type Size struct {
	Rows int
	Cols int
}

// Valid reports whether both dimensions are strictly positive.
func (s Size) Valid() bool { return s.Rows > 0 && s.Cols > 0 }

// Fits reports whether a grid of size s can be placed inside target.
func (s Size) Fits(target Size) bool { return s.Rows <= target.Rows && s.Cols <= target.Cols }

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Rows, s.Cols) }
