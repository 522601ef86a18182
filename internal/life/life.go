// Package life implements Conway's Game of Life on a bounded board whose
// cells remember how many generations they have been alive.
package life

import (
	"sync"

	"github.com/JacopoBartoli/game-of-life/internal/core"
)

// minBandRows keeps bands large enough that goroutine overhead stays small.
const minBandRows = 16

// Engine computes successive generations. The zero value evaluates the whole
// board on the calling goroutine.
type Engine struct {
	// Workers is the number of row bands evaluated concurrently. Values
	// below 2 disable banding.
	Workers int
}

// Advance returns the generation following g using a serial Engine.
func Advance(g *core.Grid) *core.Grid {
	return Engine{}.Advance(g)
}

// Advance returns the generation following g. The input grid is never
// modified. Cells outside the board count as dead.
func (e Engine) Advance(g *core.Grid) *core.Grid {
	size := g.Size()
	cur := g.Cells()
	next := make([]uint8, len(cur))

	bands := partition(size.Rows, e.Workers)
	if len(bands) == 1 {
		stepRows(cur, next, size, 0, size.Rows)
	} else {
		var wg sync.WaitGroup
		for _, b := range bands {
			wg.Add(1)
			go func() {
				defer wg.Done()
				stepRows(cur, next, size, b.from, b.to)
			}()
		}
		wg.Wait()
	}

	out, err := core.FromCells(size, next)
	if err != nil {
		// next is allocated from g's own size.
		panic(err)
	}
	return out
}

type band struct{ from, to int }

// partition splits rows into at most workers contiguous bands.
func partition(rows, workers int) []band {
	if workers > rows/minBandRows {
		workers = rows / minBandRows
	}
	if workers < 2 {
		return []band{{0, rows}}
	}
	per := (rows + workers - 1) / workers
	bands := make([]band, 0, workers)
	for from := 0; from < rows; from += per {
		bands = append(bands, band{from: from, to: min(from+per, rows)})
	}
	return bands
}

// stepRows writes the next ages of rows [from, to) into next.
func stepRows(cur, next []uint8, size core.Size, from, to int) {
	rows, cols := size.Rows, size.Cols
	for r := from; r < to; r++ {
		for c := 0; c < cols; c++ {
			neighbors := 0
			for dr := -1; dr <= 1; dr++ {
				nr := r + dr
				if nr < 0 || nr >= rows {
					continue
				}
				for dc := -1; dc <= 1; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					nc := c + dc
					if nc < 0 || nc >= cols {
						continue
					}
					if cur[nr*cols+nc] != 0 {
						neighbors++
					}
				}
			}
			idx := r*cols + c
			next[idx] = NextAge(cur[idx], neighbors)
		}
	}
}

// NextAge applies the B3/S23 rule to a single cell. Newborn cells get age 1,
// survivors age by one up to core.MaxAge, everything else is dead.
func NextAge(age uint8, neighbors int) uint8 {
	switch {
	case age == 0 && neighbors == 3:
		return 1
	case age != 0 && (neighbors == 2 || neighbors == 3):
		if age >= core.MaxAge {
			return core.MaxAge
		}
		return age + 1
	}
	return 0
}
