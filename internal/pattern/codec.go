// Package pattern reads and writes the plain-text ".cells" format and places
// parsed patterns onto fixed-size grids.
package pattern

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/JacopoBartoli/game-of-life/internal/core"
)

// Ext is the file extension of plain-text patterns.
const Ext = ".cells"

const (
	commentMark = '!'
	aliveMark   = 'O'
	deadMark    = '.'

	maxLineBytes = 1 << 20
)

var (
	// ErrInvalidPattern is returned when a pattern cannot be read or has no
	// addressable cells.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrPatternTooLarge is returned when a pattern does not fit its target grid.
	ErrPatternTooLarge = errors.New("pattern larger than grid")
)

// Parse reads a pattern. Lines starting with '!' are comments. The grid has
// one row per remaining line and as many columns as the longest of them, in
// characters; an 'O' is a cell of age 1, anything else is dead.
func Parse(r io.Reader) (*core.Grid, error) {
	var lines [][]rune
	cols := 0
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, string(commentMark)) {
			continue
		}
		row := []rune(line)
		lines = append(lines, row)
		cols = max(cols, len(row))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	if len(lines) == 0 || cols == 0 {
		return nil, fmt.Errorf("%w: no cells", ErrInvalidPattern)
	}

	size := core.Size{Rows: len(lines), Cols: cols}
	cells := make([]uint8, size.Rows*size.Cols)
	for r, row := range lines {
		for c, ch := range row {
			if ch == aliveMark {
				cells[r*cols+c] = 1
			}
		}
	}
	return core.FromCells(size, cells)
}

// ParseFile reads the pattern stored at path.
func ParseFile(path string) (*core.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	defer f.Close()

	g, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Serialize writes g with one line per row: 'O' for alive cells and '.' for
// dead ones. Ages are not preserved.
func Serialize(w io.Writer, g *core.Grid) error {
	bw := bufio.NewWriter(w)
	cells := g.Cells()
	cols := g.Cols()
	line := make([]byte, cols+1)
	line[cols] = '\n'
	for r := 0; r < g.Rows(); r++ {
		for c, age := range cells[r*cols : (r+1)*cols] {
			line[c] = deadMark
			if age != 0 {
				line[c] = aliveMark
			}
		}
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveFile writes g to path, appending the ".cells" extension when missing.
// It returns the path actually written.
func SaveFile(path string, g *core.Grid) (string, error) {
	if !strings.HasSuffix(path, Ext) {
		path += Ext
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := Serialize(f, g); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// Place copies p into the centre of a dead grid of the given size. Margins are
// rounded down, so odd leftovers end up on the bottom and right edges.
func Place(p *core.Grid, size core.Size) (*core.Grid, error) {
	ps := p.Size()
	if !ps.Fits(size) {
		return nil, fmt.Errorf("%w: pattern %s, grid %s", ErrPatternTooLarge, ps, size)
	}
	vMargin := (size.Rows - ps.Rows) / 2
	hMargin := (size.Cols - ps.Cols) / 2

	src := p.Cells()
	dst := make([]uint8, size.Rows*size.Cols)
	for r := 0; r < ps.Rows; r++ {
		copy(dst[(r+vMargin)*size.Cols+hMargin:], src[r*ps.Cols:(r+1)*ps.Cols])
	}
	return core.FromCells(size, dst)
}

// Load parses the file at path and centres it on a grid of the given size.
func Load(path string, size core.Size) (*core.Grid, error) {
	p, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return Place(p, size)
}
