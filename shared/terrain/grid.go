// Package terrain picks a wang tile for every cell of a grid of desired
// terrain colors.
package terrain

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/automoto/tilekit/shared/tiledef"
	"github.com/automoto/tilekit/shared/wang"
)

// Grid is a caller-owned, row-major grid of desired colors. Color 0 marks a
// blank cell.
type Grid struct {
	Width, Height int
	cells         []wang.ColorID
}

// NewGrid returns a blank grid.
func NewGrid(width, height int) *Grid {
	return &Grid{Width: width, Height: height, cells: make([]wang.ColorID, width*height)}
}

// GridFromRows builds a grid from rows of colors. Short rows are padded with
// blanks.
func GridFromRows(rows [][]wang.ColorID) *Grid {
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	g := NewGrid(width, len(rows))
	for y, row := range rows {
		for x, c := range row {
			g.Set(x, y, c)
		}
	}
	return g
}

// In reports whether (x, y) lies inside the grid.
func (g *Grid) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// At returns the desired color of a cell, or 0 outside the grid.
func (g *Grid) At(x, y int) wang.ColorID {
	if !g.In(x, y) {
		return 0
	}
	return g.cells[y*g.Width+x]
}

// Set sets the desired color of a cell. Writes outside the grid are ignored.
func (g *Grid) Set(x, y int, c wang.ColorID) {
	if g.In(x, y) {
		g.cells[y*g.Width+x] = c
	}
}

// ParseGrid reads one row per line, colors separated by commas or spaces.
// Blank lines and lines starting with '#' are skipped.
func ParseGrid(r io.Reader) (*Grid, error) {
	var rows [][]wang.ColorID
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		row := make([]wang.ColorID, len(fields))
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil || v < 0 || v > wang.MaxColors {
				return nil, fmt.Errorf("line %d column %d: invalid color %q", line, i+1, f)
			}
			row[i] = wang.ColorID(v)
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read grid: %w", err)
	}
	return GridFromRows(rows), nil
}

// TileGrid is the resolved output, row-major. Unresolved and blank cells hold
// tiledef.None.
type TileGrid struct {
	Width, Height int
	Tiles         []tiledef.TileID
}

// At returns the tile of a cell, or tiledef.None outside the grid.
func (t *TileGrid) At(x, y int) tiledef.TileID {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return tiledef.None
	}
	return t.Tiles[y*t.Width+x]
}

// Equal reports whether two grids hold the same tiles.
func (t *TileGrid) Equal(o *TileGrid) bool {
	if t.Width != o.Width || t.Height != o.Height {
		return false
	}
	for i := range t.Tiles {
		if t.Tiles[i] != o.Tiles[i] {
			return false
		}
	}
	return true
}

func (t *TileGrid) String() string {
	var b strings.Builder
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			if x > 0 {
				b.WriteByte(',')
			}
			if id := t.At(x, y); id == tiledef.None {
				b.WriteByte('-')
			} else {
				b.WriteString(id.String())
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
