package terrain

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/automoto/tilekit/shared/tiledef"
	"github.com/automoto/tilekit/shared/wang"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoMatchingTile marks a cell no tile fits, even after relaxing its
	// negotiable corners. The cell is left blank; no tile is substituted.
	ErrNoMatchingTile = errors.New("no matching tile")
	// ErrUnsupportedSetType is returned for sets that do not match on corners.
	ErrUnsupportedSetType = errors.New("unsupported wang set type")
)

// CellError locates a resolution failure to one cell.
type CellError struct {
	X, Y    int
	Corners wang.Corners
	Err     error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("cell %d,%d corners %v: %v", e.X, e.Y, e.Corners, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}

type cornerKind uint8

const (
	// every contributing cell agrees
	cornerAgreed cornerKind = iota
	// contributors disagree and the cell kept its own color
	cornerContested
	// a strict majority of neighbors outvoted the cell
	cornerOverridden
)

// corner vertex offsets from a cell's top-left vertex, indexed by wang.Corner
var cornerVertex = [4][2]int{
	wang.CornerTopRight:    {1, 0},
	wang.CornerBottomRight: {1, 1},
	wang.CornerBottomLeft:  {0, 1},
	wang.CornerTopLeft:     {0, 0},
}

// Resolver picks tiles from one corner-matching wang set.
type Resolver struct {
	rules   *wang.Rules
	workers int
}

// NewResolver returns a resolver over rules. Workers <= 0 means GOMAXPROCS.
func NewResolver(rules *wang.Rules, workers int) (*Resolver, error) {
	if rules == nil {
		return nil, fmt.Errorf("%w: nil rules", ErrUnsupportedSetType)
	}
	if rules.Type == wang.TypeEdge {
		return nil, fmt.Errorf("%w: %q is an %s set", ErrUnsupportedSetType, rules.Name, rules.Type)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Resolver{rules: rules, workers: workers}, nil
}

// Resolve picks a tile for every non-blank cell. Rows are resolved in
// parallel; each cell reads only desired colors, so the result does not
// depend on resolution order. Cells that fail are left as tiledef.None and
// reported in row-major order.
func (r *Resolver) Resolve(g *Grid) (*TileGrid, []error) {
	out := &TileGrid{Width: g.Width, Height: g.Height, Tiles: make([]tiledef.TileID, g.Width*g.Height)}
	rowErrs := make([][]error, g.Height)

	var eg errgroup.Group
	eg.SetLimit(r.workers)
	for y := 0; y < g.Height; y++ {
		eg.Go(func() error {
			for x := 0; x < g.Width; x++ {
				tile, err := r.resolveCell(g, x, y)
				out.Tiles[y*g.Width+x] = tile
				if err != nil {
					rowErrs[y] = append(rowErrs[y], err)
				}
			}
			return nil
		})
	}
	_ = eg.Wait()

	var errs []error
	for _, e := range rowErrs {
		errs = append(errs, e...)
	}
	return out, errs
}

// Corners returns the effective corner colors of cell (x, y).
func (r *Resolver) Corners(g *Grid, x, y int) wang.Corners {
	corners, _ := deriveCorners(g, x, y)
	return corners
}

func (r *Resolver) resolveCell(g *Grid, x, y int) (tiledef.TileID, error) {
	self := g.At(x, y)
	if self == 0 {
		return tiledef.None, nil
	}

	// Every pick must show the cell's own color on at least one corner, so a
	// cell outvoted on all four corners never resolves to its neighbors' tile.
	corners, kinds := deriveCorners(g, x, y)
	if tile, ok := r.best(r.withColor(r.rules.Candidates(corners), self)); ok {
		return tile, nil
	}

	// Relax contested corners first, then the ones neighbors won. Agreed
	// corners are never relaxed.
	pattern := corners
	for _, kind := range []cornerKind{cornerContested, cornerOverridden} {
		for i, k := range kinds {
			if k != kind {
				continue
			}
			pattern[i] = 0
			if tile, ok := r.best(r.withColor(r.rules.Candidates(pattern), self)); ok {
				return tile, nil
			}
		}
	}

	return tiledef.None, &CellError{X: x, Y: y, Corners: corners, Err: ErrNoMatchingTile}
}

// withColor keeps the tiles with at least one corner of color c.
func (r *Resolver) withColor(tiles []tiledef.TileID, c wang.ColorID) []tiledef.TileID {
	out := tiles[:0]
	for _, t := range tiles {
		id, _ := r.rules.Lookup(t)
		for _, cc := range id.Corners() {
			if cc == c {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// best returns the highest scoring tile. Candidates arrive in ascending order,
// so ties keep the lowest id.
func (r *Resolver) best(tiles []tiledef.TileID) (tiledef.TileID, bool) {
	if len(tiles) == 0 {
		return tiledef.None, false
	}
	bestTile, bestScore := tiles[0], r.rules.Score(tiles[0])
	for _, t := range tiles[1:] {
		if s := r.rules.Score(t); s > bestScore {
			bestTile, bestScore = t, s
		}
	}
	return bestTile, true
}

// deriveCorners votes each corner of cell (x, y) among the non-blank cells
// sharing it. A strict majority wins; anything else keeps the cell's color.
func deriveCorners(g *Grid, x, y int) (wang.Corners, [4]cornerKind) {
	self := g.At(x, y)
	var corners wang.Corners
	var kinds [4]cornerKind

	for i, off := range cornerVertex {
		vx, vy := x+off[0], y+off[1]

		var colors [4]wang.ColorID
		n := 0
		for _, c := range [4]wang.ColorID{g.At(vx-1, vy-1), g.At(vx, vy-1), g.At(vx-1, vy), g.At(vx, vy)} {
			if c != 0 {
				colors[n] = c
				n++
			}
		}

		winner, votes := self, 0
		agreed := true
		for j := 0; j < n; j++ {
			if colors[j] != self {
				agreed = false
			}
			count := 0
			for k := 0; k < n; k++ {
				if colors[k] == colors[j] {
					count++
				}
			}
			if count > votes {
				winner, votes = colors[j], count
			}
		}

		switch {
		case agreed:
			corners[i], kinds[i] = self, cornerAgreed
		case votes*2 > n && winner != self:
			corners[i], kinds[i] = winner, cornerOverridden
		default:
			corners[i], kinds[i] = self, cornerContested
		}
	}
	return corners, kinds
}
