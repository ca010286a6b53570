package collision

import (
	"runtime"
	"slices"

	"github.com/automoto/tilekit/shared/geom"
	"github.com/automoto/tilekit/shared/tiledef"
	"golang.org/x/sync/errgroup"
)

// Builder turns raw tiles into collision entries.
type Builder struct {
	Tolerance float64
	Workers   int // <= 0 means GOMAXPROCS
}

// NewBuilder returns a builder using the given snapping tolerance.
func NewBuilder(tolerance float64) *Builder {
	if tolerance <= 0 {
		tolerance = geom.DefaultTolerance
	}
	return &Builder{Tolerance: tolerance}
}

// BuildTile normalizes and groups one tile's objects. Objects with unsupported
// properties or degenerate shapes are skipped and reported; the remaining
// objects still form the entry.
func (b *Builder) BuildTile(tile RawTile) (TileCollision, []error) {
	var errs []error
	parts := make([]Part, 0, len(tile.Objects))
	for _, obj := range tile.Objects {
		props, err := ParseProperties(obj.Properties)
		if err != nil {
			errs = append(errs, &ObjectError{TileID: tile.ID, ObjectID: obj.ID, Err: err})
			continue
		}
		shape, err := geom.Normalize(obj.Shape, b.Tolerance)
		if err != nil {
			errs = append(errs, &ObjectError{TileID: tile.ID, ObjectID: obj.ID, Err: err})
			continue
		}
		parts = append(parts, Part{Shape: shape, Properties: props})
	}
	return Build(tile.ID, parts, b.Tolerance), errs
}

// BuildTable builds every tile in parallel. A tile id appearing more than once
// is replaced by its last occurrence, never merged. Errors are returned in
// tile order.
func (b *Builder) BuildTable(tiles []RawTile) (*Table, []error) {
	entries := make([]TileCollision, len(tiles))
	tileErrs := make([][]error, len(tiles))

	var g errgroup.Group
	g.SetLimit(b.workers())
	for i, tile := range tiles {
		g.Go(func() error {
			entries[i], tileErrs[i] = b.BuildTile(tile)
			return nil
		})
	}
	_ = g.Wait()

	t := &Table{entries: make(map[tiledef.TileID]TileCollision, len(entries))}
	var errs []error
	for i, e := range entries {
		if _, seen := t.entries[e.TileID]; !seen {
			t.ids = append(t.ids, e.TileID)
		}
		t.entries[e.TileID] = e
		errs = append(errs, tileErrs[i]...)
	}
	slices.Sort(t.ids)
	return t, errs
}

func (b *Builder) workers() int {
	if b.Workers > 0 {
		return b.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Table maps tile ids to their collision. It is immutable once built.
type Table struct {
	entries map[tiledef.TileID]TileCollision
	ids     []tiledef.TileID
}

// Get returns the collision of a tile. Tiles that were never loaded return an
// empty entry and false.
func (t *Table) Get(id tiledef.TileID) (TileCollision, bool) {
	tc, ok := t.entries[id]
	if !ok {
		return TileCollision{TileID: id}, false
	}
	return tc, true
}

// IDs returns the loaded tile ids in ascending order.
func (t *Table) IDs() []tiledef.TileID {
	return slices.Clone(t.ids)
}

// Len returns the number of loaded tiles.
func (t *Table) Len() int {
	return len(t.ids)
}

// BodyCount returns the total number of bodies across all tiles.
func (t *Table) BodyCount() int {
	n := 0
	for _, tc := range t.entries {
		n += len(tc.Bodies)
	}
	return n
}

// Changed lists, in ascending order, the tiles whose collision differs from
// prev, including tiles present in only one of the two tables.
func (t *Table) Changed(prev *Table) []tiledef.TileID {
	if prev == nil {
		return t.IDs()
	}
	var out []tiledef.TileID
	for _, id := range t.ids {
		old, ok := prev.Get(id)
		if !ok || !old.Equal(t.entries[id]) {
			out = append(out, id)
		}
	}
	for _, id := range prev.ids {
		if _, ok := t.entries[id]; !ok {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}
