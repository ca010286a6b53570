package wang

import (
	"errors"
	"fmt"
	"slices"

	"github.com/automoto/tilekit/shared/tiledef"
	"golang.org/x/sync/errgroup"
)

// ErrUnknownWangColor marks a wang id referencing a color its set does not
// declare. The tile is left out of the table; the load continues.
var ErrUnknownWangColor = errors.New("unknown wang color")

// Color is a terrain color declared by a set. Its ColorID is its position in
// Set.Colors plus one.
type Color struct {
	Name        string
	Color       string // display color, e.g. "#ff0000"
	Tile        int    // representative tile, -1 if none
	Probability float64
}

// Tile assigns a wang id to a tile.
type Tile struct {
	TileID      tiledef.TileID
	WangID      string
	Probability float64 // the tile's own probability
}

// Set is a wang set as handed over by the loader.
type Set struct {
	Name   string
	Type   Type
	Colors []Color
	Tiles  []Tile
}

// TileError locates a failure to one tile of one set.
type TileError struct {
	Set    string
	TileID tiledef.TileID
	Err    error
}

func (e *TileError) Error() string {
	return fmt.Sprintf("wangset %q tile %s: %v", e.Set, e.TileID, e.Err)
}

func (e *TileError) Unwrap() error {
	return e.Err
}

// Rules is the indexed form of one set.
type Rules struct {
	Name string
	Type Type

	colors    []Color
	ids       map[tiledef.TileID]ID
	tileProb  map[tiledef.TileID]float64
	signature map[ID][]tiledef.TileID
	tiles     []tiledef.TileID
}

func newRules(set Set) (*Rules, []error) {
	r := &Rules{
		Name:      set.Name,
		Type:      set.Type,
		colors:    slices.Clone(set.Colors),
		ids:       make(map[tiledef.TileID]ID, len(set.Tiles)),
		tileProb:  make(map[tiledef.TileID]float64, len(set.Tiles)),
		signature: make(map[ID][]tiledef.TileID),
	}

	var errs []error
	for _, t := range set.Tiles {
		id, err := ParseID(t.WangID)
		if err == nil {
			err = r.validate(id)
		}
		if err != nil {
			errs = append(errs, &TileError{Set: set.Name, TileID: t.TileID, Err: err})
			continue
		}
		// Later entries for the same tile replace earlier ones.
		r.ids[t.TileID] = id
		r.tileProb[t.TileID] = defaultProbability(t.Probability)
	}

	for tile, id := range r.ids {
		sig := id.Masked(r.Type)
		r.signature[sig] = append(r.signature[sig], tile)
		r.tiles = append(r.tiles, tile)
	}
	for sig := range r.signature {
		slices.Sort(r.signature[sig])
	}
	slices.Sort(r.tiles)
	return r, errs
}

func (r *Rules) validate(id ID) error {
	for s, c := range id {
		if int(c) > len(r.colors) {
			return fmt.Errorf("%w: color %d in slot %d, set declares %d", ErrUnknownWangColor, c, s, len(r.colors))
		}
	}
	return nil
}

// Lookup returns the wang id of a tile.
func (r *Rules) Lookup(tile tiledef.TileID) (ID, bool) {
	id, ok := r.ids[tile]
	return id, ok
}

// Tiles returns every indexed tile in ascending order.
func (r *Rules) Tiles() []tiledef.TileID {
	return slices.Clone(r.tiles)
}

// Colors returns the declared colors; color i+1 is Colors()[i].
func (r *Rules) Colors() []Color {
	return slices.Clone(r.colors)
}

// ColorProbability returns the probability of a color. Unset colors and
// colors without a declared probability weigh 1.
func (r *Rules) ColorProbability(c ColorID) float64 {
	if c == 0 || int(c) > len(r.colors) {
		return 1
	}
	return defaultProbability(r.colors[c-1].Probability)
}

// Candidates returns, in ascending order, the tiles whose corners equal c.
// A zero in c matches any color. Edge slots are ignored.
func (r *Rules) Candidates(c Corners) []tiledef.TileID {
	return r.Match(CornerID(c))
}

// Match returns, in ascending order, the tiles whose id equals pattern on
// every slot the set type uses. Zero slots in pattern match any color.
func (r *Rules) Match(pattern ID) []tiledef.TileID {
	pattern = pattern.Masked(r.Type)

	exact := true
	for s, c := range pattern {
		if c == 0 && r.Type.Uses(Slot(s)) {
			exact = false
			break
		}
	}
	if exact {
		return slices.Clone(r.signature[pattern])
	}

	var out []tiledef.TileID
	for _, tile := range r.tiles {
		if matches(r.ids[tile], pattern) {
			out = append(out, tile)
		}
	}
	return out
}

func matches(id, pattern ID) bool {
	for s, c := range pattern {
		if c != 0 && id[s] != c {
			return false
		}
	}
	return true
}

// Score is the tile's probability times the probability of every color on
// the slots the set matches on. Unknown tiles score 0.
func (r *Rules) Score(tile tiledef.TileID) float64 {
	id, ok := r.ids[tile]
	if !ok {
		return 0
	}
	score := r.tileProb[tile]
	for s, c := range id {
		if c != 0 && r.Type.Uses(Slot(s)) {
			score *= r.ColorProbability(c)
		}
	}
	return score
}

func defaultProbability(p float64) float64 {
	if p <= 0 {
		return 1
	}
	return p
}

// RuleTable holds the indexed sets of a tileset. It is immutable once built.
type RuleTable struct {
	sets []*Rules
}

// Index validates and indexes every set in parallel. Tiles with malformed ids
// or unknown colors are left out and reported; every other tile is indexed.
func Index(sets []Set) (*RuleTable, []error) {
	rules := make([]*Rules, len(sets))
	setErrs := make([][]error, len(sets))

	var g errgroup.Group
	for i, set := range sets {
		g.Go(func() error {
			rules[i], setErrs[i] = newRules(set)
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, e := range setErrs {
		errs = append(errs, e...)
	}
	return &RuleTable{sets: rules}, errs
}

// Lookup returns the wang id of a tile in the first set that indexes it.
func (t *RuleTable) Lookup(tile tiledef.TileID) (ID, bool) {
	for _, r := range t.sets {
		if id, ok := r.Lookup(tile); ok {
			return id, true
		}
	}
	return ID{}, false
}

// Candidates returns the tiles of the first corner-matching set whose corners
// equal c, in ascending order. Edge sets are skipped. It returns nil when the
// table has no corner or mixed set.
func (t *RuleTable) Candidates(c Corners) []tiledef.TileID {
	for _, r := range t.sets {
		if r.Type != TypeEdge {
			return r.Candidates(c)
		}
	}
	return nil
}

// Rules returns the first set with the given name.
func (t *RuleTable) Rules(name string) (*Rules, bool) {
	for _, r := range t.sets {
		if r.Name == name {
			return r, true
		}
	}
	return nil, false
}

// Sets returns the indexed sets in load order.
func (t *RuleTable) Sets() []*Rules {
	return slices.Clone(t.sets)
}
