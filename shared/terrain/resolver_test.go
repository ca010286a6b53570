package terrain

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/automoto/tilekit/shared/tiledef"
	"github.com/automoto/tilekit/shared/wang"
)

func buildRules(t *testing.T, tiles ...wang.Tile) *wang.Rules {
	t.Helper()
	set := wang.Set{
		Name: "Jungle",
		Type: wang.TypeCorner,
		Colors: []wang.Color{
			{Name: "grass", Probability: 1},
			{Name: "dirt", Probability: 0.5},
		},
		Tiles: tiles,
	}
	table, errs := wang.Index([]wang.Set{set})
	if len(errs) != 0 {
		t.Fatalf("Index returned errors: %v", errs)
	}
	rules, _ := table.Rules("Jungle")
	return rules
}

func fullJungle(t *testing.T) *wang.Rules {
	return buildRules(t,
		wang.Tile{TileID: 32, WangID: "0,1,0,2,0,1,0,1"},
		wang.Tile{TileID: 41, WangID: "0,1,0,1,0,1,0,1"},
		wang.Tile{TileID: 40, WangID: "0,1,0,1,0,1,0,1"},
		wang.Tile{TileID: 50, WangID: "0,2,0,2,0,2,0,2"},
	)
}

func mustResolver(t *testing.T, rules *wang.Rules, workers int) *Resolver {
	t.Helper()
	r, err := NewResolver(rules, workers)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	return r
}

func TestResolveUniformPicksLowestSkin(t *testing.T) {
	r := mustResolver(t, fullJungle(t), 2)
	g := GridFromRows([][]wang.ColorID{{1, 1, 1}, {1, 1, 1}})

	for run := 0; run < 10; run++ {
		out, errs := r.Resolve(g)
		if len(errs) != 0 {
			t.Fatalf("Unexpected errors: %v", errs)
		}
		for i, tile := range out.Tiles {
			if tile != 40 {
				t.Fatalf("Run %d cell %d: expected tile 40, got %s", run, i, tile)
			}
		}
	}
}

func TestResolveSelfPriorityOnTie(t *testing.T) {
	r := mustResolver(t, fullJungle(t), 1)
	g := GridFromRows([][]wang.ColorID{{1, 2}})

	if got := r.Corners(g, 0, 0); got != (wang.Corners{1, 1, 1, 1}) {
		t.Errorf("Left cell should keep its own color on the shared corners, got %v", got)
	}
	if got := r.Corners(g, 1, 0); got != (wang.Corners{2, 2, 2, 2}) {
		t.Errorf("Right cell should keep its own color on the shared corners, got %v", got)
	}

	out, errs := r.Resolve(g)
	if len(errs) != 0 {
		t.Fatalf("Unexpected errors: %v", errs)
	}
	if out.At(0, 0) != 40 || out.At(1, 0) != 50 {
		t.Errorf("Expected tiles 40,50, got %s", out)
	}
}

func TestResolveBlendsOnMajority(t *testing.T) {
	r := mustResolver(t, fullJungle(t), 1)
	g := GridFromRows([][]wang.ColorID{{1, 2}, {2, 2}})

	if got := r.Corners(g, 0, 0); got != (wang.Corners{1, 2, 1, 1}) {
		t.Fatalf("Expected corners 1,2,1,1, got %v", got)
	}
	out, errs := r.Resolve(g)
	if len(errs) != 0 {
		t.Fatalf("Unexpected errors: %v", errs)
	}
	if out.At(0, 0) != 32 {
		t.Errorf("Expected the blend tile 32, got %s", out.At(0, 0))
	}
	if out.At(1, 1) != 50 {
		t.Errorf("Expected dirt tile 50, got %s", out.At(1, 1))
	}
}

func TestResolveProbabilityBreaksTies(t *testing.T) {
	rules := buildRules(t,
		wang.Tile{TileID: 40, WangID: "0,1,0,1,0,1,0,1"},
		wang.Tile{TileID: 45, WangID: "0,1,0,1,0,1,0,1", Probability: 2},
	)
	r := mustResolver(t, rules, 1)

	out, _ := r.Resolve(GridFromRows([][]wang.ColorID{{1}}))
	if out.At(0, 0) != 45 {
		t.Errorf("Expected the more probable tile 45, got %s", out.At(0, 0))
	}
}

func TestResolveRelaxesNegotiableCorners(t *testing.T) {
	rules := buildRules(t,
		wang.Tile{TileID: 40, WangID: "0,1,0,1,0,1,0,1"},
		wang.Tile{TileID: 50, WangID: "0,2,0,2,0,2,0,2"},
	)
	r := mustResolver(t, rules, 1)

	out, errs := r.Resolve(GridFromRows([][]wang.ColorID{{1, 2}, {2, 2}}))
	if len(errs) != 0 {
		t.Fatalf("Unexpected errors: %v", errs)
	}
	if out.At(0, 0) != 40 {
		t.Errorf("Expected the relaxed match 40, got %s", out.At(0, 0))
	}
}

func TestResolveKeepsOutvotedIsland(t *testing.T) {
	r := mustResolver(t, fullJungle(t), 1)
	g := GridFromRows([][]wang.ColorID{
		{2, 2, 2},
		{2, 1, 2},
		{2, 2, 2},
	})

	if got := r.Corners(g, 1, 1); got != (wang.Corners{2, 2, 2, 2}) {
		t.Fatalf("Expected every corner outvoted to 2, got %v", got)
	}

	out, errs := r.Resolve(g)
	if len(errs) != 0 {
		t.Fatalf("Unexpected errors: %v", errs)
	}
	if out.At(1, 1) != 40 {
		t.Errorf("Expected the island to keep grass tile 40, got %s", out.At(1, 1))
	}
	if out.At(0, 0) != 50 || out.At(2, 2) != 50 {
		t.Errorf("Expected dirt tile 50 around the island, got\n%s", out)
	}
}

func TestResolveIslandWithoutOwnColorFails(t *testing.T) {
	rules := buildRules(t, wang.Tile{TileID: 50, WangID: "0,2,0,2,0,2,0,2"})
	r := mustResolver(t, rules, 1)

	out, errs := r.Resolve(GridFromRows([][]wang.ColorID{
		{2, 2, 2},
		{2, 1, 2},
		{2, 2, 2},
	}))
	if len(errs) != 1 || !errors.Is(errs[0], ErrNoMatchingTile) {
		t.Fatalf("Expected 1 ErrNoMatchingTile, got %v", errs)
	}
	if out.At(1, 1) != tiledef.None {
		t.Errorf("Expected the island to stay blank, got %s", out.At(1, 1))
	}
}

func TestResolveReportsNoMatchingTile(t *testing.T) {
	rules := buildRules(t, wang.Tile{TileID: 50, WangID: "0,2,0,2,0,2,0,2"})
	r := mustResolver(t, rules, 1)

	out, errs := r.Resolve(GridFromRows([][]wang.ColorID{{1, 2}}))
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %d: %v", len(errs), errs)
	}
	var cellErr *CellError
	if !errors.As(errs[0], &cellErr) || !errors.Is(errs[0], ErrNoMatchingTile) {
		t.Fatalf("Expected a CellError wrapping ErrNoMatchingTile, got %v", errs[0])
	}
	if cellErr.X != 0 || cellErr.Y != 0 {
		t.Errorf("Expected the failure at 0,0, got %d,%d", cellErr.X, cellErr.Y)
	}
	if out.At(0, 0) != tiledef.None {
		t.Errorf("Failed cell must stay blank, got %s", out.At(0, 0))
	}
	if out.At(1, 0) != 50 {
		t.Errorf("Expected the neighbor to resolve to 50, got %s", out.At(1, 0))
	}
}

func TestResolveSkipsBlankCells(t *testing.T) {
	r := mustResolver(t, fullJungle(t), 1)
	out, errs := r.Resolve(GridFromRows([][]wang.ColorID{{0, 1}, {0, 0}}))
	if len(errs) != 0 {
		t.Fatalf("Unexpected errors: %v", errs)
	}
	if out.At(0, 0) != tiledef.None || out.At(1, 0) != 40 {
		t.Errorf("Expected blank then 40, got\n%s", out)
	}
}

func TestResolveIsOrderIndependent(t *testing.T) {
	rules := fullJungle(t)
	rng := rand.New(rand.NewSource(12345))
	g := NewGrid(24, 17)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			g.Set(x, y, wang.ColorID(rng.Intn(3)))
		}
	}

	serial, serialErrs := mustResolver(t, rules, 1).Resolve(g)
	parallel, parallelErrs := mustResolver(t, rules, 8).Resolve(g)
	if !serial.Equal(parallel) {
		t.Errorf("Serial and parallel results differ:\n%s\nvs\n%s", serial, parallel)
	}
	if len(serialErrs) != len(parallelErrs) {
		t.Fatalf("Expected the same errors, got %d and %d", len(serialErrs), len(parallelErrs))
	}
	for i := range serialErrs {
		if serialErrs[i].Error() != parallelErrs[i].Error() {
			t.Errorf("Error %d differs: %v vs %v", i, serialErrs[i], parallelErrs[i])
		}
	}

	again, _ := mustResolver(t, rules, 8).Resolve(g)
	if !again.Equal(parallel) {
		t.Error("Resolve is not idempotent")
	}
}

func TestNewResolverRejectsEdgeSets(t *testing.T) {
	table, _ := wang.Index([]wang.Set{{Name: "Paths", Type: wang.TypeEdge}})
	rules, _ := table.Rules("Paths")
	if _, err := NewResolver(rules, 1); !errors.Is(err, ErrUnsupportedSetType) {
		t.Errorf("Expected ErrUnsupportedSetType, got %v", err)
	}
	if _, err := NewResolver(nil, 1); !errors.Is(err, ErrUnsupportedSetType) {
		t.Errorf("Expected ErrUnsupportedSetType for nil rules, got %v", err)
	}
}

func TestParseGrid(t *testing.T) {
	in := `# two rows
1,1,2

2 2
`
	g, err := ParseGrid(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	if g.Width != 3 || g.Height != 2 {
		t.Fatalf("Expected 3x2, got %dx%d", g.Width, g.Height)
	}
	if g.At(2, 0) != 2 || g.At(1, 1) != 2 || g.At(2, 1) != 0 {
		t.Errorf("Unexpected cells: %v", g.cells)
	}

	if _, err := ParseGrid(strings.NewReader("1,x")); err == nil {
		t.Error("Expected an error for a non-numeric color")
	}
}
