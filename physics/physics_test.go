package physics

import (
	"testing"

	"github.com/automoto/tilekit/components"
	"github.com/automoto/tilekit/shared/collision"
	"github.com/automoto/tilekit/shared/geom"
	"github.com/automoto/tilekit/shared/terrain"
	"github.com/automoto/tilekit/shared/tiledef"
	"github.com/automoto/tilekit/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/filter"
)

func sampleTable(t *testing.T) *collision.Table {
	t.Helper()
	tiles := []collision.RawTile{
		{ID: 1, Objects: []collision.Object{
			{ID: 1, Shape: geom.Rect{X: 0, Y: 8, W: 16, H: 8}},
		}},
		{ID: 2, Objects: []collision.Object{
			{ID: 1, Shape: geom.Polygon{Points: []geom.Point{{X: 0, Y: 0}, {X: 16, Y: 0}, {X: 16, Y: 16}, {X: 8, Y: 16}, {X: 8, Y: 8}, {X: 0, Y: 8}}}},
		}},
		{ID: 3, Objects: []collision.Object{
			{ID: 1, Shape: geom.Rect{W: 16, H: 16}, Properties: tiledef.Properties{
				{Name: "is_sensor", Type: "bool", Value: "true"},
				{Name: "sensor_behavior", Value: "hide"},
			}},
		}},
	}
	table, errs := collision.NewBuilder(0.1).BuildTable(tiles)
	if len(errs) != 0 {
		t.Fatalf("BuildTable errors: %v", errs)
	}
	return table
}

func TestTags(t *testing.T) {
	tests := []struct {
		name  string
		props collision.BodyProperties
		want  []string
	}{
		{"default", collision.BodyProperties{}, []string{"static", "solid"}},
		{"kinematic", collision.BodyProperties{Type: collision.Kinematic}, []string{"kinematic", "solid"}},
		{"sensor", collision.BodyProperties{Sensor: true}, []string{"static", "sensor"}},
		{"behavior", collision.BodyProperties{Sensor: true, SensorBehavior: "hide"}, []string{"static", "sensor", "hide"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tags(tt.props)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestObjectsRect(t *testing.T) {
	tc, _ := sampleTable(t).Get(1)

	objs, err := Objects(tc, 32, 16)
	if err != nil {
		t.Fatalf("Objects: %v", err)
	}
	if len(objs) != 1 {
		t.Fatalf("Expected 1 object, got %d", len(objs))
	}
	o := objs[0]
	if o.X != 32 || o.Y != 24 || o.W != 16 || o.H != 8 {
		t.Errorf("Expected object at (32,24) 16x8, got (%g,%g) %gx%g", o.X, o.Y, o.W, o.H)
	}
	if !o.HasTags(tags.ResolvSolid) || !o.HasTags("static") {
		t.Errorf("Expected static solid tags, got %v", o.Tags())
	}
}

func TestObjectsConcavePolygon(t *testing.T) {
	tc, _ := sampleTable(t).Get(2)

	objs, err := Objects(tc, 0, 0)
	if err != nil {
		t.Fatalf("Objects: %v", err)
	}
	if len(objs) != 4 {
		t.Fatalf("Expected the L shape to split into 4 triangles, got %d objects", len(objs))
	}
	for _, o := range objs {
		if o.X < 0 || o.Y < 0 || o.X+o.W > 16 || o.Y+o.H > 16 {
			t.Errorf("Triangle object (%g,%g) %gx%g escapes the tile", o.X, o.Y, o.W, o.H)
		}
	}
}

func TestObjectsConvexPolygon(t *testing.T) {
	ramp := geom.Shape{Kind: geom.KindPolygon, Points: []geom.Point{{X: 0, Y: 16}, {X: 16, Y: 0}, {X: 16, Y: 16}}}

	objs, err := ShapeObjects(ramp, 16, 0, "static", "solid")
	if err != nil {
		t.Fatalf("ShapeObjects: %v", err)
	}
	if len(objs) != 1 {
		t.Fatalf("Expected 1 object for a convex polygon, got %d", len(objs))
	}
	if objs[0].X != 16 || objs[0].W != 16 || objs[0].H != 16 {
		t.Errorf("Unexpected bounds (%g,%g) %gx%g", objs[0].X, objs[0].Y, objs[0].W, objs[0].H)
	}
}

func TestSpawnGrid(t *testing.T) {
	table := sampleTable(t)
	e := ecs.NewECS(donburi.NewWorld())
	spaceEntry := CreateSpace(e, 64, 64, 16, 16)

	grid := &terrain.TileGrid{
		Width:  3,
		Height: 2,
		Tiles:  []tiledef.TileID{1, 2, tiledef.None, 3, 99, 1},
	}

	n, err := SpawnGrid(e, grid, table, 16, 16)
	if err != nil {
		t.Fatalf("SpawnGrid: %v", err)
	}
	// Two rects, four triangles and one sensor; tile 99 has no collision.
	if n != 7 {
		t.Fatalf("Expected 7 entities, got %d", n)
	}

	solids := donburi.NewQuery(filter.Contains(tags.Solid)).Count(e.World)
	sensors := donburi.NewQuery(filter.Contains(tags.Sensor)).Count(e.World)
	if solids != 6 || sensors != 1 {
		t.Errorf("Expected 6 solids and 1 sensor, got %d and %d", solids, sensors)
	}

	space := components.Space.Get(spaceEntry)
	donburi.NewQuery(filter.Contains(tags.Sensor)).Each(e.World, func(entry *donburi.Entry) {
		body := components.TileBody.Get(entry)
		if body.TileID != 3 || body.CellX != 0 || body.CellY != 1 {
			t.Errorf("Unexpected sensor placement %+v", body)
		}
		obj := components.Object.Get(entry)
		if obj.Space != space {
			t.Error("Expected the sensor object to be added to the space")
		}
		if obj.Y != 16 || !obj.HasTags("hide") {
			t.Errorf("Expected the hide sensor at y=16, got y=%g tags %v", obj.Y, obj.Tags())
		}
		if obj.Data != entry {
			t.Error("Expected the object to link back to its entry")
		}
	})
}

func TestPlaceKeepsBodyAndShape(t *testing.T) {
	tc, _ := sampleTable(t).Get(2)
	placed, err := Place(tc, 16, 0)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if len(placed) != 4 {
		t.Fatalf("Expected 4 placements for the L shape, got %d", len(placed))
	}
	for i, p := range placed {
		if p.Shape.Kind != geom.KindPolygon || len(p.Shape.Points) != 6 {
			t.Errorf("Placement %d: expected the source L polygon, got %+v", i, p.Shape)
		}
		if p.Body.Properties.Sensor {
			t.Errorf("Placement %d: expected a solid body", i)
		}
		if p.Object.X < 16 {
			t.Errorf("Placement %d: expected x >= 16, got %g", i, p.Object.X)
		}
	}
}

func TestSpawnGridMatchesObjects(t *testing.T) {
	table := sampleTable(t)
	grid := &terrain.TileGrid{
		Width:  3,
		Height: 2,
		Tiles:  []tiledef.TileID{1, 2, tiledef.None, 3, 99, 1},
	}

	want := 0
	for cy := 0; cy < grid.Height; cy++ {
		for cx := 0; cx < grid.Width; cx++ {
			tc, ok := table.Get(grid.At(cx, cy))
			if !ok {
				continue
			}
			objs, err := Objects(tc, float64(cx)*16, float64(cy)*16)
			if err != nil {
				t.Fatalf("Objects: %v", err)
			}
			want += len(objs)
		}
	}

	e := ecs.NewECS(donburi.NewWorld())
	n, err := SpawnGrid(e, grid, table, 16, 16)
	if err != nil {
		t.Fatalf("SpawnGrid: %v", err)
	}
	if n != want {
		t.Errorf("Expected %d entities, one per object, got %d", want, n)
	}
}

func TestSpawnGridWithoutSpace(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	grid := &terrain.TileGrid{Width: 1, Height: 1, Tiles: []tiledef.TileID{1}}

	n, err := SpawnGrid(e, grid, sampleTable(t), 16, 16)
	if err != nil || n != 1 {
		t.Errorf("Expected 1 entity and no error, got %d, %v", n, err)
	}
}
