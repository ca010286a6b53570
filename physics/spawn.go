package physics

import (
	"errors"
	"fmt"

	"github.com/automoto/tilekit/archetypes"
	"github.com/automoto/tilekit/components"
	"github.com/automoto/tilekit/shared/collision"
	"github.com/automoto/tilekit/shared/terrain"
	"github.com/automoto/tilekit/shared/tiledef"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateSpace spawns the entity holding the collision space.
func CreateSpace(ecs *ecs.ECS, width, height, cellWidth, cellHeight int) *donburi.Entry {
	space := archetypes.Space.Spawn(ecs)
	spaceData := resolv.NewSpace(width, height, cellWidth, cellHeight)
	components.Space.Set(space, spaceData)
	return space
}

// SpawnGrid creates one entity per collision primitive of every placed tile in
// grid and adds its object to the world's space, if there is one. Cells
// holding tiledef.None or a tile without collision are skipped. It returns the
// number of entities created.
func SpawnGrid(ecs *ecs.ECS, grid *terrain.TileGrid, table *collision.Table, tileW, tileH float64) (int, error) {
	var space *resolv.Space
	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		space = components.Space.Get(spaceEntry)
	}

	count := 0
	var errs []error
	for cy := 0; cy < grid.Height; cy++ {
		for cx := 0; cx < grid.Width; cx++ {
			id := grid.At(cx, cy)
			if id == tiledef.None {
				continue
			}
			tc, ok := table.Get(id)
			if !ok {
				continue
			}
			placed, err := Place(tc, float64(cx)*tileW, float64(cy)*tileH)
			if err != nil {
				errs = append(errs, fmt.Errorf("cell (%d,%d): %w", cx, cy, err))
			}
			for _, p := range placed {
				e := spawnBody(ecs, p.Body.Properties)
				p.Object.Data = e
				components.Object.SetValue(e, components.ObjectData{Object: p.Object})
				components.TileBody.SetValue(e, components.TileBodyData{
					TileID:     id,
					CellX:      cx,
					CellY:      cy,
					Properties: p.Body.Properties,
					Shape:      p.Shape,
				})
				if space != nil {
					space.Add(p.Object)
				}
				count++
			}
		}
	}
	return count, errors.Join(errs...)
}

func spawnBody(ecs *ecs.ECS, p collision.BodyProperties) *donburi.Entry {
	if p.Sensor {
		return archetypes.SensorBody.Spawn(ecs)
	}
	return archetypes.SolidBody.Spawn(ecs)
}
