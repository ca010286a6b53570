package archetypes

import (
	"github.com/automoto/tilekit/components"
	cfg "github.com/automoto/tilekit/config"
	"github.com/automoto/tilekit/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	SolidBody = newArchetype(
		tags.Solid,
		components.TileBody,
		components.Object,
	)
	SensorBody = newArchetype(
		tags.Sensor,
		components.TileBody,
		components.Object,
	)
	Space = newArchetype(
		components.Space,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
