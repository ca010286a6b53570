package components

import (
	"github.com/automoto/tilekit/shared/collision"
	"github.com/automoto/tilekit/shared/geom"
	"github.com/automoto/tilekit/shared/tiledef"
	"github.com/yohamta/donburi"
)

// TileBodyData describes one collision primitive placed in the world.
type TileBodyData struct {
	TileID     tiledef.TileID
	CellX      int // grid column the tile was placed at
	CellY      int
	Properties collision.BodyProperties
	Shape      geom.Shape // tile-local, before placement
}

var TileBody = donburi.NewComponentType[TileBodyData]()
