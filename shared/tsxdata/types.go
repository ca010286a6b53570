// Package tsxdata loads Tiled tileset (.tsx) files into the raw records the
// collision and wang packages consume. Like leveldata it has no dependencies
// on resolv or donburi.
package tsxdata

import (
	"github.com/automoto/tilekit/shared/collision"
	"github.com/automoto/tilekit/shared/wang"
)

// Tileset holds the records parsed from one .tsx file.
type Tileset struct {
	Name       string
	TileWidth  int
	TileHeight int
	TileCount  int

	// Tiles lists every tile that has a <tile> element, in file order. Tiles
	// without an object group have no objects.
	Tiles    []collision.RawTile
	WangSets []wang.Set

	// Warnings holds problems isolated to one record, such as a wang set
	// with an unknown type. The rest of the tileset still loads.
	Warnings []error
}
