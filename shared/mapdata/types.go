// Package mapdata reads tile layers from TMX maps so hand-painted maps can be
// placed the same way as resolved terrain. Pure data: no resolv or donburi.
package mapdata

import "github.com/automoto/tilekit/shared/terrain"

// LayerData is one tile layer of a map, restricted to a single tileset.
type LayerData struct {
	Name       string
	Tileset    string // tileset the tile ids are local to
	TileWidth  int
	TileHeight int
	Tiles      *terrain.TileGrid

	// Foreign counts painted cells that belong to a different tileset and
	// were left empty.
	Foreign int
}
