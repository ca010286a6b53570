package mapdata

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/automoto/tilekit/shared/terrain"
	"github.com/automoto/tilekit/shared/tiledef"
	"github.com/lafriks/go-tiled"
)

// ErrLayerNotFound is returned when the map has no tile layer of that name.
var ErrLayerNotFound = errors.New("layer not found")

// LoadLayer parses a TMX file and returns the named tile layer as a grid of
// tile ids local to tileset. Empty cells and tiles from other tilesets hold
// tiledef.None. It takes an fs.FS so callers can pass embed.FS or os.DirFS;
// external tilesets are resolved through the same file system.
func LoadLayer(fsys fs.FS, tmxPath, layerName, tileset string) (*LayerData, error) {
	m, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	for _, layer := range m.Layers {
		if layer.Name != layerName {
			continue
		}

		data := &LayerData{
			Name:       layer.Name,
			Tileset:    tileset,
			TileWidth:  m.TileWidth,
			TileHeight: m.TileHeight,
			Tiles: &terrain.TileGrid{
				Width:  m.Width,
				Height: m.Height,
				Tiles:  make([]tiledef.TileID, m.Width*m.Height),
			},
		}
		for i := range data.Tiles.Tiles {
			data.Tiles.Tiles[i] = tiledef.None
		}

		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width; x++ {
				i := y*m.Width + x
				if i >= len(layer.Tiles) {
					continue
				}
				tile := layer.Tiles[i]
				if tile == nil || tile.IsNil() {
					continue
				}
				if tile.Tileset == nil || tile.Tileset.Name != tileset {
					data.Foreign++
					continue
				}
				data.Tiles.Tiles[i] = tiledef.TileID(tile.ID)
			}
		}
		return data, nil
	}

	return nil, fmt.Errorf("%s: %w: %q", tmxPath, ErrLayerNotFound, layerName)
}
