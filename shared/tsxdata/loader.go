package tsxdata

import (
	"encoding/xml"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/automoto/tilekit/shared/collision"
	"github.com/automoto/tilekit/shared/geom"
	"github.com/automoto/tilekit/shared/tiledef"
	"github.com/automoto/tilekit/shared/wang"
	"github.com/lafriks/go-tiled"
)

// LoadTileset parses a .tsx file. It takes an fs.FS so callers can pass
// embed.FS or os.DirFS. The document is decoded into go-tiled's Tileset, which
// carries object groups, tile probabilities and wang sets.
func LoadTileset(fsys fs.FS, tsxPath string) (*Tileset, error) {
	data, err := fs.ReadFile(fsys, tsxPath)
	if err != nil {
		return nil, fmt.Errorf("read TSX %s: %w", tsxPath, err)
	}

	var ts tiled.Tileset
	if err := xml.Unmarshal(data, &ts); err != nil {
		return nil, fmt.Errorf("decode TSX %s: %w", tsxPath, err)
	}
	ts.SetBaseDir(path.Dir(tsxPath))

	out := &Tileset{
		Name:       ts.Name,
		TileWidth:  ts.TileWidth,
		TileHeight: ts.TileHeight,
		TileCount:  ts.TileCount,
	}

	probability := make(map[tiledef.TileID]float64, len(ts.Tiles))
	for _, t := range ts.Tiles {
		id := tiledef.TileID(t.ID)
		probability[id] = float64(t.Probability)

		raw := collision.RawTile{ID: id}
		for _, og := range t.ObjectGroups {
			for _, o := range og.Objects {
				raw.Objects = append(raw.Objects, convertObject(o))
			}
		}
		out.Tiles = append(out.Tiles, raw)
	}

	for _, ws := range ts.WangSets {
		set, err := convertWangSet(ws, probability)
		if err != nil {
			out.Warnings = append(out.Warnings, fmt.Errorf("%s: %w", tsxPath, err))
			continue
		}
		out.WangSets = append(out.WangSets, set)
	}

	return out, nil
}

// LoadAllTilesets loads every .tsx file in dir, keyed by stem name, plus the
// sorted list of names.
func LoadAllTilesets(fsys fs.FS, dir string) (map[string]*Tileset, []string, error) {
	pattern := dir + "/*.tsx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tsx files found in %s", dir)
	}

	sets := make(map[string]*Tileset, len(matches))
	names := make([]string, 0, len(matches))
	for _, p := range matches {
		ts, err := LoadTileset(fsys, p)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", p, err)
		}
		stem := strings.TrimSuffix(path.Base(p), ".tsx")
		sets[stem] = ts
		names = append(names, stem)
	}

	sort.Strings(names)
	return sets, names, nil
}

// convertWangSet maps a go-tiled wang set onto the wang package's record.
// Tiles without a probability attribute decode as 0, which the rule table
// treats as the default weight.
func convertWangSet(ws *tiled.WangSet, probability map[tiledef.TileID]float64) (wang.Set, error) {
	typ, err := wang.ParseType(ws.Type)
	if err != nil {
		return wang.Set{}, fmt.Errorf("wangset %q: %w", ws.Name, err)
	}
	if len(ws.WangColors) > wang.MaxColors {
		return wang.Set{}, fmt.Errorf("wangset %q: %d colors, at most %d allowed", ws.Name, len(ws.WangColors), wang.MaxColors)
	}

	set := wang.Set{Name: ws.Name, Type: typ}
	for _, c := range ws.WangColors {
		set.Colors = append(set.Colors, wang.Color{
			Name:        c.Name,
			Color:       c.Color,
			Tile:        int(c.TileID),
			Probability: float64(c.Probability),
		})
	}
	for _, t := range ws.WangTiles {
		id := tiledef.TileID(t.TileID)
		set.Tiles = append(set.Tiles, wang.Tile{
			TileID:      id,
			WangID:      t.WangID,
			Probability: probability[id],
		})
	}
	return set, nil
}

// convertObject maps a go-tiled object onto a raw collision object. Objects
// that are neither polygons nor rectangles (polylines) get a nil shape, which
// the builder reports as unsupported.
func convertObject(o *tiled.Object) collision.Object {
	obj := collision.Object{ID: o.ID}
	for _, p := range o.Properties {
		obj.Properties = append(obj.Properties, tiledef.Property{
			Name:  p.Name,
			Type:  p.Type,
			Value: p.Value,
		})
	}

	switch {
	case len(o.Polygons) > 0:
		poly := geom.Polygon{X: o.X, Y: o.Y, Rotation: o.Rotation}
		if pts := o.Polygons[0].Points; pts != nil {
			for _, pt := range *pts {
				poly.Points = append(poly.Points, geom.Point{X: pt.X, Y: pt.Y})
			}
		}
		obj.Shape = poly
	case len(o.PolyLines) > 0:
		obj.Shape = nil
	default:
		obj.Shape = geom.Rect{X: o.X, Y: o.Y, W: o.Width, H: o.Height, Rotation: o.Rotation}
	}
	return obj
}
