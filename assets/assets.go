package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/automoto/tilekit/shared/terrain"
	"github.com/automoto/tilekit/shared/tsxdata"
)

var (
	//go:embed all:tilesets all:grids
	assetFS embed.FS
)

// FS exposes the embedded tilesets/ and grids/ directories.
func FS() fs.FS {
	return assetFS
}

type TilesetLoader struct {
	cache map[string]*tsxdata.Tileset
}

func NewTilesetLoader() *TilesetLoader {
	return &TilesetLoader{cache: make(map[string]*tsxdata.Tileset)}
}

// MustLoadTileset loads an embedded tileset by stem name, e.g. "jungle".
func (l *TilesetLoader) MustLoadTileset(name string) *tsxdata.Tileset {
	if ts, ok := l.cache[name]; ok {
		return ts
	}

	ts, err := tsxdata.LoadTileset(assetFS, path.Join("tilesets", name+".tsx"))
	if err != nil {
		panic(fmt.Sprintf("Failed to load tileset %s: %v", name, err))
	}
	l.cache[name] = ts
	return ts
}

// TilesetNames lists the embedded tilesets in sorted order.
func TilesetNames() []string {
	return names("tilesets", ".tsx")
}

// GridNames lists the embedded terrain grids in sorted order.
func GridNames() []string {
	return names("grids", ".txt")
}

// MustLoadGrid parses an embedded terrain grid by stem name.
func MustLoadGrid(name string) *terrain.Grid {
	f, err := assetFS.Open(path.Join("grids", name+".txt"))
	if err != nil {
		panic(fmt.Sprintf("Failed to open grid %s: %v", name, err))
	}
	defer f.Close()

	g, err := terrain.ParseGrid(f)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse grid %s: %v", name, err))
	}
	return g
}

func names(dir, ext string) []string {
	entries, err := assetFS.ReadDir(dir)
	if err != nil {
		panic(fmt.Sprintf("Failed to read %s directory: %v", dir, err))
	}

	var out []string
	for _, entry := range entries {
		if !entry.IsDir() && path.Ext(entry.Name()) == ext {
			out = append(out, strings.TrimSuffix(entry.Name(), ext))
		}
	}
	sort.Strings(out)
	return out
}
