// Package tiledef holds the identifiers and raw property records shared by the
// collision, wang and terrain packages. It has no dependencies on go-tiled,
// resolv or donburi; pure data only.
package tiledef

import "strconv"

// TileID is a tile's local id inside its tileset.
type TileID uint32

// None marks a cell or slot with no tile.
const None TileID = ^TileID(0)

func (id TileID) String() string {
	if id == None {
		return "none"
	}
	return strconv.FormatUint(uint64(id), 10)
}

// Property is one custom property as written by the editor.
type Property struct {
	Name  string
	Type  string // "", "string", "bool", "int", "float", "color", "file", "object", "class"
	Value string
}

// Properties is an ordered property list.
type Properties []Property

// Get returns the property with the given name.
func (p Properties) Get(name string) (Property, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop, true
		}
	}
	return Property{}, false
}

// GetString returns the value of the named property, or "" if it is missing.
func (p Properties) GetString(name string) string {
	prop, _ := p.Get(name)
	return prop.Value
}
