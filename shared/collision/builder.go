// Package collision groups normalized tile shapes into physics bodies.
package collision

import (
	"fmt"

	"github.com/automoto/tilekit/shared/geom"
	"github.com/automoto/tilekit/shared/tiledef"
)

// Part is one normalized shape with the properties of the object it came from.
type Part struct {
	Shape      geom.Shape
	Properties BodyProperties
}

// Body is one logical physics body: every primitive of a tile that shares
// the same properties.
type Body struct {
	Properties BodyProperties
	Shapes     []geom.Shape
}

// TileCollision is the collision description of one tile. A tile without an
// object group has no bodies.
type TileCollision struct {
	TileID tiledef.TileID
	Bodies []Body
}

// Empty reports whether the tile has no collision.
func (tc TileCollision) Empty() bool {
	return len(tc.Bodies) == 0
}

// Equal reports whether two entries hold identical bodies in identical order.
func (tc TileCollision) Equal(o TileCollision) bool {
	if tc.TileID != o.TileID || len(tc.Bodies) != len(o.Bodies) {
		return false
	}
	for i, b := range tc.Bodies {
		ob := o.Bodies[i]
		if b.Properties != ob.Properties || len(b.Shapes) != len(ob.Shapes) {
			return false
		}
		for j := range b.Shapes {
			if !b.Shapes[j].Equal(ob.Shapes[j]) {
				return false
			}
		}
	}
	return true
}

// Build groups parts by identical properties. Bodies appear in the order their
// first part was authored, shapes keep authoring order, and shapes Near an
// earlier shape of the same body are collapsed.
func Build(id tiledef.TileID, parts []Part, tolerance float64) TileCollision {
	tc := TileCollision{TileID: id}
	index := make(map[BodyProperties]int)
	for _, p := range parts {
		i, ok := index[p.Properties]
		if !ok {
			i = len(tc.Bodies)
			index[p.Properties] = i
			tc.Bodies = append(tc.Bodies, Body{Properties: p.Properties})
		}
		tc.Bodies[i].Shapes = append(tc.Bodies[i].Shapes, p.Shape)
	}
	for i := range tc.Bodies {
		tc.Bodies[i].Shapes = geom.Dedup(tc.Bodies[i].Shapes, tolerance)
	}
	return tc
}

// Object is one authored object from a tile's object group.
type Object struct {
	ID         uint32
	Shape      geom.Record
	Properties tiledef.Properties
}

// RawTile is a tile as handed over by the loader.
type RawTile struct {
	ID      tiledef.TileID
	Objects []Object
}

// ObjectError locates a failure to one object of one tile.
type ObjectError struct {
	TileID   tiledef.TileID
	ObjectID uint32
	Err      error
}

func (e *ObjectError) Error() string {
	return fmt.Sprintf("tile %s object %d: %v", e.TileID, e.ObjectID, e.Err)
}

func (e *ObjectError) Unwrap() error {
	return e.Err
}
