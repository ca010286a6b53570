// Package physics places collision tables into a resolv space and a donburi
// world.
package physics

import (
	"errors"
	"fmt"

	"github.com/automoto/tilekit/shared/collision"
	"github.com/automoto/tilekit/shared/geom"
	"github.com/automoto/tilekit/tags"
	"github.com/solarlune/resolv"
)

// Tags returns the resolv tags for a body: its type, "solid" or "sensor", and
// the sensor behavior when one is set.
func Tags(p collision.BodyProperties) []string {
	out := []string{p.Type.String()}
	if !p.Sensor {
		return append(out, tags.ResolvSolid)
	}
	out = append(out, tags.ResolvSensor)
	if p.SensorBehavior != "" {
		out = append(out, p.SensorBehavior)
	}
	return out
}

// Placement is one resolv object together with the body and shape it was
// built from.
type Placement struct {
	Object *resolv.Object
	Body   collision.Body
	Shape  geom.Shape
}

// Place builds the placements for a tile with its top-left corner at (x, y).
// Rectangles and convex polygons map to one object each; concave polygons are
// triangulated. Shapes that cannot be triangulated are skipped and reported in
// the returned error.
func Place(tc collision.TileCollision, x, y float64) ([]Placement, error) {
	var out []Placement
	var errs []error
	for _, body := range tc.Bodies {
		tagList := Tags(body.Properties)
		for _, s := range body.Shapes {
			objs, err := ShapeObjects(s, x, y, tagList...)
			if err != nil {
				errs = append(errs, fmt.Errorf("tile %s: %w", tc.TileID, err))
				continue
			}
			for _, obj := range objs {
				out = append(out, Placement{Object: obj, Body: body, Shape: s})
			}
		}
	}
	return out, errors.Join(errs...)
}

// Objects returns only the resolv objects of Place.
func Objects(tc collision.TileCollision, x, y float64) ([]*resolv.Object, error) {
	placed, err := Place(tc, x, y)
	objs := make([]*resolv.Object, 0, len(placed))
	for _, p := range placed {
		objs = append(objs, p.Object)
	}
	return objs, err
}

// ShapeObjects converts one normalized shape into resolv objects offset by
// (x, y).
func ShapeObjects(s geom.Shape, x, y float64, tagList ...string) ([]*resolv.Object, error) {
	switch s.Kind {
	case geom.KindRect:
		obj := resolv.NewObject(x+s.X, y+s.Y, s.W, s.H, tagList...)
		obj.SetShape(resolv.NewRectangle(0, 0, s.W, s.H))
		return []*resolv.Object{obj}, nil
	case geom.KindPolygon:
		if geom.IsConvex(s.Points) {
			return []*resolv.Object{polygonObject(s.Points, x, y, tagList)}, nil
		}
		tris, err := geom.Triangulate(s.Points)
		if err != nil {
			return nil, err
		}
		objs := make([]*resolv.Object, 0, len(tris))
		for _, t := range tris {
			objs = append(objs, polygonObject(t[:], x, y, tagList))
		}
		return objs, nil
	default:
		return nil, fmt.Errorf("%w: %s", geom.ErrUnsupportedShape, s.Kind)
	}
}

// polygonObject sizes the object to the polygon's bounds; resolv shapes are
// positioned relative to their object.
func polygonObject(points []geom.Point, x, y float64, tagList []string) *resolv.Object {
	bx, by, bw, bh := geom.Shape{Kind: geom.KindPolygon, Points: points}.Bounds()
	obj := resolv.NewObject(x+bx, y+by, bw, bh, tagList...)

	coords := make([]float64, 0, 2*len(points))
	for _, p := range points {
		coords = append(coords, p.X-bx, p.Y-by)
	}
	obj.SetShape(resolv.NewConvexPolygon(0, 0, coords...))
	return obj
}
