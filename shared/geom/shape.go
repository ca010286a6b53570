// Package geom turns authored collision shapes into canonical, noise-free
// primitives. Coordinates are tile-local with y pointing down, as in the
// editor.
package geom

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDegenerateShape marks a shape that collapsed to (near) zero area.
	// It is a warning: the shape is dropped and the build continues.
	ErrDegenerateShape = errors.New("degenerate shape")
	// ErrUnsupportedShape marks a record that is neither a Rect nor a Polygon.
	ErrUnsupportedShape = errors.New("unsupported shape")
)

// Point is a 2D point in tile-local units.
type Point struct {
	X, Y float64
}

// Record is a raw shape as authored. It is either a Rect or a Polygon.
type Record interface {
	isRecord()
}

// Rect is an authored rectangle. Rotation is in degrees, clockwise, around (X, Y).
type Rect struct {
	X, Y, W, H float64
	Rotation   float64
}

// Polygon is an authored polygon. Points are relative to (X, Y); Rotation is in
// degrees, clockwise, around (X, Y).
type Polygon struct {
	X, Y     float64
	Rotation float64
	Points   []Point
}

func (Rect) isRecord()    {}
func (Polygon) isRecord() {}

// Kind identifies the primitive held by a Shape.
type Kind uint8

const (
	KindRect Kind = iota + 1
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindPolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Shape is a canonical collision primitive.
type Shape struct {
	Kind Kind

	// Set for KindRect.
	X, Y, W, H float64

	// Set for KindPolygon, absolute tile-local vertices in authoring order.
	Points []Point
}

// Bounds returns the axis-aligned bounding box of the shape.
func (s Shape) Bounds() (x, y, w, h float64) {
	if s.Kind == KindRect {
		return s.X, s.Y, s.W, s.H
	}
	if len(s.Points) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY := s.Points[0].X, s.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range s.Points[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return minX, minY, maxX - minX, maxY - minY
}

// Vertices returns the shape outline. Rectangles are returned clockwise from
// their top-left corner.
func (s Shape) Vertices() []Point {
	if s.Kind == KindRect {
		return []Point{
			{s.X, s.Y},
			{s.X + s.W, s.Y},
			{s.X + s.W, s.Y + s.H},
			{s.X, s.Y + s.H},
		}
	}
	out := make([]Point, len(s.Points))
	copy(out, s.Points)
	return out
}

// Record converts the canonical shape back into an authored record.
func (s Shape) Record() Record {
	if s.Kind == KindRect {
		return Rect{X: s.X, Y: s.Y, W: s.W, H: s.H}
	}
	return Polygon{Points: s.Vertices()}
}

// Equal reports whether two shapes are bit-identical.
func (s Shape) Equal(o Shape) bool {
	if s.Kind != o.Kind {
		return false
	}
	if s.Kind == KindRect {
		return s.X == o.X && s.Y == o.Y && s.W == o.W && s.H == o.H
	}
	if len(s.Points) != len(o.Points) {
		return false
	}
	for i := range s.Points {
		if s.Points[i] != o.Points[i] {
			return false
		}
	}
	return true
}

func (s Shape) String() string {
	if s.Kind == KindRect {
		return fmt.Sprintf("rect(%g,%g %gx%g)", s.X, s.Y, s.W, s.H)
	}
	var b strings.Builder
	b.WriteString("polygon(")
	for i, p := range s.Points {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%g,%g", p.X, p.Y)
	}
	b.WriteByte(')')
	return b.String()
}
