package geom

import (
	"fmt"
	"math"
)

// DefaultTolerance is the snapping grid used when a caller passes a
// non-positive tolerance.
const DefaultTolerance = 0.1

// snapEpsilon absorbs float error when comparing against half a tolerance.
const snapEpsilon = 1e-9

// Normalize converts a raw record into its canonical shape.
//
// Every coordinate is snapped: values within half a tolerance of an integer
// become that integer, everything else is rounded to the tolerance grid.
// Records that collapse to (near) zero area return ErrDegenerateShape.
// Normalize is a pure function and Normalize(s.Record()) == s for any shape
// it returned.
func Normalize(raw Record, tolerance float64) (Shape, error) {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	switch r := raw.(type) {
	case Rect:
		if rotation := normalizeAngle(r.Rotation); rotation != 0 {
			return normalizePolygon(Polygon{
				X:        r.X,
				Y:        r.Y,
				Rotation: rotation,
				Points:   []Point{{0, 0}, {r.W, 0}, {r.W, r.H}, {0, r.H}},
			}, tolerance)
		}
		return normalizeRect(r, tolerance)
	case Polygon:
		return normalizePolygon(r, tolerance)
	default:
		return Shape{}, fmt.Errorf("%w: %T", ErrUnsupportedShape, raw)
	}
}

func normalizeRect(r Rect, tol float64) (Shape, error) {
	x, y, w, h := r.X, r.Y, r.W, r.H
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}

	s := Shape{
		Kind: KindRect,
		X:    snap(x, tol),
		Y:    snap(y, tol),
		W:    snap(w, tol),
		H:    snap(h, tol),
	}
	if s.W < tol || s.H < tol {
		return s, fmt.Errorf("%w: rect %gx%g below tolerance %g", ErrDegenerateShape, s.W, s.H, tol)
	}
	return s, nil
}

func normalizePolygon(p Polygon, tol float64) (Shape, error) {
	rotation := normalizeAngle(p.Rotation)
	sin, cos := 0.0, 1.0
	if rotation != 0 {
		sin, cos = math.Sincos(rotation * math.Pi / 180)
	}

	points := make([]Point, 0, len(p.Points))
	for _, pt := range p.Points {
		x, y := pt.X, pt.Y
		if rotation != 0 {
			x, y = x*cos-y*sin, x*sin+y*cos
		}
		next := Point{snap(p.X+x, tol), snap(p.Y+y, tol)}
		if n := len(points); n > 0 && nearPoint(points[n-1], next, tol) {
			continue
		}
		points = append(points, next)
	}
	for len(points) > 1 && nearPoint(points[0], points[len(points)-1], tol) {
		points = points[:len(points)-1]
	}

	s := Shape{Kind: KindPolygon, Points: points}
	if len(points) < 3 {
		return s, fmt.Errorf("%w: polygon has %d distinct vertices", ErrDegenerateShape, len(points))
	}
	if a := math.Abs(Area(points)); a < tol*tol {
		return s, fmt.Errorf("%w: polygon area %g below tolerance", ErrDegenerateShape, a)
	}
	return s, nil
}

// snap maps v onto the canonical grid. The result is stable: snap(snap(v)) == snap(v).
func snap(v, tol float64) float64 {
	if n := math.Round(v); math.Abs(v-n) <= tol/2+snapEpsilon {
		return clean(n)
	}
	g := math.Round(v/tol) * tol
	if n := math.Round(g); math.Abs(g-n) <= tol/2+snapEpsilon {
		return clean(n)
	}
	return clean(g)
}

// clean turns negative zero into zero so equal shapes are bit-identical.
func clean(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}

func normalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg < snapEpsilon || 360-deg < snapEpsilon {
		return 0
	}
	return deg
}

func nearPoint(a, b Point, tol float64) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol
}
