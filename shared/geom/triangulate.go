package geom

import "errors"

// ErrNotSimple is returned when ear clipping cannot make progress, which
// happens for self-intersecting outlines.
var ErrNotSimple = errors.New("polygon is not simple")

const earEpsilon = 1e-10

// Triangulate splits a simple polygon into triangles by ear clipping.
// Triangles are wound the same way as the input.
func Triangulate(points []Point) ([][3]Point, error) {
	n := len(points)
	if n < 3 {
		return nil, ErrDegenerateShape
	}

	// Work on a counter-clockwise (negative area, y down) index list.
	idx := make([]int, n)
	reversed := Area(points) > 0
	for i := range idx {
		if reversed {
			idx[i] = n - 1 - i
		} else {
			idx[i] = i
		}
	}

	tris := make([][3]Point, 0, n-2)
	guard := 2 * len(idx)
	for v := len(idx) - 1; len(idx) > 2; {
		if guard--; guard <= 0 {
			return nil, ErrNotSimple
		}

		u := v
		if u >= len(idx) {
			u = 0
		}
		v = u + 1
		if v >= len(idx) {
			v = 0
		}
		w := v + 1
		if w >= len(idx) {
			w = 0
		}

		if !isEar(points, idx, u, v, w) {
			continue
		}

		a, b, c := points[idx[u]], points[idx[v]], points[idx[w]]
		if reversed {
			tris = append(tris, [3]Point{c, b, a})
		} else {
			tris = append(tris, [3]Point{a, b, c})
		}
		idx = append(idx[:v], idx[v+1:]...)
		guard = 2 * len(idx)
	}
	return tris, nil
}

func isEar(points []Point, idx []int, u, v, w int) bool {
	a, b, c := points[idx[u]], points[idx[v]], points[idx[w]]
	// Reflex or flat corner in a counter-clockwise (y down) walk.
	if (b.X-a.X)*(c.Y-a.Y)-(b.Y-a.Y)*(c.X-a.X) > -earEpsilon {
		return false
	}
	for p := range idx {
		if p == u || p == v || p == w {
			continue
		}
		if insideTriangle(a, b, c, points[idx[p]]) {
			return false
		}
	}
	return true
}

func insideTriangle(a, b, c, p Point) bool {
	d1 := cross(a, b, p)
	d2 := cross(b, c, p)
	d3 := cross(c, a, p)
	return d1 <= 0 && d2 <= 0 && d3 <= 0
}

func cross(a, b, p Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}
