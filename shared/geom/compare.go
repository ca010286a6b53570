package geom

import "math"

// Near reports whether a and b differ by at most one tolerance step in every
// coordinate. Two raw shapes closer than tolerance always normalize to Near
// shapes. Polygons must have the same vertex count and start vertex.
func Near(a, b Shape, tolerance float64) bool {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind == KindRect {
		return within(a.X, b.X, tolerance) &&
			within(a.Y, b.Y, tolerance) &&
			within(a.W, b.W, tolerance) &&
			within(a.H, b.H, tolerance)
	}
	if len(a.Points) != len(b.Points) {
		return false
	}
	for i := range a.Points {
		p, q := a.Points[i], b.Points[i]
		if !within(p.X, q.X, tolerance) || !within(p.Y, q.Y, tolerance) {
			return false
		}
	}
	return true
}

func within(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol+snapEpsilon
}

// Dedup drops every shape that is Near an earlier one, keeping authoring order.
func Dedup(shapes []Shape, tolerance float64) []Shape {
	out := make([]Shape, 0, len(shapes))
next:
	for _, s := range shapes {
		for _, kept := range out {
			if Near(kept, s, tolerance) {
				continue next
			}
		}
		out = append(out, s)
	}
	return out
}

// Area returns the signed shoelace area of a closed outline. With y pointing
// down, clockwise outlines have positive area.
func Area(points []Point) float64 {
	var a float64
	for p, q := len(points)-1, 0; q < len(points); p, q = q, q+1 {
		a += points[p].X*points[q].Y - points[q].X*points[p].Y
	}
	return a / 2
}

// IsConvex reports whether the outline turns in one direction only.
// Collinear vertices are allowed.
func IsConvex(points []Point) bool {
	n := len(points)
	if n < 3 {
		return false
	}
	var sign float64
	for i := range points {
		a, b, c := points[i], points[(i+1)%n], points[(i+2)%n]
		cross := (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
		if cross == 0 {
			continue
		}
		if sign == 0 {
			sign = cross
			continue
		}
		if (cross > 0) != (sign > 0) {
			return false
		}
	}
	return sign != 0
}
