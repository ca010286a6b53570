package geom

import "testing"

func TestDedupCollapsesNearRects(t *testing.T) {
	a, err := Normalize(Rect{X: 0, Y: 0, W: 16, H: 7}, 0.1)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	b, err := Normalize(Rect{X: 0.07, Y: 0, W: 16.08, H: 6.92}, 0.1)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}

	got := Dedup([]Shape{a, b}, 0.1)
	if len(got) != 1 {
		t.Fatalf("Expected 1 shape after dedup, got %d: %v", len(got), got)
	}
	if !got[0].Equal(a) {
		t.Errorf("Expected the first shape to be kept, got %v", got[0])
	}
}

func TestDedupKeepsDistinctShapes(t *testing.T) {
	shapes := []Shape{
		{Kind: KindRect, X: 0, Y: 0, W: 16, H: 7},
		{Kind: KindRect, X: 0, Y: 9, W: 16, H: 7},
		{Kind: KindPolygon, Points: []Point{{0, 0}, {16, 0}, {16, 7}, {0, 7}}},
	}
	if got := Dedup(shapes, 0.1); len(got) != 3 {
		t.Errorf("Expected 3 shapes, got %d", len(got))
	}
}

func TestIsConvex(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   bool
	}{
		{"slope", []Point{{16, 0}, {16, 7}, {5, 16}, {0, 16}}, true},
		{"square", []Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}}, true},
		{"l shape", []Point{{0, 0}, {8, 0}, {8, 4}, {4, 4}, {4, 8}, {0, 8}}, false},
		{"line", []Point{{0, 0}, {4, 0}}, false},
	}
	for _, tt := range tests {
		if got := IsConvex(tt.points); got != tt.want {
			t.Errorf("%s: IsConvex = %v, expected %v", tt.name, got, tt.want)
		}
	}
}

func TestBounds(t *testing.T) {
	s := Shape{Kind: KindPolygon, Points: []Point{{16, 16}, {16, 11}, {5, 0}, {0, 0}}}
	x, y, w, h := s.Bounds()
	if x != 0 || y != 0 || w != 16 || h != 16 {
		t.Errorf("Expected bounds 0,0 16x16, got %g,%g %gx%g", x, y, w, h)
	}
}
