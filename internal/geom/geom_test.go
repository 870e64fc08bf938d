package geom

import (
	"math"
	"testing"
)

func TestDet(t *testing.T) {
	tests := []struct {
		a, b, c, d float64
		expected   float64
	}{
		{1, 0, 0, 1, 1},
		{2, 3, 4, 5, -2},
		{1, 2, 2, 4, 0},
		{0, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		if got := Det(tt.a, tt.b, tt.c, tt.d); got != tt.expected {
			t.Errorf("Det(%v,%v,%v,%v) = %v, want %v", tt.a, tt.b, tt.c, tt.d, got, tt.expected)
		}
	}
}

func TestVec2Arithmetic(t *testing.T) {
	a := V(1, 2)
	b := V(3, -1)

	if got := a.Add(b); got != V(4, 1) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != V(-2, 3) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != V(2, 4) {
		t.Errorf("Scale = %v", got)
	}
	if got := V(3, 4).Length(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Length = %v, want 5", got)
	}
	if got := V(1, 1).Distance(V(4, 5)); math.Abs(got-5) > 1e-12 {
		t.Errorf("Distance = %v, want 5", got)
	}
}

func TestSegmentIntersection(t *testing.T) {
	tests := []struct {
		name           string
		p1, p2, p3, p4 Vec2
		hit            bool
	}{
		{"perpendicular cross", V(0, 0), V(1, 1), V(0, 1), V(1, 0), true},
		{"crossing at midpoint", V(0.5, -1), V(0.5, 1), V(0, 0), V(1, 0), true},
		{"disjoint but lines cross", V(0, 0), V(1, 1), V(3, 0), V(4, -2), false},
		{"parallel horizontal", V(0, 0), V(1, 0), V(0, 1), V(1, 1), false},
		{"collinear overlapping", V(0, 0), V(2, 0), V(1, 0), V(3, 0), false},
		{"shared endpoint", V(0, 0), V(1, 0), V(1, 0), V(1, 1), true},
		{"far outside bbox", V(2, 2), V(3, 3), V(0, 1), V(1, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, got := SegmentIntersection(tt.p1, tt.p2, tt.p3, tt.p4); got != tt.hit {
				t.Errorf("SegmentIntersection = %v, want %v", got, tt.hit)
			}
		})
	}
}

func TestSegmentIntersectionPoint(t *testing.T) {
	at, hit := SegmentIntersection(V(0.5, -1), V(0.5, 1), V(0, 0), V(1, 0))
	if !hit {
		t.Fatal("expected intersection")
	}
	if math.Abs(at.X-0.5) > 1e-12 || math.Abs(at.Y) > 1e-12 {
		t.Errorf("intersection at %v, want (0.5, 0)", at)
	}
}

// Swapping the cut segment's endpoints must never change the verdict.
func TestSegmentIntersectionSymmetry(t *testing.T) {
	pairs := [][4]Vec2{
		{V(0, 0), V(1, 1), V(0, 1), V(1, 0)},
		{V(0, 0), V(1, 0), V(0, 1), V(1, 1)},
		{V(-1, 0.5), V(2, 0.5), V(0.3, 0), V(0.3, 1)},
		{V(2, 2), V(3, 3), V(0, 1), V(1, 0)},
	}

	for _, p := range pairs {
		_, fwd := SegmentIntersection(p[0], p[1], p[2], p[3])
		_, rev := SegmentIntersection(p[1], p[0], p[2], p[3])
		if fwd != rev {
			t.Errorf("asymmetric result for %v: %v vs %v", p, fwd, rev)
		}
	}
}

// Parallel segments produce a zero denominator; the undefined coordinates
// must fall out of the containment check rather than panic or match.
func TestSegmentIntersectionParallelNonFinite(t *testing.T) {
	at, hit := SegmentIntersection(V(0, 0), V(1, 0), V(0, 1), V(1, 1))
	if hit {
		t.Error("parallel segments must not intersect")
	}
	if !math.IsNaN(at.X) && !math.IsInf(at.X, 0) {
		t.Errorf("expected non-finite X for parallel segments, got %v", at.X)
	}
}
