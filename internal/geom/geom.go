// Package geom provides the small amount of 2D vector and segment math the
// cloth simulation needs. All types are plain values; nothing here holds state.
package geom

import "math"

type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{X: a.X + b.X, Y: a.Y + b.Y}
}

func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{X: a.X - b.X, Y: a.Y - b.Y}
}

func (a Vec2) Scale(s float64) Vec2 {
	return Vec2{X: a.X * s, Y: a.Y * s}
}

func (a Vec2) Length() float64 {
	return math.Hypot(a.X, a.Y)
}

func (a Vec2) Distance(b Vec2) float64 {
	return a.Sub(b).Length()
}

// Det computes the determinant of the 2x2 matrix [[a, b], [c, d]].
func Det(a, b, c, d float64) float64 {
	return a*d - b*c
}

// SegmentIntersection intersects the infinite lines through segments (p1,p2)
// and (p3,p4) with the classic determinant formula, then reports whether the
// computed point falls inside both segments' bounding boxes (inclusive).
//
// A zero denominator (parallel or collinear segments) yields non-finite
// coordinates; the containment test against such values evaluates false, so
// parallel segments come back as non-intersecting. That fallthrough is part
// of the contract, not an oversight.
func SegmentIntersection(p1, p2, p3, p4 Vec2) (Vec2, bool) {
	d := Det(p1.X-p2.X, p1.Y-p2.Y, p3.X-p4.X, p3.Y-p4.Y)
	d1 := Det(p1.X, p1.Y, p2.X, p2.Y)
	d2 := Det(p3.X, p3.Y, p4.X, p4.Y)

	at := Vec2{
		X: Det(d1, p1.X-p2.X, d2, p3.X-p4.X) / d,
		Y: Det(d1, p1.Y-p2.Y, d2, p3.Y-p4.Y) / d,
	}

	hit := between(at.X, p1.X, p2.X) && between(at.Y, p1.Y, p2.Y) &&
		between(at.X, p3.X, p4.X) && between(at.Y, p3.Y, p4.Y)
	return at, hit
}

// between reports lo <= v <= hi with the bounds given in either order.
// NaN input fails both comparisons and returns false.
func between(v, a, b float64) bool {
	if a > b {
		a, b = b, a
	}
	return v >= a && v <= b
}
