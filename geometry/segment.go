package geometry

import (
	"math"
	"sort"
)

type LineSegment struct {
	A Point
	B Point
}

func (s LineSegment) Vector() Vector {
	return s.B.Sub(s.A)
}

func (s LineSegment) Length() float64 {
	return s.A.DistanceTo(s.B)
}

func (s LineSegment) Angle() float64 {
	return s.Vector().Angle()
}

func (s LineSegment) Midpoint() Point {
	return s.A.Midpoint(s.B)
}

func (s LineSegment) Line() Line {
	return LineFromPoints(s.A, s.B)
}

func (s LineSegment) Reverse() LineSegment {
	return LineSegment{A: s.B, B: s.A}
}

// Bounds returns the lower left and upper right corners of the segment's
// bounding box.
func (s LineSegment) Bounds() (Point, Point) {
	return Point{X: math.Min(s.A.X, s.B.X), Y: math.Min(s.A.Y, s.B.Y)},
		Point{X: math.Max(s.A.X, s.B.X), Y: math.Max(s.A.Y, s.B.Y)}
}

// ClosestPoint returns the point of the segment closest to p.
func (s LineSegment) ClosestPoint(p Point) Point {
	v := s.Vector()
	dd := v.Dot(v)
	if dd < Tolerance*Tolerance {
		return s.A
	}
	t := p.Sub(s.A).Dot(v) / dd
	t = math.Max(0, math.Min(1, t))
	return s.A.Add(v.Scale(t))
}

func (s LineSegment) DistanceToPoint(p Point) float64 {
	return s.ClosestPoint(p).DistanceTo(p)
}

// Contains reports whether p lies on the segment, within Tolerance.
func (s LineSegment) Contains(p Point) bool {
	return s.DistanceToPoint(p) < Tolerance*10
}

// orientation is the sign of the turn a→b→c, with a tolerance band for
// collinear triples.
func orientation(a, b, c Point) int {
	cross := b.Sub(a).Cross(c.Sub(a))
	if math.Abs(cross) < Tolerance {
		return 0
	}
	if cross > 0 {
		return 1
	}
	return -1
}

// Intersects reports whether the two closed segments share at least one
// point.
func (s LineSegment) Intersects(other LineSegment) bool {
	o1 := orientation(s.A, s.B, other.A)
	o2 := orientation(s.A, s.B, other.B)
	o3 := orientation(other.A, other.B, s.A)
	o4 := orientation(other.A, other.B, s.B)
	if o1 != o2 && o3 != o4 {
		return true
	}
	return (o1 == 0 && s.Contains(other.A)) ||
		(o2 == 0 && s.Contains(other.B)) ||
		(o3 == 0 && other.Contains(s.A)) ||
		(o4 == 0 && other.Contains(s.B))
}

// Crosses reports whether the segments cross at a single point interior to
// both of them.
func (s LineSegment) Crosses(other LineSegment) bool {
	o1 := orientation(s.A, s.B, other.A)
	o2 := orientation(s.A, s.B, other.B)
	o3 := orientation(other.A, other.B, s.A)
	o4 := orientation(other.A, other.B, s.B)
	return o1*o2 < 0 && o3*o4 < 0
}

// Intersection returns the single intersection point of two segments.
// Disjoint, parallel and overlapping segments have none.
func (s LineSegment) Intersection(other LineSegment) (Point, bool) {
	if !s.Intersects(other) {
		return Point{}, false
	}
	return s.Line().Intersect(other.Line())
}

// DistanceToSegment is zero for intersecting segments and the closest
// endpoint-to-segment distance otherwise.
func (s LineSegment) DistanceToSegment(other LineSegment) float64 {
	if s.Intersects(other) {
		return 0
	}
	return math.Min(
		math.Min(s.DistanceToPoint(other.A), s.DistanceToPoint(other.B)),
		math.Min(other.DistanceToPoint(s.A), other.DistanceToPoint(s.B)),
	)
}

// parameter gives t such that A + t·(B-A) is the projection of p.
func (s LineSegment) parameter(p Point) float64 {
	v := s.Vector()
	dd := v.Dot(v)
	if dd == 0 {
		return 0
	}
	return p.Sub(s.A).Dot(v) / dd
}

// splitParameters collects the parameters along s where it meets the ring's
// boundary, including both ends, sorted ascending.
func (s LineSegment) splitParameters(r Ring) []float64 {
	ts := []float64{0, 1}
	for i, p := range r {
		if s.Contains(p) {
			ts = append(ts, s.parameter(p))
		}
		edge := LineSegment{p, r[CircularIndex(i+1, len(r))]}
		if s.Crosses(edge) {
			if x, ok := s.Line().Intersect(edge.Line()); ok {
				ts = append(ts, s.parameter(x))
			}
		}
	}
	sort.Float64s(ts)
	return ts
}
