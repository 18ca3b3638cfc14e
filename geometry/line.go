package geometry

import "math"

// Line is an infinite line through Point in Direction.
type Line struct {
	Point     Point
	Direction Vector
}

func LineFromPoints(a, b Point) Line {
	return Line{Point: a, Direction: b.Sub(a)}
}

func LineFromAngle(p Point, angle float64) Line {
	return Line{Point: p, Direction: VectorFromAngle(angle)}
}

// Side is positive when p lies to the left of the line, negative when it lies
// to the right and zero when it lies on the line. The magnitude is the
// distance scaled by the direction's length.
func (l Line) Side(p Point) float64 {
	return l.Direction.Cross(p.Sub(l.Point))
}

// DistanceTo is the perpendicular distance from p to the line. A line without
// a direction has no distance.
func (l Line) DistanceTo(p Point) (float64, bool) {
	length := l.Direction.Length()
	if length < Tolerance {
		return 0, false
	}
	return math.Abs(l.Side(p)) / length, true
}

// SignedDistance is like DistanceTo but positive on the left side.
func (l Line) SignedDistance(p Point) (float64, bool) {
	length := l.Direction.Length()
	if length < Tolerance {
		return 0, false
	}
	return l.Side(p) / length, true
}

// Intersect finds the intersection point of two lines. Parallel lines, and
// lines without direction, do not intersect.
func (l Line) Intersect(other Line) (Point, bool) {
	denom := l.Direction.Cross(other.Direction)
	if math.Abs(denom) < Tolerance*Tolerance {
		return Point{}, false
	}
	u, ok1 := l.Direction.Unit()
	w, ok2 := other.Direction.Unit()
	if !ok1 || !ok2 || math.Abs(u.Cross(w)) < AngleTolerance {
		return Point{}, false
	}
	t := other.Point.Sub(l.Point).Cross(other.Direction) / denom
	return l.Point.Add(l.Direction.Scale(t)), true
}

// Project returns the orthogonal projection of p onto the line.
func (l Line) Project(p Point) (Point, bool) {
	dd := l.Direction.Dot(l.Direction)
	if dd < Tolerance*Tolerance {
		return Point{}, false
	}
	t := p.Sub(l.Point).Dot(l.Direction) / dd
	return l.Point.Add(l.Direction.Scale(t)), true
}
