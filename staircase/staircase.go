// Package staircase replaces edges that are not aligned with an allowed
// orientation by zig-zag paths made only of allowed directions. Every path
// encloses as much area on one side of the original edge as on the other, so
// face areas survive the replacement.
package staircase

import (
	"math"

	"github.com/jakoblistabarth/schemapify-sub001/dcel"
	"github.com/jakoblistabarth/schemapify-sub001/geometry"
)

const (
	minStepsBasic     = 2
	minStepsDeviating = 4
	// The detour of a deviating staircase is at most this share of the
	// edge's length.
	maxOffsetShare = 0.1
)

// Staircase is the planned replacement of one edge. Segment runs from the
// edge's significant end, which stays where it is, to its other end.
type Staircase struct {
	Edge    dcel.EdgeIndex
	Class   dcel.Class
	Segment geometry.LineSegment
	// Assigned is the direction the path leaves the significant end in.
	// Associated is the second direction the steps alternate with.
	Assigned   int
	Associated int
	// Clearance is the distance to the nearest interfering edge, +Inf when
	// there is none.
	Clearance float64
	// Offset is the detour length of deviating staircases.
	Offset        float64
	Steps         int
	Region        geometry.Ring
	Interferences []dcel.EdgeIndex
	// Points is the full path including both ends of the edge.
	Points []geometry.Point
}

// Interior returns the points the path adds between the edge's ends, without
// consecutive duplicates.
func (st *Staircase) Interior() []geometry.Point {
	var points []geometry.Point
	last := st.Segment.A
	for _, p := range st.Points[1 : len(st.Points)-1] {
		if p.Equal(last) || p.Equal(st.Segment.B) {
			continue
		}
		points = append(points, p)
		last = p
	}
	return points
}

// Path returns the segments of the staircase.
func (st *Staircase) Path() []geometry.LineSegment {
	points := append([]geometry.Point{st.Segment.A}, st.Interior()...)
	points = append(points, st.Segment.B)
	segments := make([]geometry.LineSegment, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		segments = append(segments, geometry.LineSegment{A: points[i-1], B: points[i]})
	}
	return segments
}

// decompose writes v as u·a + w·b.
func decompose(v, a, b geometry.Vector) (float64, float64, bool) {
	det := a.Cross(b)
	if math.Abs(det) < geometry.Tolerance {
		return 0, 0, false
	}
	return v.Cross(b) / det, a.Cross(v) / det, true
}

// zigzag walks from one point to another in steps alternating between d1 and
// d2. The walk starts and ends with half a step along d1 so that it crosses
// the straight line from start to end in the middle of every d1 step. The
// returned points exclude from and include to.
func zigzag(from, to geometry.Point, d1, d2 geometry.Vector, steps int) []geometry.Point {
	u, w, ok := decompose(to.Sub(from), d1, d2)
	if !ok || steps < 1 {
		return []geometry.Point{to}
	}
	n := float64(steps)
	p := from.Add(d1.Scale(u / (2 * n)))
	points := []geometry.Point{p}
	for j := 0; j < steps; j++ {
		p = p.Add(d2.Scale(w / n))
		points = append(points, p)
		if j == steps-1 {
			break
		}
		p = p.Add(d1.Scale(u / n))
		points = append(points, p)
	}
	return append(points, to)
}

// zigzagOffset is the distance of a one-step zigzag's corners from the
// straight line. With n steps the corners lie at zigzagOffset/n.
func zigzagOffset(v, d1, d2 geometry.Vector) float64 {
	u, w, ok := decompose(v, d1, d2)
	length := v.Length()
	if !ok || length == 0 {
		return 0
	}
	return math.Abs(u*w*d1.Cross(d2)) / (2 * length)
}

// layout holds the directions a staircase is built from.
type layout struct {
	class dcel.Class
	a, b  geometry.Point
	// d1 and d2 are the step directions, ds the detour direction of
	// deviating staircases.
	d1, d2, ds geometry.Vector
}

func (l layout) length() float64 {
	return l.a.DistanceTo(l.b)
}

// legs returns the ends of the inner zigzag of an unaligned deviating
// staircase. The detour is shortened until the zigzag between the ends runs
// inside the edge's sector again.
func (l layout) legs(offset float64) (geometry.Point, geometry.Point, float64) {
	for i := 0; i < 32 && offset > geometry.Tolerance; i++ {
		from := l.a.Add(l.ds.Scale(offset))
		to := l.b.Add(l.ds.Scale(-offset))
		if u, w, ok := decompose(to.Sub(from), l.d1, l.d2); ok && u >= 0 && w >= 0 {
			return from, to, offset
		}
		offset /= 2
	}
	return l.a, l.b, 0
}

// path gives the full path including both ends.
func (l layout) path(offset, epsilon float64, steps int) []geometry.Point {
	switch l.class {
	case dcel.AlignedDeviating:
		// a is the significant end and has to leave along its assigned
		// direction ds, so only b keeps a straight piece of epsilon·length.
		reserve := epsilon * l.length()
		x := (l.length() - reserve) / 2
		p1 := l.a.Add(l.ds.Scale(offset))
		p2 := p1.Add(l.d1.Scale(x))
		p3 := p2.Add(l.ds.Scale(-2 * offset))
		p4 := p3.Add(l.d1.Scale(x))
		p5 := p4.Add(l.ds.Scale(offset))
		return []geometry.Point{l.a, p1, p2, p3, p4, p5, l.b}
	case dcel.Evading, dcel.UnalignedDeviating:
		from, to, offset := l.legs(offset)
		points := []geometry.Point{l.a}
		if offset > 0 {
			points = append(points, from)
		}
		points = append(points, zigzag(from, to, l.d1, l.d2, steps)...)
		if offset > 0 {
			points = append(points, l.b)
		}
		return points
	default:
		return append([]geometry.Point{l.a}, zigzag(l.a, l.b, l.d1, l.d2, steps)...)
	}
}

// region is a convex area that contains the staircase for any step count.
func (l layout) region(offset, epsilon float64) geometry.Ring {
	switch l.class {
	case dcel.AlignedDeviating:
		return geometry.ConvexHull(l.path(offset, epsilon, 1))
	case dcel.Evading, dcel.UnalignedDeviating:
		from, to, _ := l.legs(offset)
		return geometry.ConvexHull(append(parallelogram(from, to, l.d1, l.d2), l.a, l.b))
	default:
		return geometry.ConvexHull(parallelogram(l.a, l.b, l.d1, l.d2))
	}
}

// parallelogram spanned by d1 and d2 with from and to as opposite corners.
func parallelogram(from, to geometry.Point, d1, d2 geometry.Vector) []geometry.Point {
	u, w, ok := decompose(to.Sub(from), d1, d2)
	if !ok {
		return []geometry.Point{from, to}
	}
	return []geometry.Point{from, from.Add(d1.Scale(u)), to, from.Add(d2.Scale(w))}
}

// offset is the largest distance of a one-step path from the edge.
func (l layout) offset(detour float64) float64 {
	switch l.class {
	case dcel.AlignedDeviating:
		return detour * math.Abs(l.ds.Cross(l.d1))
	case dcel.Evading, dcel.UnalignedDeviating:
		from, to, _ := l.legs(detour)
		return zigzagOffset(to.Sub(from), l.d1, l.d2)
	default:
		return zigzagOffset(l.b.Sub(l.a), l.d1, l.d2)
	}
}

func (l layout) minSteps() int {
	switch l.class {
	case dcel.AlignedDeviating:
		return 1
	case dcel.Evading, dcel.UnalignedDeviating:
		return minStepsDeviating
	default:
		return minStepsBasic
	}
}

// stepsFor is the smallest step count at least min that keeps the zigzag
// within limit of the edge. A zero limit is capped at max.
func stepsFor(offset, limit float64, min, max int) int {
	if math.IsInf(limit, 1) || offset <= 0 {
		return min
	}
	if limit <= 0 {
		return max
	}
	steps := int(math.Ceil(offset/limit - geometry.Tolerance))
	if steps < min {
		return min
	}
	if steps > max {
		return max
	}
	return steps
}

// separation is the clearance between the edge seg and an interfering
// segment. Segments sharing an endpoint only count the distance of their far
// ends.
func separation(seg, other geometry.LineSegment) float64 {
	ends := []geometry.Point{seg.A, seg.B}
	otherEnds := []geometry.Point{other.A, other.B}
	shared := false
	for _, p := range ends {
		for _, q := range otherEnds {
			shared = shared || p.Equal(q)
		}
	}
	if !shared {
		return seg.DistanceToSegment(other)
	}

	d := math.Inf(1)
	for _, q := range otherEnds {
		if !q.Equal(seg.A) && !q.Equal(seg.B) {
			d = math.Min(d, seg.DistanceToPoint(q))
		}
	}
	for _, p := range ends {
		if !p.Equal(other.A) && !p.Equal(other.B) {
			d = math.Min(d, other.DistanceToPoint(p))
		}
	}
	return d
}
