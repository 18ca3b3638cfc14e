package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

// Ring is a closed sequence of points. The closing point is implicit: the last
// point connects back to the first.
type Ring []Point

// RingFromOrb converts an orb ring, dropping the duplicated closing point.
func RingFromOrb(r orb.Ring) Ring {
	n := len(r)
	if n > 1 && r[0].Equal(r[n-1]) {
		n--
	}
	ring := make(Ring, 0, n)
	for _, p := range r[:n] {
		ring = append(ring, PointFromOrb(p))
	}
	return ring
}

// Orb converts the ring into a closed orb ring.
func (r Ring) Orb() orb.Ring {
	ring := make(orb.Ring, 0, len(r)+1)
	for _, p := range r {
		ring = append(ring, p.Orb())
	}
	if len(r) > 0 {
		ring = append(ring, r[0].Orb())
	}
	return ring
}

// SignedArea is positive for counterclockwise rings.
func (r Ring) SignedArea() float64 {
	var sum float64
	for i, p := range r {
		q := r[CircularIndex(i+1, len(r))]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

func (r Ring) Area() float64 {
	return math.Abs(r.SignedArea())
}

func (r Ring) IsClockwise() bool {
	return r.SignedArea() < 0
}

func (r Ring) Reverse() Ring {
	reversed := make(Ring, 0, len(r))
	for i := len(r) - 1; i >= 0; i-- {
		reversed = append(reversed, r[i])
	}
	return reversed
}

// CounterClockwise returns the ring wound counterclockwise.
func (r Ring) CounterClockwise() Ring {
	if r.IsClockwise() {
		return r.Reverse()
	}
	return r
}

func (r Ring) Segments() []LineSegment {
	segments := make([]LineSegment, 0, len(r))
	for i, p := range r {
		segments = append(segments, LineSegment{p, r[CircularIndex(i+1, len(r))]})
	}
	return segments
}

// OnBoundary reports whether p lies on one of the ring's segments.
func (r Ring) OnBoundary(p Point) bool {
	for _, s := range r.Segments() {
		if s.Contains(p) {
			return true
		}
	}
	return false
}

// Contains is an even-odd point-in-polygon test. Points on the boundary may
// go either way; use OnBoundary to tell them apart.
func (r Ring) Contains(p Point) bool {
	return r.crossingCount(p)%2 == 1
}

func (r Ring) crossingCount(p Point) int {
	crossings := 0
	for i, a := range r {
		b := r[CircularIndex(i+1, len(r))]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				crossings++
			}
		}
	}
	return crossings
}

// ContainsStrictly excludes the boundary.
func (r Ring) ContainsStrictly(p Point) bool {
	return !r.OnBoundary(p) && r.Contains(p)
}

// ContainsConvex tests p against a convex ring of either winding. Boundary
// points are contained.
func (r Ring) ContainsConvex(p Point) bool {
	sign := 0
	for i, a := range r {
		b := r[CircularIndex(i+1, len(r))]
		o := orientation(a, b, p)
		if o == 0 {
			continue
		}
		if sign == 0 {
			sign = o
		} else if o != sign {
			return false
		}
	}
	return true
}

// IntersectsSegmentInterior reports whether any part of s passes through the
// interior of the ring. Touching the boundary, or running along it, does not
// count.
func (r Ring) IntersectsSegmentInterior(s LineSegment) bool {
	if len(r) < 3 {
		return false
	}
	for _, edge := range r.Segments() {
		if s.Crosses(edge) {
			return true
		}
	}
	ts := s.splitParameters(r)
	for i := 1; i < len(ts); i++ {
		if ts[i]-ts[i-1] < Tolerance {
			continue
		}
		mid := s.A.Lerp(s.B, (ts[i]+ts[i-1])/2)
		if r.ContainsStrictly(mid) {
			return true
		}
	}
	return false
}

// Bounds returns the lower left and upper right corners of the ring's bounding
// box.
func (r Ring) Bounds() (Point, Point) {
	min := Point{X: math.Inf(1), Y: math.Inf(1)}
	max := Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range r {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}
