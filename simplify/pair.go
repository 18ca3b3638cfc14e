package simplify

import (
	"math"

	"github.com/jakoblistabarth/schemapify-sub001/dcel"
	"github.com/jakoblistabarth/schemapify-sub001/geometry"
)

// ConfigurationPair is a contraction together with the move that gives the
// swept area back. Compensation is nil for contractions that sweep no area.
type ConfigurationPair struct {
	Contraction  Contraction
	Compensation *Contraction
	// Shift is how far the compensation's inner edge moves.
	Shift float64
}

// cyclicDistance counts the edges between a and b along their face cycle,
// the shorter way round. Edges on different cycles are infinitely far apart.
func cyclicDistance(s *dcel.Subdivision, a, b dcel.EdgeIndex) int {
	cycle := s.Cycle(a)
	for i, e := range cycle {
		if e == b {
			if other := len(cycle) - i; other < i {
				return other
			}
			return i
		}
	}
	return math.MaxInt32
}

// FindCompensation picks, among candidates on the contraction's boundary,
// the closest feasible move that sweeps at least as much area to the other
// side and does not conflict with the contraction. It returns the distance
// to move that compensation by.
func FindCompensation(s *dcel.Subdivision, c Contraction, candidates []Contraction) (*Contraction, float64, bool) {
	var best *Contraction
	bestShift := 0.0
	bestDistance := math.MaxInt32
	for i := range candidates {
		candidate := &candidates[i]
		if candidate.Configuration.Boundary != c.Configuration.Boundary ||
			candidate.Configuration.Inner == c.Configuration.Inner ||
			!candidate.Feasible() ||
			candidate.Area*c.Area >= 0 ||
			math.Abs(candidate.Area) < math.Abs(c.Area)-geometry.Tolerance ||
			Conflicting(s, c.Configuration, candidate.Configuration) ||
			touchesMovedVertex(s, c, candidate.Configuration.Inner) {
			continue
		}
		shift, ok := candidate.ShiftFor(c.Area)
		if !ok {
			continue
		}
		distance := cyclicDistance(s, c.Configuration.Inner, candidate.Configuration.Inner)
		if distance < bestDistance {
			best, bestShift, bestDistance = candidate, shift, distance
		}
	}
	return best, bestShift, best != nil
}

// touchesMovedVertex reports whether e ends at a vertex that the contraction
// moves or merges away.
func touchesMovedVertex(s *dcel.Subdivision, c Contraction, e dcel.EdgeIndex) bool {
	inner := c.Configuration.Inner
	moved := []dcel.VertexIndex{s.Tail(inner), s.Head(inner)}
	if c.CollapsesTail {
		moved = append(moved, s.Tail(c.Configuration.Prev))
	}
	if c.CollapsesHead {
		moved = append(moved, s.Head(c.Configuration.Next))
	}
	for _, v := range moved {
		if s.Tail(e) == v || s.Head(e) == v {
			return true
		}
	}
	return false
}
