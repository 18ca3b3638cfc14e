package simplify

import (
	"github.com/jakoblistabarth/schemapify-sub001/dcel"
	"github.com/jakoblistabarth/schemapify-sub001/geometry"
	"github.com/jakoblistabarth/schemapify-sub001/internal/edgeindex"
)

// Inflection describes how a boundary turns at the two ends of an edge.
type Inflection int8

const (
	// Convex boundaries turn left at both ends, seen from the edge's face.
	Convex Inflection = iota
	Reflex
	Mixed
)

func (i Inflection) String() string {
	switch i {
	case Convex:
		return "convex"
	case Reflex:
		return "reflex"
	default:
		return "mixed"
	}
}

// Configuration is an edge together with the edges before and after it on
// its face. The inner edge can be moved parallel to itself with its ends
// sliding along the lines of the other two.
type Configuration struct {
	Prev, Inner, Next dcel.EdgeIndex
	Boundary          FacePair
}

// maxDegree is the largest vertex degree at either end of a movable edge.
const maxDegree = 3

// NewConfiguration builds the configuration around e. It reports false when
// either end of e has more than three edges, or when the face around e is
// too small to hold a configuration.
func NewConfiguration(s *dcel.Subdivision, e dcel.EdgeIndex) (Configuration, bool) {
	if s.Degree(s.Tail(e)) > maxDegree || s.Degree(s.Head(e)) > maxDegree {
		return Configuration{}, false
	}
	prev, next := s.Prev(e), s.Next(e)
	if prev == next || prev == s.Twin(e) || next == s.Twin(e) || s.Twin(prev) == next {
		return Configuration{}, false
	}
	return Configuration{
		Prev:     prev,
		Inner:    e,
		Next:     next,
		Boundary: pairOf(s.IncidentFace(e), s.IncidentFace(s.Twin(e))),
	}, true
}

// Edges lists the three half-edges of the configuration in boundary order.
func (c Configuration) Edges() [3]dcel.EdgeIndex {
	return [3]dcel.EdgeIndex{c.Prev, c.Inner, c.Next}
}

func turn(a, b geometry.Vector) int {
	cross := a.Cross(b)
	switch {
	case cross > geometry.Tolerance:
		return 1
	case cross < -geometry.Tolerance:
		return -1
	}
	return 0
}

// Inflection classifies the turns from prev to inner and from inner to next.
func (c Configuration) Inflection(s *dcel.Subdivision) Inflection {
	inner := s.Vector(c.Inner)
	atTail := turn(s.Vector(c.Prev), inner)
	atHead := turn(inner, s.Vector(c.Next))
	switch {
	case atTail > 0 && atHead > 0:
		return Convex
	case atTail < 0 && atHead < 0:
		return Reflex
	}
	return Mixed
}

// Conflicting reports whether two configurations may not be moved in the
// same step: their triples share more than one edge, or they share one edge
// and are not both of mixed inflection.
func Conflicting(s *dcel.Subdivision, a, b Configuration) bool {
	shared := 0
	for _, x := range a.Edges() {
		for _, y := range b.Edges() {
			if edgeindex.Key(s, x) == edgeindex.Key(s, y) {
				shared++
			}
		}
	}
	switch {
	case shared > 1:
		return true
	case shared == 1:
		return a.Inflection(s) != Mixed || b.Inflection(s) != Mixed
	}
	return false
}

// Contractions lists the moves of the inner edge towards either side, as
// far as one of its neighbouring edges shrinks to nothing. An index, if
// given, is used to count blocking edges.
func (c Configuration) Contractions(s *dcel.Subdivision, idx *edgeindex.Index) []Contraction {
	direction, ok := s.Vector(c.Inner).Normal().Unit()
	if !ok {
		return nil
	}
	var contractions []Contraction
	for _, d := range []geometry.Vector{direction, direction.Scale(-1)} {
		if contraction, ok := c.contract(s, idx, d); ok {
			contractions = append(contractions, contraction)
		}
	}
	return contractions
}

// Contraction gives the move of the inner edge in one direction.
func (c Configuration) Contraction(s *dcel.Subdivision, idx *edgeindex.Index, direction geometry.Vector) (Contraction, bool) {
	return c.contract(s, idx, direction)
}

func (c Configuration) contract(s *dcel.Subdivision, idx *edgeindex.Index, direction geometry.Vector) (Contraction, bool) {
	tail, head := s.Tail(c.Inner), s.Head(c.Inner)
	t, h := s.Point(tail), s.Point(head)
	x, y := s.Point(s.Tail(c.Prev)), s.Point(s.Head(c.Next))

	tailTrack, ok := track(t.Sub(x), direction)
	if !ok {
		return Contraction{}, false
	}
	headTrack, ok := track(y.Sub(h), direction)
	if !ok {
		return Contraction{}, false
	}
	edge, ok := h.Sub(t).Unit()
	if !ok {
		return Contraction{}, false
	}

	// Distances, measured along direction, at which prev or next vanish.
	toTail := x.Sub(t).Dot(direction)
	toHead := y.Sub(h).Dot(direction)
	contraction := Contraction{
		Configuration: c,
		Direction:     direction,
		start:         t,
		end:           h,
		tailTrack:     tailTrack,
		headTrack:     headTrack,
		length:        t.DistanceTo(h),
		slope:         headTrack.Sub(tailTrack).Dot(edge),
		sign:          1,
	}
	switch {
	case toTail > geometry.Tolerance && toHead > geometry.Tolerance && geometry.Equal(toTail, toHead):
		contraction.Distance = toTail
		contraction.CollapsesTail, contraction.CollapsesHead = true, true
	case toTail > geometry.Tolerance && (toHead <= geometry.Tolerance || toTail < toHead):
		contraction.Distance = toTail
		contraction.CollapsesTail = true
	case toHead > geometry.Tolerance:
		contraction.Distance = toHead
		contraction.CollapsesHead = true
	default:
		return Contraction{}, false
	}
	if direction.Dot(edge.Normal()) > 0 {
		// Moving into the face shrinks it.
		contraction.sign = -1
	}

	if !c.endpointMovable(s, tail, c.Prev, tailTrack.Scale(contraction.Distance)) ||
		!c.endpointMovable(s, head, s.Twin(c.Next), headTrack.Scale(contraction.Distance)) {
		return Contraction{}, false
	}
	if contraction.CollapsesTail && !c.collapsible(s, c.Prev, s.Tail(c.Prev), tail, s.Angle(c.Inner)) {
		return Contraction{}, false
	}
	if contraction.CollapsesHead && !c.collapsible(s, s.Twin(c.Next), s.Head(c.Next), head, s.Angle(s.Twin(c.Inner))) {
		return Contraction{}, false
	}

	contraction.Tail, contraction.Head = contraction.EndpointsAt(contraction.Distance)
	if contraction.CollapsesTail {
		contraction.Tail = x
	}
	if contraction.CollapsesHead {
		contraction.Head = y
	}
	contraction.Area = contraction.AreaAt(contraction.Distance)
	if idx != nil {
		contraction.Blocking = c.blocking(s, idx, contraction.Sweep(contraction.Distance))
	}
	return contraction, true
}

// track is the displacement of an endpoint sliding along the line of v per
// unit of distance moved in direction.
func track(v, direction geometry.Vector) (geometry.Vector, bool) {
	unit, ok := v.Unit()
	if !ok {
		return geometry.Vector{}, false
	}
	along := unit.Dot(direction)
	if geometry.Equal(along, 0) {
		return geometry.Vector{}, false
	}
	return unit.Scale(1 / along), true
}

// endpointMovable checks the third edge at a degree-3 endpoint. It must lie
// on the line the endpoint slides along, and must not shrink away. sideEdge
// is the configuration edge on that line, pointing to the endpoint.
func (c Configuration) endpointMovable(s *dcel.Subdivision, v dcel.VertexIndex, sideEdge dcel.EdgeIndex, displacement geometry.Vector) bool {
	if s.Degree(v) <= 2 {
		return true
	}
	sideAngle := s.Angle(sideEdge)
	for _, out := range s.OutgoingEdges(v) {
		if out == c.Inner || out == s.Twin(c.Inner) || out == s.Twin(sideEdge) {
			continue
		}
		if !geometry.AngleEqual(s.Angle(out), sideAngle) {
			return false
		}
		if s.Vector(out).Dot(displacement) > 0 && displacement.Length() >= s.Length(out)-geometry.Tolerance {
			return false
		}
	}
	return true
}

// collapsible checks that the vertex at the far end of a vanishing edge can
// take over, and that the moved edge does not fold onto one of its edges.
// vanishing runs from target to the moving endpoint; angle is the direction
// the moved edge leaves target in.
func (c Configuration) collapsible(s *dcel.Subdivision, vanishing dcel.EdgeIndex, target, moving dcel.VertexIndex, angle float64) bool {
	if s.Degree(target) != 2 && s.Degree(moving) != 2 {
		return false
	}
	if s.VertexCount() <= 3 {
		return false
	}
	for _, side := range []dcel.EdgeIndex{vanishing, s.Twin(vanishing)} {
		if len(s.Cycle(side)) <= 3 {
			return false
		}
	}
	for _, out := range s.OutgoingEdges(target) {
		if out == vanishing {
			continue
		}
		if geometry.AngleEqual(s.Angle(out), angle) {
			return false
		}
	}
	return true
}

func (c Configuration) blocking(s *dcel.Subdivision, idx *edgeindex.Index, sweep geometry.Ring) int {
	own := make(map[dcel.EdgeIndex]bool, 3)
	for _, e := range c.Edges() {
		own[edgeindex.Key(s, e)] = true
	}
	blocking := 0
	for _, entry := range idx.IntersectingRing(sweep) {
		if !own[entry.Edge] {
			blocking++
		}
	}
	return blocking
}
