package dcel

import (
	"math"

	"github.com/jakoblistabarth/schemapify-sub001/geometry"
)

// Subdivide inserts a vertex at p on e. Afterwards e runs from its old tail to
// p, and the returned half-edge runs from p to e's old head. Twins, cycles,
// classes and face references are kept consistent.
func (s *Subdivision) Subdivide(e EdgeIndex, p geometry.Point) (EdgeIndex, error) {
	if _, exists := s.FindVertex(p); exists {
		return NoEdge, TopologyError{Op: "subdivide", Reason: "a vertex already exists at " + p.Key()}
	}
	t := s.edges[e].Twin
	head := s.edges[t].Tail
	eNext := s.edges[e].Next
	tNext := s.edges[t].Next

	v := s.createVertex(p)
	e2 := EdgeIndex(len(s.edges))
	t2 := e2 + 1
	s.edges = append(s.edges,
		HalfEdge{
			Tail: v, Twin: t, Prev: e, Next: eNext, Face: s.edges[e].Face,
			Class: s.edges[e].Class, AssignedDirection: s.edges[e].AssignedDirection,
		},
		HalfEdge{
			Tail: v, Twin: e, Prev: t, Next: tNext, Face: s.edges[t].Face,
			Class: s.edges[t].Class, AssignedDirection: s.edges[t].AssignedDirection,
		},
	)
	s.edges[s.edges[e2].Next].Prev = e2
	s.edges[s.edges[t2].Next].Prev = t2

	s.edges[e].Next = e2
	s.edges[e].Twin = t2
	s.edges[t].Next = t2
	s.edges[t].Twin = e2

	s.vertices[v].Edges = []EdgeIndex{e2, t2}
	s.linkVertex(v)
	// p need not lie on the old segment, so the order around both old
	// endpoints may have changed.
	s.linkVertex(s.edges[e].Tail)
	s.linkVertex(head)
	return e2, nil
}

// RemoveVertex removes a vertex of degree two or less. The two edges through
// a degree-two vertex merge into one: the half-edge arriving at v absorbs the
// half-edge leaving it on the same side. The merged half-edge leaving the
// vertex before v in that direction is returned.
func (s *Subdivision) RemoveVertex(v VertexIndex) (EdgeIndex, error) {
	degree := s.Degree(v)
	if degree > 2 {
		return NoEdge, TopologyError{Op: "removeVertex", Reason: "vertex has degree greater than 2"}
	}
	if s.VertexCount() <= 3 {
		return NoEdge, TopologyError{Op: "removeVertex", Reason: "fewer than 3 vertices would remain"}
	}

	switch degree {
	case 0:
		s.retireVertex(v)
		return NoEdge, nil
	case 1:
		return s.removeDanglingVertex(v), nil
	}

	edges := s.vertices[v].Edges
	x := edges[0]
	// a arrives at v and continues along x.
	a := s.edges[x].Prev
	y := s.edges[a].Twin
	b := s.edges[x].Twin
	for _, side := range []EdgeIndex{a, b} {
		if n := len(s.Cycle(side)); n <= 3 {
			return NoEdge, TopologyError{Op: "removeVertex", Reason: "a face would be left with fewer than 3 edges"}
		}
	}

	u := s.edges[a].Tail
	w := s.edges[b].Tail

	xNext := s.edges[x].Next
	yNext := s.edges[y].Next
	s.edges[a].Next = xNext
	s.edges[xNext].Prev = a
	s.edges[b].Next = yNext
	s.edges[yNext].Prev = b
	s.edges[a].Twin = b
	s.edges[b].Twin = a

	s.replaceFaceReference(x, a)
	s.replaceFaceReference(y, b)
	s.retireEdge(x)
	s.retireEdge(y)
	s.retireVertex(v)

	s.linkVertex(u)
	s.linkVertex(w)
	return a, nil
}

func (s *Subdivision) removeDanglingVertex(v VertexIndex) EdgeIndex {
	x := s.vertices[v].Edges[0]
	a := s.edges[x].Twin
	u := s.edges[a].Tail
	before := s.edges[a].Prev
	after := s.edges[x].Next
	s.edges[before].Next = after
	s.edges[after].Prev = before
	s.replaceFaceReference(a, before)
	s.replaceFaceReference(x, before)
	s.vertices[u].Edges = removeEdge(s.vertices[u].Edges, a)
	s.retireEdge(a)
	s.retireEdge(x)
	s.retireVertex(v)
	return after
}

func (s *Subdivision) replaceFaceReference(old, replacement EdgeIndex) {
	f := s.edges[old].Face
	if f == NoFace {
		return
	}
	if s.faces[f].Edge == old {
		s.faces[f].Edge = replacement
	}
	for i, inner := range s.faces[f].InnerEdges {
		if inner == old {
			s.faces[f].InnerEdges[i] = replacement
		}
	}
}

func (s *Subdivision) retireEdge(e EdgeIndex) {
	s.edges[e].retired = true
	s.edges[e].Next = NoEdge
	s.edges[e].Prev = NoEdge
}

func (s *Subdivision) retireVertex(v VertexIndex) {
	if s.vertexByKey[s.vertices[v].Point.Key()] == v {
		delete(s.vertexByKey, s.vertices[v].Point.Key())
	}
	s.vertices[v].retired = true
	s.vertices[v].Edges = nil
}

func removeEdge(edges []EdgeIndex, e EdgeIndex) []EdgeIndex {
	result := edges[:0]
	for _, x := range edges {
		if x != e {
			result = append(result, x)
		}
	}
	return result
}

// MoveVertex relocates v. Moving onto another vertex is a topology error.
func (s *Subdivision) MoveVertex(v VertexIndex, p geometry.Point) error {
	if existing, ok := s.FindVertex(p); ok && existing != v {
		return TopologyError{Op: "moveVertex", Reason: "another vertex exists at " + p.Key()}
	}
	old := s.vertices[v].Point
	if s.vertexByKey[old.Key()] == v {
		delete(s.vertexByKey, old.Key())
	}
	s.vertices[v].Point = p
	s.vertexByKey[p.Key()] = v

	s.linkVertex(v)
	for _, e := range s.vertices[v].Edges {
		s.linkVertex(s.Head(e))
	}
	return nil
}

// MoveEdge relocates the endpoints of e to newTail and newHead. An endpoint
// moved onto one of its neighbouring vertices collapses the edge between
// them: the neighbour is removed first if it has degree two, otherwise the
// endpoint itself is. The returned half-edge runs from the new tail to the new
// head.
func (s *Subdivision) MoveEdge(e EdgeIndex, newTail, newHead geometry.Point) (EdgeIndex, error) {
	tail, head := s.Tail(e), s.Head(e)
	tail, err := s.moveEndpoint(tail, head, newTail)
	if err != nil {
		return NoEdge, err
	}
	head, err = s.moveEndpoint(head, tail, newHead)
	if err != nil {
		return NoEdge, err
	}
	moved, ok := s.EdgeBetween(tail, head)
	if !ok {
		return NoEdge, TopologyError{Op: "moveEdge", Reason: "moved edge no longer exists"}
	}
	return moved, nil
}

// moveEndpoint moves v, which is joined to other, to p and returns the vertex
// that ends up at p.
func (s *Subdivision) moveEndpoint(v, other VertexIndex, p geometry.Point) (VertexIndex, error) {
	if s.Point(v).Equal(p) {
		return v, nil
	}
	neighbor := NoVertex
	for _, out := range s.vertices[v].Edges {
		if h := s.Head(out); h != other && s.Point(h).Equal(p) {
			neighbor = h
		}
	}
	if neighbor == NoVertex {
		return v, s.MoveVertex(v, p)
	}

	switch {
	case s.Degree(neighbor) == 2:
		if _, err := s.RemoveVertex(neighbor); err != nil {
			return NoVertex, err
		}
		return v, s.MoveVertex(v, p)
	case s.Degree(v) == 2:
		if _, err := s.RemoveVertex(v); err != nil {
			return NoVertex, err
		}
		return neighbor, nil
	default:
		return NoVertex, TopologyError{Op: "moveEdge", Reason: "collapsed edge has no endpoint of degree 2"}
	}
}

// SplitLongEdges subdivides every edge longer than maxLength into equal parts
// no longer than maxLength. It returns the number of vertices added.
func (s *Subdivision) SplitLongEdges(maxLength float64) (int, error) {
	if maxLength <= 0 {
		return 0, nil
	}
	added := 0
	for _, e := range s.SimpleEdges() {
		segment := s.Segment(e)
		parts := int(math.Ceil(segment.Length()/maxLength - geometry.Tolerance))
		current := e
		for i := 1; i < parts; i++ {
			var err error
			current, err = s.Subdivide(current, segment.A.Lerp(segment.B, float64(i)/float64(parts)))
			if err != nil {
				return added, err
			}
			added++
		}
	}
	return added, nil
}
