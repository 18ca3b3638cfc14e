package dcel

import (
	"github.com/pkg/errors"

	"github.com/jakoblistabarth/schemapify-sub001/geometry"
)

// Verify checks the structural invariants of the subdivision and reports the
// first violation found.
func (s *Subdivision) Verify() error {
	for _, e := range s.Edges() {
		edge := s.edges[e]
		for _, ref := range []EdgeIndex{edge.Twin, edge.Next, edge.Prev} {
			if ref == NoEdge || s.edges[ref].retired {
				return errors.Errorf("half-edge %d refers to a missing half-edge", e)
			}
		}
		if s.edges[edge.Twin].Twin != e {
			return errors.Errorf("half-edge %d: twin of twin is %d", e, s.edges[edge.Twin].Twin)
		}
		if s.edges[edge.Next].Prev != e {
			return errors.Errorf("half-edge %d: prev of next is %d", e, s.edges[edge.Next].Prev)
		}
		if s.edges[edge.Prev].Next != e {
			return errors.Errorf("half-edge %d: next of prev is %d", e, s.edges[edge.Prev].Next)
		}
		if s.edges[edge.Next].Tail != s.Head(e) {
			return errors.Errorf("half-edge %d: next does not start at its head", e)
		}
		if edge.Tail == s.Head(e) {
			return errors.Errorf("half-edge %d is a loop", e)
		}
		if edge.Face == NoFace || s.faces[edge.Face].retired {
			return errors.Errorf("half-edge %d has no face", e)
		}
		if s.edges[edge.Next].Face != edge.Face {
			return errors.Errorf("half-edge %d and its next lie on different faces", e)
		}
		if s.vertices[edge.Tail].retired {
			return errors.Errorf("half-edge %d starts at a retired vertex", e)
		}
	}

	for _, v := range s.Vertices() {
		edges := s.vertices[v].Edges
		var previous float64
		for i, e := range edges {
			if s.edges[e].Tail != v {
				return errors.Errorf("vertex %d lists half-edge %d which does not start there", v, e)
			}
			key := clockwiseKey(s.Angle(e))
			if i > 0 && key < previous {
				return errors.Errorf("vertex %d: outgoing half-edges are not sorted clockwise", v)
			}
			previous = key
			next := edges[geometry.CircularIndex(i+1, len(edges))]
			if s.edges[s.edges[e].Twin].Next != next {
				return errors.Errorf("vertex %d: twin of %d is not followed by %d", v, e, next)
			}
		}
		if k, ok := s.vertexByKey[s.vertices[v].Point.Key()]; !ok || k != v {
			return errors.Errorf("vertex %d is not registered under its coordinate key", v)
		}
	}

	for _, f := range s.Faces() {
		face := s.faces[f]
		if face.IsBounded() && (s.edges[face.Edge].retired || s.edges[face.Edge].Face != f) {
			return errors.Errorf("face %d: outer boundary edge %d does not bound it", f, face.Edge)
		}
		for _, inner := range face.InnerEdges {
			if s.edges[inner].retired || s.edges[inner].Face != f {
				return errors.Errorf("face %d: inner component edge %d does not bound it", f, inner)
			}
		}
	}
	return nil
}
