package simplify

import (
	"sort"

	"github.com/jakoblistabarth/schemapify-sub001/dcel"
)

// FacePair is an unordered pair of faces, stored with the lower index first.
type FacePair struct {
	Lower, Upper dcel.FaceIndex
}

func pairOf(f, g dcel.FaceIndex) FacePair {
	if g < f {
		f, g = g, f
	}
	return FacePair{Lower: f, Upper: g}
}

// FaceFaceBoundary holds the edges separating two faces. Edges are the
// half-edges on the lower face, in index order.
type FaceFaceBoundary struct {
	Faces FacePair
	Edges []dcel.EdgeIndex
}

// BoundaryList groups all edges of a subdivision by the faces they separate.
type BoundaryList struct {
	boundaries []*FaceFaceBoundary
	byPair     map[FacePair]*FaceFaceBoundary
}

func NewBoundaryList(s *dcel.Subdivision) *BoundaryList {
	l := &BoundaryList{byPair: make(map[FacePair]*FaceFaceBoundary)}
	for _, e := range s.SimpleEdges() {
		pair := pairOf(s.IncidentFace(e), s.IncidentFace(s.Twin(e)))
		h := e
		if s.IncidentFace(h) != pair.Lower {
			h = s.Twin(e)
		}
		b, ok := l.byPair[pair]
		if !ok {
			b = &FaceFaceBoundary{Faces: pair}
			l.byPair[pair] = b
			l.boundaries = append(l.boundaries, b)
		}
		b.Edges = append(b.Edges, h)
	}
	sort.Slice(l.boundaries, func(i, j int) bool {
		a, b := l.boundaries[i].Faces, l.boundaries[j].Faces
		if a.Lower != b.Lower {
			return a.Lower < b.Lower
		}
		return a.Upper < b.Upper
	})
	for _, b := range l.boundaries {
		sort.Slice(b.Edges, func(i, j int) bool { return b.Edges[i] < b.Edges[j] })
	}
	return l
}

func (l *BoundaryList) Boundaries() []*FaceFaceBoundary {
	return l.boundaries
}

func (l *BoundaryList) Len() int {
	return len(l.boundaries)
}

// Boundary returns the boundary between two faces, in either order.
func (l *BoundaryList) Boundary(f, g dcel.FaceIndex) (*FaceFaceBoundary, bool) {
	b, ok := l.byPair[pairOf(f, g)]
	return b, ok
}
