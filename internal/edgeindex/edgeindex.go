// Package edgeindex keeps the segments of a subdivision in an R-tree so that
// the staircase and simplification stages can find nearby edges without
// scanning the whole edge list.
package edgeindex

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"github.com/jakoblistabarth/schemapify-sub001/dcel"
	"github.com/jakoblistabarth/schemapify-sub001/geometry"
)

// minExtent pads degenerate bounding boxes, rtreego rejects zero lengths.
const minExtent = 1e-9

// Entry is a segment stored in the index. Edge is dcel.NoEdge for segments
// that do not belong to the subdivision, such as staircase paths.
type Entry struct {
	Edge    dcel.EdgeIndex
	Segment geometry.LineSegment
	bbox    rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *Entry) Bounds() rtreego.Rect {
	return e.bbox
}

type Index struct {
	tree    *rtreego.Rtree
	entries map[dcel.EdgeIndex]*Entry
}

func New() *Index {
	return &Index{
		tree:    rtreego.NewTree(2, 25, 50),
		entries: make(map[dcel.EdgeIndex]*Entry),
	}
}

// FromSubdivision indexes every edge of s once, under its Key.
func FromSubdivision(s *dcel.Subdivision) *Index {
	idx := New()
	for _, e := range s.SimpleEdges() {
		idx.InsertEdge(e, s.Segment(e))
	}
	return idx
}

func rect(minPoint, maxPoint geometry.Point) rtreego.Rect {
	width := math.Max(maxPoint.X-minPoint.X, minExtent)
	height := math.Max(maxPoint.Y-minPoint.Y, minExtent)
	r, err := rtreego.NewRect(rtreego.Point{minPoint.X, minPoint.Y}, []float64{width, height})
	if err != nil {
		// Only reachable for NaN coordinates.
		panic(err)
	}
	return r
}

// InsertEdge adds or replaces the segment stored for an edge.
func (idx *Index) InsertEdge(e dcel.EdgeIndex, segment geometry.LineSegment) {
	idx.RemoveEdge(e)
	entry := idx.insert(e, segment)
	idx.entries[e] = entry
}

// InsertSegment adds a free segment that is not tied to an edge.
func (idx *Index) InsertSegment(segment geometry.LineSegment) {
	idx.insert(dcel.NoEdge, segment)
}

func (idx *Index) insert(e dcel.EdgeIndex, segment geometry.LineSegment) *Entry {
	minPoint, maxPoint := segment.Bounds()
	entry := &Entry{Edge: e, Segment: segment, bbox: rect(minPoint, maxPoint)}
	idx.tree.Insert(entry)
	return entry
}

// RemoveEdge drops the segment stored for an edge, if any.
func (idx *Index) RemoveEdge(e dcel.EdgeIndex) {
	entry, ok := idx.entries[e]
	if !ok {
		return
	}
	idx.tree.Delete(entry)
	delete(idx.entries, e)
}

// Key is the half-edge of e's pair under which the index stores the edge.
func Key(s *dcel.Subdivision, e dcel.EdgeIndex) dcel.EdgeIndex {
	if twin := s.Twin(e); twin < e {
		return twin
	}
	return e
}

// Refresh re-reads the geometry of the given live edges from s.
func (idx *Index) Refresh(s *dcel.Subdivision, edges ...dcel.EdgeIndex) {
	for _, e := range edges {
		idx.InsertEdge(Key(s, e), s.Segment(e))
	}
}

func (idx *Index) Len() int {
	return idx.tree.Size()
}

// Search returns the entries whose bounding box intersects the rectangle
// spanned by the two corners.
func (idx *Index) Search(minPoint, maxPoint geometry.Point) []*Entry {
	results := idx.tree.SearchIntersect(rect(minPoint, maxPoint))
	entries := make([]*Entry, 0, len(results))
	for _, item := range results {
		entries = append(entries, item.(*Entry))
	}
	return entries
}

// IntersectingRing returns the entries with a segment that passes through the
// interior of the ring.
func (idx *Index) IntersectingRing(r geometry.Ring) []*Entry {
	minPoint, maxPoint := r.Bounds()
	var hits []*Entry
	for _, entry := range idx.Search(minPoint, maxPoint) {
		if r.IntersectsSegmentInterior(entry.Segment) {
			hits = append(hits, entry)
		}
	}
	return hits
}
