// Package dcel implements a planar subdivision as a doubly connected edge
// list. Vertices, half-edges and faces live in flat arenas owned by the
// Subdivision and refer to each other by index.
package dcel

import (
	"math"
	"sort"

	"github.com/jbeda/geom"
	"github.com/paulmach/orb/geojson"

	"github.com/jakoblistabarth/schemapify-sub001/geometry"
	"github.com/jakoblistabarth/schemapify-sub001/internal"
)

type Subdivision struct {
	vertices    []Vertex
	edges       []HalfEdge
	faces       []Face
	vertexByKey map[string]VertexIndex
	unbounded   FaceIndex

	// Input features, by position, so output can restore them.
	featureProperties []geojson.Properties
	featureIDs        []interface{}
}

func New() *Subdivision {
	return &Subdivision{
		vertexByKey: make(map[string]VertexIndex),
		unbounded:   NoFace,
	}
}

// Clone returns a deep copy of the subdivision. Indices stay valid in the
// copy. Feature properties are shared, since no stage modifies them.
func (s *Subdivision) Clone() *Subdivision {
	c := &Subdivision{
		vertices:          make([]Vertex, len(s.vertices)),
		edges:             append([]HalfEdge(nil), s.edges...),
		faces:             make([]Face, len(s.faces)),
		vertexByKey:       make(map[string]VertexIndex, len(s.vertexByKey)),
		unbounded:         s.unbounded,
		featureProperties: s.featureProperties,
		featureIDs:        s.featureIDs,
	}
	for i, v := range s.vertices {
		v.Edges = append([]EdgeIndex(nil), v.Edges...)
		c.vertices[i] = v
	}
	for i, f := range s.faces {
		f.InnerEdges = append([]EdgeIndex(nil), f.InnerEdges...)
		f.FeatureIndices = append([]int(nil), f.FeatureIndices...)
		c.faces[i] = f
	}
	for k, v := range s.vertexByKey {
		c.vertexByKey[k] = v
	}
	return c
}

func (s *Subdivision) createVertex(p geometry.Point) VertexIndex {
	v := VertexIndex(len(s.vertices))
	s.vertices = append(s.vertices, Vertex{Point: p})
	s.vertexByKey[p.Key()] = v
	return v
}

// createEdgePair adds a half-edge from a to b together with its twin. The new
// half-edges are not linked into any cycle yet.
func (s *Subdivision) createEdgePair(a, b VertexIndex) (EdgeIndex, EdgeIndex) {
	e := EdgeIndex(len(s.edges))
	t := e + 1
	s.edges = append(s.edges,
		HalfEdge{Tail: a, Twin: t, Next: NoEdge, Prev: NoEdge, Face: NoFace, AssignedDirection: NoDirection},
		HalfEdge{Tail: b, Twin: e, Next: NoEdge, Prev: NoEdge, Face: NoFace, AssignedDirection: NoDirection},
	)
	s.vertices[a].Edges = append(s.vertices[a].Edges, e)
	s.vertices[b].Edges = append(s.vertices[b].Edges, t)
	return e, t
}

func (s *Subdivision) createFace() FaceIndex {
	f := FaceIndex(len(s.faces))
	s.faces = append(s.faces, Face{Edge: NoEdge, OuterRing: NoFace})
	return f
}

// VertexAt returns the vertex at p, creating it if none exists yet. Points
// that agree at geometry.Precision share a vertex.
func (s *Subdivision) VertexAt(p geometry.Point) VertexIndex {
	if v, ok := s.vertexByKey[p.Key()]; ok {
		return v
	}
	return s.createVertex(p)
}

// FindVertex looks up the vertex at p without creating one.
func (s *Subdivision) FindVertex(p geometry.Point) (VertexIndex, bool) {
	v, ok := s.vertexByKey[p.Key()]
	return v, ok
}

func (s *Subdivision) Vertex(v VertexIndex) Vertex {
	return s.vertices[v]
}

func (s *Subdivision) HalfEdge(e EdgeIndex) HalfEdge {
	return s.edges[e]
}

func (s *Subdivision) Face(f FaceIndex) Face {
	return s.faces[f]
}

func (s *Subdivision) Point(v VertexIndex) geometry.Point { return s.vertices[v].Point }
func (s *Subdivision) Tail(e EdgeIndex) VertexIndex       { return s.edges[e].Tail }
func (s *Subdivision) Head(e EdgeIndex) VertexIndex       { return s.edges[s.edges[e].Twin].Tail }
func (s *Subdivision) Twin(e EdgeIndex) EdgeIndex         { return s.edges[e].Twin }
func (s *Subdivision) Next(e EdgeIndex) EdgeIndex         { return s.edges[e].Next }
func (s *Subdivision) Prev(e EdgeIndex) EdgeIndex         { return s.edges[e].Prev }
func (s *Subdivision) IncidentFace(e EdgeIndex) FaceIndex { return s.edges[e].Face }
func (s *Subdivision) Class(e EdgeIndex) Class            { return s.edges[e].Class }
func (s *Subdivision) AssignedDirection(e EdgeIndex) int  { return s.edges[e].AssignedDirection }
func (s *Subdivision) Unbounded() FaceIndex               { return s.unbounded }

// OutgoingEdges returns a copy of the vertex's outgoing half-edges in
// clockwise order.
func (s *Subdivision) OutgoingEdges(v VertexIndex) []EdgeIndex {
	return append([]EdgeIndex(nil), s.vertices[v].Edges...)
}

func (s *Subdivision) Degree(v VertexIndex) int {
	return len(s.vertices[v].Edges)
}

func (s *Subdivision) Significance(v VertexIndex) Significance {
	return s.vertices[v].Significance
}

func (s *Subdivision) IsSignificant(v VertexIndex) bool {
	return s.vertices[v].Significance == Significant
}

func (s *Subdivision) SetSignificance(v VertexIndex, significance Significance) {
	s.vertices[v].Significance = significance
}

// SetClass sets the class of an edge and its twin.
func (s *Subdivision) SetClass(e EdgeIndex, c Class) {
	s.edges[e].Class = c
	s.edges[s.edges[e].Twin].Class = c
}

func (s *Subdivision) SetAssignedDirection(e EdgeIndex, direction int) {
	s.edges[e].AssignedDirection = direction
}

// Vertices lists all live vertices.
func (s *Subdivision) Vertices() []VertexIndex {
	vertices := make([]VertexIndex, 0, len(s.vertices))
	for i := range s.vertices {
		if !s.vertices[i].retired {
			vertices = append(vertices, VertexIndex(i))
		}
	}
	return vertices
}

// Edges lists all live half-edges.
func (s *Subdivision) Edges() []EdgeIndex {
	edges := make([]EdgeIndex, 0, len(s.edges))
	for i := range s.edges {
		if !s.edges[i].retired {
			edges = append(edges, EdgeIndex(i))
		}
	}
	return edges
}

// SimpleEdges lists one half-edge per undirected edge: the one with the
// lower index.
func (s *Subdivision) SimpleEdges() []EdgeIndex {
	edges := make([]EdgeIndex, 0, len(s.edges)/2)
	for i := range s.edges {
		e := EdgeIndex(i)
		if !s.edges[i].retired && e < s.edges[i].Twin {
			edges = append(edges, e)
		}
	}
	return edges
}

// Faces lists all live faces, including the unbounded one.
func (s *Subdivision) Faces() []FaceIndex {
	faces := make([]FaceIndex, 0, len(s.faces))
	for i := range s.faces {
		if !s.faces[i].retired {
			faces = append(faces, FaceIndex(i))
		}
	}
	return faces
}

func (s *Subdivision) BoundedFaces() []FaceIndex {
	faces := make([]FaceIndex, 0, len(s.faces))
	for _, f := range s.Faces() {
		if s.faces[f].IsBounded() {
			faces = append(faces, f)
		}
	}
	return faces
}

func (s *Subdivision) VertexCount() int { return len(s.Vertices()) }
func (s *Subdivision) EdgeCount() int   { return len(s.Edges()) }
func (s *Subdivision) FaceCount() int   { return len(s.Faces()) }

func (s *Subdivision) FeatureCount() int {
	return len(s.featureProperties)
}

func (s *Subdivision) FeatureProperties(i int) geojson.Properties {
	return s.featureProperties[i]
}

// BodyFeatures lists the features the face is part of. A face that is a hole
// of a feature is not part of that feature.
func (s *Subdivision) BodyFeatures(f FaceIndex) []int {
	face := s.faces[f]
	if face.OuterRing == NoFace {
		return face.FeatureIndices
	}
	var body []int
	for _, i := range face.FeatureIndices {
		if !containsInt(s.faces[face.OuterRing].FeatureIndices, i) {
			body = append(body, i)
		}
	}
	return body
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// EdgeBetween finds the half-edge from a to b.
func (s *Subdivision) EdgeBetween(a, b VertexIndex) (EdgeIndex, bool) {
	for _, e := range s.vertices[a].Edges {
		if s.Head(e) == b {
			return e, true
		}
	}
	return NoEdge, false
}

func (s *Subdivision) Segment(e EdgeIndex) geometry.LineSegment {
	return geometry.LineSegment{A: s.Point(s.Tail(e)), B: s.Point(s.Head(e))}
}

func (s *Subdivision) Vector(e EdgeIndex) geometry.Vector {
	return s.Segment(e).Vector()
}

// Angle is the direction of the half-edge in [0, 2π).
func (s *Subdivision) Angle(e EdgeIndex) float64 {
	return s.Vector(e).Angle()
}

func (s *Subdivision) Length(e EdgeIndex) float64 {
	return s.Segment(e).Length()
}

func (s *Subdivision) Midpoint(e EdgeIndex) geometry.Point {
	return s.Segment(e).Midpoint()
}

// Cycle walks next pointers from e until it returns to e.
func (s *Subdivision) Cycle(e EdgeIndex) []EdgeIndex {
	cycle := []EdgeIndex{e}
	for current := s.edges[e].Next; current != e; current = s.edges[current].Next {
		if current == NoEdge || len(cycle) > len(s.edges) {
			internal.Fatalf("half-edge %d is not part of a closed cycle", e)
		}
		cycle = append(cycle, current)
	}
	return cycle
}

// CycleRing is the ring traced by the tails of the cycle starting at e.
func (s *Subdivision) CycleRing(e EdgeIndex) geometry.Ring {
	cycle := s.Cycle(e)
	ring := make(geometry.Ring, 0, len(cycle))
	for _, c := range cycle {
		ring = append(ring, s.Point(s.Tail(c)))
	}
	return ring
}

// OuterRing is the counterclockwise boundary of a bounded face.
func (s *Subdivision) OuterRing(f FaceIndex) geometry.Ring {
	if !s.faces[f].IsBounded() {
		return nil
	}
	return s.CycleRing(s.faces[f].Edge)
}

// InnerRings are the boundaries of the face's inner components, wound
// clockwise as seen from the face.
func (s *Subdivision) InnerRings(f FaceIndex) []geometry.Ring {
	rings := make([]geometry.Ring, 0, len(s.faces[f].InnerEdges))
	for _, e := range s.faces[f].InnerEdges {
		rings = append(rings, s.CycleRing(e))
	}
	return rings
}

// FacePolygon is the face's outer ring followed by its inner rings.
func (s *Subdivision) FacePolygon(f FaceIndex) geometry.Polygon {
	polygon := geometry.Polygon{s.OuterRing(f)}
	return append(polygon, s.InnerRings(f)...)
}

// FaceArea is the signed area of a bounded face, holes subtracted.
func (s *Subdivision) FaceArea(f FaceIndex) float64 {
	if !s.faces[f].IsBounded() {
		return 0
	}
	area := s.OuterRing(f).SignedArea()
	for _, r := range s.InnerRings(f) {
		area += r.SignedArea()
	}
	return area
}

// TotalArea sums the area of all bounded faces.
func (s *Subdivision) TotalArea() float64 {
	var area float64
	for _, f := range s.BoundedFaces() {
		area += s.FaceArea(f)
	}
	return area
}

// BoundingBox spans all live vertices.
func (s *Subdivision) BoundingBox() geom.Rect {
	var r geom.Rect
	for i, v := range s.Vertices() {
		p := s.Point(v)
		c := geom.Coord{X: p.X, Y: p.Y}
		if i == 0 {
			r = geom.Rect{Min: c, Max: c}
		} else {
			r.ExpandToContainCoord(c)
		}
	}
	return r
}

// Diameter is the length of the bounding box diagonal.
func (s *Subdivision) Diameter() float64 {
	r := s.BoundingBox()
	return r.Min.DistanceFrom(r.Max)
}

// sortEdges orders a vertex's outgoing half-edges clockwise, starting from the
// positive x axis.
func (s *Subdivision) sortEdges(v VertexIndex) {
	edges := s.vertices[v].Edges
	angles := make(map[EdgeIndex]float64, len(edges))
	for _, e := range edges {
		angles[e] = s.Angle(e)
	}
	sort.SliceStable(edges, func(i, j int) bool {
		return clockwiseKey(angles[edges[i]]) < clockwiseKey(angles[edges[j]])
	})
}

func clockwiseKey(angle float64) float64 {
	return geometry.NormalizeAngle(2*math.Pi - angle)
}

// linkVertex restores `twin.next == next clockwise` around v.
func (s *Subdivision) linkVertex(v VertexIndex) {
	s.sortEdges(v)
	edges := s.vertices[v].Edges
	for i, e := range edges {
		next := edges[geometry.CircularIndex(i+1, len(edges))]
		twin := s.edges[e].Twin
		s.edges[twin].Next = next
		s.edges[next].Prev = twin
	}
}
