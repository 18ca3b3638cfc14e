package dcel

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/jakoblistabarth/schemapify-sub001/geometry"
)

type ringRecord struct {
	feature int
	first   EdgeIndex
	// Index of the polygon's outer ring record for holes, -1 for outer rings.
	outer int
}

// FromFeatureCollection builds a subdivision from a collection of Polygon and
// MultiPolygon features. Holes are normalized to counterclockwise winding, so
// every ring's first half-edge has the ring's interior on its left.
func FromFeatureCollection(fc *geojson.FeatureCollection) (*Subdivision, error) {
	polygons, err := collectPolygons(fc)
	if err != nil {
		return nil, err
	}

	s := New()
	for _, f := range fc.Features {
		s.featureProperties = append(s.featureProperties, f.Properties)
		s.featureIDs = append(s.featureIDs, f.ID)
	}

	edgeByVertices := make(map[[2]VertexIndex]EdgeIndex)
	var rings []ringRecord
	for feature, multi := range polygons {
		for _, polygon := range multi {
			outer := len(rings)
			for ringIndex, ring := range polygon {
				first, err := s.addRing(ring.CounterClockwise(), edgeByVertices)
				if err != nil {
					return nil, err
				}
				record := ringRecord{feature: feature, first: first, outer: -1}
				if ringIndex > 0 {
					record.outer = outer
				}
				rings = append(rings, record)
			}
		}
	}

	for _, v := range s.Vertices() {
		s.linkVertex(v)
	}

	s.allocateFaces(rings)
	s.allocateRemainingFaces()
	return s, nil
}

func collectPolygons(fc *geojson.FeatureCollection) ([]geometry.MultiPolygon, error) {
	if fc == nil {
		return nil, InvalidInputError{Reason: "no feature collection"}
	}
	polygons := make([]geometry.MultiPolygon, 0, len(fc.Features))
	total := 0
	for i, f := range fc.Features {
		var multi geometry.MultiPolygon
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			multi = geometry.MultiPolygon{geometry.PolygonFromOrb(g)}
		case orb.MultiPolygon:
			multi = geometry.MultiPolygonFromOrb(g)
		default:
			geometryType := "nothing"
			if f.Geometry != nil {
				geometryType = f.Geometry.GeoJSONType()
			}
			return nil, InvalidInputError{Reason: fmt.Sprintf("feature %d is a %s, not a Polygon or MultiPolygon", i, geometryType)}
		}
		total += multi.VertexCount()
		if total > MaxVertices {
			return nil, InvalidInputError{Reason: fmt.Sprintf("more than %d vertices", MaxVertices)}
		}
		polygons = append(polygons, multi)
	}
	return polygons, nil
}

// addRing creates the vertices and edges of a ring, reusing those shared with
// rings added before. It returns the half-edge from the ring's first to its
// second vertex.
func (s *Subdivision) addRing(ring geometry.Ring, edgeByVertices map[[2]VertexIndex]EdgeIndex) (EdgeIndex, error) {
	var vertices []VertexIndex
	for _, p := range ring {
		v := s.VertexAt(p)
		if len(vertices) > 0 && vertices[len(vertices)-1] == v {
			continue
		}
		vertices = append(vertices, v)
	}
	if len(vertices) > 1 && vertices[0] == vertices[len(vertices)-1] {
		vertices = vertices[:len(vertices)-1]
	}
	if len(vertices) < 3 {
		return NoEdge, InvalidInputError{Reason: "ring with fewer than 3 distinct vertices"}
	}

	first := NoEdge
	for i, a := range vertices {
		b := vertices[geometry.CircularIndex(i+1, len(vertices))]
		e, ok := edgeByVertices[[2]VertexIndex{a, b}]
		if !ok {
			var t EdgeIndex
			e, t = s.createEdgePair(a, b)
			edgeByVertices[[2]VertexIndex{a, b}] = e
			edgeByVertices[[2]VertexIndex{b, a}] = t
		}
		if i == 0 {
			first = e
		}
	}
	return first, nil
}

func (s *Subdivision) assignFace(e EdgeIndex, f FaceIndex) {
	for _, c := range s.Cycle(e) {
		s.edges[c].Face = f
	}
}

func (s *Subdivision) addFeature(f FaceIndex, feature int) {
	if !containsInt(s.faces[f].FeatureIndices, feature) {
		s.faces[f].FeatureIndices = append(s.faces[f].FeatureIndices, feature)
	}
}

func (s *Subdivision) allocateFaces(rings []ringRecord) {
	faceOfRing := make([]FaceIndex, len(rings))
	for i, r := range rings {
		f := s.edges[r.first].Face
		if f == NoFace {
			f = s.createFace()
			s.faces[f].Edge = r.first
			s.assignFace(r.first, f)
		}
		s.addFeature(f, r.feature)
		faceOfRing[i] = f

		if r.outer < 0 {
			continue
		}
		outer := faceOfRing[r.outer]
		s.faces[f].OuterRing = outer
		twin := s.edges[r.first].Twin
		if s.edges[twin].Face == NoFace {
			s.assignFace(twin, outer)
			s.faces[outer].InnerEdges = append(s.faces[outer].InnerEdges, twin)
		}
	}
}

// allocateRemainingFaces places every cycle that has no face yet. Such cycles
// are outer boundaries of connected components: they belong to the smallest
// bounded face strictly containing them, or to the unbounded face.
func (s *Subdivision) allocateRemainingFaces() {
	bounded := s.BoundedFaces()
	s.unbounded = s.createFace()
	for _, e := range s.Edges() {
		if s.edges[e].Face != NoFace {
			continue
		}
		container := s.unbounded
		smallest := math.Inf(1)
		p := s.Point(s.Tail(e))
		for _, f := range bounded {
			ring := s.OuterRing(f)
			if !ring.ContainsStrictly(p) {
				continue
			}
			if area := ring.Area(); area < smallest {
				smallest = area
				container = f
			}
		}
		s.assignFace(e, container)
		s.faces[container].InnerEdges = append(s.faces[container].InnerEdges, e)
	}
}
