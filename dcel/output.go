package dcel

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/jakoblistabarth/schemapify-sub001/geometry"
)

// ToFeatureCollection emits one MultiPolygon feature per input feature, in
// input order, carrying the input feature's properties. Each bounded face of a
// feature becomes one polygon, with its inner components as holes.
func (s *Subdivision) ToFeatureCollection() *geojson.FeatureCollection {
	polygons := make([]geometry.MultiPolygon, s.FeatureCount())
	for _, f := range s.BoundedFaces() {
		for _, feature := range s.BodyFeatures(f) {
			polygons[feature] = append(polygons[feature], s.FacePolygon(f))
		}
	}

	fc := geojson.NewFeatureCollection()
	for i, multi := range polygons {
		feature := geojson.NewFeature(multi.Orb())
		feature.ID = s.featureIDs[i]
		if s.featureProperties[i] != nil {
			feature.Properties = s.featureProperties[i]
		}
		fc.Append(feature)
	}
	return fc
}

// VerticesLayer has a Point feature per vertex.
func (s *Subdivision) VerticesLayer() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, v := range s.Vertices() {
		feature := geojson.NewFeature(s.Point(v).Orb())
		feature.Properties["id"] = int(v)
		feature.Properties["degree"] = s.Degree(v)
		feature.Properties["significant"] = s.IsSignificant(v)
		fc.Append(feature)
	}
	return fc
}

// FacesLayer has a Polygon feature per bounded face.
func (s *Subdivision) FacesLayer() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range s.BoundedFaces() {
		feature := geojson.NewFeature(s.FacePolygon(f).Orb())
		feature.Properties["id"] = int(f)
		feature.Properties["area"] = s.FaceArea(f)
		feature.Properties["features"] = s.faces[f].FeatureIndices
		fc.Append(feature)
	}
	return fc
}

// EdgesLayer has a LineString feature per half-edge with its classification.
func (s *Subdivision) EdgesLayer() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, e := range s.Edges() {
		segment := s.Segment(e)
		feature := geojson.NewFeature(orb.LineString{segment.A.Orb(), segment.B.Orb()})
		feature.Properties["id"] = int(e)
		feature.Properties["class"] = s.Class(e).String()
		feature.Properties["assignedDirection"] = s.AssignedDirection(e)
		feature.Properties["face"] = int(s.IncidentFace(e))
		fc.Append(feature)
	}
	return fc
}
