package schemapify

import (
	_ "embed"
	"math"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakoblistabarth/schemapify-sub001/dcel"
	"github.com/jakoblistabarth/schemapify-sub001/geometry"
	"github.com/jakoblistabarth/schemapify-sub001/style"
)

//go:embed testdata/aligned-deviating.json
var alignedDeviating []byte

func loadAlignedDeviating(t *testing.T) *geojson.FeatureCollection {
	fc, err := ParseInput(alignedDeviating)
	require.NoError(t, err)
	return fc
}

func TestParseInput(t *testing.T) {
	fc := loadAlignedDeviating(t)
	assert.Len(t, fc.Features, 4)

	_, err := ParseInput([]byte(`{"type": "FeatureCollection", "features": [`))
	var invalid dcel.InvalidInputError
	assert.True(t, errors.As(err, &invalid))
}

func TestBuildSubdivision(t *testing.T) {
	t.Run("rejects other geometries", func(t *testing.T) {
		fc := geojson.NewFeatureCollection()
		fc.Append(geojson.NewFeature(orb.LineString{{0, 0}, {1, 1}}))
		_, err := BuildSubdivision(fc, style.Default())
		var invalid dcel.InvalidInputError
		assert.True(t, errors.As(err, &invalid))
	})

	t.Run("rejects a bad style", func(t *testing.T) {
		st := style.Default()
		st.Lambda = 0
		_, err := BuildSubdivision(loadAlignedDeviating(t), st)
		assert.Error(t, err)
	})

	t.Run("shared edges", func(t *testing.T) {
		s, err := BuildSubdivision(loadAlignedDeviating(t), style.Default())
		require.NoError(t, err)
		require.NoError(t, s.Verify())
		assert.Equal(t, 9, s.VertexCount())
		assert.Equal(t, 5, s.FaceCount())
		assert.InDelta(t, 400, s.TotalArea(), 1e-9)
	})
}

func TestRoundTrip(t *testing.T) {
	fc := loadAlignedDeviating(t)
	s, err := BuildSubdivision(fc, style.Default())
	require.NoError(t, err)

	out := ToOutputFormat(s)
	require.Len(t, out.Features, len(fc.Features))
	for i, f := range out.Features {
		assert.Equal(t, fc.Features[i].Properties, f.Properties)
		assert.Equal(t, fc.Features[i].ID, f.ID)
		assert.Equal(t, "MultiPolygon", f.Geometry.GeoJSONType())
		assert.InDelta(t, math.Abs(planar.Area(fc.Features[i].Geometry)), math.Abs(planar.Area(f.Geometry)), 1e-9)
	}
}

func countHighDegree(s *dcel.Subdivision) (vertices, halfEdges int) {
	for _, v := range s.Vertices() {
		if s.Degree(v) > 3 {
			vertices++
		}
	}
	for _, e := range s.Edges() {
		if s.Degree(s.Tail(e)) > 3 || s.Degree(s.Head(e)) > 3 {
			halfEdges++
		}
	}
	return vertices, halfEdges
}

func TestSchematizeAlignedDeviating(t *testing.T) {
	fc := loadAlignedDeviating(t)
	s, err := BuildSubdivision(fc, style.Default())
	require.NoError(t, err)

	var checkpoints []Checkpoint
	snapshot := func(checkpoint Checkpoint, s *dcel.Subdivision, elapsed time.Duration) {
		checkpoints = append(checkpoints, checkpoint)
	}
	result, err := Schematize(s, style.Default(), Options{Snapshot: snapshot, Verify: true})
	require.NoError(t, err)

	assert.Equal(t, []Checkpoint{
		CheckpointLoad,
		CheckpointSubdivide,
		CheckpointClassify,
		CheckpointStaircaseRegions,
		CheckpointStaircase,
		CheckpointSimplify,
	}, checkpoints)
	assert.Len(t, result.Elapsed, 5)
	assert.NotEmpty(t, result.Staircases)

	vertices, halfEdges := countHighDegree(s)
	assert.Equal(t, 1, vertices)
	assert.Equal(t, 8, halfEdges)

	for _, e := range s.Edges() {
		v := s.Vector(e)
		assert.True(t, geometry.Equal(v.X, 0) || geometry.Equal(v.Y, 0), "edge %v is not rectilinear", s.Segment(e))
	}

	out := ToOutputFormat(s)
	require.Len(t, out.Features, 4)
	for i, f := range out.Features {
		assert.Equal(t, fc.Features[i].Properties, f.Properties)
		assert.InDelta(t, math.Abs(planar.Area(fc.Features[i].Geometry)), math.Abs(planar.Area(f.Geometry)), 1e-6,
			"area of feature %v", f.ID)
	}

	layers := Layers(s, result)
	assert.Len(t, layers, 4)
	assert.Len(t, layers["staircase-regions"].Features, 2*len(result.Staircases))
}

func TestSchematizeRectangle(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.Polygon{{{0, 0}, {10, 0}, {10, 5}, {0, 5}, {0, 0}}}))
	s, err := BuildSubdivision(fc, style.Default())
	require.NoError(t, err)

	result, err := Schematize(s, style.Default(), Options{Verify: true})
	require.NoError(t, err)
	assert.Empty(t, result.Staircases)
	assert.Zero(t, result.Simplify.Moves)
	assert.Positive(t, result.Simplify.RemovedVertices)
	assert.Equal(t, 4, s.VertexCount())
	assert.InDelta(t, 50, s.TotalArea(), 1e-9)
}

func TestSchematizeRejectsBadStyle(t *testing.T) {
	s, err := BuildSubdivision(loadAlignedDeviating(t), style.Default())
	require.NoError(t, err)
	st := style.Default()
	st.C = style.Orientations{Angles: []float64{0, 1}}
	_, err = Schematize(s, st, Options{})
	assert.Error(t, err)
}
