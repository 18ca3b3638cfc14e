package staircase

import (
	"math"
	"sort"
	"testing"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakoblistabarth/schemapify-sub001/dcel"
	"github.com/jakoblistabarth/schemapify-sub001/geometry"
	"github.com/jakoblistabarth/schemapify-sub001/orientation"
)

func pt(x, y float64) geometry.Point {
	return geometry.Point{X: x, Y: y}
}

func deg(d float64) geometry.Vector {
	return geometry.VectorFromAngle(d * math.Pi / 180)
}

func assertAligned(t *testing.T, c *orientation.C, points []geometry.Point) {
	t.Helper()
	for i := 1; i < len(points); i++ {
		segment := geometry.LineSegment{A: points[i-1], B: points[i]}
		if segment.Length() < geometry.Tolerance {
			continue
		}
		_, ok := c.AlignedDirection(segment.Angle())
		assert.True(t, ok, "segment %v is not aligned", segment)
	}
}

func TestDecompose(t *testing.T) {
	u, w, ok := decompose(geometry.Vector{X: 3, Y: 2}, deg(0), deg(90))
	require.True(t, ok)
	assert.InDelta(t, 3, u, 1e-9)
	assert.InDelta(t, 2, w, 1e-9)

	_, _, ok = decompose(geometry.Vector{X: 3, Y: 2}, deg(0), deg(180))
	assert.False(t, ok)
}

func TestZigzag(t *testing.T) {
	c := orientation.NewRegular(2, 0)
	from, to := pt(0, 0), pt(4, 3)
	for _, steps := range []int{1, 2, 5} {
		points := append([]geometry.Point{from}, zigzag(from, to, deg(0), deg(90), steps)...)
		assert.Len(t, points, 2*steps+2)
		assert.True(t, points[len(points)-1].Equal(to))
		assertAligned(t, c, points)
		assert.InDelta(t, 0, geometry.Ring(points).SignedArea(), 1e-9)

		offset := zigzagOffset(to.Sub(from), deg(0), deg(90)) / float64(steps)
		for _, p := range points {
			d := geometry.LineSegment{A: from, B: to}.DistanceToPoint(p)
			assert.LessOrEqual(t, d, offset+1e-9)
		}
	}
}

func TestLayoutPaths(t *testing.T) {
	c := orientation.NewRegular(2, 0)
	tests := []struct {
		name   string
		layout layout
		offset float64
		steps  int
		size   int
		first  geometry.Vector
	}{
		{
			name:   "unaligned basic",
			layout: layout{class: dcel.UnalignedBasic, a: pt(0, 0), b: pt(4, 3), d1: deg(0), d2: deg(90)},
			steps:  3,
			size:   8,
			first:  deg(0),
		},
		{
			name:   "aligned deviating",
			layout: layout{class: dcel.AlignedDeviating, a: pt(0, 0), b: pt(10, 0), d1: deg(0), ds: deg(270)},
			offset: 1,
			size:   7,
			first:  deg(270),
		},
		{
			name:   "unaligned deviating",
			layout: layout{class: dcel.UnalignedDeviating, a: pt(0, 0), b: pt(10, 4), d1: deg(0), d2: deg(90), ds: deg(270)},
			offset: 1,
			steps:  4,
			size:   12,
			first:  deg(270),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := tt.layout.path(tt.offset, 0.05, tt.steps)
			assert.Len(t, points, tt.size)
			assert.True(t, points[0].Equal(tt.layout.a))
			assert.True(t, points[len(points)-1].Equal(tt.layout.b))
			assertAligned(t, c, points)
			assert.InDelta(t, 0, geometry.Ring(points).SignedArea(), 1e-9)

			firstLeg, ok := points[1].Sub(points[0]).Unit()
			require.True(t, ok)
			assert.InDelta(t, 0, firstLeg.Sub(tt.first).Length(), 1e-9)

			region := tt.layout.region(tt.offset, 0.05)
			for _, p := range points {
				assert.True(t, region.ContainsConvex(p), "%v outside region", p)
			}
		})
	}
}

func TestAlignedDeviatingReserve(t *testing.T) {
	l := layout{class: dcel.AlignedDeviating, a: pt(0, 0), b: pt(10, 0), d1: deg(0), ds: deg(270)}
	for _, epsilon := range []float64{0.1, 0.25, 0.4} {
		points := l.path(1, epsilon, 1)
		require.Len(t, points, 7)
		assert.True(t, points[1].Equal(pt(0, -1)), "epsilon %v leaves a along the detour", epsilon)

		last := geometry.LineSegment{A: points[5], B: points[6]}
		assert.InDelta(t, epsilon*10, last.Length(), 1e-9, "epsilon %v", epsilon)
		assert.InDelta(t, 0, last.Angle(), 1e-9, "epsilon %v", epsilon)
		assert.InDelta(t, (1-epsilon)*5, points[2].X, 1e-9, "epsilon %v", epsilon)
	}
}

func TestLegsShrinkDetour(t *testing.T) {
	// A flat edge leaves little room for a detour straight up before the
	// remaining zigzag would have to leave its sector.
	l := layout{class: dcel.UnalignedDeviating, a: pt(0, 0), b: pt(10, 0.5), d1: deg(0), d2: deg(90), ds: deg(90)}
	from, to, offset := l.legs(1)
	assert.InDelta(t, 0.25, offset, 1e-9)
	assert.True(t, from.Equal(pt(0, 0.25)))
	assert.True(t, to.Equal(pt(10, 0.25)))

	_, _, offset = l.legs(0.1)
	assert.InDelta(t, 0.1, offset, 1e-9)
}

func TestStepsFor(t *testing.T) {
	assert.Equal(t, 2, stepsFor(1, math.Inf(1), 2, 64))
	assert.Equal(t, 4, stepsFor(1, 0.25, 2, 64))
	assert.Equal(t, 5, stepsFor(1, 0.24, 2, 64))
	assert.Equal(t, 64, stepsFor(1, 0, 2, 64))
	assert.Equal(t, 64, stepsFor(100, 0.001, 2, 64))
}

func TestSeparation(t *testing.T) {
	seg := geometry.LineSegment{A: pt(0, 0), B: pt(10, 0)}
	assert.InDelta(t, 2, separation(seg, geometry.LineSegment{A: pt(3, 2), B: pt(5, 4)}), 1e-9)
	// Adjacent edges are measured from their far ends.
	assert.InDelta(t, 3, separation(seg, geometry.LineSegment{A: pt(0, 0), B: pt(4, 3)}), 1e-9)
}

func polygon(points ...geometry.Point) *geojson.Feature {
	return geojson.NewFeature(geometry.Polygon{geometry.Ring(points)}.Orb())
}

// alignedDeviating gives a vertex at the origin whose 180° edge has to
// leave downwards, next to two unaligned basic edges.
func alignedDeviating(t *testing.T) (*dcel.Subdivision, *orientation.C) {
	fc := geojson.NewFeatureCollection()
	fc.Append(polygon(pt(0, 0), pt(10, 0), pt(10, 10), pt(0, 10)))
	fc.Append(polygon(pt(0, 0), pt(0, 10), pt(-2, 10)))
	fc.Append(polygon(pt(0, 0), pt(-2, 10), pt(-10, 10), pt(-10, 0)))
	fc.Append(polygon(pt(0, 0), pt(-10, 0), pt(-10, -10), pt(10, -10), pt(10, 0)))
	s, err := dcel.FromFeatureCollection(fc)
	require.NoError(t, err)

	c := orientation.NewRegular(2, 0)
	require.NoError(t, orientation.Classifier{C: c}.Run(s))
	return s, c
}

func faceAreas(s *dcel.Subdivision) []float64 {
	var areas []float64
	for _, f := range s.BoundedFaces() {
		areas = append(areas, s.FaceArea(f))
	}
	sort.Float64s(areas)
	return areas
}

func TestPlan(t *testing.T) {
	s, c := alignedDeviating(t)
	g := Generator{C: c, Epsilon: 0.05}
	stairs, err := g.Plan(s)
	require.NoError(t, err)
	require.Len(t, stairs, 3)

	ad := stairs[0]
	assert.Equal(t, dcel.AlignedDeviating, ad.Class)
	assert.True(t, math.IsInf(ad.Clearance, 1))
	assert.InDelta(t, 1, ad.Offset, 1e-9)
	expected := []geometry.Point{pt(0, 0), pt(0, -1), pt(-4.75, -1), pt(-4.75, 1), pt(-9.5, 1), pt(-9.5, 0), pt(-10, 0)}
	require.Len(t, ad.Points, len(expected))
	for i, p := range expected {
		assert.True(t, p.Equal(ad.Points[i]), "point %d: want %v, got %v", i, p, ad.Points[i])
	}

	for _, st := range stairs[1:] {
		assert.Equal(t, dcel.UnalignedBasic, st.Class)
		assert.Equal(t, minStepsBasic, st.Steps)
		assert.Len(t, st.Points, 2*minStepsBasic+2)
		assert.Empty(t, st.Interferences)
	}

	layer := RegionsLayer(stairs)
	assert.Len(t, layer.Features, 6)
	_, hasClearance := layer.Features[0].Properties["clearance"]
	assert.False(t, hasClearance)
}

func TestPlanWithInterference(t *testing.T) {
	// A thin sliver next to an unaligned edge limits how far its staircase
	// may swing out.
	fc := geojson.NewFeatureCollection()
	fc.Append(polygon(pt(0, 0), pt(10, 5), pt(0, 10)))
	fc.Append(polygon(pt(0, 0), pt(10, 0), pt(10, 5)))
	s, err := dcel.FromFeatureCollection(fc)
	require.NoError(t, err)
	c := orientation.NewRegular(2, 0)
	require.NoError(t, orientation.Classifier{C: c}.Run(s))

	stairs, err := Generator{C: c}.Plan(s)
	require.NoError(t, err)
	for _, st := range stairs {
		if math.IsInf(st.Clearance, 1) {
			continue
		}
		assert.Greater(t, st.Clearance, 0.0)
		assert.GreaterOrEqual(t, st.Steps, minStepsBasic)
		if st.Steps == DefaultMaxSteps {
			continue
		}
		// Staying within half the clearance keeps neighbouring staircases
		// apart.
		for _, p := range st.Points {
			assert.LessOrEqual(t, st.Segment.DistanceToPoint(p), st.Clearance/2+1e-9, "edge %d point %v", st.Edge, p)
		}
	}
}

func TestApply(t *testing.T) {
	s, c := alignedDeviating(t)
	before := faceAreas(s)
	vertices := s.VertexCount()

	g := Generator{C: c, Epsilon: 0.05}
	stairs, err := g.Plan(s)
	require.NoError(t, err)
	added := 0
	for _, st := range stairs {
		added += len(st.Interior())
	}
	require.NoError(t, g.Apply(s, stairs))
	require.NoError(t, s.Verify())

	assert.Equal(t, vertices+added, s.VertexCount())
	assert.Equal(t, 23, s.VertexCount())
	after := faceAreas(s)
	require.Len(t, after, len(before))
	for i := range before {
		assert.InDelta(t, before[i], after[i], 1e-6)
	}

	for _, e := range s.Edges() {
		_, ok := c.AlignedDirection(s.Angle(e))
		assert.True(t, ok, "edge %d at %v is not aligned", e, s.Segment(e))
		assert.NotEqual(t, dcel.NoClass, s.Class(e))
	}
	for _, e := range s.SimpleEdges() {
		if s.Class(e) == dcel.AlignedBasic {
			continue
		}
		t.Errorf("edge %d still has class %s", e, s.Class(e))
	}

	origin, ok := s.FindVertex(pt(0, 0))
	require.True(t, ok)
	assert.Equal(t, 4, s.Degree(origin))
}
