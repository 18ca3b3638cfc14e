package simplify

import (
	"testing"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakoblistabarth/schemapify-sub001/dcel"
	"github.com/jakoblistabarth/schemapify-sub001/geometry"
	"github.com/jakoblistabarth/schemapify-sub001/internal/edgeindex"
)

func pt(x, y float64) geometry.Point {
	return geometry.Point{X: x, Y: y}
}

func build(t *testing.T, rings ...geometry.Ring) *dcel.Subdivision {
	fc := geojson.NewFeatureCollection()
	for _, r := range rings {
		fc.Append(geojson.NewFeature(geometry.Polygon{r}.Orb()))
	}
	s, err := dcel.FromFeatureCollection(fc)
	require.NoError(t, err)
	return s
}

// stairs is a polygon with three steps down to the right:
//
//	(0,9)---(6,9)
//	  |       |
//	  |     (6,6)---(9,6)
//	  |               |
//	  |             (9,3)---(12,3)
//	  |                       |
//	(0,0)-------------------(12,0)
func stairs(t *testing.T) *dcel.Subdivision {
	return build(t, geometry.Ring{pt(0, 0), pt(12, 0), pt(12, 3), pt(9, 3), pt(9, 6), pt(6, 6), pt(6, 9), pt(0, 9)})
}

func mustEdge(t *testing.T, s *dcel.Subdivision, from, to geometry.Point) dcel.EdgeIndex {
	a, ok := s.FindVertex(from)
	require.True(t, ok, "no vertex at %v", from)
	b, ok := s.FindVertex(to)
	require.True(t, ok, "no vertex at %v", to)
	e, ok := s.EdgeBetween(a, b)
	require.True(t, ok)
	return e
}

func configurationAt(t *testing.T, s *dcel.Subdivision, from, to geometry.Point) Configuration {
	c, ok := NewConfiguration(s, mustEdge(t, s, from, to))
	require.True(t, ok)
	return c
}

func TestRemoveSuperfluousVertices(t *testing.T) {
	tests := []struct {
		name     string
		ring     geometry.Ring
		removed  int
		vertices int
	}{
		{"collinear", geometry.Ring{pt(0, 0), pt(2, 0), pt(4, 0), pt(4, 2), pt(4, 4), pt(0, 4)}, 2, 4},
		{"within tolerance", geometry.Ring{pt(0, 0), pt(2, 1e-12), pt(4, 0), pt(4, 4), pt(0, 4)}, 1, 4},
		{"outside tolerance", geometry.Ring{pt(0, 0), pt(2, 1e-6), pt(4, 0), pt(4, 4), pt(0, 4)}, 0, 5},
		{"triangle stays", geometry.Ring{pt(0, 0), pt(2, 0), pt(4, 0), pt(0, 4)}, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := build(t, tt.ring)
			removed, err := RemoveSuperfluousVertices(s)
			require.NoError(t, err)
			require.NoError(t, s.Verify())
			assert.Equal(t, tt.removed, removed)
			assert.Equal(t, tt.vertices, s.VertexCount())
		})
	}
}

func TestBoundaryList(t *testing.T) {
	s := build(t,
		geometry.Ring{pt(0, 0), pt(1, 0), pt(1, 1), pt(0, 1)},
		geometry.Ring{pt(1, 0), pt(2, 0), pt(2, 1), pt(1, 1)},
	)
	l := NewBoundaryList(s)
	require.Equal(t, 3, l.Len())

	sizes := map[int]int{}
	for _, b := range l.Boundaries() {
		assert.Less(t, b.Faces.Lower, b.Faces.Upper)
		for _, e := range b.Edges {
			assert.Equal(t, b.Faces.Lower, s.IncidentFace(e))
			assert.Equal(t, b.Faces.Upper, s.IncidentFace(s.Twin(e)))
		}
		sizes[len(b.Edges)]++
	}
	assert.Equal(t, map[int]int{1: 1, 3: 2}, sizes)

	shared := mustEdge(t, s, pt(1, 0), pt(1, 1))
	b, ok := l.Boundary(s.IncidentFace(s.Twin(shared)), s.IncidentFace(shared))
	require.True(t, ok)
	assert.Len(t, b.Edges, 1)
}

func TestConfiguration(t *testing.T) {
	s := stairs(t)
	c := configurationAt(t, s, pt(9, 3), pt(9, 6))
	assert.Equal(t, mustEdge(t, s, pt(12, 3), pt(9, 3)), c.Prev)
	assert.Equal(t, mustEdge(t, s, pt(9, 6), pt(6, 6)), c.Next)
	assert.Equal(t, Mixed, c.Inflection(s))
	assert.Equal(t, Convex, configurationAt(t, s, pt(12, 0), pt(12, 3)).Inflection(s))

	contractions := c.Contractions(s, edgeindex.FromSubdivision(s))
	require.Len(t, contractions, 2)

	west := contractions[0]
	assert.InDelta(t, -9, west.Area, 1e-9)
	assert.InDelta(t, 3, west.Distance, 1e-9)
	assert.True(t, west.CollapsesHead)
	assert.False(t, west.CollapsesTail)
	assert.True(t, west.Tail.Equal(pt(6, 3)))
	assert.True(t, west.Head.Equal(pt(6, 6)))
	assert.True(t, west.Target().Equal(pt(6, 6)))
	assert.Zero(t, west.Blocking)
	assert.True(t, west.Feasible())

	east := contractions[1]
	assert.InDelta(t, 9, east.Area, 1e-9)
	assert.True(t, east.CollapsesTail)
	assert.True(t, east.Tail.Equal(pt(12, 3)))
	assert.True(t, east.Head.Equal(pt(12, 6)))
}

func TestFoldingContractionIsRejected(t *testing.T) {
	s := stairs(t)
	// Moving the lowest step down would lay it onto the bottom edge.
	c := configurationAt(t, s, pt(12, 3), pt(9, 3))
	for _, contraction := range c.Contractions(s, nil) {
		assert.Positive(t, contraction.Area)
	}
	// The edges of a rectangle cannot move at all.
	rect := build(t, geometry.Ring{pt(0, 0), pt(4, 0), pt(4, 2), pt(0, 2)})
	assert.Empty(t, configurationAt(t, rect, pt(4, 2), pt(0, 2)).Contractions(rect, nil))
}

func TestBlocking(t *testing.T) {
	// An island right next to the step blocks moving it west.
	s := build(t,
		geometry.Ring{pt(0, 0), pt(12, 0), pt(12, 3), pt(9, 3), pt(9, 6), pt(6, 6), pt(6, 9), pt(0, 9)},
		geometry.Ring{pt(7, 4), pt(8, 4), pt(8, 5), pt(7, 5)},
	)
	c := configurationAt(t, s, pt(9, 3), pt(9, 6))
	contractions := c.Contractions(s, edgeindex.FromSubdivision(s))
	require.Len(t, contractions, 2)
	assert.Equal(t, 4, contractions[0].Blocking)
	assert.False(t, contractions[0].Feasible())
	assert.Zero(t, contractions[1].Blocking)
}

func TestAreaAndShift(t *testing.T) {
	growing := Contraction{length: 2, slope: 1, sign: 1, Distance: 4}
	assert.InDelta(t, 6, growing.AreaAt(2), 1e-9)
	h, ok := growing.ShiftFor(6)
	require.True(t, ok)
	assert.InDelta(t, 2, h, 1e-9)
	h, ok = growing.ShiftFor(-6)
	require.True(t, ok)
	assert.InDelta(t, 2, h, 1e-9)

	shrinking := Contraction{length: 2, slope: -1, sign: -1, Distance: 2}
	assert.InDelta(t, -1.5, shrinking.AreaAt(1), 1e-9)
	h, ok = shrinking.ShiftFor(1.5)
	require.True(t, ok)
	assert.InDelta(t, 1, h, 1e-9)

	_, ok = Contraction{length: 2, sign: 1, Distance: 1}.ShiftFor(10)
	assert.False(t, ok, "beyond the contraction's range")
	_, ok = Contraction{length: 1, slope: -1, sign: 1, Distance: 5}.ShiftFor(1)
	assert.False(t, ok, "no real solution")
}

func TestConflicting(t *testing.T) {
	s := stairs(t)
	step := configurationAt(t, s, pt(9, 3), pt(9, 6))

	assert.True(t, Conflicting(s, step, configurationAt(t, s, pt(9, 6), pt(6, 6))), "two shared edges")
	assert.True(t, Conflicting(s, step, configurationAt(t, s, pt(12, 0), pt(12, 3))), "shared edge, convex")
	assert.False(t, Conflicting(s, step, configurationAt(t, s, pt(6, 6), pt(6, 9))), "shared edge, both mixed")
	assert.False(t, Conflicting(s, step, configurationAt(t, s, pt(6, 9), pt(0, 9))), "disjoint")
}

func findContraction(t *testing.T, contractions []Contraction, inner dcel.EdgeIndex, positive bool) Contraction {
	for _, c := range contractions {
		if c.Configuration.Inner == inner && (c.Area > 0) == positive {
			return c
		}
	}
	require.Fail(t, "contraction not found")
	return Contraction{}
}

func TestFindCompensation(t *testing.T) {
	s := stairs(t)
	byBoundary := Contractions(s)
	require.Len(t, byBoundary, 1)
	var candidates []Contraction
	for _, c := range byBoundary {
		candidates = c
	}

	step := mustEdge(t, s, pt(9, 3), pt(9, 6))
	east := findContraction(t, candidates, step, true)
	compensation, shift, ok := FindCompensation(s, east, candidates)
	require.True(t, ok)
	assert.Equal(t, mustEdge(t, s, pt(6, 9), pt(0, 9)), compensation.Configuration.Inner)
	assert.InDelta(t, -18, compensation.Area, 1e-9)
	assert.InDelta(t, 1.5, shift, 1e-9)

	en := Engine{}
	require.NoError(t, en.Apply(s, ConfigurationPair{Contraction: east, Compensation: compensation, Shift: shift}))
	require.NoError(t, s.Verify())
	assert.Equal(t, 7, s.VertexCount())
	assert.InDelta(t, 81, s.TotalArea(), 1e-9)
	_, moved := s.FindVertex(pt(0, 7.5))
	assert.True(t, moved)
	_, moved = s.FindVertex(pt(12, 6))
	assert.True(t, moved)
}

func TestEngineRun(t *testing.T) {
	t.Run("no budget", func(t *testing.T) {
		s := stairs(t)
		result, err := Engine{MaxMoves: 0}.Run(s)
		require.NoError(t, err)
		assert.Zero(t, result.Moves)
		assert.Equal(t, 8, s.VertexCount())
	})

	t.Run("until fixed point", func(t *testing.T) {
		s := stairs(t)
		result, err := Engine{MaxMoves: 10}.Run(s)
		require.NoError(t, err)
		require.NoError(t, s.Verify())
		assert.Equal(t, 1, result.Moves)
		assert.Equal(t, 2, result.RemovedVertices)
		assert.Equal(t, 4, s.VertexCount())
		assert.InDelta(t, 81, s.TotalArea(), 1e-9)
		for _, e := range s.Edges() {
			v := s.Vector(e)
			assert.True(t, geometry.Equal(v.X, 0) || geometry.Equal(v.Y, 0), "edge %v is not axis aligned", s.Segment(e))
		}
	})
}

func TestApplyCheckedRejectsAreaChange(t *testing.T) {
	s := stairs(t)
	c := configurationAt(t, s, pt(9, 3), pt(9, 6))
	contractions := c.Contractions(s, nil)
	require.Len(t, contractions, 2)

	backup := s.Clone()
	err := Engine{}.applyChecked(s, ConfigurationPair{Contraction: contractions[1]})
	assert.Error(t, err, "an uncompensated move changes the face's area")
	*s = *backup
	require.NoError(t, s.Verify())
	assert.Equal(t, 8, s.VertexCount())
	assert.InDelta(t, 81, s.TotalArea(), 1e-9)
}
