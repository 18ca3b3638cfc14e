package dbg

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakoblistabarth/schemapify-sub001/dcel"
)

func square(t *testing.T) *dcel.Subdivision {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.Polygon{{{0, 0}, {4, 0}, {4, 2}, {0, 2}, {0, 0}}}))
	s, err := dcel.FromFeatureCollection(fc)
	require.NoError(t, err)
	return s
}

func TestName(t *testing.T) {
	assert.Equal(t, "Ø", Name("e", -1))
	a := Name("v", 3)
	assert.Equal(t, a, Name("v", 3))
	assert.NotEmpty(t, a)
}

func TestDump(t *testing.T) {
	s := square(t)
	var b bytes.Buffer
	Dump(s, &b)
	out := b.String()
	assert.Contains(t, out, "4 vertices, 8 edges, 2 faces")
	assert.Contains(t, out, Name("v", 0))
	assert.Contains(t, Pretty(s.Point(1)), "X:")
}

func TestDraw(t *testing.T) {
	s := square(t)
	c := Draw(s, Options{Size: 200, Labels: true})
	assert.Equal(t, 200+2*drawPadding, c.Width())
	assert.Equal(t, 100+2*drawPadding, c.Height())

	path := filepath.Join(t.TempDir(), "square.png")
	require.NoError(t, SavePNG(s, path, Options{}))
	assert.FileExists(t, path)
}
