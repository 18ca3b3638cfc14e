package staircase

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// RegionsLayer renders the bounding regions of planned staircases, together
// with their paths, for inspection.
func RegionsLayer(stairs []*Staircase) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, st := range stairs {
		region := geojson.NewFeature(orb.Polygon{st.Region.CounterClockwise().Orb()})
		region.Properties["edge"] = int(st.Edge)
		region.Properties["class"] = st.Class.String()
		region.Properties["steps"] = st.Steps
		region.Properties["offset"] = st.Offset
		region.Properties["interferences"] = len(st.Interferences)
		// JSON has no infinity.
		if !math.IsInf(st.Clearance, 0) {
			region.Properties["clearance"] = st.Clearance
		}
		fc.Append(region)

		path := make(orb.LineString, 0, len(st.Points))
		for _, p := range st.Points {
			path = append(path, p.Orb())
		}
		line := geojson.NewFeature(path)
		line.Properties["edge"] = int(st.Edge)
		line.Properties["class"] = st.Class.String()
		fc.Append(line)
	}
	return fc
}
