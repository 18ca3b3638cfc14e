package simplify

import (
	"math"

	"github.com/jakoblistabarth/schemapify-sub001/geometry"
)

// Contraction moves the inner edge of a configuration in Direction until
// prev, next or both have zero length.
type Contraction struct {
	Configuration Configuration
	// Direction is a unit normal of the inner edge.
	Direction geometry.Vector
	// Distance is how far the inner edge moves along Direction.
	Distance                     float64
	CollapsesTail, CollapsesHead bool
	// Tail and Head are the endpoints of the inner edge after the move.
	Tail, Head geometry.Point
	// Area is the area swept by the move. It is positive when the inner
	// edge's face grows.
	Area float64
	// Blocking counts the edges passing through the swept area.
	Blocking int

	// start and end are the endpoints before the move.
	start, end           geometry.Point
	tailTrack, headTrack geometry.Vector
	length               float64
	// slope is how fast the inner edge grows per unit of distance moved.
	slope float64
	sign  float64
}

// Feasible contractions sweep no area or cross no edge.
func (c Contraction) Feasible() bool {
	return geometry.Equal(c.Area, 0) || c.Blocking == 0
}

// Target is the point the collapsing end of the inner edge ends up on.
func (c Contraction) Target() geometry.Point {
	if c.CollapsesTail {
		return c.Tail
	}
	return c.Head
}

// EndpointsAt gives the inner edge's endpoints after moving it distance h.
func (c Contraction) EndpointsAt(h float64) (geometry.Point, geometry.Point) {
	return c.start.Add(c.tailTrack.Scale(h)), c.end.Add(c.headTrack.Scale(h))
}

// AreaAt is the signed area swept by moving the inner edge distance h. The
// swept region is a trapezoid whose parallel sides are the edge before and
// after the move.
func (c Contraction) AreaAt(h float64) float64 {
	return c.sign * (h*c.length + h*h*c.slope/2)
}

// ShiftFor solves AreaAt(h) = ±area for h within the contraction's range.
func (c Contraction) ShiftFor(area float64) (float64, bool) {
	area = math.Abs(area)
	discriminant := c.length*c.length + 2*c.slope*area
	if discriminant < 0 {
		return 0, false
	}
	denominator := c.length + math.Sqrt(discriminant)
	if denominator <= 0 {
		return 0, false
	}
	// Equal to (-L + √D) / slope, without cancelling for small slopes.
	h := 2 * area / denominator
	if h < 0 || h > c.Distance+geometry.Tolerance {
		return 0, false
	}
	return h, true
}

// Sweep is the region passed over when moving the inner edge distance h.
func (c Contraction) Sweep(h float64) geometry.Ring {
	movedTail, movedHead := c.EndpointsAt(h)
	return geometry.Ring{c.start, c.end, movedHead, movedTail}
}
