package geometry

import "github.com/paulmach/orb"

// Polygon is an outer ring followed by zero or more holes.
type Polygon []Ring

// MultiPolygon is a set of polygons.
type MultiPolygon []Polygon

func PolygonFromOrb(p orb.Polygon) Polygon {
	polygon := make(Polygon, 0, len(p))
	for _, r := range p {
		polygon = append(polygon, RingFromOrb(r))
	}
	return polygon
}

// Orb converts the polygon, winding the outer ring counterclockwise and holes
// clockwise.
func (p Polygon) Orb() orb.Polygon {
	polygon := make(orb.Polygon, 0, len(p))
	for i, r := range p {
		r = r.CounterClockwise()
		if i > 0 {
			r = r.Reverse()
		}
		polygon = append(polygon, r.Orb())
	}
	return polygon
}

// Area is the outer ring's area minus the area of the holes.
func (p Polygon) Area() float64 {
	var area float64
	for i, r := range p {
		if i == 0 {
			area += r.Area()
		} else {
			area -= r.Area()
		}
	}
	return area
}

// VertexCount counts the points of all rings.
func (p Polygon) VertexCount() int {
	n := 0
	for _, r := range p {
		n += len(r)
	}
	return n
}

func MultiPolygonFromOrb(mp orb.MultiPolygon) MultiPolygon {
	multi := make(MultiPolygon, 0, len(mp))
	for _, p := range mp {
		multi = append(multi, PolygonFromOrb(p))
	}
	return multi
}

func (mp MultiPolygon) Orb() orb.MultiPolygon {
	multi := make(orb.MultiPolygon, 0, len(mp))
	for _, p := range mp {
		multi = append(multi, p.Orb())
	}
	return multi
}

func (mp MultiPolygon) Area() float64 {
	var area float64
	for _, p := range mp {
		area += p.Area()
	}
	return area
}

func (mp MultiPolygon) VertexCount() int {
	n := 0
	for _, p := range mp {
		n += p.VertexCount()
	}
	return n
}
