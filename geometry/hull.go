package geometry

import "sort"

// ConvexHull returns the convex hull of the points as a counterclockwise ring.
// Collinear points on the hull boundary are dropped.
func ConvexHull(points []Point) Ring {
	unique := make([]Point, 0, len(points))
	seen := make(map[string]bool, len(points))
	for _, p := range points {
		if seen[p.Key()] {
			continue
		}
		seen[p.Key()] = true
		unique = append(unique, p)
	}
	if len(unique) < 3 {
		return Ring(unique)
	}

	sort.Slice(unique, func(i, j int) bool {
		if unique[i].X != unique[j].X {
			return unique[i].X < unique[j].X
		}
		return unique[i].Y < unique[j].Y
	})

	// Monotone chain: lower hull left to right, then upper hull back.
	hull := make([]Point, 0, 2*len(unique))
	for _, p := range unique {
		hull = appendHullPoint(hull, p, 0)
	}
	lowerSize := len(hull)
	for i := len(unique) - 2; i >= 0; i-- {
		hull = appendHullPoint(hull, unique[i], lowerSize-1)
	}
	return Ring(hull[:len(hull)-1])
}

func appendHullPoint(hull []Point, p Point, floor int) []Point {
	for len(hull)-floor >= 2 {
		a, b := hull[len(hull)-2], hull[len(hull)-1]
		if b.Sub(a).Cross(p.Sub(a)) > Tolerance {
			break
		}
		hull = hull[:len(hull)-1]
	}
	return append(hull, p)
}
