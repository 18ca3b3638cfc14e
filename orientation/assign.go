package orientation

import (
	"math"
	"sort"

	"github.com/jakoblistabarth/schemapify-sub001/geometry"
)

// combinations lists all strictly increasing k-subsets of [0, n) in
// lexicographic order.
func combinations(n, k int) [][]int {
	var result [][]int
	if k > n || k <= 0 {
		return result
	}
	current := make([]int, k)
	for i := range current {
		current[i] = i
	}
	for {
		result = append(result, append([]int(nil), current...))
		i := k - 1
		for i >= 0 && current[i] == n-k+i {
			i--
		}
		if i < 0 {
			return result
		}
		current[i]++
		for j := i + 1; j < k; j++ {
			current[j] = current[j-1] + 1
		}
	}
}

// AssignDirections pins each angle to a direction index. The assignment keeps
// the cyclic order of the angles, uses every direction at most once and
// minimizes the summed angular deviation. Among equally good assignments the
// first one found wins, scanning rotations in increasing order.
//
// The result is indexed like the input.
func (c *C) AssignDirections(angles []float64) []int {
	n := len(angles)
	if n == 0 {
		return nil
	}

	// Work on the angles in counterclockwise order.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return geometry.NormalizeAngle(angles[order[i]]) < geometry.NormalizeAngle(angles[order[j]])
	})

	result := make([]int, n)
	if n > c.Len() {
		// Not every edge can get a direction of its own.
		for i, a := range angles {
			result[i] = c.closestDirection(a)
		}
		return result
	}

	candidates := combinations(c.Len(), n)
	best := math.Inf(1)
	var bestCombination []int
	bestRotation := 0
	for rotation := 0; rotation < n; rotation++ {
		for _, combination := range candidates {
			var deviation float64
			for i, direction := range combination {
				angle := angles[order[geometry.CircularIndex(i+rotation, n)]]
				deviation += geometry.AngleDistance(angle, c.directions[direction])
				if deviation >= best {
					break
				}
			}
			if deviation < best-geometry.AngleTolerance {
				best = deviation
				bestCombination = combination
				bestRotation = rotation
			}
		}
	}

	for i, direction := range bestCombination {
		result[order[geometry.CircularIndex(i+bestRotation, n)]] = direction
	}
	return result
}

func (c *C) closestDirection(angle float64) int {
	closest := 0
	for i, d := range c.directions {
		if geometry.AngleDistance(angle, d) < geometry.AngleDistance(angle, c.directions[closest]) {
			closest = i
		}
	}
	return closest
}

// Deviation is the summed angular distance between angles and their assigned
// directions.
func (c *C) Deviation(angles []float64, assignment []int) float64 {
	var deviation float64
	for i, a := range angles {
		deviation += geometry.AngleDistance(a, c.Direction(assignment[i]))
	}
	return deviation
}

// IsSignificant decides whether a vertex with edges at the given angles must
// stay fixed while its edges are schematized. A vertex whose edges are all
// aligned never is. Otherwise it is if a sector holds more than one edge, or
// if every occupied sector has an empty neighbouring sector.
func (c *C) IsSignificant(angles []float64) bool {
	allAligned := true
	for _, a := range angles {
		if _, aligned := c.AlignedDirection(a); !aligned {
			allAligned = false
			break
		}
	}
	if allAligned {
		return false
	}

	occupancy := make([]int, len(c.sectors))
	for _, a := range angles {
		for _, s := range c.EnclosingSectors(a) {
			occupancy[s.Index]++
		}
	}
	for _, count := range occupancy {
		if count > 1 {
			return true
		}
	}
	for _, s := range c.sectors {
		if occupancy[s.Index] == 0 {
			continue
		}
		before, after := s.Neighbors()
		if occupancy[before] > 0 && occupancy[after] > 0 {
			return false
		}
	}
	return true
}
