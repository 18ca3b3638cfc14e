package orientation

import (
	"math"

	"github.com/jakoblistabarth/schemapify-sub001/geometry"
)

// Sector is the angular range between two consecutive directions. Upper may
// exceed 2π for the sector that wraps around.
type Sector struct {
	Index int
	Lower float64
	Upper float64
	n     int
}

// Encloses reports whether the angle lies in the sector. Both bounds are
// inclusive.
func (s Sector) Encloses(angle float64) bool {
	a := geometry.NormalizeAngle(angle)
	for _, candidate := range []float64{a, a - 2*math.Pi, a + 2*math.Pi} {
		if candidate >= s.Lower-geometry.AngleTolerance && candidate <= s.Upper+geometry.AngleTolerance {
			return true
		}
	}
	return false
}

// Bounds returns the direction indices of the lower and upper bound.
func (s Sector) Bounds() (int, int) {
	return s.Index, geometry.CircularIndex(s.Index+1, s.n)
}

// HasBound reports whether direction i bounds the sector.
func (s Sector) HasBound(i int) bool {
	lower, upper := s.Bounds()
	return i == lower || i == upper
}

// Neighbors returns the indices of the sectors before (clockwise) and after
// (counterclockwise) this one.
func (s Sector) Neighbors() (int, int) {
	return geometry.CircularIndex(s.Index-1, s.n), geometry.CircularIndex(s.Index+1, s.n)
}

// Width is the angular size of the sector.
func (s Sector) Width() float64 {
	return s.Upper - s.Lower
}
