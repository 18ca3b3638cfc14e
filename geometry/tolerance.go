package geometry

import (
	"math"
	"strconv"
)

// Precision is the number of decimal places that coordinates are compared at.
// Repeated subdivision and edge moves accumulate float drift, so two values are
// considered equal when they agree at this many decimal places.
const Precision = 9

// Tolerance is the absolute tolerance that corresponds to Precision.
const Tolerance = 1e-9

// AngleTolerance is used when deciding whether two directions are collinear.
const AngleTolerance = 1e-8

// Equal compares two floats using Tolerance.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Tolerance
}

// Round rounds a value to Precision decimal places. Negative zero is
// normalized so that keys built from rounded values are stable.
func Round(v float64) float64 {
	scale := math.Pow10(Precision)
	r := math.Round(v*scale) / scale
	if r == 0 {
		return 0
	}
	return r
}

func formatRounded(v float64) string {
	return strconv.FormatFloat(Round(v), 'f', Precision, 64)
}

// CircularIndex gives the modular index of i for a buffer of length n. Unlike
// the raw modulo operator, it never returns a negative value.
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}

// NormalizeAngle maps an angle in radians into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi-AngleTolerance/10 {
		a = 0
	}
	return a
}

// AngleDistance is the absolute angular difference between two angles, measured
// the short way around the circle.
func AngleDistance(a, b float64) float64 {
	d := math.Abs(NormalizeAngle(a) - NormalizeAngle(b))
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

// AngleEqual reports whether two angles describe the same direction.
func AngleEqual(a, b float64) bool {
	return AngleDistance(a, b) < AngleTolerance
}
