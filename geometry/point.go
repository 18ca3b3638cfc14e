package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

// Point is an immutable 2D position.
type Point struct {
	X float64
	Y float64
}

// Vector is an immutable 2D displacement.
type Vector struct {
	X float64
	Y float64
}

func PointFromOrb(p orb.Point) Point {
	return Point{X: p[0], Y: p[1]}
}

func (p Point) Orb() orb.Point {
	return orb.Point{p.X, p.Y}
}

// Key identifies the point at Precision. Two points with the same key are the
// same vertex of a subdivision.
func (p Point) Key() string {
	return formatRounded(p.X) + "/" + formatRounded(p.Y)
}

func (p Point) Equal(other Point) bool {
	return Equal(p.X, other.X) && Equal(p.Y, other.Y)
}

func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub gives the vector pointing from other to p.
func (p Point) Sub(other Point) Vector {
	return Vector{X: p.X - other.X, Y: p.Y - other.Y}
}

func (p Point) DistanceTo(other Point) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

func (p Point) Midpoint(other Point) Point {
	return Point{X: (p.X + other.X) / 2, Y: (p.Y + other.Y) / 2}
}

// Lerp interpolates between p (t = 0) and other (t = 1).
func (p Point) Lerp(other Point, t float64) Point {
	return Point{X: p.X + (other.X-p.X)*t, Y: p.Y + (other.Y-p.Y)*t}
}

// VectorFromAngle returns the unit vector pointing in the given direction.
func VectorFromAngle(angle float64) Vector {
	return Vector{X: math.Cos(angle), Y: math.Sin(angle)}
}

func (v Vector) Add(other Vector) Vector {
	return Vector{X: v.X + other.X, Y: v.Y + other.Y}
}

func (v Vector) Sub(other Vector) Vector {
	return Vector{X: v.X - other.X, Y: v.Y - other.Y}
}

func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s}
}

func (v Vector) Dot(other Vector) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Cross is the z component of the 3D cross product. It is positive when other
// lies counterclockwise of v.
func (v Vector) Cross(other Vector) float64 {
	return v.X*other.Y - v.Y*other.X
}

func (v Vector) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Unit normalizes the vector. Zero-length vectors have no direction.
func (v Vector) Unit() (Vector, bool) {
	l := v.Length()
	if l < Tolerance {
		return Vector{}, false
	}
	return Vector{X: v.X / l, Y: v.Y / l}, true
}

// Angle is the direction of the vector in [0, 2π), measured counterclockwise
// from the positive x axis.
func (v Vector) Angle() float64 {
	return NormalizeAngle(math.Atan2(v.Y, v.X))
}

// Normal is the vector rotated a quarter turn counterclockwise.
func (v Vector) Normal() Vector {
	return Vector{X: -v.Y, Y: v.X}
}

func (v Vector) Rotate(angle float64) Vector {
	cos, sin := math.Cos(angle), math.Sin(angle)
	return Vector{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}
