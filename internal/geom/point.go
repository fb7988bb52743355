// Package geom provides the 2D value types shared by the drawing model and
// the input engine: points, vectors, affine matrices and extents.
//
// Angles are radians everywhere except in user-typed text, which is degrees.
package geom

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used for floating point comparisons.
const Epsilon = 1e-9

// Point is a location in world space.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the point displaced by v.
func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Vector {
	return Vector{X: p.X - q.X, Y: p.Y - q.Y}
}

// DistanceTo returns the Euclidean distance between two points.
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Mid returns the midpoint between p and q.
func (p Point) Mid(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Transform applies m to p.
func (p Point) Transform(m Matrix) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// Equal reports whether the points coincide within Epsilon.
func (p Point) Equal(q Point) bool {
	return math.Abs(p.X-q.X) <= Epsilon && math.Abs(p.Y-q.Y) <= Epsilon
}

// ToVector returns the position vector of p.
func (p Point) ToVector() Vector {
	return Vector{X: p.X, Y: p.Y}
}

// String formats the point as "x,y".
func (p Point) String() string {
	return fmt.Sprintf("%g,%g", p.X, p.Y)
}

// Vector is a displacement in world space.
type Vector struct {
	X float64
	Y float64
}

// Vec is shorthand for Vector{X: x, Y: y}.
func Vec(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// Polar returns the vector with the given length and angle.
func Polar(length, angle float64) Vector {
	return Vector{X: length * math.Cos(angle), Y: length * math.Sin(angle)}
}

// Add returns v + w.
func (v Vector) Add(w Vector) Vector {
	return Vector{X: v.X + w.X, Y: v.Y + w.Y}
}

// Scale returns v scaled by s.
func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s}
}

// Length returns the magnitude of v.
func (v Vector) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Angle returns the direction of v in radians, in the range (-π, π].
func (v Vector) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Transform applies the linear part of m to v.
func (v Vector) Transform(m Matrix) Vector {
	return Vector{
		X: m.A*v.X + m.C*v.Y,
		Y: m.B*v.X + m.D*v.Y,
	}
}

// String formats the vector as "x,y".
func (v Vector) String() string {
	return fmt.Sprintf("%g,%g", v.X, v.Y)
}

// NormalizeAngle maps an angle into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
