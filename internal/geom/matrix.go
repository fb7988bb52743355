package geom

import "math"

// Matrix is a 2D affine transformation:
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Translation returns a matrix translating by v.
func Translation(v Vector) Matrix {
	return Matrix{A: 1, D: 1, E: v.X, F: v.Y}
}

// Rotation returns a matrix rotating by angle radians about the given point.
func Rotation(angle float64, about Point) Matrix {
	sin, cos := math.Sincos(angle)
	r := Matrix{A: cos, B: sin, C: -sin, D: cos}
	return Translation(about.ToVector()).Multiply(r).Multiply(Translation(Vector{X: -about.X, Y: -about.Y}))
}

// Scaling returns a matrix scaling uniformly by s about the given point.
func Scaling(s float64, about Point) Matrix {
	m := Matrix{A: s, D: s}
	return Translation(about.ToVector()).Multiply(m).Multiply(Translation(Vector{X: -about.X, Y: -about.Y}))
}

// Multiply returns m × n; applying the result is applying n then m.
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// IsIdentity reports whether m is the identity within Epsilon.
func (m Matrix) IsIdentity() bool {
	id := Identity()
	return math.Abs(m.A-id.A) <= Epsilon && math.Abs(m.B) <= Epsilon &&
		math.Abs(m.C) <= Epsilon && math.Abs(m.D-id.D) <= Epsilon &&
		math.Abs(m.E) <= Epsilon && math.Abs(m.F) <= Epsilon
}

// ScaleFactor returns the uniform scale of m, assuming no shear.
func (m Matrix) ScaleFactor() float64 {
	return math.Hypot(m.A, m.B)
}
