package quadcollide

import "math"

// epsilon is the shortest length World.AddSegment accepts; a segment shorter
// than this is rejected as degenerate. The geometry predicates and the
// wall-bounce checks compare exactly and do not use it.
const epsilon = 1e-9

// Point is a location in the simulation plane.
type Point struct {
	X, Y float64
}

// Vector is a 2D displacement or velocity. It shares Point's representation
// so that Point+Vector arithmetic never needs a conversion.
type Vector struct {
	X, Y float64
}

// Add returns p translated by v.
func (p Point) Add(v Vector) Point {
	return Point{p.X + v.X, p.Y + v.Y}
}

// Sub returns the displacement from q to p, i.e. p-q.
func (p Point) Sub(q Point) Vector {
	return Vector{p.X - q.X, p.Y - q.Y}
}

// Add returns the sum of two vectors.
func (v Vector) Add(w Vector) Vector {
	return Vector{v.X + w.X, v.Y + w.Y}
}

// Sub returns v-w.
func (v Vector) Sub(w Vector) Vector {
	return Vector{v.X - w.X, v.Y - w.Y}
}

// Scale returns v scaled by s.
func (v Vector) Scale(s float64) Vector {
	return Vector{v.X * s, v.Y * s}
}

// Divide returns v divided component-wise by s.
func (v Vector) Divide(s float64) Vector {
	return Vector{v.X / s, v.Y / s}
}

// Length returns the Euclidean norm of v.
func (v Vector) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns v scaled to unit length. The caller must ensure v is
// non-zero; normalizing the zero vector is undefined and forbidden by the
// construction-time degeneracy checks in World.AddSegment.
func (v Vector) Normalize() Vector {
	l := v.Length()
	return Vector{v.X / l, v.Y / l}
}

// Dot returns the dot product of v and w.
func (v Vector) Dot(w Vector) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the z-component of the 3D cross product of v and w, treating
// both as lying in the z=0 plane.
func (v Vector) Cross(w Vector) float64 {
	return v.X*w.Y - v.Y*w.X
}

// Orthogonal returns v rotated 90 degrees counter-clockwise. Used uniformly
// throughout the resolver to derive a contact normal from a contact face, so
// the sign convention never needs to be re-derived at call sites.
func (v Vector) Orthogonal() Vector {
	return Vector{-v.Y, v.X}
}

// Angle returns the signed angle, in radians, from v to w, using atan2 of
// their cross and dot products. The sign disambiguates the classifier's
// tie-break between L1WithL2 and L2WithL1 in geometry.go.
func (v Vector) Angle(w Vector) float64 {
	return math.Atan2(v.Cross(w), v.Dot(w))
}
