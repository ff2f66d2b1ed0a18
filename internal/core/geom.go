// Package core provides the fundamental math and timing types shared by the
// simulation. It has no external dependencies so game logic stays pure and
// testable.
package core

import "math"

// Vec2 is a 2D vector in court units. +X points toward team B's side,
// +Y points up.
type Vec2 struct {
	X, Y float64
}

// Common unit vectors.
var (
	Zero  = Vec2{}
	UnitX = Vec2{X: 1}
	UnitY = Vec2{Y: 1}
)

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// FromAngle returns the unit vector rotated radians counter-clockwise from +X.
func FromAngle(radians float64) Vec2 {
	return Vec2{X: math.Cos(radians), Y: math.Sin(radians)}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Div returns v / s.
func (v Vec2) Div(s float64) Vec2 {
	return Vec2{X: v.X / s, Y: v.Y / s}
}

// Mul multiplies component-wise.
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{X: v.X * o.X, Y: v.Y * o.Y}
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Dot returns the dot product.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Len returns the euclidean length.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the distance between two points.
func (v Vec2) Distance(o Vec2) float64 {
	return v.Sub(o).Len()
}

// NormalizeOrZero returns v scaled to unit length, or the zero vector when v
// has no usable direction.
func (v Vec2) NormalizeOrZero() Vec2 {
	l := v.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Zero
	}
	return v.Div(l)
}

// Rotate rotates v by the rotation encoded in the unit vector r
// (complex multiplication).
func (v Vec2) Rotate(r Vec2) Vec2 {
	return Vec2{
		X: v.X*r.X - v.Y*r.Y,
		Y: v.Y*r.X + v.X*r.Y,
	}
}

// AngleTo returns the signed angle in radians, in [-Pi, Pi], that rotates v
// onto o. Positive is counter-clockwise.
func (v Vec2) AngleTo(o Vec2) float64 {
	return math.Atan2(v.Cross(o), v.Dot(o))
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Bounds is an axis-aligned rectangle centred on the origin, described by its
// half extents.
type Bounds struct {
	Half Vec2
}

// Inset returns the bounds shrunk by pad on every side.
func (b Bounds) Inset(pad float64) Bounds {
	return Bounds{Half: Vec2{X: b.Half.X - pad, Y: b.Half.Y - pad}}
}

// Contains reports whether p lies inside the bounds (edges inclusive).
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= -b.Half.X && p.X <= b.Half.X && p.Y >= -b.Half.Y && p.Y <= b.Half.Y
}

// Clamp moves p to the closest point inside the bounds.
func (b Bounds) Clamp(p Vec2) Vec2 {
	return Vec2{
		X: ClampF(p.X, -b.Half.X, b.Half.X),
		Y: ClampF(p.Y, -b.Half.Y, b.Half.Y),
	}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}
