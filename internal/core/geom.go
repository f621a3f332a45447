// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Vec2 is a point or displacement in world units.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// LenSq returns the squared length of v.
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Circle is a round collider in world units.
type Circle struct {
	Center Vec2
	R      float64
}

// NewCircle creates a circle centred at (x, y).
func NewCircle(x, y, r float64) Circle {
	return Circle{Center: Vec2{X: x, Y: y}, R: r}
}

// Top returns the y-coordinate of the topmost point.
func (c Circle) Top() float64 {
	return c.Center.Y - c.R
}

// Bottom returns the y-coordinate of the lowest point.
func (c Circle) Bottom() float64 {
	return c.Center.Y + c.R
}

// Overlaps reports whether two circles touch or intersect.
// Touching edges count as overlap; the test avoids a square root.
func (c Circle) Overlaps(other Circle) bool {
	combined := c.R + other.R
	return c.Center.Sub(other.Center).LenSq() <= combined*combined
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
