// Package geometry holds small integer helpers shared by the vertex tree,
// the editor and the renderers.
package geometry

import "leveled/core"

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// SquaredDistance returns the squared Euclidean distance between two points.
func SquaredDistance(a, b core.Point) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// WithinRadius reports whether b lies within radius of a. The comparison is
// done on squared distances so no square root is taken.
func WithinRadius(a, b core.Point, radius float64) bool {
	if radius < 0 {
		return false
	}
	return float64(SquaredDistance(a, b)) <= radius*radius
}

// Clamp forces p inside the inclusive rectangle [lo, hi].
func Clamp(p, lo, hi core.Point) core.Point {
	if p.X < lo.X {
		p.X = lo.X
	}
	if p.X > hi.X {
		p.X = hi.X
	}
	if p.Y < lo.Y {
		p.Y = lo.Y
	}
	if p.Y > hi.Y {
		p.Y = hi.Y
	}
	return p
}
