// Package core provides the terminal-agnostic building blocks shared by the
// front ends: a colored character canvas, world-to-cell projection and
// semantic input actions. It has no Bubble Tea dependency.
package core

import "math"

// Rect is an axis-aligned area of cells.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether the cell (x, y) is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Projection maps world coordinates onto a cell area.
type Projection struct {
	WorldW, WorldH float64
	Area           Rect
}

// Cell returns the cell for world point (x, y) and whether it lies inside
// the area.
func (p Projection) Cell(x, y float64) (cx, cy int, ok bool) {
	if p.WorldW <= 0 || p.WorldH <= 0 || p.Area.W <= 0 || p.Area.H <= 0 {
		return 0, 0, false
	}
	cx = p.Area.X + int(math.Floor(x/p.WorldW*float64(p.Area.W)))
	cy = p.Area.Y + int(math.Floor(y/p.WorldH*float64(p.Area.H)))
	return cx, cy, p.Area.Contains(cx, cy)
}

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts val to [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
