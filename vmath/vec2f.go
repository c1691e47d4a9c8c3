package vmath

import "math"

// Distance returns the Euclidean distance between two points
func Distance(ax, ay, bx, by float64) float64 {
	return math.Hypot(bx-ax, by-ay)
}

// MoveToward steps (x, y) toward (tx, ty) by at most step, stopping once within keep of the target
// Never overshoots: the returned point is at least keep away from the target unless it started closer
func MoveToward(x, y, tx, ty, step, keep float64) (float64, float64) {
	dx, dy := tx-x, ty-y
	dist := math.Hypot(dx, dy)
	if dist <= keep || dist == 0 {
		return x, y
	}

	travel := math.Min(step, dist-keep)
	inv := travel / dist
	return x + dx*inv, y + dy*inv
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsFinite reports whether v is neither NaN nor infinite
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
