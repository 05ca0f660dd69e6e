// Package anim drives the entrance timelines of code map entities:
// staggered node drops with overshoot, elastic scale-in, edge line
// reveals, and the decorative particle effects layered on top.
package anim

import "math"

// OutCubic decelerates toward 1.
func OutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// OutElastic overshoots past 1 with a decaying oscillation before
// settling. Used for node scale-in.
func OutElastic(t float64) float64 {
	if t <= 0 || t >= 1 {
		return clamp01(t)
	}
	const p = 0.3
	return math.Pow(2, -10*t)*math.Sin((t-p/4)*(2*math.Pi)/p) + 1
}

// OutBack overshoots the target slightly and comes back. Used for the
// vertical drop-in.
func OutBack(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	u := t - 1
	return 1 + c3*u*u*u + c1*u*u
}

// InOutQuad accelerates then decelerates.
func InOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
