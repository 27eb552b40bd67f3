package anim

import "math"

// Easing maps linear progress t in [0,1] to eased progress.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// Quad accelerates from zero velocity.
func Quad(t float64) float64 { return t * t }

// Ease is a gentle inertial acceleration, cubic-bezier(0.42, 0, 1, 1).
var Ease = Bezier(0.42, 0, 1, 1)

// Out runs e backwards, turning an acceleration into a deceleration.
func Out(e Easing) Easing {
	return func(t float64) float64 { return 1 - e(1-t) }
}

// InOut applies e over the first half and Out(e) over the second.
func InOut(e Easing) Easing {
	return func(t float64) float64 {
		if t < 0.5 {
			return e(t*2) / 2
		}
		return 1 - e((1-t)*2)/2
	}
}

// Bezier returns a CSS-style cubic-bezier easing with endpoints (0,0) and
// (1,1). x1 and x2 must lie in [0,1].
func Bezier(x1, y1, x2, y2 float64) Easing {
	// Polynomial coefficients of B(s) = ((a*s + b)*s + c)*s per axis.
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(s float64) float64 { return ((ax*s+bx)*s + cx) * s }
	sampleY := func(s float64) float64 { return ((ay*s+by)*s + cy) * s }
	slopeX := func(s float64) float64 { return (3*ax*s+2*bx)*s + cx }

	const epsilon = 1e-7

	solve := func(x float64) float64 {
		s := x
		for range 8 {
			dx := sampleX(s) - x
			if math.Abs(dx) < epsilon {
				return s
			}
			d := slopeX(s)
			if math.Abs(d) < 1e-6 {
				break
			}
			s -= dx / d
		}

		// Newton stalled; fall back to bisection.
		lo, hi := 0.0, 1.0
		s = x
		for lo < hi {
			v := sampleX(s)
			if math.Abs(v-x) < epsilon {
				return s
			}
			if x > v {
				lo = s
			} else {
				hi = s
			}
			s = (lo + hi) / 2
			if hi-lo < epsilon {
				break
			}
		}
		return s
	}

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return sampleY(solve(t))
	}
}
