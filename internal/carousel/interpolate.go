package carousel

// curve is a piecewise-linear function defined by ascending control points.
// Outside [xs[0], xs[len-1]] the boundary value is held.
type curve struct {
	xs []float64
	ys []float64
}

func (c curve) at(x float64) float64 {
	n := len(c.xs)
	if x <= c.xs[0] {
		return c.ys[0]
	}
	if x >= c.xs[n-1] {
		return c.ys[n-1]
	}
	for i := 1; i < n; i++ {
		if x > c.xs[i] {
			continue
		}
		x0, x1 := c.xs[i-1], c.xs[i]
		y0, y1 := c.ys[i-1], c.ys[i]
		return y0 + (y1-y0)*(x-x0)/(x1-x0)
	}
	return c.ys[n-1]
}
