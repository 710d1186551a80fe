package rootfind

import "gonum.org/v1/gonum/diff/fd"

// derivative estimates f'(x) with the central difference (f(x+h) - f(x-h)) / 2h.
// NaN and Inf coming from f are propagated, not filtered.
func derivative(f Func, x, h float64) float64 {
	return fd.Derivative(f, x, &fd.Settings{
		Formula: fd.Central,
		Step:    h,
	})
}
