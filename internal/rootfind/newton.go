package rootfind

import "math"

// newton runs Newton-Raphson from x using a numeric derivative.
func (s *Solver) newton(x float64, f Func) (float64, error) {
	precision := s.settings.Precision

	for i := 0; i < s.settings.NewtonMaxIterations; i++ {
		fx := f(x)
		newX := x - fx/derivative(f, x, precision)

		if !isFinite(newX) {
			// flat or undefined slope: only x itself can still be an answer
			if math.Abs(fx) <= precision {
				return x, nil
			}
			return 0, ErrNotConverged
		}
		if math.Abs(newX-x) <= precision || math.Abs(fx) <= precision {
			return newX, nil
		}
		x = newX
	}
	return 0, ErrNotConverged
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
