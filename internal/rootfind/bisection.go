package rootfind

import "math"

// bisection halves b until f is within Precision of zero at a limit or at the midpoint.
func (s *Solver) bisection(b Bounds, f Func) (float64, error) {
	precision := s.settings.Precision
	lower, upper := b.Lower, b.Upper

	for i := 0; i < s.settings.BisectionMaxIterations; i++ {
		if s.observe != nil {
			s.observe(Bounds{Lower: lower, Upper: upper})
		}

		fl := f(lower)
		if math.Abs(fl) <= precision {
			return lower, nil
		}
		fu := f(upper)
		if math.Abs(fu) <= precision {
			return upper, nil
		}
		if fl*fu > 0 {
			return 0, ErrInvalidBracket
		}

		mid := lower + (upper-lower)/2
		fm := f(mid)
		if math.Abs(fm) <= precision {
			return mid, nil
		}

		switch p := fl * fm; {
		case p < 0:
			upper = mid
		case p > 0:
			lower = mid
		default:
			// both factors are beyond precision, so only a NaN gets here
			return 0, ErrNotConverged
		}
	}
	return 0, ErrNotConverged
}
