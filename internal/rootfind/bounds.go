package rootfind

import (
	"fmt"
	"math"
)

// Bounds is an interval [Lower, Upper] expected to hold a sign change of f.
type Bounds struct {
	Lower float64
	Upper float64
}

// PositiveBounds is the half line [0, +MaxFloat64].
func PositiveBounds() Bounds {
	return Bounds{Lower: 0, Upper: math.MaxFloat64}
}

// NegativeBounds is the half line [-MaxFloat64, 0].
func NegativeBounds() Bounds {
	return Bounds{Lower: -math.MaxFloat64, Upper: 0}
}

// NewBounds returns the interval [lower, upper]. lower must not be greater than upper.
func NewBounds(lower, upper float64) (Bounds, error) {
	if lower > upper {
		return Bounds{}, fmt.Errorf("lower bound %v greater than upper bound %v", lower, upper)
	}
	return Bounds{Lower: lower, Upper: upper}, nil
}

// Width returns Upper - Lower.
func (b Bounds) Width() float64 {
	return b.Upper - b.Lower
}

// clamp pulls v inside the half line, keeping it at least precision away from its limits
// so that f is never evaluated at 0 or at the largest float.
func (b Bounds) clamp(v, precision float64) float64 {
	if v <= b.Lower {
		return b.Lower + precision
	}
	if v >= b.Upper {
		return b.Upper - precision
	}
	return v
}

// findBounds widens an interval around x inside the half line until f changes sign across it.
func (s *Solver) findBounds(x float64, half Bounds, f Func) (Bounds, error) {
	precision := s.settings.Precision
	factor := s.settings.BracketFactor

	x = half.clamp(x, precision)
	low := x - s.settings.BracketShift
	upp := x + s.settings.BracketShift

	for i := 0; i < s.settings.BracketMaxIterations; i++ {
		lower := half.clamp(low, precision)
		upper := half.clamp(upp, precision)

		if f(lower)*f(upper) <= 0 {
			return NewBounds(lower, upper)
		}

		low = lower + factor*(lower-upper)
		upp = upper + factor*(upper-lower)
	}
	return Bounds{}, ErrNoBracket
}
