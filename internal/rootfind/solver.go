// Package rootfind locates the rate at which a cash flow valuation function crosses zero.
//
// Newton-Raphson is tried first from the guess. Its answer is kept only when it lies on the
// same side of zero as the guess; otherwise a sign change is searched on the positive half
// line and then on the negative one, and the bracket found is bisected.
package rootfind

import (
	"errors"
	"math"
)

// Func is a valuation function of a single rate, e.g. NPV or XNPV at that rate.
// It must not panic for any finite input; NaN and Inf results are taken as failed probes.
type Func func(float64) float64

// Solver finds roots with a fixed set of Settings. It keeps no state between calls
// and is safe for concurrent use.
type Solver struct {
	settings Settings

	// observe, when set, receives the bracket at the top of every bisection step.
	observe func(Bounds)
}

func NewSolver(settings Settings) *Solver {
	return &Solver{settings: settings.withDefaults()}
}

// Settings returns the effective settings of the solver.
func (s *Solver) Settings() Settings {
	return s.settings
}

var defaultSolver = NewSolver(DefaultSettings())

// FindRoot finds a root of f with the default settings. A nil guess means InitialGuess.
func FindRoot(guess *float64, f Func) (float64, error) {
	return defaultSolver.FindRoot(guess, f)
}

// FindRoot finds a root of f. A nil guess means Settings.InitialGuess.
//
// It returns ErrNoRoot when no sign change could be found on either half line, and
// ErrNotConverged when a bracket was found but bisection ran out of iterations.
func (s *Solver) FindRoot(guess *float64, f Func) (float64, error) {
	x := s.settings.InitialGuess
	if guess != nil {
		x = *guess
	}

	root, err := s.newton(x, f)
	if err == nil && sameSign(root, x) {
		return root, nil
	}

	for _, half := range []Bounds{PositiveBounds(), NegativeBounds()} {
		b, err := s.findBounds(x, half, f)
		if errors.Is(err, ErrNoBracket) {
			continue
		}
		if err != nil {
			return 0, err
		}
		root, err := s.bisection(b, f)
		if err != nil {
			return 0, ErrNotConverged
		}
		return root, nil
	}
	return 0, ErrNoRoot
}

// sameSign reports whether a and b share a sign bit, so 0 counts as positive.
func sameSign(a, b float64) bool {
	return math.Signbit(a) == math.Signbit(b)
}
