package financial

import (
	"fmt"

	"github.com/jmtruffa/financial/internal/rootfind"
)

// InternalRateOfReturn returns the internal rate of return of a series of periodic cash flows.
// Guess is a starting point for the iterative algorithm; nil starts from 0.
//
// Excel equivalent: IRR
func InternalRateOfReturn(values []float64, guess *float64) (float64, error) {
	return defaultCalculator.InternalRateOfReturn(values, guess)
}

// InternalRateOfReturn is the package level InternalRateOfReturn solved with c's settings.
func (c *Calculator) InternalRateOfReturn(values []float64, guess *float64) (float64, error) {
	values = trimZeros(values)
	if err := checkSigns(values); err != nil {
		return 0, err
	}
	return c.solve(guess, presentValueAt(values))
}

func (c *Calculator) solve(guess *float64, f rootfind.Func) (float64, error) {
	rate, err := c.solver.FindRoot(guess, f)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNoSolution, err)
	}
	return rate, nil
}
