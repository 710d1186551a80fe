// Package financial implements time value of money calculations mimicking some of
// Excel's financial functions: FV, PV, NPV, IRR, MIRR, XNPV and XIRR.
//
// IRR and XIRR are solved numerically by a Newton-Raphson pass backed by bracketing
// and bisection, see Calculator.
package financial

import "github.com/jmtruffa/financial/internal/rootfind"

// SolverSettings are the tolerance and iteration caps used to solve IRR and XIRR.
type SolverSettings = rootfind.Settings

// DefaultSolverSettings returns the settings used by the package level functions.
func DefaultSolverSettings() SolverSettings {
	return rootfind.DefaultSettings()
}

// Calculator solves rates of return with a fixed set of SolverSettings.
// It holds no mutable state and can be shared between goroutines.
type Calculator struct {
	solver *rootfind.Solver
}

func NewCalculator(settings SolverSettings) *Calculator {
	return &Calculator{solver: rootfind.NewSolver(settings)}
}

// Settings returns the effective solver settings.
func (c *Calculator) Settings() SolverSettings {
	return c.solver.Settings()
}

var defaultCalculator = NewCalculator(DefaultSolverSettings())

// Float returns a pointer to v, handy for passing a guess.
func Float(v float64) *float64 {
	return &v
}
