package rootfind

import "errors"

var (
	// ErrNotConverged is returned when a solver exhausts its iterations without reaching Precision.
	ErrNotConverged = errors.New("solution didn't converge")
	// ErrNoBracket is returned when no sign change is found on a half line.
	ErrNoBracket = errors.New("no sign change found")
	// ErrInvalidBracket is returned when bisection is handed limits of the same sign.
	ErrInvalidBracket = errors.New("f() values at bounds should be of opposite sign")
	// ErrNoRoot is returned when Newton was rejected and neither half line holds a sign change.
	ErrNoRoot = errors.New("no root found")
)
