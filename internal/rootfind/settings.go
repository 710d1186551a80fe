package rootfind

const (
	// Precision determines how close to the solution the solvers should arrive before stopping.
	// It is also the step of the numeric derivative and the nudge applied to bracket limits.
	Precision = 1e-7
	// InitialGuess is the starting rate used when the caller does not supply one.
	InitialGuess = 0.0

	// NewtonMaxIterations determines the maximum number of iterations performed by the Newton-Raphson algorithm.
	NewtonMaxIterations = 20
	// BracketMaxIterations determines how many times a bracket is widened looking for a sign change.
	BracketMaxIterations = 60
	// BisectionMaxIterations determines the maximum number of halvings of a bracket.
	BisectionMaxIterations = 2000

	// BracketShift is the half width of the first bracket tried around the origin.
	BracketShift = 0.01
	// BracketFactor is the geometric expansion applied to the bracket width on every attempt.
	BracketFactor = 1.6
)

// Settings holds the tolerance and iteration caps of a Solver.
type Settings struct {
	Precision              float64 `mapstructure:"precision"`
	InitialGuess           float64 `mapstructure:"initial_guess"`
	NewtonMaxIterations    int     `mapstructure:"newton_max_iterations"`
	BracketMaxIterations   int     `mapstructure:"bracket_max_iterations"`
	BracketShift           float64 `mapstructure:"bracket_shift"`
	BracketFactor          float64 `mapstructure:"bracket_factor"`
	BisectionMaxIterations int     `mapstructure:"bisection_max_iterations"`
}

func DefaultSettings() Settings {
	return Settings{
		Precision:              Precision,
		InitialGuess:           InitialGuess,
		NewtonMaxIterations:    NewtonMaxIterations,
		BracketMaxIterations:   BracketMaxIterations,
		BracketShift:           BracketShift,
		BracketFactor:          BracketFactor,
		BisectionMaxIterations: BisectionMaxIterations,
	}
}

// withDefaults fills every non-positive field with its default value.
// InitialGuess is taken as is since zero is a valid guess.
func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.Precision <= 0 {
		s.Precision = d.Precision
	}
	if s.NewtonMaxIterations <= 0 {
		s.NewtonMaxIterations = d.NewtonMaxIterations
	}
	if s.BracketMaxIterations <= 0 {
		s.BracketMaxIterations = d.BracketMaxIterations
	}
	if s.BracketShift <= 0 {
		s.BracketShift = d.BracketShift
	}
	if s.BracketFactor <= 0 {
		s.BracketFactor = d.BracketFactor
	}
	if s.BisectionMaxIterations <= 0 {
		s.BisectionMaxIterations = d.BisectionMaxIterations
	}
	return s
}
