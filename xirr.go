package financial

import "time"

// ScheduledNetPresentValue returns the Net Present Value of a scheduled cash flow series given a discount rate.
// Values are discounted to the first date by the days elapsed over 365.
//
// Excel equivalent: XNPV
func ScheduledNetPresentValue(rate float64, values []float64, dates []time.Time) (float64, error) {
	// the price on any settlement date comes out of prepending that date with a 0 amount
	s, err := NewSchedule(values, dates)
	if err != nil {
		return 0, err
	}
	return s.NetPresentValue(rate), nil
}

// ScheduledInternalRateOfReturn returns the internal rate of return of a scheduled cash flow series.
// Guess is a starting point for the iterative algorithm; nil starts from 0.
//
// Excel equivalent: XIRR
func ScheduledInternalRateOfReturn(values []float64, dates []time.Time, guess *float64) (float64, error) {
	return defaultCalculator.ScheduledInternalRateOfReturn(values, dates, guess)
}

// ScheduledInternalRateOfReturn is the package level ScheduledInternalRateOfReturn solved with c's settings.
func (c *Calculator) ScheduledInternalRateOfReturn(values []float64, dates []time.Time, guess *float64) (float64, error) {
	if err := checkSigns(values); err != nil {
		return 0, err
	}
	s, err := NewSchedule(values, dates)
	if err != nil {
		return 0, err
	}
	return c.solve(guess, s.NetPresentValue)
}
