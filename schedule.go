package financial

import (
	"math"
	"time"
)

// Schedule is a cash flow whose dates have been checked: there is one date per value
// and no date precedes the first one.
type Schedule struct {
	values []float64
	years  []float64
}

// NewSchedule checks values and dates once so that the schedule can be valued many times.
func NewSchedule(values []float64, dates []time.Time) (*Schedule, error) {
	if len(values) != len(dates) {
		return nil, ErrLengthMismatch
	}
	s := &Schedule{values: values, years: make([]float64, len(dates))}
	if len(dates) == 0 {
		return s, nil
	}
	d0 := dates[0]
	for i, d := range dates {
		if d.Before(d0) {
			return nil, ErrUnorderedDates
		}
		s.years[i] = daysBetween(d0, d) / 365.0
	}
	return s, nil
}

// NetPresentValue returns the value of the schedule at its first date.
func (s *Schedule) NetPresentValue(rate float64) float64 {
	if rate == 0 {
		return sum(s.values)
	}
	xnpv := 0.0
	for i, v := range s.values {
		xnpv += v / math.Pow(1+rate, s.years[i])
	}
	return xnpv
}

// Values returns the amounts of the schedule.
func (s *Schedule) Values() []float64 {
	return s.values
}

// daysBetween returns the number of whole calendar days from start to end.
// It works on Unix seconds since time.Duration only spans about 292 years.
func daysBetween(start, end time.Time) float64 {
	return float64((end.Unix() - start.Unix()) / 86400)
}

// Years returns the time of every value, in years since the first date.
func (s *Schedule) Years() []float64 {
	return s.years
}
