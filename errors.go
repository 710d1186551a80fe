package financial

import "errors"

var (
	// ErrInvalidCashflow is returned when a cash flow does not hold at least two values,
	// one of them positive and one of them negative.
	ErrInvalidCashflow = errors.New("the cash flow must contain at least one positive value and one negative value")
	// ErrLengthMismatch is returned when values and dates differ in length.
	ErrLengthMismatch = errors.New("values and dates must have the same length")
	// ErrUnorderedDates is returned when a date precedes the first date of the schedule.
	ErrUnorderedDates = errors.New("first date must be the earliest")
	// ErrNoSolution is returned when no rate zeroes the present value of the cash flow.
	ErrNoSolution = errors.New("couldn't find a rate for the values provided")
)
