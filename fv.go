package financial

import "math"

// PaymentTiming tells whether periodic payments happen at the end or at the beginning of each period.
type PaymentTiming int

const (
	PayAtEnd PaymentTiming = iota
	PayAtBeginning
)

func (w PaymentTiming) factor() float64 {
	if w == PayAtBeginning {
		return 1
	}
	return 0
}

// FutureValue returns the future value of an investment based on a constant interest rate,
// with periodic constant payments pmt and/or a lump sum pv.
//
// Excel equivalent: FV
func FutureValue(rate, nper, pmt, pv float64, when PaymentTiming) float64 {
	if rate == 0 {
		return -(pv + pmt*nper)
	}
	factor := math.Pow(1+rate, nper)
	return -pv*factor - pmt*(1+rate*when.factor())/rate*(factor-1)
}
