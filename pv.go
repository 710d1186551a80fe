package financial

import "math"

// PresentValue returns the present value of a loan or an investment based on a constant
// interest rate, with periodic constant payments pmt and/or a future value fv.
//
// Excel equivalent: PV
func PresentValue(rate, nper, pmt, fv float64, when PaymentTiming) float64 {
	if rate == 0 {
		return -(fv + pmt*nper)
	}
	temp := math.Pow(1+rate, nper)
	factor := (1 + rate*when.factor()) * (temp - 1) / rate
	return -(fv + pmt*factor) / temp
}
