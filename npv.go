package financial

// NetPresentValue returns the net present value of a series of periodic cash flows given a
// discount rate. The first value is discounted one full period.
//
// Excel equivalent: NPV
func NetPresentValue(rate float64, values []float64) float64 {
	if rate == 0 {
		return sum(values)
	}
	npv := 0.0
	factor := 1 + rate
	for _, v := range values {
		npv += v / factor
		factor *= 1 + rate
	}
	return npv
}

// presentValueAt returns the value of the cash flow at the date of its first element,
// the function whose root is the IRR.
func presentValueAt(values []float64) func(float64) float64 {
	return func(rate float64) float64 {
		if rate == 0 {
			return sum(values)
		}
		npv := 0.0
		factor := 1.0
		for _, v := range values {
			npv += v / factor
			factor *= 1 + rate
		}
		return npv
	}
}
