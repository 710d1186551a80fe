package financial

import "math"

// ModifiedInternalRateOfReturn returns the modified internal rate of return of a series of
// periodic cash flows. Negative values are discounted at financeRate and positive values are
// compounded to the last period at reinvestRate. A cash flow without negative values returns +Inf.
//
// Excel equivalent: MIRR
func ModifiedInternalRateOfReturn(values []float64, financeRate, reinvestRate float64) float64 {
	values = trimEndZeros(values)
	n := len(values)

	var negativePV, positiveFV float64
	for i, v := range values {
		if v < 0 {
			negativePV += v / math.Pow(1+financeRate, float64(i))
		}
		if v > 0 {
			positiveFV += v * math.Pow(1+reinvestRate, float64(n-1-i))
		}
	}
	if negativePV == 0 {
		return math.Inf(1)
	}
	return math.Pow(positiveFV/-negativePV, 1/float64(n-1)) - 1
}
