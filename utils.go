package financial

import "math"

func minMaxSlice(values []float64) (float64, float64) {
	min := math.MaxFloat64
	max := -min
	for _, value := range values {
		if value > max {
			max = value
		}
		if value < min {
			min = value
		}
	}
	return min, max
}

// checkSigns makes sure values hold a strictly negative and a strictly positive amount.
func checkSigns(values []float64) error {
	if len(values) < 2 {
		return ErrInvalidCashflow
	}
	min, max := minMaxSlice(values)
	if min >= 0 || max <= 0 {
		return ErrInvalidCashflow
	}
	return nil
}

// trimZeros drops leading and trailing zero values.
func trimZeros(values []float64) []float64 {
	begin, end := 0, len(values)
	for begin < end && values[begin] == 0 {
		begin++
	}
	for end > begin && values[end-1] == 0 {
		end--
	}
	return values[begin:end]
}

// trimEndZeros drops trailing zero values.
func trimEndZeros(values []float64) []float64 {
	end := len(values)
	for end > 0 && values[end-1] == 0 {
		end--
	}
	return values[:end]
}

func sum(values []float64) (s float64) {
	for _, v := range values {
		s += v
	}
	return
}
