package bond

import "time"

// DayCount identifies the convention used to turn a period into a year fraction.
type DayCount int

const (
	DayCount30_360 DayCount = iota + 1
	DayCountActual365
	DayCountActualActual
	DayCountActual360
)

func (d DayCount) String() string {
	switch d {
	case DayCount30_360:
		return "30/360"
	case DayCountActual365:
		return "ACT/365"
	case DayCountActualActual:
		return "ACT/ACT"
	case DayCountActual360:
		return "ACT/360"
	}
	return "unknown"
}

// YearFraction returns the length of the period from start to end in years.
// Unknown conventions fall back to 30/360.
func YearFraction(convention DayCount, start, end time.Time) float64 {
	switch convention {
	case DayCountActual365:
		return days(start, end) / 365.0
	case DayCountActualActual:
		return actualActual(start, end)
	case DayCountActual360:
		return days(start, end) / 360.0
	default:
		return thirty360(start, end)
	}
}

func days(start, end time.Time) float64 {
	return float64(end.Unix()-start.Unix()) / 86400
}

// actualActual splits the period at every new year and divides each piece
// by the length of its own year.
func actualActual(start, end time.Time) float64 {
	total := 0.0
	for current := start; current.Before(end); {
		next := time.Date(current.Year()+1, 1, 1, 0, 0, 0, 0, current.Location())
		yearLength := days(time.Date(current.Year(), 1, 1, 0, 0, 0, 0, current.Location()), next)
		if next.After(end) {
			next = end
		}
		total += days(current, next) / yearLength
		current = next
	}
	return total
}

// thirty360 counts every month as 30 days.
// D1 = 31 becomes 30, and D2 = 31 becomes 30 when D1 is 30 or 31.
func thirty360(start, end time.Time) float64 {
	y1, m1, d1 := start.Date()
	y2, m2, d2 := end.Date()
	if d1 == 31 {
		d1 = 30
	}
	if d2 == 31 && d1 == 30 {
		d2 = 30
	}
	return float64((y2-y1)*360+(int(m2)-int(m1))*30+(d2-d1)) / 360.0
}

// accruedInterest returns the coupon accrued on residual since start, scaled by ratio.
func accruedInterest(convention DayCount, start, settlement time.Time, coupon, residual, ratio float64) float64 {
	return YearFraction(convention, start, settlement) * coupon * residual * ratio
}
