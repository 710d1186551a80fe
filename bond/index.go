package bond

import (
	"fmt"
	"sort"
	"time"
)

// IndexValue is the coefficient an index such as CER published for a date.
type IndexValue struct {
	Date  Fecha
	Value float64
}

// IndexSeries holds the values of an index ordered by date.
type IndexSeries []IndexValue

func NewIndexSeries(values []IndexValue) IndexSeries {
	s := make(IndexSeries, len(values))
	copy(s, values)
	sort.Slice(s, func(i, j int) bool { return s[i].Date.Time().Before(s[j].Date.Time()) })
	return s
}

// Coefficient returns the last value published on or before date.
func (s IndexSeries) Coefficient(date time.Time) (float64, error) {
	i := sort.Search(len(s), func(i int) bool { return s[i].Date.Time().After(date) })
	if i == 0 {
		return 0, fmt.Errorf("%w for %s", ErrIndexNotFound, date.Format(DateFormat))
	}
	return s[i-1].Value, nil
}

// Workdays moves a date by a number of business days.
type Workdays interface {
	WorkdaysFrom(date time.Time, offset int) time.Time
}

// Ratio returns how much the nominal has grown between issue and settlement,
// reading the index offset workdays before each date.
func (s IndexSeries) Ratio(cal Workdays, issue, settlement time.Time, offset int) (float64, error) {
	now, err := s.Coefficient(cal.WorkdaysFrom(settlement, -offset))
	if err != nil {
		return 0, err
	}
	base, err := s.Coefficient(cal.WorkdaysFrom(issue, -offset))
	if err != nil {
		return 0, err
	}
	if base == 0 {
		return 0, fmt.Errorf("%w: zero base value", ErrIndexNotFound)
	}
	return now / base, nil
}
