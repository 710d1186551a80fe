// Package bond prices bonds from their cash flow schedules: yield to maturity,
// price at a given rate, accrued interest and duration, with optional
// adjustment by an index such as CER.
package bond

import (
	"errors"
	"strings"
	"time"
)

// DateFormat is the layout of dates in bond files and query strings.
const DateFormat = "2006-01-02"

var (
	// ErrMatured is returned when no cash flow is left after the settlement date.
	ErrMatured = errors.New("bond has no pending cash flows")
	// ErrIndexNotFound is returned when an index series has no value on or before a date.
	ErrIndexNotFound = errors.New("index value not found")
)

// Fecha is a calendar date that reads and writes as "2006-01-02" in JSON.
type Fecha time.Time

func ParseFecha(s string) (Fecha, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Fecha{}, err
	}
	return Fecha(t), nil
}

func (f Fecha) Time() time.Time { return time.Time(f) }

func (f Fecha) String() string { return time.Time(f).Format(DateFormat) }

func (f Fecha) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.String() + `"`), nil
}

func (f *Fecha) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = Fecha{}
		return nil
	}
	// some files carry full timestamps
	if len(s) > len(DateFormat) {
		s = s[:len(DateFormat)]
	}
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return err
	}
	*f = Fecha(t)
	return nil
}

// Cashflow is a scheduled payment per 100 of nominal.
// Rate is the annual coupon of the period ending at Date, accrued on Residual.
// Amount is the total paid on Date, coupon plus Amort.
type Cashflow struct {
	Date     Fecha
	Rate     float64
	Amort    float64
	Residual float64
	Amount   float64
}

type Bond struct {
	ID        string
	Ticker    string
	IssueDate Fecha
	Maturity  Fecha
	Coupon    float64
	Cashflow  []Cashflow
	// Index is the code of the series that adjusts the nominal, empty for plain bonds.
	Index string
	// Offset is the number of workdays the index is lagged by.
	Offset       int
	DayCountConv DayCount
}

// Indexed reports whether the bond's nominal is adjusted by an index.
func (b *Bond) Indexed() bool {
	return b.Index != ""
}

// pending returns the cash flows paid strictly after settlement.
func pending(flow []Cashflow, settlement time.Time) []Cashflow {
	for i, cf := range flow {
		if cf.Date.Time().After(settlement) {
			return flow[i:]
		}
	}
	return nil
}

// lastPaid returns the date of the last cash flow on or before settlement, or issue if none was paid.
func lastPaid(flow []Cashflow, issue, settlement time.Time) time.Time {
	last := issue
	for _, cf := range flow {
		if cf.Date.Time().After(settlement) {
			break
		}
		last = cf.Date.Time()
	}
	return last
}
