package bond

import (
	"time"

	"github.com/jmtruffa/financial"
)

// YieldGuess is where the yield search starts.
const YieldGuess = 0.001

// Pricer values bonds with the solver settings of its Calculator.
type Pricer struct {
	calc *financial.Calculator
}

func NewPricer(calc *financial.Calculator) *Pricer {
	if calc == nil {
		calc = financial.NewCalculator(financial.DefaultSolverSettings())
	}
	return &Pricer{calc: calc}
}

var defaultPricer = NewPricer(nil)

// Yield returns the annual rate that discounts the cash flows pending at settlementDate to price.
//
// settlementDate acts as cut-off date: every cash flow paid on or before it is discarded.
func Yield(flow []Cashflow, price float64, settlementDate time.Time) (float64, error) {
	return defaultPricer.Yield(flow, price, settlementDate)
}

// Price returns the value at settlementDate of the pending cash flows discounted at rate.
func Price(flow []Cashflow, rate float64, settlementDate time.Time) (float64, error) {
	return defaultPricer.Price(flow, rate, settlementDate)
}

func (p *Pricer) Yield(flow []Cashflow, price float64, settlementDate time.Time) (float64, error) {
	values, dates, err := schedule(flow, settlementDate, -price, 1)
	if err != nil {
		return 0, err
	}
	return p.calc.ScheduledInternalRateOfReturn(values, dates, financial.Float(YieldGuess))
}

func (p *Pricer) Price(flow []Cashflow, rate float64, settlementDate time.Time) (float64, error) {
	values, dates, err := schedule(flow, settlementDate, 0, 1)
	if err != nil {
		return 0, err
	}
	return financial.ScheduledNetPresentValue(rate, values, dates)
}

// schedule lays out the pending cash flows scaled by ratio after a first value paid at settlement.
func schedule(flow []Cashflow, settlement time.Time, first, ratio float64) ([]float64, []time.Time, error) {
	flow = pending(flow, settlement)
	if len(flow) == 0 {
		return nil, nil, ErrMatured
	}
	values := make([]float64, len(flow)+1)
	dates := make([]time.Time, len(flow)+1)
	values[0] = first
	dates[0] = settlement
	for i, cf := range flow {
		values[i+1] = cf.Amount * ratio
		dates[i+1] = cf.Date.Time()
	}
	return values, dates, nil
}
