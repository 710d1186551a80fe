package bond

import (
	"math"
	"time"

	"github.com/jmtruffa/financial"
)

// Analytics describes a bond bought at a price on a settlement date.
// Amounts are per 100 of original nominal.
type Analytics struct {
	Yield            float64
	AccruedInterest  float64
	TechnicalValue   float64
	Parity           float64
	Duration         float64
	ModifiedDuration float64
	Residual         float64
}

// Analyze values b at price on settlement. Ratio scales the nominal of indexed
// bonds and is 1 for plain ones.
func (b *Bond) Analyze(price float64, settlement time.Time, ratio float64) (Analytics, error) {
	return defaultPricer.Analyze(b, price, settlement, ratio)
}

func (p *Pricer) Analyze(b *Bond, price float64, settlement time.Time, ratio float64) (Analytics, error) {
	values, dates, err := schedule(b.Cashflow, settlement, -price, ratio)
	if err != nil {
		return Analytics{}, err
	}
	ytm, err := p.calc.ScheduledInternalRateOfReturn(values, dates, financial.Float(YieldGuess))
	if err != nil {
		return Analytics{}, err
	}

	next := pending(b.Cashflow, settlement)[0]
	coupon := next.Rate
	if coupon == 0 {
		coupon = b.Coupon
	}
	start := lastPaid(b.Cashflow, b.IssueDate.Time(), settlement)

	a := Analytics{
		Yield:           ytm,
		Residual:        next.Residual,
		AccruedInterest: accruedInterest(b.DayCountConv, start, settlement, coupon, next.Residual, ratio),
	}
	a.TechnicalValue = next.Residual*ratio + a.AccruedInterest
	if a.TechnicalValue != 0 {
		a.Parity = price / a.TechnicalValue
	}
	a.Duration, err = duration(values, dates, ytm)
	if err != nil {
		return Analytics{}, err
	}
	a.ModifiedDuration = a.Duration / (1 + ytm)
	return a, nil
}

// duration returns the Macaulay duration, in years, of every value but the first.
func duration(values []float64, dates []time.Time, rate float64) (float64, error) {
	s, err := financial.NewSchedule(values, dates)
	if err != nil {
		return 0, err
	}
	var weighted, total float64
	for i, t := range s.Years() {
		if i == 0 {
			continue
		}
		pv := values[i] / math.Pow(1+rate, t)
		weighted += t * pv
		total += pv
	}
	if total == 0 {
		return 0, nil
	}
	return weighted / total, nil
}
