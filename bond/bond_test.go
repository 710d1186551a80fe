package bond

import (
	"math"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// bullet pays 10% once a year and returns the nominal at maturity.
func bullet() *Bond {
	return &Bond{
		Ticker:    "BUL21",
		IssueDate: Fecha(date(2020, 1, 1)),
		Maturity:  Fecha(date(2021, 1, 1)),
		Coupon:    0.1,
		Cashflow: []Cashflow{
			{Date: Fecha(date(2021, 1, 1)), Rate: 0.1, Amort: 100, Residual: 100, Amount: 110},
		},
	}
}

func TestYield(t *testing.T) {
	b := bullet()
	y, err := Yield(b.Cashflow, 100, date(2020, 1, 1))
	require.NoError(t, err)
	assert.InDelta(t, math.Pow(1.1, 365.0/366.0)-1, y, 1e-7)

	p, err := Price(b.Cashflow, y, date(2020, 1, 1))
	require.NoError(t, err)
	assert.InDelta(t, 100, p, 1e-5)
}

func TestPrice(t *testing.T) {
	p, err := Price(bullet().Cashflow, 0.1, date(2020, 1, 1))
	require.NoError(t, err)
	assert.InDelta(t, 110/math.Pow(1.1, 366.0/365.0), p, 1e-9)
}

func TestMatured(t *testing.T) {
	b := bullet()
	_, err := Yield(b.Cashflow, 100, date(2021, 1, 1))
	assert.ErrorIs(t, err, ErrMatured)

	_, err = Price(b.Cashflow, 0.1, date(2021, 2, 1))
	assert.ErrorIs(t, err, ErrMatured)

	_, err = b.Analyze(100, date(2022, 1, 1), 1)
	assert.ErrorIs(t, err, ErrMatured)
}

func TestPendingSkipsPaidFlows(t *testing.T) {
	flow := []Cashflow{
		{Date: Fecha(date(2020, 7, 1)), Amount: 5},
		{Date: Fecha(date(2021, 1, 1)), Amount: 105},
	}
	assert.Len(t, pending(flow, date(2020, 6, 30)), 2)
	assert.Len(t, pending(flow, date(2020, 7, 1)), 1)
	assert.Empty(t, pending(flow, date(2021, 1, 1)))

	assert.Equal(t, date(2020, 1, 1), lastPaid(flow, date(2020, 1, 1), date(2020, 6, 30)))
	assert.Equal(t, date(2020, 7, 1), lastPaid(flow, date(2020, 1, 1), date(2020, 8, 1)))
}

func TestAnalyze(t *testing.T) {
	b := bullet()
	a, err := b.Analyze(104, date(2020, 7, 1), 1)
	require.NoError(t, err)

	years := 184.0 / 365.0
	assert.InDelta(t, math.Pow(110.0/104.0, 1/years)-1, a.Yield, 1e-7)
	assert.InDelta(t, 5, a.AccruedInterest, 1e-9)
	assert.InDelta(t, 105, a.TechnicalValue, 1e-9)
	assert.InDelta(t, 104.0/105.0, a.Parity, 1e-9)
	assert.InDelta(t, years, a.Duration, 1e-9)
	assert.InDelta(t, years/(1+a.Yield), a.ModifiedDuration, 1e-9)
	assert.Equal(t, 100.0, a.Residual)
}

func TestAnalyze_Indexed(t *testing.T) {
	b := bullet()
	b.Index = "CER"
	a, err := b.Analyze(208, date(2020, 7, 1), 2)
	require.NoError(t, err)

	assert.InDelta(t, 10, a.AccruedInterest, 1e-9)
	assert.InDelta(t, 210, a.TechnicalValue, 1e-9)
	assert.InDelta(t, math.Pow(220.0/208.0, 365.0/184.0)-1, a.Yield, 1e-7)
	assert.True(t, b.Indexed())
}

func TestAnalyze_DayCount(t *testing.T) {
	b := bullet()
	b.DayCountConv = DayCountActual365
	a, err := b.Analyze(104, date(2020, 7, 1), 1)
	require.NoError(t, err)
	assert.InDelta(t, 182.0/365.0*0.1*100, a.AccruedInterest, 1e-9)
}

func TestFechaJSON(t *testing.T) {
	var b Bond
	err := json.Unmarshal([]byte(`{"Ticker":"AL30","IssueDate":"2020-09-04","Maturity":"2030-07-09T00:00:00Z",
		"Cashflow":[{"Date":"2021-01-09","Rate":0.005,"Amort":0,"Residual":100,"Amount":0.17}]}`), &b)
	require.NoError(t, err)
	assert.Equal(t, date(2020, 9, 4), b.IssueDate.Time())
	assert.Equal(t, date(2030, 7, 9), b.Maturity.Time())
	assert.Equal(t, date(2021, 1, 9), b.Cashflow[0].Date.Time())

	out, err := json.Marshal(b.IssueDate)
	require.NoError(t, err)
	assert.Equal(t, `"2020-09-04"`, string(out))

	_, err = ParseFecha("09/04/2020")
	assert.Error(t, err)
}
