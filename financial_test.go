package financial_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmtruffa/financial"
)

func TestFutureValue(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		pv   float64
		when financial.PaymentTiming
		want float64
	}{
		{"payment at end of period", 0.1, 1000, financial.PayAtEnd, -2221.020000000001},
		{"payment at beginning", 0.1, 1000, financial.PayAtBeginning, -2282.071000000001},
		{"payment only", 0.1, 0, financial.PayAtEnd, -610.5100000000006},
		{"zero rate", 0, 1000, financial.PayAtEnd, -1500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := financial.FutureValue(tt.rate, 5, 100, tt.pv, tt.when)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestPresentValue(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		fv   float64
		when financial.PaymentTiming
		want float64
	}{
		{"payment at end of period", 0.1, 1000, financial.PayAtEnd, -1000.0000000000001},
		{"payment at beginning", 0.1, 1000, financial.PayAtBeginning, -1037.90786769408449},
		{"payment only", 0.1, 0, financial.PayAtEnd, -379.07867694084507},
		{"zero rate", 0, 1000, financial.PayAtEnd, -1500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := financial.PresentValue(tt.rate, 5, 100, tt.fv, tt.when)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestNetPresentValue(t *testing.T) {
	assert.InDelta(t, 221.29635953828267, financial.NetPresentValue(0.1, []float64{-1000, 500, 500, 500}), 1e-9)

	values := make([]float64, 10000)
	for i := range values {
		values[i] = 100
	}
	assert.Equal(t, 1000000.0, financial.NetPresentValue(0, values))

	// every value is discounted one more period than its index
	cf := []float64{-1000, 100, 100, 100}
	slow := 0.0
	for i, v := range cf {
		slow += v / math.Pow(1.1, float64(i+1))
	}
	assert.InDelta(t, slow, financial.NetPresentValue(0.1, cf), 1e-9)
}

func TestModifiedInternalRateOfReturn(t *testing.T) {
	got := financial.ModifiedInternalRateOfReturn([]float64{-1000, 100, 200, 300, 400, 400, 400}, 0.1, 0.1)
	assert.InDelta(t, 0.138453832579, got, 1e-7)

	got = financial.ModifiedInternalRateOfReturn([]float64{-100_000, 18_000, -50_000, 25_000, 25_000, 225_000}, 0.05, 0.1)
	assert.InDelta(t, 0.16288556821502476, got, 1e-7)

	got = financial.ModifiedInternalRateOfReturn([]float64{-1000, 100, 200, 300, 400, 400, 400, 0, 0}, 0.1, 0.1)
	assert.InDelta(t, 0.138453832579, got, 1e-7, "trailing zeros are ignored")

	got = financial.ModifiedInternalRateOfReturn([]float64{100_000, 18_000, 50_000, 25_000, 25_000, 225_000}, 0.05, 0.1)
	assert.True(t, math.IsInf(got, 1), "got %v", got)
}

func TestInternalRateOfReturn(t *testing.T) {
	rate, err := financial.InternalRateOfReturn([]float64{-500, 100, 100, 100, 100}, financial.Float(0))
	require.NoError(t, err)
	assert.InDelta(t, -0.08364541746615, rate, 1e-7)

	rate, err = financial.InternalRateOfReturn([]float64{-500, 100, 100, 100, 100, 100}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rate)

	rate, err = financial.InternalRateOfReturn([]float64{-1000, 500, 500, 500}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, financial.NetPresentValue(rate, []float64{-1000, 500, 500, 500}), 1e-6)
	assert.InDelta(t, 0.23375192852825, rate, 1e-7)
}

func TestInternalRateOfReturn_SameSignAsGuess(t *testing.T) {
	rate, err := financial.InternalRateOfReturn([]float64{10, 20, -10}, nil)
	require.NoError(t, err)
	assert.InDelta(t, -0.5857864377789364, rate, 1e-7)
}

func TestInternalRateOfReturn_TrimsZeros(t *testing.T) {
	want, err := financial.InternalRateOfReturn([]float64{-500, 100, 100, 100, 100}, nil)
	require.NoError(t, err)

	got, err := financial.InternalRateOfReturn([]float64{0, 0, -500, 100, 100, 100, 100, 0}, nil)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-9)
}

func TestInternalRateOfReturn_InvalidCashflow(t *testing.T) {
	for _, values := range [][]float64{
		nil,
		{-100},
		{0, 0, -100, 0},
		{100, 200, 300},
		{-100, -200, 0},
	} {
		_, err := financial.InternalRateOfReturn(values, nil)
		assert.ErrorIs(t, err, financial.ErrInvalidCashflow, "values %v", values)
	}
}

func TestCalculator(t *testing.T) {
	c := financial.NewCalculator(financial.SolverSettings{Precision: 1e-12})
	assert.Equal(t, 1e-12, c.Settings().Precision)
	assert.Equal(t, financial.DefaultSolverSettings().BisectionMaxIterations, c.Settings().BisectionMaxIterations)

	rate, err := c.InternalRateOfReturn([]float64{-500, 100, 100, 100, 100}, nil)
	require.NoError(t, err)
	assert.InDelta(t, -0.08364541746615, rate, 1e-11)
}

func TestCalculator_NoSolution(t *testing.T) {
	// too few bisection steps to close in on the root
	c := financial.NewCalculator(financial.SolverSettings{NewtonMaxIterations: 1, BisectionMaxIterations: 2})
	_, err := c.InternalRateOfReturn([]float64{-500, 100, 100, 100, 100}, nil)
	assert.ErrorIs(t, err, financial.ErrNoSolution)
}
