package financial_test

import (
	"fmt"
	"time"

	"github.com/jmtruffa/financial"
)

func ExampleInternalRateOfReturn() {
	rate, err := financial.InternalRateOfReturn([]float64{-500, 100, 100, 100, 100}, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%.4f\n", rate)
	// Output: -0.0836
}

func ExampleScheduledInternalRateOfReturn() {
	values := []float64{-379, 100, 100, 100, 100, 100}
	dates := []time.Time{
		time.Date(2016, 7, 8, 0, 0, 0, 0, time.UTC),
		time.Date(2017, 7, 8, 0, 0, 0, 0, time.UTC),
		time.Date(2018, 7, 8, 0, 0, 0, 0, time.UTC),
		time.Date(2019, 7, 8, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 7, 8, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 7, 8, 0, 0, 0, 0, time.UTC),
	}
	rate, err := financial.ScheduledInternalRateOfReturn(values, dates, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%.4f\n", rate)
	// Output: 0.1000
}
