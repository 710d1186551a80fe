package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmtruffa/financial"
	"github.com/jmtruffa/financial/bond"
)

var (
	guess float64
	flows []string
)

func NewIRRCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "irr value...",
		Short:   "Internal rate of return of periodic cash flows",
		Example: "  yields irr -- -500 100 100 100 100",
		Args:    cobra.MinimumNArgs(2),
		RunE:    handleIRR,
	}
	cmd.Flags().Float64Var(&guess, "guess", financial.DefaultSolverSettings().InitialGuess, "starting rate")
	return cmd
}

func handleIRR(cmd *cobra.Command, args []string) error {
	values := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("value %d: %w", i+1, err)
		}
		values[i] = v
	}
	rate, err := calculator().InternalRateOfReturn(values, &guess)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "IRR: %.4f%%\n", rate*100)
	return nil
}

func NewXIRRCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "xirr",
		Short:   "Internal rate of return of dated cash flows",
		Example: "  yields xirr --flow 2016-07-08:-379 --flow 2017-07-08:100",
		Args:    cobra.NoArgs,
		RunE:    handleXIRR,
	}
	cmd.Flags().StringArrayVar(&flows, "flow", nil, "a cash flow as date:value, repeat for every flow")
	cmd.Flags().Float64Var(&guess, "guess", financial.DefaultSolverSettings().InitialGuess, "starting rate")
	return cmd
}

func handleXIRR(cmd *cobra.Command, args []string) error {
	values, dates, err := parseFlows(flows)
	if err != nil {
		return err
	}
	rate, err := calculator().ScheduledInternalRateOfReturn(values, dates, &guess)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "XIRR: %.4f%%\n", rate*100)
	return nil
}

var errBadFlow = errors.New("flows are written as date:value")

func parseFlows(in []string) ([]float64, []time.Time, error) {
	if len(in) < 2 {
		return nil, nil, fmt.Errorf("%w, at least two are needed", errBadFlow)
	}
	values := make([]float64, len(in))
	dates := make([]time.Time, len(in))
	for i, f := range in {
		d, v, ok := strings.Cut(f, ":")
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", errBadFlow, f)
		}
		date, err := time.Parse(bond.DateFormat, d)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %q: %v", errBadFlow, f, err)
		}
		value, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %q: %v", errBadFlow, f, err)
		}
		values[i], dates[i] = value, date
	}
	return values, dates, nil
}
