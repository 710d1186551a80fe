package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmtruffa/financial/internal/api"
	"github.com/jmtruffa/financial/internal/calendar"
)

func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  handleServe,
	}
}

func handleServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	cal := calendar.New(nil)
	if err := cal.Load(ctx, repo); err != nil {
		// the service still works with weekends only
		logger.WithError(err).Warn("could not load holidays")
	} else {
		logger.WithField("holidays", cal.Len()).Info("holidays loaded")
	}
	go cal.Watch(ctx, repo, cfg.Calendar.ReloadInterval, logger)

	return api.New(calculator(), repo, cal, cfg.Calendar.SettlementLag, logger).Run(ctx, cfg.Server.Addr)
}
