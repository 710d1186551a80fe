package commands

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jmtruffa/financial"
	"github.com/jmtruffa/financial/internal/config"
	"github.com/jmtruffa/financial/internal/store"
)

var (
	configFile string
	logLevel   string

	cfg    *config.Config
	logger *logrus.Logger
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "yields",
		Short:             "Bond yields and time value of money calculations",
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
	}
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml, toml or json)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "overrides log.level")
	return cmd
}

func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if cfg, err = config.Load(configFile); err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logger, err = cfg.Log.NewLogger(); err != nil {
		return err
	}
	logger.SetOutput(cmd.ErrOrStderr())
	return nil
}

func calculator() *financial.Calculator {
	return financial.NewCalculator(cfg.Solver)
}

func openStore(ctx context.Context) (*store.BondRepository, error) {
	repo, err := store.Open(ctx, cfg.Database.Driver, cfg.Database.DataSource(), logger)
	if err != nil {
		return nil, err
	}
	if err := repo.EnsureSchema(ctx); err != nil {
		repo.Close()
		return nil, err
	}
	return repo, nil
}
