// Command stayctl runs operational tasks against the StayOS database:
// migrations, tenant bootstrap, lead imports and invoice housekeeping.
package main

import (
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stayos/internal/config"
	"stayos/internal/logger"
	"stayos/internal/repository/postgres"
)

// env is what every subcommand needs: configuration, a logger and a database handle.
type env struct {
	cfg *config.Config
	log *zap.Logger
	db  *sqlx.DB
}

func openEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	lg, err := logger.New(cfg.Log.Level, cfg.Log.Format, "stayctl")
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &env{cfg: cfg, log: lg, db: db}, nil
}

func (e *env) Close() {
	_ = e.db.Close()
	_ = e.log.Sync()
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "stayctl",
		Short:         "StayOS operations tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		migrateCmd(),
		bootstrapCmd(),
		importLeadsCmd(),
		markOverdueCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
