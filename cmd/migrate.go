package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SUP-BookingService/internal/config"
	"github.com/m04kA/SUP-BookingService/migrations"
	"github.com/m04kA/SUP-BookingService/pkg/logger"
)

var errMigrateMemory = errors.New("migrations are not applicable to the memory driver")

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Apply or roll back embedded SQL migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{migrations.ActionUp, migrations.ActionDown},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cfg.Database.Driver != config.DriverPostgres {
				return errMigrateMemory
			}

			log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer log.Close()

			return migrations.Run(cfg.Database.URL(), args[0], log)
		},
	}
}
