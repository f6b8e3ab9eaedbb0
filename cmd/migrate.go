package cmd

import (
	"github.com/spf13/cobra"
	"go-url-shortener/config"
	"go-url-shortener/storage"
	"go.uber.org/zap"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(*cobra.Command, []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			store, err := storage.Open(cfg.DatabaseDriver, cfg.DatabaseDSN, logger.Named("storage"))
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Migrate(); err != nil {
				return err
			}
			logger.Info("Schema is up to date", zap.String("driver", cfg.DatabaseDriver))
			return nil
		},
	}
}
