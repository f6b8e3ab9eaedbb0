package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go-url-shortener/config"
	"go-url-shortener/server"
	"go-url-shortener/storage"
	"go.uber.org/zap"
)

type serveOptions struct {
	port   int
	driver string
}

func newServeCmd() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return serve(cfg)
		},
	}
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "port to listen on (overrides PORT)")
	cmd.Flags().StringVar(&opts.driver, "database-driver", "", "memory, sqlite or postgres (overrides DATABASE_DRIVER)")
	return cmd
}

func (o *serveOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("port") {
		cfg.ServerPort = o.port
		if os.Getenv("BASE_URL") == "" {
			cfg.BaseURL = fmt.Sprintf("http://localhost:%d", o.port)
		}
	}
	if cmd.Flags().Changed("database-driver") {
		cfg.DatabaseDriver = o.driver
	}
}

func serve(cfg *config.Config) error {
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, err := storage.Open(cfg.DatabaseDriver, cfg.DatabaseDSN, logger.Named("storage"))
	if err != nil {
		logger.Error("Failed to open storage", zap.Error(err))
		return err
	}
	defer store.Close()

	if err := store.Migrate(); err != nil {
		logger.Error("Failed to migrate storage", zap.Error(err))
		return err
	}

	logger.Info("Starting URL Shortener application...",
		zap.Int("port", cfg.ServerPort),
		zap.String("driver", cfg.DatabaseDriver))
	if err := server.Run(logger, cfg, store); err != nil {
		logger.Error("Application error", zap.Error(err))
		return err
	}
	logger.Info("URL Shortener application stopped.")
	return nil
}
