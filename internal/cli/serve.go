package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Konsultn-Engineering/sqlbridge/api"
	"github.com/Konsultn-Engineering/sqlbridge/config"
	"github.com/Konsultn-Engineering/sqlbridge/engine"
	"github.com/Konsultn-Engineering/sqlbridge/idgen"
	"github.com/Konsultn-Engineering/sqlbridge/logging"

	_ "github.com/Konsultn-Engineering/sqlbridge/providers/mysql"
	_ "github.com/Konsultn-Engineering/sqlbridge/providers/postgres"
	_ "github.com/Konsultn-Engineering/sqlbridge/providers/sqlite"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	return cmd
}

func runServe(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Log)

	ids, err := idgen.Get(cfg.RequestID)
	if err != nil {
		return err
	}

	logger.Info().
		Str("driver", cfg.Driver).
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.Database).
		Int("max_open", cfg.Database.Pool.MaxOpen).
		Msg("Connecting to database")

	eng, err := engine.Open(logger.WithContext(ctx), cfg.Driver, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer func() {
		if err := eng.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close database")
		}
	}()

	srv := api.New(api.Config{
		Addr:              cfg.Server.Addr(),
		Sessions:          eng,
		RequestIDs:        ids,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxBodyBytes:      cfg.Server.MaxBodyBytes,
		Logger:            logger,
	})
	if err := srv.Start(); err != nil {
		return err
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
