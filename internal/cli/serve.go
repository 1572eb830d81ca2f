package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tansive/archsrv/internal/archsrv/db"
	"github.com/tansive/archsrv/internal/archsrv/server"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(ctx context.Context, opts *options) error {
	c, err := loadConfig(opts)
	if err != nil {
		return err
	}
	slog := log.With().Str("state", "init").Logger()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(slog.WithContext(ctx), c)
	if err != nil {
		return err
	}
	defer func() {
		requests, returns := pool.Stats()
		log.Info().Uint64("conn_requests", requests).Uint64("conn_returns", returns).Msg("closing database pool")
		if err := pool.Close(); err != nil {
			log.Error().Err(err).Msg("unable to close database pool")
		}
	}()

	s, err := server.CreateNewServer(c, pool)
	if err != nil {
		return err
	}
	s.MountHandlers()

	if err := s.Serve(ctx, shutdownTimeout); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
