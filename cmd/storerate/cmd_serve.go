package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/storepulse/store-rating/internal/api"
)

// storerate serve: start the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	a, err := boot(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.close(); err != nil {
			a.log.Error().Err(err).Msg("closing resources")
		}
	}()

	if a.cfg.DB.AutoMigrate {
		if err := a.migrate(ctx); err != nil {
			return err
		}
		a.log.Info().Msg("schema migrated")
	}

	svc := a.services()
	e := api.NewRouter(api.Dependencies{
		Auth:      svc.auth,
		Users:     svc.users,
		Stores:    svc.stores,
		Ratings:   svc.ratings,
		Dashboard: svc.dashboard,
		Verifier:  svc.tokens,
		Denylist:  svc.denylist,
		Checks:    a.checks(),
	}, api.Options{
		CORSOrigins:   a.cfg.CORSOrigins,
		AuthRateLimit: a.cfg.AuthRateLimit,
		AuthRateBurst: a.cfg.AuthRateBurst,
	}, a.log)

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("port", a.cfg.Port).Str("env", a.cfg.Env).Msg("http server listening")
		if err := e.Start(":" + a.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info().Dur("timeout", a.cfg.ShutdownTimeout).Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.log.Info().Msg("server stopped")
	return nil
}
