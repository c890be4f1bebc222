package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/smartlicense/license-api/internal/api"
	redisstore "github.com/smartlicense/license-api/internal/infrastructure/db/redis"
	"github.com/smartlicense/license-api/internal/infrastructure/http/handlers"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Migrates the schema, seeds the security question catalog, creates the
bootstrap super admin when BOOTSTRAP_ADMIN_USERNAME is set, and serves the API
until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.close(context.Background())

	if err := a.migrate(ctx); err != nil {
		return err
	}

	b := a.cfg.Bootstrap
	if _, err := a.identity.EnsureBootstrapAdmin(ctx, b.Username, b.Password, b.Email); err != nil {
		return err
	}

	readiness := handlers.NewHealthDependenciesHandler().Register("database", a.store)
	if a.redis != nil {
		readiness.Register("redis", handlers.PingFunc(func(ctx context.Context) error {
			return redisstore.Ping(ctx, a.redis)
		}))
	}

	router := api.NewRouter(api.Dependencies{
		Identity:    a.identity,
		Bookings:    a.bookings,
		Profiles:    a.profiles,
		Stations:    a.stations,
		Recovery:    a.recovery,
		Readiness:   readiness,
		Log:         a.log,
		AuthEnabled: a.cfg.AuthEnabled,
		CORSOrigins: a.cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort("", a.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", srv.Addr).Str("version", version).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
