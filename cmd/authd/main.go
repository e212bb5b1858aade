// Command authd serves the account area of the site: registration, login,
// session resumption, and account management over HTTP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/lindenweb/authkit"
	fiberadapter "github.com/lindenweb/authkit/adapters/fiber"
	"github.com/lindenweb/authkit/adapters/memory"
	"github.com/lindenweb/authkit/adapters/postgres"
	"github.com/lindenweb/authkit/core"
	"github.com/lindenweb/authkit/pkg/config"
	"github.com/lindenweb/authkit/pkg/logging"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "authd: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	store, cleanup, err := openStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer cleanup()

	auth, err := authkit.New(authkit.Config{
		Secret: cfg.Secret,
		Store:  store,
		SessionConfig: &authkit.SessionConfig{
			TTL:          cfg.SessionTTL,
			CookieSecure: cfg.CookieSecure,
		},
		HashWorkers: cfg.HashWorkers,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	app := fiber.New()
	fiberadapter.New(app, auth.Sessions, logger).RegisterRoutes(fiberadapter.DefaultBasePath)

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "starting server", "addr", cfg.HTTPAddr)
		errCh <- app.Listen(cfg.HTTPAddr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.Config, logger logging.Logger) (core.UserStore, func(), error) {
	if cfg.DatabaseDSN == "" {
		logger.Warn(ctx, "DATABASE_DSN not set, using in-memory store; records will not survive restarts")
		return memory.New(), func() {}, nil
	}

	store, err := postgres.Open(ctx, cfg.DatabaseDSN, cfg.StoreTimeout)
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}
