// Package main runs the interactive stock management console.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/abgdnv/stockmanager/internal/config"
	"github.com/abgdnv/stockmanager/internal/inventory/console"
	"github.com/abgdnv/stockmanager/internal/inventory/service"
	"github.com/abgdnv/stockmanager/internal/inventory/store"
	"github.com/abgdnv/stockmanager/internal/platform/diagnostics"
	"github.com/abgdnv/stockmanager/pkg/bootstrap"
	"github.com/abgdnv/stockmanager/pkg/telemetry"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdin, os.Stdout, os.Stderr); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
}

// run wires the store, service and console and serves the menu on in and out until the user exits,
// input ends or ctx is cancelled. Logs go to logOut. The diagnostics server runs alongside when enabled.
func run(ctx context.Context, in io.Reader, out, logOut io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := bootstrap.NewLogger(cfg.Log.Level, logOut).With("session_id", uuid.NewString())
	slog.SetDefault(logger)
	logger.Debug("Configuration loaded", "config", cfg.String())

	// The meter provider is installed before the service takes its meter.
	var metrics http.Handler
	if cfg.Diagnostics.Enabled {
		mp, handler, err := telemetry.NewMeterProvider(config.ServiceName)
		if err != nil {
			return fmt.Errorf("failed to set up metrics: %w", err)
		}
		defer func() {
			if err := mp.Shutdown(context.Background()); err != nil {
				logger.Error("Failed to shut down meter provider", "error", err)
			}
		}()
		metrics = handler
	}

	svc := service.NewService(store.NewInMemoryStore(), logger)
	con := console.New(svc, in, out, logger, console.Variant(cfg.Console.Variant))

	// The console ending, by Exit or end of input, stops everything else.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return con.Run(gCtx)
	})

	if cfg.Diagnostics.Enabled {
		srv := diagnostics.NewServer(cfg.Diagnostics, diagnostics.NewRouter(svc, metrics, logger))
		g.Go(func() error {
			logger.Info("Diagnostics server listening", slog.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("diagnostics server failed: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gCtx.Done()
			logger.Info("Shutting down diagnostics server...")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
			defer shutdownCancel()
			return srv.Shutdown(shutdownCtx)
		})
	} else {
		logger.Debug("Diagnostics server is disabled")
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	logger.Info("Stock manager stopped")
	return nil
}
