package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/cloud-ru/compound-interest-go/internal/config"
	"github.com/cloud-ru/compound-interest-go/internal/httpapi"
	"github.com/cloud-ru/compound-interest-go/internal/logging"
	"github.com/cloud-ru/compound-interest-go/internal/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.New("error", "text").Error("Failed to load configuration", logging.FieldError, err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	logging.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped with error", logging.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

func run(cfg *config.Config, logger *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, err := tracing.InitTracing(ctx, cfg.OTELServiceName, cfg.OTELEndpoint, logger)
	if err != nil {
		return err
	}

	srv := httpapi.NewServer(cfg, logger, provider.Tracer)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting compound interest server",
			"addr", srv.Addr,
			"max_months", cfg.MaxMonths,
			"otel_endpoint", cfg.OTELEndpoint)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", logging.FieldError, err)
		}
		return provider.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
