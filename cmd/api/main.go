package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"discount-kart/internal/config"
	"discount-kart/internal/database"
	"discount-kart/internal/discount"
	"discount-kart/internal/handler"
	"discount-kart/internal/metrics"
	"discount-kart/internal/promo"
	"discount-kart/internal/repository"
	"discount-kart/internal/router"
	"discount-kart/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
)

const metricsNamespace = "discount_kart"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().
		Str("mode", cfg.Discount.Mode).
		Str("dispatch", cfg.Discount.Dispatch).
		Msg("starting discount-kart API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mode, err := discount.ParseMode(cfg.Discount.Mode)
	if err != nil {
		return err
	}
	dispatcher, err := discount.NewDispatcher(cfg.Discount.Dispatch)
	if err != nil {
		return err
	}

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialise database: %w", err)
	}
	defer pool.Close()

	promos, err := newPromoResolver(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialise promo catalog: %w", err)
	}
	if promos != nil {
		defer promos.Close()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(metricsNamespace, registry)
	if rules, ok := dispatcher.(*discount.Registry); ok {
		appMetrics.AddKinds(rules.Kinds()...)
	}

	productRepo := repository.NewProductRepository(pool, logger)

	productService := service.NewProductService(productRepo, logger)
	quoteService := service.NewQuoteService(productRepo, promos, dispatcher, mode, appMetrics, logger)

	mux := router.New(router.Handlers{
		Products: handler.NewProductHandler(productService, logger),
		Quotes:   handler.NewQuoteHandler(quoteService, logger),
	}, cfg.Auth.APIKey, appMetrics, registry, logger)

	server := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newPromoResolver loads the configured promo books. It returns a nil
// resolver when no books are configured.
func newPromoResolver(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (promo.Resolver, error) {
	if len(cfg.Promo.Files) == 0 {
		logger.Info().Msg("no promo books configured, promo codes disabled")
		return nil, nil
	}

	fileLoader := promo.NewFileLoader(logger)
	var s3Loader promo.Loader
	if cfg.S3.Enabled {
		var err error
		s3Loader, err = promo.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to initialise S3 loader, using local file system only")
			s3Loader = nil
		}
	}
	loader := promo.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, cfg.S3.Enabled, logger)

	return promo.NewCatalog(ctx, &promo.CatalogConfig{
		FilePaths:     cfg.Promo.Files,
		MinMatchCount: cfg.Promo.MinMatchCount,
	}, loader, logger)
}
