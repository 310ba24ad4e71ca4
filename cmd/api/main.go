package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minhnion/WellHomeKitchen-BE/internal/config"
	"github.com/minhnion/WellHomeKitchen-BE/internal/database"
	"github.com/minhnion/WellHomeKitchen-BE/internal/handler"
	"github.com/minhnion/WellHomeKitchen-BE/internal/repository"
	"github.com/minhnion/WellHomeKitchen-BE/internal/router"
	"github.com/minhnion/WellHomeKitchen-BE/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting WellHomeKitchen API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Schema statements are idempotent; safe on every startup
	if err := database.ApplySchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to apply database schema: %w", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	saleRepo := repository.NewSaleRepository(pool, logger)
	voucherRepo := repository.NewVoucherRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	reviewRepo := repository.NewReviewRepository(pool, logger)

	// Initialize services
	notifier := service.NewLogNotifier(logger)
	productService := service.NewProductService(productRepo, saleRepo, logger)
	saleService := service.NewSaleService(saleRepo, productRepo, logger)
	voucherService := service.NewVoucherService(voucherRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, voucherRepo, notifier, logger)
	reviewService := service.NewReviewService(reviewRepo, productRepo, logger)

	// Initialize HTTP handlers and router
	mux := router.New(router.Handlers{
		Product: handler.NewProductHandler(productService, logger),
		Sale:    handler.NewSaleHandler(saleService, logger),
		Voucher: handler.NewVoucherHandler(voucherService, logger),
		Order:   handler.NewOrderHandler(orderService, logger),
		Review:  handler.NewReviewHandler(reviewService, logger),
	}, cfg.Auth.JWTSecret, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
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
