package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joyva20/ecommerce-api/internal/auth"
	"github.com/joyva20/ecommerce-api/internal/config"
	"github.com/joyva20/ecommerce-api/internal/dashboard"
	"github.com/joyva20/ecommerce-api/internal/database"
	"github.com/joyva20/ecommerce-api/internal/events"
	"github.com/joyva20/ecommerce-api/internal/handler"
	"github.com/joyva20/ecommerce-api/internal/payment"
	"github.com/joyva20/ecommerce-api/internal/recommend"
	"github.com/joyva20/ecommerce-api/internal/repository"
	"github.com/joyva20/ecommerce-api/internal/router"
	"github.com/joyva20/ecommerce-api/internal/service"

	"github.com/redis/go-redis/v9"
)

const tokenTTL = 24 * time.Hour

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
	logger.Info().Msg("starting storefront API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)
	reviewRepo := repository.NewReviewRepository(pool, logger)

	// Optional dashboard summary cache
	var cache *redis.Client
	if cfg.Redis.Enabled {
		cache = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := cache.Ping(ctx).Err(); err != nil {
			logger.Warn().Err(err).Msg("redis unreachable, dashboard cache disabled")
			cache = nil
		}
		if cache != nil {
			defer cache.Close()
		}
	}

	// Order event publisher; disabled when no brokers are configured
	var publisher events.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	} else {
		publisher = events.NopPublisher{}
		logger.Info().Msg("no kafka brokers configured, order events disabled")
	}
	defer publisher.Close()

	// Initialize services
	tokens := auth.NewTokens(cfg.Auth.JWTSecret, tokenTTL)
	gatewayClient := payment.NewClient(cfg.Gateway, logger)
	paymentService := payment.NewService(orderRepo, userRepo, gatewayClient, publisher, cfg.Gateway, logger)
	orderService := service.NewOrderService(orderRepo, userRepo, publisher, logger)
	productService := service.NewProductService(productRepo, logger)
	userService := service.NewUserService(userRepo, tokens, cfg.Auth, logger)
	reviewService := service.NewReviewService(reviewRepo, logger)
	dashboardService := dashboard.NewService(
		orderRepo, productRepo, userRepo,
		cache, cfg.Redis.SummaryTTL,
		dashboard.Options{RevenueFallback: cfg.Dashboard.RevenueFallback},
		logger,
	)
	recommender := recommend.NewClient(cfg.Recommender.BaseURL, cfg.Recommender.Timeout, logger)

	// Initialize HTTP handlers and router
	mux := router.New(router.Handlers{
		Product:   handler.NewProductHandler(productService, logger),
		Order:     handler.NewOrderHandler(orderService, logger),
		Payment:   handler.NewPaymentHandler(paymentService, logger),
		User:      handler.NewUserHandler(userService, logger),
		Cart:      handler.NewCartHandler(userService, logger),
		Review:    handler.NewReviewHandler(reviewService, logger),
		Dashboard: handler.NewDashboardHandler(dashboardService, logger),
		Recommend: handler.NewRecommendHandler(recommender, logger),
	}, tokens, logger)

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

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
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
