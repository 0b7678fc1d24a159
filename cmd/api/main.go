// cmd/api/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/JoshCentner/ShadowMatchPro/internal/auth"
	"github.com/JoshCentner/ShadowMatchPro/internal/config"
	"github.com/JoshCentner/ShadowMatchPro/internal/email"
	"github.com/JoshCentner/ShadowMatchPro/internal/handler"
	"github.com/JoshCentner/ShadowMatchPro/internal/metrics"
	"github.com/JoshCentner/ShadowMatchPro/internal/middleware"
	"github.com/JoshCentner/ShadowMatchPro/internal/seed"
	"github.com/JoshCentner/ShadowMatchPro/internal/service"
	"github.com/JoshCentner/ShadowMatchPro/internal/storage"
	"github.com/JoshCentner/ShadowMatchPro/internal/storage/memory"
	"github.com/JoshCentner/ShadowMatchPro/internal/storage/postgres"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   a.Key,
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	// Initialize storage
	store, err := setupStorage(cfg, logger)
	if err != nil {
		return fmt.Errorf("setting up storage: %w", err)
	}

	// Initialize auth
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiryPeriod)

	// Initialize lifecycle notifications when an email provider is configured
	var notifier service.Notifier
	if cfg.Email.Provider != "" {
		emailService, err := email.NewService(cfg, email.Provider(cfg.Email.Provider))
		if err != nil {
			return fmt.Errorf("setting up email service: %w", err)
		}
		notifier = email.NewNotifier(emailService)
	}

	// Initialize services
	userService := service.NewUserService(store, tokenManager)
	lifecycleService := service.NewLifecycleService(store, notifier)

	// Initialize metrics and rate limiting
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	rlConfig := middleware.DefaultRateLimiterConfig()
	rlConfig.RequestsPerMinute = cfg.RateLimit.RequestsPerMinute
	rlConfig.Burst = cfg.RateLimit.Burst
	rateLimiter := middleware.NewRateLimiter(rlConfig)
	defer rateLimiter.Stop()

	// Create router
	r := handler.NewRouter(handler.RouterDeps{
		Config:       cfg,
		Logger:       logger,
		Store:        store,
		Users:        userService,
		Lifecycle:    lifecycleService,
		TokenManager: tokenManager,
		Metrics:      collector,
		Gatherer:     registry,
		RateLimiter:  rateLimiter,
	})

	// Create server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Server error channel
	serverErrors := make(chan error, 1)

	// Start server
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port, "backend", cfg.Storage.Backend)
		serverErrors <- srv.ListenAndServe()
	}()

	// Shutdown channel
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)

	// Wait for shutdown or error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("shutdown started", "signal", sig)

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Gracefully shutdown the server
		if err := srv.Shutdown(ctx); err != nil {
			// If shutdown times out, forcefully close
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func setupStorage(cfg *config.Config, logger *slog.Logger) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		if err := postgres.RunMigrations(cfg.DatabaseURL()); err != nil {
			return nil, err
		}

		db, err := postgres.Open(cfg)
		if err != nil {
			return nil, err
		}
		return postgres.NewStore(db), nil

	case config.BackendMemory:
		store := memory.NewStore()
		if err := seed.Run(context.Background(), store); err != nil {
			return nil, fmt.Errorf("seeding in-memory store: %w", err)
		}
		logger.Info("using in-memory storage, data will not persist")
		return store, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
