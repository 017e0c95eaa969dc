package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/kafka-go"

	"example.com/supplementstack/internal/api"
	"example.com/supplementstack/internal/app"
	"example.com/supplementstack/internal/auth"
	"example.com/supplementstack/internal/config"
	"example.com/supplementstack/internal/consumer"
	"example.com/supplementstack/internal/logging"
	httptransport "example.com/supplementstack/internal/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := logging.Logger()
		bootLogger.Fatal().Err(err).Msg("load config")
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	logger := logging.WithComponent("main")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	components, err := app.Build(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("wire components")
	}
	defer components.Close()

	// Warm the catalog so the first request does not pay for the load.
	if err := components.View.Refresh(ctx); err != nil {
		logger.Warn().Err(err).Msg("initial catalog load failed; requests will fall back until it recovers")
	}

	var wg sync.WaitGroup
	if cfg.Kafka.Enabled {
		reader := kafka.NewReader(kafka.ReaderConfig{
			Brokers:        cfg.Kafka.Brokers,
			GroupID:        cfg.Kafka.ConsumerGroup,
			Topic:          cfg.Kafka.CatalogTopic,
			MinBytes:       1,
			MaxBytes:       10e6,
			CommitInterval: time.Second,
		})
		proc := consumer.NewProcessor(reader, consumer.NewCatalogHandler(components.View))

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer reader.Close()
			if err := proc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error().Err(err).Str("topic", cfg.Kafka.CatalogTopic).Msg("catalog consumer stopped")
			}
		}()
	}

	handler := api.NewHandler(components.Resolver, components.View)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	authMiddleware := auth.NewMiddleware(auth.Config{Secret: cfg.Auth.JWTSecret, Issuer: cfg.Auth.JWTIssuer})

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:      cfg.HTTP.Address,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}, httptransport.WithRequestLogging(
		// The outer limiter sees no claims and keys by address, so rejected
		// tokens are throttled too. The inner one keys by token subject.
		rateLimited(cfg.HTTP, authMiddleware.Wrap(rateLimited(cfg.HTTP, mux))),
	))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info().Str("address", cfg.HTTP.Address).Msg("supplement stack api listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-shutdownCh
	logger.Info().Msg("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	wg.Wait()
}

func rateLimited(cfg config.HTTPConfig, next http.Handler) http.Handler {
	if cfg.RateLimit <= 0 {
		return next
	}
	return httptransport.NewRateLimiter(cfg.RateLimit, cfg.RateBurst).Wrap(next)
}
