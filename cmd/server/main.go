// Package main is the entry point for the flight offer aggregation service.
//
//	@title						Flight Offer Aggregation API
//	@version					1.0.0
//	@description				A flight search service that fans out to multiple providers, merges identical offers with per-provider price provenance, and returns price-sorted results.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/skyfare/flight-offer-aggregator/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@schemes					http https
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

	"github.com/labstack/echo/v4"

	// Import generated docs for swagger
	_ "github.com/skyfare/flight-offer-aggregator/docs"

	flighthttp "github.com/skyfare/flight-offer-aggregator/internal/adapter/http"
	"github.com/skyfare/flight-offer-aggregator/internal/adapter/http/middleware"
	"github.com/skyfare/flight-offer-aggregator/internal/adapter/provider/amadeus"
	"github.com/skyfare/flight-offer-aggregator/internal/adapter/provider/serpapi"
	"github.com/skyfare/flight-offer-aggregator/internal/adapter/provider/skyscanner"
	"github.com/skyfare/flight-offer-aggregator/internal/cache"
	"github.com/skyfare/flight-offer-aggregator/internal/config"
	"github.com/skyfare/flight-offer-aggregator/internal/domain"
	"github.com/skyfare/flight-offer-aggregator/internal/infrastructure/logger"
	"github.com/skyfare/flight-offer-aggregator/internal/ratelimit"
	"github.com/skyfare/flight-offer-aggregator/internal/usecase"
)

const (
	serviceName     = "flight-offer-aggregator"
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg := config.MustLoad()

	log := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: serviceName,
	})
	logger.SetGlobal(log)

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Msg("Configuration loaded")

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, log.Logger)

	resultCache := setupCache(cfg, log)
	defer resultCache.Close()

	limiter := ratelimit.New(ratelimit.Config{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.Burst,
	})

	registry, directory := setupProviders(cfg, limiter, log)

	ucConfig := &usecase.Config{
		GlobalTimeout:   cfg.Timeouts.GlobalSearch,
		ProviderTimeout: cfg.Timeouts.PerProvider,
	}
	flightUseCase := usecase.NewFlightSearchUseCase(registry, ucConfig,
		usecase.WithCache(resultCache),
		usecase.WithLogger(log.Logger),
	)

	flightHandler := flighthttp.NewFlightHandler(flightUseCase, directory, log, serviceName)
	flighthttp.RegisterRoutes(e, flightHandler)

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	gracefulShutdown(e, log)
}

// setupProviders registers every configured provider in a fixed order so
// that offer merging stays deterministic. Providers without credentials are
// skipped with a warning rather than failing startup.
func setupProviders(cfg *config.Config, limiter *ratelimit.ProviderLimiter, log *logger.Logger) (*domain.ProviderRegistry, flighthttp.AirportDirectory) {
	registry := domain.NewProviderRegistry()
	var directory flighthttp.AirportDirectory

	if cfg.Amadeus.ClientID != "" {
		adapter := amadeus.NewAdapter(amadeus.Config{
			BaseURL:      cfg.Amadeus.BaseURL,
			ClientID:     cfg.Amadeus.ClientID,
			ClientSecret: cfg.Amadeus.ClientSecret,
			Timeout:      cfg.Timeouts.PerProvider,
			MaxOffers:    cfg.Amadeus.MaxOffers,
		}, limiter, log.WithProvider(amadeus.ProviderName).Logger)
		registry.Register(adapter)
		directory = adapter
	} else {
		log.Warn().Msg("Amadeus credentials not set, provider disabled")
	}

	if cfg.SerpAPI.APIKey != "" {
		registry.Register(serpapi.NewAdapter(serpapi.Config{
			BaseURL: cfg.SerpAPI.BaseURL,
			APIKey:  cfg.SerpAPI.APIKey,
			Timeout: cfg.Timeouts.PerProvider,
		}, limiter, log.WithProvider(serpapi.ProviderName).Logger))
	} else {
		log.Warn().Msg("SerpApi key not set, provider disabled")
	}

	if cfg.Skyscanner.APIKey != "" {
		registry.Register(skyscanner.NewAdapter(skyscanner.Config{
			BaseURL: cfg.Skyscanner.BaseURL,
			APIKey:  cfg.Skyscanner.APIKey,
			Host:    cfg.Skyscanner.Host,
			Timeout: cfg.Timeouts.PerProvider,
		}, limiter, log.WithProvider(skyscanner.ProviderName).Logger))
	} else {
		log.Warn().Msg("Skyscanner key not set, provider disabled")
	}

	log.Info().Int("providers", registry.Len()).Msg("Providers registered")
	return registry, directory
}

// setupCache connects to redis when configured, otherwise falls back to a
// no-op cache so every search hits the providers directly.
func setupCache(cfg *config.Config, log *logger.Logger) cache.Cache {
	if cfg.Cache.RedisAddr == "" {
		log.Info().Msg("Result cache disabled")
		return cache.NewNoOp()
	}

	redisCache, err := cache.NewRedis(cache.Config{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
		TTL:      cfg.Cache.TTL,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, result cache disabled")
		return cache.NewNoOp()
	}

	log.Info().Str("addr", cfg.Cache.RedisAddr).Dur("ttl", cfg.Cache.TTL).Msg("Result cache enabled")
	return redisCache
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
