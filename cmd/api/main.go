// Package main provides the entrypoint for the Skycast API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/skycastapp/skycast/internal/api"
	"github.com/skycastapp/skycast/internal/api/handler"
	"github.com/skycastapp/skycast/internal/config"
	"github.com/skycastapp/skycast/internal/httpx"
	"github.com/skycastapp/skycast/internal/session"
	"github.com/skycastapp/skycast/internal/store"
	"github.com/skycastapp/skycast/internal/telemetry"
	"github.com/skycastapp/skycast/internal/weather/openweathermap"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "skycast-api"

	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting Skycast API")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx := context.Background()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		Enabled:        cfg.Telemetry.Enabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.Telemetry.Enabled {
		log.Info().
			Str("otlp_endpoint", cfg.Telemetry.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Recent-cities persistence: redis when configured, in-memory otherwise.
	var recentStore store.RecentStore
	if cfg.Redis.Addr != "" {
		redisClient := redisv9.NewClient(&redisv9.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		recentStore = store.NewRedisStore(redisClient)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	} else {
		recentStore = store.NewMemoryStore()
		log.Warn().Msg("no redis configured, recent cities will not survive restarts")
	}

	provider := openweathermap.NewClient(openweathermap.ClientConfig{
		APIKey:  cfg.OWM.APIKey,
		BaseURL: cfg.OWM.BaseURL,
		GeoURL:  cfg.OWM.GeoURL,
		HTTPClient: httpx.NewClient(httpx.ClientConfig{
			Name:    openweathermap.ProviderName,
			Timeout: cfg.RequestTimeout,
		}),
		Logger: log,
	})

	sess := session.New(session.Config{
		Provider: provider,
		Store:    recentStore,
		Logger:   log,
		Unit:     cfg.DefaultUnit(),
		Language: cfg.DefaultLanguage(),
	})
	if err := sess.Restore(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to restore recent cities")
	}

	suggestHandler := handler.NewSuggestHandler(handler.SuggestHandlerConfig{
		Searcher: provider,
		Language: cfg.DefaultLanguage(),
		Window:   cfg.DebounceWindow,
		Logger:   log,
	})
	defer suggestHandler.Close()

	router := api.NewRouter(api.RouterConfig{
		Version:   Version,
		BuildTime: BuildTime,
		Logger:    log,
		Session:   sess,
		Suggest:   suggestHandler,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
