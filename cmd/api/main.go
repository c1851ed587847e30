package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Ayu2427/Personal-doctor/internal/adapters/cache"
	"github.com/Ayu2427/Personal-doctor/internal/adapters/database"
	"github.com/Ayu2427/Personal-doctor/internal/adapters/providers/geocoding"
	"github.com/Ayu2427/Personal-doctor/internal/adapters/ratelimit"
	"github.com/Ayu2427/Personal-doctor/internal/api/handlers"
	"github.com/Ayu2427/Personal-doctor/internal/api/routes"
	"github.com/Ayu2427/Personal-doctor/internal/application/services"
	"github.com/Ayu2427/Personal-doctor/internal/domain/providers"
	"github.com/Ayu2427/Personal-doctor/internal/domain/repositories"
	"github.com/Ayu2427/Personal-doctor/internal/infrastructure/clients/postgres"
	redisclient "github.com/Ayu2427/Personal-doctor/internal/infrastructure/clients/redis"
	"github.com/Ayu2427/Personal-doctor/internal/infrastructure/observability"
	"github.com/Ayu2427/Personal-doctor/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Record store: postgres by default, in-memory when configured or
	// when the database is unreachable (demo still works)
	var conditionRepo repositories.ConditionRepository
	var accountRepo repositories.AccountRepository

	if cfg.Store.Driver == "postgres" {
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			log.Warn().Err(err).Msg("PostgreSQL unavailable, falling back to in-memory store")
		} else {
			defer pgClient.Close()
			log.Info().Msg("PostgreSQL client initialized")

			conditionRepo, err = database.NewConditionAdapter(pgClient)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to initialize condition adapter")
			}
			accountRepo, err = database.NewAccountAdapter(pgClient)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to initialize account adapter")
			}
		}
	}
	if conditionRepo == nil {
		conditionRepo = database.NewMemoryConditionAdapter()
		accountRepo = database.NewMemoryAccountAdapter()
		log.Info().Msg("in-memory record store initialized")
	}

	// Seed the condition catalog (idempotent, existing rows untouched)
	if err := conditionRepo.Seed(ctx, database.DemoCatalog()); err != nil {
		log.Fatal().Err(err).Msg("failed to seed condition catalog")
	}
	if count, err := conditionRepo.Count(ctx); err == nil {
		log.Info().Int("conditions", count).Msg("condition catalog ready")
	}

	// Redis backs the rate limiter and the geocode cache; without it
	// the service degrades to single-instance in-memory limiting
	var cacheProvider providers.CacheProvider
	var limiter providers.RateLimiter

	redisClient, err := redisclient.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, using in-memory rate limiter without geocode cache")
		limiter = ratelimit.NewMemoryLimiter()
	} else {
		defer redisClient.Close()
		log.Info().Msg("Redis client initialized")
		cacheProvider = cache.NewRedisAdapter(redisClient)
		limiter = ratelimit.NewRedisLimiter(redisClient)
	}

	var geocoder providers.GeocodingProvider
	switch cfg.Geocoder.Provider {
	case "nominatim":
		geocoder = geocoding.NewNominatimProvider(cfg.Geocoder.BaseURL, cfg.Geocoder.UserAgent, cacheProvider)
	case "mock":
		geocoder = geocoding.NewMockProvider()
	default:
		log.Warn().Str("provider", cfg.Geocoder.Provider).Msg("unknown geocoder provider, using mock")
		geocoder = geocoding.NewMockProvider()
	}

	sessionSecret := []byte(cfg.Session.Secret)
	if len(sessionSecret) == 0 {
		sessionSecret = randomSecret()
		log.Warn().Msg("SESSION_SECRET not set, generated a random per-process secret; sessions will not survive restarts")
	}

	diagnosisService := services.NewDiagnosisService(conditionRepo, geocoder, cfg.Chat.DefaultLocation, cfg.Chat.FacilityLimit)
	diagnosisService.SetMetrics(metrics)
	accountService := services.NewAccountService(accountRepo, sessionSecret, cfg.Session.TTL)

	authHandler := handlers.NewAuthHandler(accountService, cfg.Session.TTL)
	chatHandler := handlers.NewChatHandler(diagnosisService)

	router := routes.NewRouter(authHandler, chatHandler, accountService, limiter, cfg.RateLimit, metrics)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}

func randomSecret() []byte {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatal().Err(err).Msg("failed to generate session secret")
	}
	return []byte(hex.EncodeToString(buf))
}
