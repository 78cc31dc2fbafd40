package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/socialbot-ai/backend/internal/ai"
	"github.com/socialbot-ai/backend/internal/config"
	"github.com/socialbot-ai/backend/internal/db"
	httpapi "github.com/socialbot-ai/backend/internal/http"
	"github.com/socialbot-ai/backend/internal/quality"
	"github.com/socialbot-ai/backend/internal/respond"
	"github.com/socialbot-ai/backend/internal/training"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "socialbot-backend").Logger()

	ctx := context.Background()
	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect db")
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure schema")
	}

	var cache ai.Cache
	if cfg.RedisURL != "" {
		redisCache, err := ai.NewRedisCache(cfg.RedisURL, 60*time.Second)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect redis")
		}
		defer redisCache.Close()
		cache = redisCache
		logger.Info().Msg("using redis model-response cache")
	} else {
		cache = ai.NewMemoryCache(60 * time.Second)
	}

	var client ai.Client
	if cfg.OpenAIBaseURL == "" {
		client = ai.MockClient{ModelVersion: "mock-v1"}
		logger.Info().Msg("using mock model client")
	} else {
		client = ai.OpenAICompatClient{
			BaseURL:    cfg.OpenAIBaseURL,
			APIKey:     cfg.OpenAIKey,
			Timeout:    cfg.ModelTimeout,
			MaxRetries: cfg.ModelMaxRetries,
			Cache:      cache,
		}
	}

	validate := validator.New()
	engine := &respond.Engine{
		Client:           client,
		PrimaryModel:     cfg.PrimaryModel,
		FallbackModel:    cfg.FallbackModel,
		QualityThreshold: cfg.QualityThreshold,
		CandidateCount:   cfg.CandidateCount,
		BaseTemperature:  cfg.BaseTemperature,
		TemperatureStep:  cfg.TemperatureStep,
		MaxTokens:        cfg.MaxResponseTokens,
		Validator:        validate,
		Logger:           logger,
	}
	trainer := &training.Trainer{
		Client:    client,
		Model:     cfg.PrimaryModel,
		Engine:    engine,
		Store:     store,
		Validator: validate,
		Logger:    logger,
	}
	monitor := quality.NewMonitor(store, logger)

	router := httpapi.Router(cfg, store, engine, trainer, monitor, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
