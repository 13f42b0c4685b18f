package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"

	"studykit-backend/internal/config"
	"studykit-backend/internal/database"
	"studykit-backend/internal/generator"
	"studykit-backend/internal/handlers"
	"studykit-backend/internal/logger"
	"studykit-backend/internal/middleware"
	"studykit-backend/internal/router"
	"studykit-backend/internal/services"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log.Info("Starting StudyKit backend", "env", cfg.Env)

	ctx := context.Background()

	// ──── Step 2: Error Reporting (optional) ────
	var sentryMiddleware func(http.Handler) http.Handler
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Env,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
		}); err != nil {
			log.Fatal("sentry.Init failed", "error", err)
		}
		defer sentry.Flush(2 * time.Second)
		sentryMiddleware = sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle
		log.Info("Sentry initialized")
	}

	// ──── Step 3: Redis (optional, rate limiting) ────
	redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Warn("Redis unavailable, rate limiting in memory", "error", err)
	} else if redisClient != nil {
		defer redisClient.Close()
		log.Info("Redis connected")
	}

	// ──── Step 4: Model Invoker (optional) ────
	var invoker generator.Invoker
	if cfg.ModelConfigured() {
		geminiService, err := services.NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel,
			cfg.GeminiConcurrentReqs, cfg.ModelTimeout, log.With("component", "gemini"))
		if err != nil {
			log.Warn("Gemini client initialization failed, using fallbacks only", "error", err)
		} else {
			defer geminiService.Close()
			invoker = geminiService
			log.Info("Gemini client initialized", "model", cfg.GeminiModel)
		}
	} else {
		log.Info("GEMINI_API_KEY not set, using fallbacks only")
	}

	// ──── Step 5: Services ────
	youtubeService := services.NewYouTubeService(cfg.TranscriptTimeout)
	var titles services.TitleFetcher
	if cfg.YouTubeMetadata {
		titles = youtubeService
	}
	fileExtractService := services.NewFileExtractService(cfg.ParserTimeout)
	extractor := services.NewExtractor(youtubeService, titles, fileExtractService, log.With("component", "extractor"))
	gen := generator.New(invoker, log.With("component", "generator"))

	// ──── Step 6: Handlers & Router ────
	contentHandler := handlers.NewContentHandler(extractor, cfg.StoragePath, cfg.MaxUploadMB, log)
	aiHandler := handlers.NewAIHandler(gen, log)

	r := router.New(contentHandler, aiHandler, log, router.Options{
		FrontendURL:    cfg.FrontendURL,
		RequestTimeout: cfg.RequestTimeout,
		RateLimiter:    middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute, redisClient, log),
		Sentry:         sentryMiddleware,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	}()

	log.Info("StudyKit backend ready", "addr", fmt.Sprintf("http://localhost:%s", cfg.Port),
		"model_configured", gen.ModelConfigured())

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal("Server error", "error", err)
	}
	<-done
}
