package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	database "github.com/galagram/galagram-api/app/db"
	appLogger "github.com/galagram/galagram-api/app/logger"
	"github.com/galagram/galagram-api/app/observability/metrics"
	"github.com/galagram/galagram-api/app/tracer"
	"github.com/galagram/galagram-api/config"
	"github.com/galagram/galagram-api/internal/api/auth"
	"github.com/galagram/galagram-api/internal/api/destination"
	generativeAI "github.com/galagram/galagram-api/internal/api/generative_ai"
	"github.com/galagram/galagram-api/internal/api/itinerary"
	"github.com/galagram/galagram-api/internal/api/recommendation"
	"github.com/galagram/galagram-api/internal/api/review"
	"github.com/galagram/galagram-api/internal/router"
)

func main() {
	// Use standard log until slog is configured, in case godotenv fails.
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Database ---
	dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		os.Exit(1)
	}
	if err := database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
		logger.Error("Failed to run database migrations", slog.Any("error", err))
		os.Exit(1)
	}
	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()
	if !database.WaitForDB(ctx, pool, logger) {
		logger.Error("Database not ready after waiting, exiting.")
		os.Exit(1)
	}

	// --- Observability ---
	tracer.InitTracingAndMetrics(":2112")
	metrics.InitAppMetrics()

	// --- AI client ---
	aiClient, err := generativeAI.NewAIClient(ctx, cfg.Gemini)
	if err != nil {
		logger.Error("Failed to initialize AI client", slog.Any("error", err))
		os.Exit(1)
	}
	if !aiClient.Configured() {
		logger.Warn("GEMINI_API_KEY not usable, recommendations will use fallback data")
	}

	// --- Dependency wiring ---
	authRepo := auth.NewPostgresAuthRepo(pool, logger)
	authService := auth.NewService(authRepo, cfg.JWT, logger)
	authHandler := auth.NewHandler(authService, logger)

	destinationRepo := destination.NewPostgresDestinationRepo(pool, logger)
	destinationService := destination.NewService(destinationRepo, logger)
	destinationHandler := destination.NewHandler(destinationService, logger)

	itineraryRepo := itinerary.NewPostgresItineraryRepo(pool, logger)
	itineraryService := itinerary.NewService(itineraryRepo, logger)
	itineraryHandler := itinerary.NewHandler(itineraryService, logger)

	recommendationRepo := recommendation.NewRepository(pool, logger)
	recommendationService := recommendation.NewService(aiClient, recommendationRepo, logger)
	recommendationHandler := recommendation.NewHandler(recommendationService, logger)

	reviewRepo := review.NewPostgresReviewRepo(pool, logger)
	reviewService := review.NewService(reviewRepo, logger)
	reviewHandler := review.NewHandler(reviewService, logger)

	apiRouter := router.SetupRouter(&router.Config{
		AuthHandler:           authHandler,
		DestinationHandler:    destinationHandler,
		ItineraryHandler:      itineraryHandler,
		RecommendationHandler: recommendationHandler,
		ReviewHandler:         reviewHandler,
		Authenticate:          auth.Authenticate(logger, cfg.JWT),
		RequireAdmin:          auth.RequireAdmin(logger),
	})

	mux := chi.NewMux()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(appLogger.StructuredLogger(logger))
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(middleware.Timeout(60 * time.Second))
	mux.Use(middleware.Compress(5, "application/json"))
	mux.Mount("/", apiRouter)

	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, starting graceful shutdown...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}
	logger.Info("Application shut down complete.")
}

// setupLogger configures and returns the application logger.
func setupLogger() *slog.Logger {
	var logger *slog.Logger
	env := os.Getenv("APP_ENV")

	if env == "development" || env == "" {
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		logger = slog.New(tint.NewHandler(os.Stdout, tintOpts))
		log.Println("Initialized development logger (tint)")
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     slog.LevelInfo,
			AddSource: false,
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
		log.Println("Initialized production logger (JSON)")
	}
	return logger
}
