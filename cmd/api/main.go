package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/shayari/shayari-go/internal/ai"
	"github.com/shayari/shayari-go/internal/config"
	"github.com/shayari/shayari-go/internal/handler"
	"github.com/shayari/shayari-go/internal/repository"
	"github.com/shayari/shayari-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.MigrateOnStart {
		if err := repository.MigrateUp(ctx, db); err != nil {
			logger.Error("migration failed", "error", err)
			os.Exit(1)
		}
	}

	var gen ai.TextGenerator = ai.OfflineGenerator{}
	if g, err := ai.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel); err != nil {
		logger.Warn("AI insights disabled, serving fallbacks", "error", err)
	} else {
		gen = g
		logger.Info("AI insights enabled", "generator", g.Name())
	}

	authService := service.NewAuthService(repository.NewUserRepository(db), cfg.JWTSecret, cfg.JWTExpiry)
	poemService := service.NewPoemService(repository.NewPoemRepository(db))
	insightService := service.NewInsightService(ai.NewClient(gen),
		service.WithInsightLogger(logger),
		service.WithInsightTimeout(cfg.InsightTimeout),
		service.WithInsightCache(cfg.InsightCacheSize),
	)

	router := handler.NewRouter(ctx, handler.RouterConfig{
		Auth:        handler.NewAuthHandler(authService, logger),
		Poems:       handler.NewPoemHandler(poemService, logger),
		Insights:    handler.NewInsightHandler(insightService, logger),
		Inspiration: handler.NewInspirationHandler(service.NewInspirationService(), logger),
		JWTSecret:   cfg.JWTSecret,
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
