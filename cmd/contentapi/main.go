// Copyright (c) 2026 Clearcut Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/clearcut-app/content-api/internal/cache"
	"github.com/clearcut-app/content-api/internal/config"
	"github.com/clearcut-app/content-api/internal/content"
	"github.com/clearcut-app/content-api/internal/handler/api"
	"github.com/clearcut-app/content-api/internal/logging"
	"github.com/clearcut-app/content-api/internal/middleware"
	"github.com/clearcut-app/content-api/internal/store"
	"github.com/clearcut-app/content-api/internal/translate"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "contentapi - Clearcut blog content API\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CONTENT_API_TOKEN       API token for the translate endpoint (required, min 16 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CONTENT_DB_PATH         SQLite database path (default: ./data/content.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CONTENT_SERVER_PORT     Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CONTENT_ENV             Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CONTENT_REDIS_URL       Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CONTENT_OPENAI_API_KEY  API key for the translation backend\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("contentapi %s (commit: %s)\n", appVersion, appGitCommit)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize database
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also mirror WARN and ERROR logs into the events table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	queries := store.New(db)

	// Cache: Redis when configured, in-memory otherwise
	cacheBackend := cache.New(cfg.RedisURL, cfg.CachePrefix, cfg.CacheTTLDuration())
	defer func() {
		if err := cacheBackend.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	languageCache := cache.NewLanguageCache(cacheBackend, queries)

	defaultLanguage := "en"
	if lang, err := languageCache.Default(ctx); err == nil {
		defaultLanguage = lang.Code
	}

	// Content delivery: store-backed source with a transparent in-memory fallback
	contentService := content.NewService(
		content.NewStoreSource(queries),
		content.NewFallbackSource(),
		languageCache,
		logger,
	)

	// Translation pipeline
	backend := translate.NewOpenAIBackend(translate.OpenAIBackendConfig{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.TranslateModel,
	}, queries, logger)
	orchestrator := translate.NewOrchestrator(backend, queries, languageCache, translate.Config{
		BatchSize:    cfg.TranslateBatchSize,
		ChunkDelay:   cfg.TranslateChunkDelay,
		ChunkTimeout: cfg.TranslateChunkTimeout,
	}, logger)

	apiHandler := api.NewHandler(contentService, orchestrator, queries, api.Options{
		DefaultLanguage: defaultLanguage,
		DefaultPageSize: cfg.DefaultPageSize,
		MaxPageSize:     cfg.MaxPageSize,
	})
	healthHandler := api.NewHealthHandler(db)

	// Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RateLimit(20, 40))

	r.Get("/healthz", healthHandler.Health)
	r.Get("/blog", apiHandler.ListPosts)
	r.Get("/blog/{slug}", apiHandler.GetPost)
	r.Get("/tags", apiHandler.ListTags)

	r.Group(func(r chi.Router) {
		r.Use(middleware.TokenAuth(cfg.APIToken))
		r.Post("/posts/{id}/auto-translate", apiHandler.AutoTranslate)
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		// Translation runs are synchronous and chunked with per-chunk
		// delays, so the write timeout must cover a full run.
		WriteTimeout:   10 * time.Minute,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
