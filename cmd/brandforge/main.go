// Package main is the entry point for the brandforge server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brandforge/internal/ai"
	"brandforge/internal/cache"
	"brandforge/internal/config"
	"brandforge/internal/database"
	"brandforge/internal/handlers"
	"brandforge/internal/middleware"
	"brandforge/internal/router"
	"brandforge/internal/scrape"
	"brandforge/internal/storage"
	"brandforge/internal/store"
)

func main() {
	// Structured logger: text output, debug level in development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (Redis-compatible cache for generated pages).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	pageCache := cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)

	// Initialize data stores.
	projectStore := store.NewProjectStore(db)
	versionStore := store.NewVersionStore(db)
	assetStore := store.NewAssetStore(db)
	scrapeLogStore := store.NewScrapeLogStore(db)

	// Connect to S3-compatible object storage (optional; scraped assets
	// stay at their source URLs without it).
	var storageClient *storage.Client
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		slog.Info("s3 storage connected",
			"endpoint", cfg.S3Endpoint,
			"bucket", cfg.S3Bucket,
		)
	} else {
		slog.Warn("s3 storage not configured, screenshots will not be persisted")
	}

	// Scrape pipeline: rendering API client, metrics, and the asset
	// pipeline that records discovered assets and uploads screenshots.
	scrapeMetrics := scrape.NewMetrics()
	scrapeClient := scrape.NewClient(cfg.ScrapeAPIKey, cfg.ScrapeBaseURL, cfg.ScrapeTimeout, scrapeMetrics)
	assetPipeline := storage.NewPipeline(storageClient, assetStore)
	scraper := scrape.NewScraper(scrapeClient, assetPipeline, scrapeLogStore, scrapeMetrics, cfg.AIAPIKey != "")

	// Generation client: OpenAI-compatible provider behind the global
	// request gate.
	provider := ai.NewOpenAI(ai.ProviderConfig{APIKey: cfg.AIAPIKey, BaseURL: cfg.AIBaseURL})
	gate := ai.NewGate(ai.MinRequestInterval)
	generator := ai.NewGenerator(provider, gate, cfg.AIVisionModel, cfg.AIEditModel)

	slog.Info("generation client initialized",
		"provider", provider.Name(),
		"vision_model", cfg.AIVisionModel,
		"edit_model", cfg.AIEditModel,
	)

	// Create the API handler group and the router.
	api := handlers.NewAPI(projectStore, versionStore, scrapeLogStore, scraper, generator, pageCache)
	limiter := middleware.NewRateLimiter(60, time.Minute)
	defer limiter.Stop()

	r := router.New(api, limiter, scrapeMetrics.Registry)

	// Create the HTTP server with sensible timeouts. WriteTimeout must
	// accommodate the scrape and generation endpoints, which wait on the
	// rendering API and the model (retries included).
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
