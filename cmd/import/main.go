package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"catalog-import/internal/catalog"
	"catalog-import/internal/config"
	"catalog-import/internal/db"
	"catalog-import/internal/feed"
	"catalog-import/internal/importer"
	"catalog-import/internal/logging"
	"catalog-import/internal/observability"
	"catalog-import/internal/repository"
)

func main() {
	feedLocation := flag.String("feed", "", "feed to import: local path, http(s):// URL, or sftp:// URL")
	flag.Parse()

	if *feedLocation == "" {
		slog.Error("missing required -feed flag")
		flag.Usage()
		os.Exit(2)
	}

	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"batch_size", cfg.Import.BatchSize,
		"batch_pause", cfg.Import.BatchPause,
		"abort_on_error", cfg.Import.AbortOnError,
		"metrics_enabled", cfg.Metrics.Enabled,
	)

	feed.MaxFeedSize = cfg.Import.MaxFeedSize

	if cfg.Metrics.Enabled {
		observability.Start(cfg.Metrics.Port)
	}

	// Cancel the run on SIGINT/SIGTERM so a partial result still gets logged.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.Database)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	imp := importer.New(
		repository.New(pool),
		catalog.NewTransformer(nil),
		catalog.NewValidator(),
	)

	result, err := imp.ImportFile(ctx, *feedLocation, importer.Options{
		BatchSize:    cfg.Import.BatchSize,
		BatchPause:   cfg.Import.BatchPause,
		AbortOnError: cfg.Import.AbortOnError,
		Source: feed.SourceConfig{
			HTTPTimeout:   cfg.Feed.HTTPTimeout,
			RetryAttempts: cfg.Feed.RetryAttempts,
			RetryDelay:    cfg.Feed.RetryDelay,
		},
	})
	if err != nil {
		slog.Error("import failed", "feed", *feedLocation, "error", err)
		os.Exit(1)
	}

	slog.Info("import completed",
		"feed", *feedLocation,
		"run_id", result.RunID,
		"processed", result.Processed,
		"inserted", result.Inserted,
		"updated", result.Updated,
		"errors", len(result.Errors),
		"duration", result.Duration,
	)
}
