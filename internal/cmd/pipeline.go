package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"catacrawl/internal/config"
	"catacrawl/internal/crawler"
	"catacrawl/internal/server"
	"catacrawl/internal/storage"
)

// openStore opens the SQLite store, creating the database directory if
// needed. Store unavailability here aborts the run before any traversal.
func openStore(cfg *config.Config) (*storage.SQLiteStore, error) {
	dbDir := filepath.Dir(cfg.DatabasePath)
	if err := os.MkdirAll(dbDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	store, err := storage.NewSQLiteStore(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return store, nil
}

// newRunner builds the full crawl pipeline: seed roots from the landing
// page, expand the category tree, then collect products from the leaves.
func newRunner(cfg *config.Config, store crawler.Store) server.RunFunc {
	return func(ctx context.Context, rootLimit int) error {
		fetcher := crawler.NewHTTPFetcher(cfg.RequestDelay, cfg.RequestTimeout, cfg.UserAgent)
		defer fetcher.Close()

		extractor, err := crawler.NewExtractor(crawler.DefaultSchema(), cfg.SiteURL)
		if err != nil {
			return err
		}

		walker := crawler.NewWalker(fetcher, store, extractor, cfg.SiteURL)

		if _, err := walker.SeedRoots(ctx, rootLimit); err != nil {
			return err
		}

		if err := walker.ExpandCategories(ctx); err != nil {
			return err
		}

		if err := walker.CollectProducts(ctx); err != nil {
			return err
		}

		stats := walker.StatsSnapshot()
		categories, _ := store.CountCategories()
		products, _ := store.CountProducts()
		slog.Info("Crawl finished",
			"processed", stats.Processed,
			"persisted", stats.Persisted,
			"errors", stats.Errors,
			"duration", stats.Duration,
			"categories", categories,
			"products", products,
		)
		return nil
	}
}
