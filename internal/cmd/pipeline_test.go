package cmd

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"catacrawl/internal/config"
)

func init() {
	// Disable slog output during testing
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// TestRunnerEndToEnd crawls a small synthetic catalog site: two roots,
// one subcategory, three products on the leaves.
func TestRunnerEndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	site := httptest.NewServer(mux)
	defer site.Close()

	page := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body>" + body + "</body></html>"))
		}
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		page(`
			<a class="MenuItem__MenuLink-tii3xq-1 efuIbv" href="/books"><span class="text">Books</span></a>
			<a class="MenuItem__MenuLink-tii3xq-1 efuIbv" href="/music"><span class="text">Music</span></a>
		`)(w, r)
	})
	mux.HandleFunc("/books", page(`<div class="list-group-item is-child"><a href="/books/fiction">Fiction</a></div>`))
	mux.HandleFunc("/books/fiction", page(`
		<div class="product-item" data-title="Dune" data-brand="Herbert" data-price="12.50"><a href="/p/dune"><i class="tikicon icon-tikinow"></i></a></div>
		<div class="product-item" data-title="Foundation" data-brand="Asimov" data-price="7.25"><a href="/p/foundation"></a></div>
	`))
	mux.HandleFunc("/music", page(`<div class="product-item" data-title="Kind of Blue" data-brand="Davis" data-price="19.99"><a href="/p/kob"><i class="tikicon icon-tikinow"></i></a></div>`))

	cfg := config.DefaultConfig()
	cfg.SiteURL = site.URL
	cfg.RequestDelay = time.Millisecond
	cfg.RequestTimeout = 5 * time.Second
	cfg.DatabasePath = filepath.Join(t.TempDir(), "catalog.db")

	store, err := openStore(cfg)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer func() { _ = store.Close() }()

	run := newRunner(cfg, store)
	if err := run(context.Background(), 0); err != nil {
		t.Fatalf("Crawl run failed: %v", err)
	}

	categories, err := store.CountCategories()
	if err != nil {
		t.Fatalf("Failed to count categories: %v", err)
	}
	if categories != 3 { // Books, Music, Fiction
		t.Errorf("Expected 3 categories, got %d", categories)
	}

	products, err := store.CountProducts()
	if err != nil {
		t.Fatalf("Failed to count products: %v", err)
	}
	if products != 3 {
		t.Errorf("Expected 3 products, got %d", products)
	}

	// Fiction and Music are leaves; Books is not.
	leaves, err := store.ListLeafCategories()
	if err != nil {
		t.Fatalf("Failed to list leaves: %v", err)
	}
	if len(leaves) != 2 {
		t.Errorf("Expected 2 leaf categories, got %d", len(leaves))
	}
}

func TestOpenStoreCreatesDirectory(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "nested", "catalog.db")

	store, err := openStore(cfg)
	if err != nil {
		t.Fatalf("openStore failed: %v", err)
	}
	_ = store.Close()
}
