package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Walker drives the breadth-first crawl. It owns a FIFO frontier of
// pending categories, processing one entry at a time: fetch the page,
// run the extractor, persist each result (acquiring its id), and push
// category results back onto the frontier. Parents are always persisted
// before their children are discovered, so every child's ParentID
// references an existing row.
//
// A per-walk visited-URL set turns the traversal into a graph walk:
// a site whose category pages link back to an ancestor still terminates.
type Walker struct {
	fetcher   Fetcher
	store     Store
	extractor *Extractor
	siteURL   string

	stats   Stats
	statsMu sync.RWMutex
}

// NewWalker creates a walker. siteURL is the landing page that seeds the
// root categories.
func NewWalker(fetcher Fetcher, store Store, extractor *Extractor, siteURL string) *Walker {
	return &Walker{
		fetcher:   fetcher,
		store:     store,
		extractor: extractor,
		siteURL:   siteURL,
		stats:     Stats{StartTime: time.Now()},
	}
}

// SeedRoots fetches the landing page, extracts the main-menu categories
// and persists them in menu order. limit > 0 restricts the crawl to the
// first limit roots. Unlike expansion, a fetch failure here is fatal:
// with no roots there is nothing to crawl.
func (w *Walker) SeedRoots(ctx context.Context, limit int) ([]Category, error) {
	doc, err := w.fetcher.Fetch(ctx, w.siteURL)
	if err != nil {
		return nil, fmt.Errorf("seed root categories: %w", err)
	}

	drafts := w.extractor.RootCategories(doc)
	if limit > 0 && len(drafts) > limit {
		drafts = drafts[:limit]
	}

	roots := make([]Category, 0, len(drafts))
	for i := range drafts {
		if err := w.store.InsertCategory(&drafts[i]); err != nil {
			w.recordError()
			slog.Error("Failed to persist root category", "name", drafts[i].Name, "url", drafts[i].URL, "error", err)
			continue
		}
		w.recordPersisted()
		roots = append(roots, drafts[i])
	}

	slog.Info("Seeded root categories", "discovered", len(drafts), "persisted", len(roots))
	return roots, nil
}

// ExpandCategories walks the category tree breadth-first starting from
// the persisted root categories. Each dequeued category's page is fetched
// and its subcategories are persisted and enqueued for further
// expansion. A fetch failure drops the entry (its subtree is simply not
// discovered); a persist failure drops the draft (it never acquires an
// id, so it cannot safely be expanded). Neither aborts the walk.
func (w *Walker) ExpandCategories(ctx context.Context) error {
	roots, err := w.store.ListRootCategories()
	if err != nil {
		return fmt.Errorf("load root categories: %w", err)
	}
	return w.ExpandFrom(ctx, roots)
}

// ExpandFrom is ExpandCategories over an explicit set of seed
// categories, each of which must already be persisted.
func (w *Walker) ExpandFrom(ctx context.Context, roots []Category) error {
	queue := make([]Category, 0, len(roots))
	visited := make(map[string]struct{}, len(roots))
	for _, root := range roots {
		queue = append(queue, root)
		visited[root.URL] = struct{}{}
	}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		parent := queue[0]
		queue = queue[1:]

		doc, ok := w.fetchEntry(ctx, parent.URL)
		if !ok {
			continue
		}

		for _, draft := range w.extractor.Subcategories(doc, &parent) {
			if _, seen := visited[draft.URL]; seen {
				slog.Debug("Skipping already-seen category URL", "url", draft.URL)
				continue
			}
			visited[draft.URL] = struct{}{}

			if err := w.store.InsertCategory(&draft); err != nil {
				w.recordError()
				perr := &PersistError{Entity: "category", URL: draft.URL, Err: err}
				slog.Error("Failed to persist category", "name", draft.Name, "parent_id", parent.ID, "error", perr)
				continue
			}
			w.recordPersisted()
			queue = append(queue, draft)
		}
	}

	stats := w.StatsSnapshot()
	slog.Info("Category expansion complete", "processed", stats.Processed, "persisted", stats.Persisted, "errors", stats.Errors)
	return nil
}

// CollectProducts fetches every leaf category's page and persists the
// product summaries found there. Products are terminal: the frontier
// only ever shrinks. A fetch failure drops the leaf; its products are
// simply not collected.
func (w *Walker) CollectProducts(ctx context.Context) error {
	leaves, err := w.store.ListLeafCategories()
	if err != nil {
		return fmt.Errorf("load leaf categories: %w", err)
	}
	return w.CollectProductsFrom(ctx, leaves)
}

// CollectProductsFrom is CollectProducts over an explicit set of leaf
// categories.
func (w *Walker) CollectProductsFrom(ctx context.Context, leaves []Category) error {
	queue := append([]Category(nil), leaves...)

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		leaf := queue[0]
		queue = queue[1:]

		doc, ok := w.fetchEntry(ctx, leaf.URL)
		if !ok {
			continue
		}

		for _, product := range w.extractor.Products(doc, &leaf) {
			if err := w.store.InsertProduct(&product); err != nil {
				w.recordError()
				perr := &PersistError{Entity: "product", URL: product.URL, Err: err}
				slog.Error("Failed to persist product", "name", product.Name, "cat_id", leaf.ID, "error", perr)
				continue
			}
			w.recordPersisted()
		}
	}

	stats := w.StatsSnapshot()
	slog.Info("Product collection complete", "processed", stats.Processed, "persisted", stats.Persisted, "errors", stats.Errors)
	return nil
}

// fetchEntry fetches one frontier entry's page, recording progress.
// ok=false means the entry is dropped and the walk continues.
func (w *Walker) fetchEntry(ctx context.Context, url string) (*goquery.Document, bool) {
	processed := w.recordProcessed()
	if processed%100 == 0 {
		slog.Info("Walker progress", "processed", processed)
	}

	doc, err := w.fetcher.Fetch(ctx, url)
	if err != nil {
		w.recordError()
		var ferr *FetchError
		if errors.As(err, &ferr) && ferr.StatusCode != 0 {
			slog.Warn("Dropping frontier entry", "url", url, "status", ferr.StatusCode)
		} else {
			slog.Warn("Dropping frontier entry", "url", url, "error", err)
		}
		return nil, false
	}
	return doc, true
}

// StatsSnapshot returns a copy of the current walk statistics.
func (w *Walker) StatsSnapshot() Stats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()

	stats := w.stats
	stats.Duration = time.Since(stats.StartTime)
	return stats
}

func (w *Walker) recordPersisted() {
	w.statsMu.Lock()
	w.stats.Persisted++
	w.statsMu.Unlock()
}

func (w *Walker) recordError() {
	w.statsMu.Lock()
	w.stats.Errors++
	w.statsMu.Unlock()
}

func (w *Walker) recordProcessed() int {
	w.statsMu.Lock()
	w.stats.Processed++
	n := w.stats.Processed
	w.statsMu.Unlock()
	return n
}
