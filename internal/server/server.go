// Package server exposes the HTTP trigger interface for the crawler:
// a route that kicks off a catalog crawl in the background, plus
// count and liveness endpoints.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/go-chi/chi/v5"

	"catacrawl/internal/crawler"
)

// RunFunc executes one full crawl: seed roots (at most rootLimit when
// positive), expand categories, collect products.
type RunFunc func(ctx context.Context, rootLimit int) error

// Server handles the trigger routes. At most one crawl runs at a time.
type Server struct {
	store   crawler.Store
	run     RunFunc
	running atomic.Bool
}

// New creates a trigger server over the given store and crawl runner.
func New(store crawler.Store, run RunFunc) *Server {
	return &Server{store: store, run: run}
}

// Router returns the chi router with all routes wired up.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/stats", s.handleStats)
	r.Post("/crawl", s.handleCrawl)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCrawl schedules a crawl and acknowledges immediately. Partial
// failures during expansion are not surfaced here; they are observable
// via logs and the /stats counts.
func (s *Server) handleCrawl(w http.ResponseWriter, r *http.Request) {
	rootLimit := 0
	if raw := r.URL.Query().Get("roots"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "roots must be a non-negative integer"})
			return
		}
		rootLimit = n
	}

	if !s.running.CompareAndSwap(false, true) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "a crawl is already running"})
		return
	}

	go func() {
		defer s.running.Store(false)
		if err := s.run(context.Background(), rootLimit); err != nil {
			slog.Error("Crawl run failed", "error", err)
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]any{
		"status": "scheduled",
		"roots":  rootLimit,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	categories, err := s.store.CountCategories()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	products, err := s.store.CountProducts()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"categories": categories,
		"products":   products,
		"crawling":   s.running.Load(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
