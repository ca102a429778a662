// Package crawler implements the catalog crawl core: a breadth-first
// frontier walker over category pages, CSS-selector extractors for
// categories and products, and the fetch/persist contracts they depend on.
package crawler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// HTTPFetcher implements Fetcher on top of net/http with a fixed
// per-host request delay.
type HTTPFetcher struct {
	client      *http.Client
	rateLimiter *RateLimiter
	userAgent   string
}

// NewHTTPFetcher creates a fetcher with the given politeness delay,
// request timeout and User-Agent header.
func NewHTTPFetcher(delay, timeout time.Duration, userAgent string) *HTTPFetcher {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}

	return &HTTPFetcher{
		client:      client,
		rateLimiter: NewRateLimiter(delay),
		userAgent:   userAgent,
	}
}

// Fetch retrieves url and parses the body into a document. It waits for
// the rate limiter before issuing the request. Any transport failure,
// non-2xx status or unparsable body is returned as a *FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	if err := f.rateLimiter.Wait(ctx, url); err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("parse body: %w", err)}
	}

	return doc, nil
}

// Close releases idle connections held by the underlying client.
func (f *HTTPFetcher) Close() {
	f.client.CloseIdleConnections()
}

// ParseDocument parses raw HTML into a document without any network
// access. Used by tests and by callers that already hold the markup.
func ParseDocument(body []byte) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewReader(body))
}
