package crawler

import (
	"context"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter enforces a fixed minimum delay between requests, tracked
// per host. The delay is a uniform politeness throttle, not adaptive
// backoff.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	delay    time.Duration
}

// NewRateLimiter creates a rate limiter with the given inter-request delay.
func NewRateLimiter(delay time.Duration) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		delay:    delay,
	}
}

// Wait blocks until a request to urlStr is permitted or ctx is cancelled.
func (r *RateLimiter) Wait(ctx context.Context, urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return err
	}
	return r.limiter(parsed.Host).Wait(ctx)
}

func (r *RateLimiter) limiter(host string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.limiters[host]; ok {
		return l
	}
	l := rate.NewLimiter(rate.Every(r.delay), 1)
	r.limiters[host] = l
	return l
}
