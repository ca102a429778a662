package crawler

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(100 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()

	// First request should be immediate
	if err := limiter.Wait(ctx, "https://example.com/page1"); err != nil {
		t.Errorf("First request failed: %v", err)
	}

	// Second request to the same host should wait
	if err := limiter.Wait(ctx, "https://example.com/page2"); err != nil {
		t.Errorf("Second request failed: %v", err)
	}

	if elapsed := time.Since(start); elapsed < 100*time.Millisecond {
		t.Errorf("Rate limiting not working, elapsed time: %v", elapsed)
	}

	// A different host should not be delayed
	start2 := time.Now()
	if err := limiter.Wait(ctx, "https://other.com/page1"); err != nil {
		t.Errorf("Different host request failed: %v", err)
	}
	if elapsed := time.Since(start2); elapsed > 10*time.Millisecond {
		t.Errorf("Different host was rate limited, elapsed time: %v", elapsed)
	}
}

func TestRateLimiterContextCancellation(t *testing.T) {
	limiter := NewRateLimiter(500 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	if err := limiter.Wait(ctx, "https://example.com/page1"); err != nil {
		t.Fatalf("First request failed: %v", err)
	}

	cancel()

	if err := limiter.Wait(ctx, "https://example.com/page2"); err == nil {
		t.Error("Expected error after context cancellation")
	}
}

func TestRateLimiterInvalidURL(t *testing.T) {
	limiter := NewRateLimiter(10 * time.Millisecond)

	if err := limiter.Wait(context.Background(), "://not-a-url"); err == nil {
		t.Error("Expected error for unparsable URL")
	}
}
