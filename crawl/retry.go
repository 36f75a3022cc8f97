package crawl

import (
	"context"
	"time"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry fetches a URL with the default exponential backoff:
// one initial attempt plus up to three retries.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc) (string, error) {
	return FetchWithRetryDelays(ctx, url, fetch, DefaultRetryDelays())
}

// FetchWithRetryDelays is like FetchWithRetry with configurable delays,
// one per retry. Zero-length delays disable retrying entirely; tests use
// short delays to avoid real waits. The context is checked before each
// sleep, so cancellation cuts the backoff short.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, delays []time.Duration) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delays[attempt-1]):
			}
		}

		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err
	}
	return "", lastErr
}
