package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/docgraph"
	"github.com/fwojciec/docgraph/bloom"
)

// Cache sizing defaults.
const (
	// DefaultCacheTTL is how long a cached page result stays fresh.
	DefaultCacheTTL = 24 * time.Hour

	// DefaultCacheMaxRows bounds the number of cached page results.
	// Oldest rows are evicted first.
	DefaultCacheMaxRows = 1000

	// cacheExpectedItems sizes the Bloom filter for negative lookups.
	cacheExpectedItems = 10000

	// cacheFalsePositiveRate is acceptable because a false positive only
	// costs one extra query; a true negative skips the database entirely.
	cacheFalsePositiveRate = 0.01
)

// PageCache is a bounded, age-invalidated cache of page fetch results.
// Entries are keyed by URL and extraction mode. Entries older than the TTL
// are treated as absent, and the row count is capped with oldest-first
// eviction. A Bloom filter short-circuits lookups for pages that were never
// cached, which is the common case at the start of a traversal.
type PageCache struct {
	db      *DB
	ttl     time.Duration
	maxRows int

	mu     sync.Mutex
	filter *bloom.Filter
}

// CacheOption configures a PageCache.
type CacheOption func(*PageCache)

// WithTTL sets the freshness window for cached results.
// Defaults to DefaultCacheTTL (24h).
func WithTTL(d time.Duration) CacheOption {
	return func(c *PageCache) {
		c.ttl = d
	}
}

// WithMaxRows caps the number of cached results.
// Defaults to DefaultCacheMaxRows (1000).
func WithMaxRows(n int) CacheOption {
	return func(c *PageCache) {
		c.maxRows = n
	}
}

// NewPageCache creates a PageCache backed by db. The Bloom filter is seeded
// from rows already in the cache, so negative lookups stay fast across
// process restarts.
func NewPageCache(ctx context.Context, db *DB, opts ...CacheOption) (*PageCache, error) {
	c := &PageCache{
		db:      db,
		ttl:     DefaultCacheTTL,
		maxRows: DefaultCacheMaxRows,
		filter:  bloom.NewFilter(cacheExpectedItems, cacheFalsePositiveRate),
	}
	for _, opt := range opts {
		opt(c)
	}

	rows, err := db.QueryContext(ctx, "SELECT url, mode FROM pages")
	if err != nil {
		return nil, fmt.Errorf("seeding cache filter: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var url, mode string
		if err := rows.Scan(&url, &mode); err != nil {
			return nil, err
		}
		c.filter.Add(cacheKey(url, docgraph.ExtractMode(mode)))
	}
	return c, rows.Err()
}

// Get returns the cached result for a URL and mode, or nil when the cache
// has no fresh entry.
func (c *PageCache) Get(ctx context.Context, url string, mode docgraph.ExtractMode) (*docgraph.PageResult, error) {
	c.mu.Lock()
	mightHave := c.filter.Test(cacheKey(url, mode))
	c.mu.Unlock()
	if !mightHave {
		return nil, nil
	}

	var payload, fetchedAt string
	err := c.db.QueryRowContext(ctx, `
		SELECT result, fetched_at FROM pages WHERE url = ? AND mode = ?
	`, url, string(mode)).Scan(&payload, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	at, err := parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}
	if time.Since(at) > c.ttl {
		return nil, nil
	}

	var res docgraph.PageResult
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		return nil, fmt.Errorf("decode cached result for %s: %w", url, err)
	}
	return &res, nil
}

// Put stores a page result, replacing any previous entry for the same URL
// and mode, then evicts the oldest rows beyond the cap.
func (c *PageCache) Put(ctx context.Context, res *docgraph.PageResult) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode result for %s: %w", res.URL, err)
	}

	fetchedAt := res.Meta.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO pages (url, mode, result, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?)
	`, res.URL, string(res.Mode), string(payload), res.Meta.ContentHash,
		fetchedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.filter.Add(cacheKey(res.URL, res.Mode))
	c.mu.Unlock()

	return c.evict(ctx)
}

// evict removes the oldest rows beyond the row cap. Evicted keys stay in
// the Bloom filter; a later lookup pays one extra query and misses.
func (c *PageCache) evict(ctx context.Context) error {
	var count int
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pages").Scan(&count); err != nil {
		return err
	}
	if count <= c.maxRows {
		return nil
	}

	_, err := c.db.ExecContext(ctx, `
		DELETE FROM pages WHERE (url, mode) IN (
			SELECT url, mode FROM pages ORDER BY fetched_at ASC LIMIT ?
		)
	`, count-c.maxRows)
	return err
}

// cacheKey combines a URL and mode into one Bloom filter key.
func cacheKey(url string, mode docgraph.ExtractMode) string {
	return string(mode) + " " + url
}

// Ensure CachingPageService implements docgraph.PageService.
var _ docgraph.PageService = (*CachingPageService)(nil)

// CachingPageService decorates a PageService with the page cache. Only
// successful results are cached, so a failed page is retried on the next
// run. Cache faults degrade to a plain fetch; the cache is an optimization,
// never a point of failure.
type CachingPageService struct {
	cache *PageCache
	next  docgraph.PageService
}

// NewCachingPageService creates a CachingPageService.
func NewCachingPageService(cache *PageCache, next docgraph.PageService) *CachingPageService {
	return &CachingPageService{cache: cache, next: next}
}

// FetchPage returns a fresh cached result when one exists, and otherwise
// delegates to the wrapped service and caches a successful outcome.
func (s *CachingPageService) FetchPage(ctx context.Context, url string, mode docgraph.ExtractMode) (*docgraph.PageResult, error) {
	if cached, err := s.cache.Get(ctx, url, mode); err == nil && cached != nil {
		return cached, nil
	}

	res, err := s.next.FetchPage(ctx, url, mode)
	if err != nil {
		return nil, err
	}
	if res.Succeeded {
		_ = s.cache.Put(ctx, res)
	}
	return res, nil
}
