package mock

import (
	"context"

	"github.com/fwojciec/docgraph"
)

var _ docgraph.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of docgraph.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *docgraph.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *docgraph.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
