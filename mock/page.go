package mock

import (
	"context"

	"github.com/fwojciec/docgraph"
)

var _ docgraph.PageService = (*PageService)(nil)

// PageService is a mock implementation of docgraph.PageService.
type PageService struct {
	FetchPageFn func(ctx context.Context, url string, mode docgraph.ExtractMode) (*docgraph.PageResult, error)
}

func (s *PageService) FetchPage(ctx context.Context, url string, mode docgraph.ExtractMode) (*docgraph.PageResult, error) {
	return s.FetchPageFn(ctx, url, mode)
}
