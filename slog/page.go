package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docgraph"
)

// Ensure LoggingPageService implements docgraph.PageService.
var _ docgraph.PageService = (*LoggingPageService)(nil)

// LoggingPageService wraps a PageService with logging. Per-page failures
// are results, not errors, so the success flag is logged separately.
type LoggingPageService struct {
	next   docgraph.PageService
	logger *slog.Logger
}

// NewLoggingPageService creates a new LoggingPageService.
func NewLoggingPageService(next docgraph.PageService, logger *slog.Logger) *LoggingPageService {
	return &LoggingPageService{next: next, logger: logger}
}

// FetchPage delegates to the wrapped service and logs the operation.
func (s *LoggingPageService) FetchPage(ctx context.Context, url string, mode docgraph.ExtractMode) (res *docgraph.PageResult, err error) {
	defer func(begin time.Time) {
		succeeded := false
		if res != nil {
			succeeded = res.Succeeded
		}
		s.logger.Info("fetch page",
			"url", url,
			"mode", string(mode),
			"success", succeeded,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchPage(ctx, url, mode)
}
