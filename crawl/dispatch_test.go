package crawl_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/docgraph"
	"github.com/fwojciec/docgraph/crawl"
	"github.com/fwojciec/docgraph/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noRetries keeps dispatcher tests from sleeping through real backoff.
var noRetries = []time.Duration{}

func newDispatcher() *crawl.Dispatcher {
	return &crawl.Dispatcher{
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<html><body><h1>Title</h1></body></html>", nil
			},
		},
		Links: &mock.LinkSelector{
			ExtractLinksFn: func(_, _ string) ([]string, error) {
				return []string{"https://example.com/docs/a"}, nil
			},
		},
		Extractor: &mock.Extractor{
			ExtractFn: func(_ string) (*docgraph.ExtractResult, error) {
				return &docgraph.ExtractResult{Title: "Page Title", ContentHTML: "<h1>Title</h1>"}, nil
			},
		},
		Converter: &mock.Converter{
			ConvertFn: func(_ string) (string, error) {
				return "# Title\n\nSome body text.", nil
			},
		},
		Structured: &mock.StructuredExtractor{
			ExtractStructureFn: func(_ context.Context, _, _ string) (*docgraph.PageStructure, error) {
				return &docgraph.PageStructure{
					Title:    "Structured Title",
					Concepts: []string{"titles"},
				}, nil
			},
		},
		RetryDelays: noRetries,
	}
}

func TestDispatcher_FetchPage_markdown(t *testing.T) {
	t.Parallel()

	d := newDispatcher()

	res, err := d.FetchPage(context.Background(), "https://example.com/docs", docgraph.ModeMarkdown)

	require.NoError(t, err)
	assert.True(t, res.Succeeded)
	assert.Equal(t, docgraph.ModeMarkdown, res.Mode)
	assert.Equal(t, "Page Title", res.Title)
	assert.Equal(t, "# Title\n\nSome body text.", res.Content)
	assert.Nil(t, res.Structure)
	assert.Equal(t, []string{"https://example.com/docs/a"}, res.Links)
	assert.NotEmpty(t, res.Meta.ContentHash)
	assert.Equal(t, 5, res.Meta.WordCount)
	require.Len(t, res.Meta.Outline, 1)
	assert.Equal(t, "Title", res.Meta.Outline[0].Title)
	assert.False(t, res.Meta.FetchedAt.IsZero())
}

func TestDispatcher_FetchPage_structured(t *testing.T) {
	t.Parallel()

	d := newDispatcher()

	res, err := d.FetchPage(context.Background(), "https://example.com/docs", docgraph.ModeStructured)

	require.NoError(t, err)
	assert.True(t, res.Succeeded)
	require.NotNil(t, res.Structure)
	assert.Equal(t, "Structured Title", res.Title)
	assert.Equal(t, []string{"titles"}, res.Structure.Concepts)
	assert.Empty(t, res.Content, "structured results carry no markdown body")
}

func TestDispatcher_FetchPage_structured_title_falls_back_to_extracted(t *testing.T) {
	t.Parallel()

	d := newDispatcher()
	d.Structured = &mock.StructuredExtractor{
		ExtractStructureFn: func(_ context.Context, _, _ string) (*docgraph.PageStructure, error) {
			return &docgraph.PageStructure{}, nil
		},
	}

	res, err := d.FetchPage(context.Background(), "https://example.com/docs", docgraph.ModeStructured)

	require.NoError(t, err)
	assert.Equal(t, "Page Title", res.Title)
	assert.Equal(t, "Page Title", res.Structure.Title)
}

func TestDispatcher_FetchPage_links_skips_extraction(t *testing.T) {
	t.Parallel()

	d := newDispatcher()
	extracted := false
	d.Extractor = &mock.Extractor{
		ExtractFn: func(_ string) (*docgraph.ExtractResult, error) {
			extracted = true
			return nil, errors.New("should not be called")
		},
	}

	res, err := d.FetchPage(context.Background(), "https://example.com/docs", docgraph.ModeLinks)

	require.NoError(t, err)
	assert.True(t, res.Succeeded)
	assert.Equal(t, []string{"https://example.com/docs/a"}, res.Links)
	assert.False(t, extracted, "links mode must not run content extraction")
}

func TestDispatcher_FetchPage_defaults_to_markdown(t *testing.T) {
	t.Parallel()

	d := newDispatcher()

	res, err := d.FetchPage(context.Background(), "https://example.com/docs", "")

	require.NoError(t, err)
	assert.Equal(t, docgraph.ModeMarkdown, res.Mode)
}

func TestDispatcher_FetchPage_unknown_mode(t *testing.T) {
	t.Parallel()

	d := newDispatcher()

	_, err := d.FetchPage(context.Background(), "https://example.com/docs", "full-text")

	assert.Equal(t, docgraph.EINVALID, docgraph.ErrorCode(err))
}

func TestDispatcher_FetchPage_structured_without_extractor(t *testing.T) {
	t.Parallel()

	d := newDispatcher()
	d.Structured = nil

	_, err := d.FetchPage(context.Background(), "https://example.com/docs", docgraph.ModeStructured)

	assert.Equal(t, docgraph.EINVALID, docgraph.ErrorCode(err))
}

func TestDispatcher_FetchPage_fetch_failure_is_a_result(t *testing.T) {
	t.Parallel()

	d := newDispatcher()
	d.Fetcher = &mock.Fetcher{
		FetchFn: func(_ context.Context, _ string) (string, error) {
			return "", errors.New("HTTP 503 for https://example.com/docs")
		},
	}

	res, err := d.FetchPage(context.Background(), "https://example.com/docs", docgraph.ModeMarkdown)

	require.NoError(t, err, "per-page failures are results, not errors")
	assert.False(t, res.Succeeded)
	assert.Contains(t, res.Error, "HTTP 503")
	assert.Empty(t, res.Links)
	assert.False(t, res.Meta.FetchedAt.IsZero())
}

func TestDispatcher_FetchPage_retries_transient_failures(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	d := newDispatcher()
	d.RetryDelays = []time.Duration{0, 0, 0}
	d.Fetcher = &mock.Fetcher{
		FetchFn: func(_ context.Context, _ string) (string, error) {
			if attempts.Add(1) < 3 {
				return "", errors.New("connection reset")
			}
			return "<html></html>", nil
		},
	}

	res, err := d.FetchPage(context.Background(), "https://example.com/docs", docgraph.ModeMarkdown)

	require.NoError(t, err)
	assert.True(t, res.Succeeded)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestDispatcher_FetchPage_cancellation_is_an_error(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	d := newDispatcher()
	d.Fetcher = &mock.Fetcher{
		FetchFn: func(ctx context.Context, _ string) (string, error) {
			cancel()
			return "", ctx.Err()
		},
	}

	res, err := d.FetchPage(ctx, "https://example.com/docs", docgraph.ModeMarkdown)

	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDispatcher_FetchPage_extraction_failure_is_a_result(t *testing.T) {
	t.Parallel()

	d := newDispatcher()
	d.Extractor = &mock.Extractor{
		ExtractFn: func(_ string) (*docgraph.ExtractResult, error) {
			return nil, errors.New("no content found")
		},
	}

	res, err := d.FetchPage(context.Background(), "https://example.com/docs", docgraph.ModeMarkdown)

	require.NoError(t, err)
	assert.False(t, res.Succeeded)
	assert.Contains(t, res.Error, "no content found")
}

func TestDispatcher_FetchPage_structured_extraction_failure_is_a_result(t *testing.T) {
	t.Parallel()

	d := newDispatcher()
	d.Structured = &mock.StructuredExtractor{
		ExtractStructureFn: func(_ context.Context, _, _ string) (*docgraph.PageStructure, error) {
			return nil, errors.New("model overloaded")
		},
	}

	res, err := d.FetchPage(context.Background(), "https://example.com/docs", docgraph.ModeStructured)

	require.NoError(t, err)
	assert.False(t, res.Succeeded)
	assert.Contains(t, res.Error, "model overloaded")
}
