package crawl

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/docgraph"
)

// Dispatcher implements docgraph.PageService by running the fetch pipeline:
// retrieve HTML, extract outbound links, then derive the payload the
// requested mode asks for (markdown content, structured knowledge, or the
// links alone).
//
// Any per-page failure, from the network up to structured extraction, is
// reported inside the PageResult; the error return is reserved for
// cancellation and invalid requests, so a traversal decides for itself
// what a bad page means.
type Dispatcher struct {
	Fetcher    docgraph.Fetcher
	Links      docgraph.LinkSelector
	Extractor  docgraph.Extractor
	Converter  docgraph.Converter
	Structured docgraph.StructuredExtractor

	// RetryDelays configures fetch retry backoff.
	// Nil means DefaultRetryDelays; empty disables retries.
	RetryDelays []time.Duration
}

var _ docgraph.PageService = (*Dispatcher)(nil)

// FetchPage fetches url and shapes the result according to mode.
// An empty mode defaults to ModeMarkdown.
func (d *Dispatcher) FetchPage(ctx context.Context, url string, mode docgraph.ExtractMode) (*docgraph.PageResult, error) {
	if mode == "" {
		mode = docgraph.ModeMarkdown
	}
	if !mode.Valid() {
		return nil, docgraph.Errorf(docgraph.EINVALID, "unknown extraction mode %q", mode)
	}
	if mode == docgraph.ModeStructured && d.Structured == nil {
		return nil, docgraph.Errorf(docgraph.EINVALID, "structured mode requires a structured extractor")
	}

	delays := d.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, url, d.Fetcher.Fetch, delays)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return failedResult(url, mode, err), nil
	}

	links, err := d.Links.ExtractLinks(html, url)
	if err != nil {
		return failedResult(url, mode, err), nil
	}

	res := &docgraph.PageResult{
		URL:       url,
		Mode:      mode,
		Links:     links,
		Meta:      docgraph.PageMeta{FetchedAt: time.Now().UTC()},
		Succeeded: true,
	}
	if mode == docgraph.ModeLinks {
		return res, nil
	}

	extracted, err := d.Extractor.Extract(html)
	if err != nil {
		return failedResult(url, mode, err), nil
	}
	markdown, err := d.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return failedResult(url, mode, err), nil
	}

	res.Title = extracted.Title
	res.Meta.ContentHash = ContentHash(markdown)
	res.Meta.WordCount = len(strings.Fields(markdown))
	res.Meta.Outline = docgraph.ExtractSections(markdown)

	if mode == docgraph.ModeMarkdown {
		res.Content = markdown
		return res, nil
	}

	structure, err := d.Structured.ExtractStructure(ctx, url, markdown)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return failedResult(url, mode, err), nil
	}
	if structure.Title == "" {
		structure.Title = extracted.Title
	}
	res.Title = structure.Title
	res.Structure = structure
	return res, nil
}

// failedResult normalizes a pipeline error into an unsuccessful PageResult.
func failedResult(url string, mode docgraph.ExtractMode, err error) *docgraph.PageResult {
	return &docgraph.PageResult{
		URL:   url,
		Mode:  mode,
		Meta:  docgraph.PageMeta{FetchedAt: time.Now().UTC()},
		Error: err.Error(),
	}
}
