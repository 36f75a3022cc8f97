package crawl

import (
	"context"

	"github.com/fwojciec/docgraph"
)

// ContentDiffers compares content extracted from plain-HTTP HTML against
// browser-rendered HTML for the same page. Returns true if the rendered
// content is significantly longer (>50%), suggesting JavaScript rendering
// adds meaningful content. Also returns true on extraction errors (assumes
// JS needed).
func ContentDiffers(httpHTML, renderedHTML string, extractor docgraph.Extractor) bool {
	httpResult, err := extractor.Extract(httpHTML)
	if err != nil {
		return true
	}

	renderedResult, err := extractor.Extract(renderedHTML)
	if err != nil {
		return true
	}

	httpLen := len(httpResult.ContentHTML)
	renderedLen := len(renderedResult.ContentHTML)

	if httpLen == 0 && renderedLen > 0 {
		return true
	}

	threshold := float64(httpLen) * 1.5
	return float64(renderedLen) > threshold
}

// ProbeFetcher fetches probeURL with both fetchers and returns the one a
// traversal should use: the plain fetcher when static HTML already carries
// the content, the rendered fetcher when JavaScript rendering adds
// meaningful content or the plain fetch fails outright.
//
// The probe costs two fetches of one page and is meant to run once, before
// a traversal starts.
func ProbeFetcher(ctx context.Context, probeURL string, plain, rendered docgraph.Fetcher, extractor docgraph.Extractor) docgraph.Fetcher {
	plainHTML, err := plain.Fetch(ctx, probeURL)
	if err != nil {
		return rendered
	}

	renderedHTML, err := rendered.Fetch(ctx, probeURL)
	if err != nil {
		return plain
	}

	if ContentDiffers(plainHTML, renderedHTML, extractor) {
		return rendered
	}
	return plain
}
