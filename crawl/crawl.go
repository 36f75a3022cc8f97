// Package crawl provides bounded breadth-first traversal of documentation
// sites. It coordinates the frontier, page fetching, and knowledge graph
// assembly.
package crawl

import (
	"context"
	"errors"
	"net/url"

	"github.com/fwojciec/docgraph"
	"golang.org/x/sync/errgroup"
)

// DefaultPageBound is the page budget applied when a request does not set
// its own. It keeps an unattended traversal of a densely linked site from
// running away.
const DefaultPageBound = 50

// Traverser builds knowledge graphs by traversing documentation sites
// breadth-first.
type Traverser struct {
	Pages       docgraph.PageService
	RateLimiter docgraph.DomainLimiter
	Store       docgraph.GraphStore
	Concurrency int
	Progress    docgraph.CrawlProgressFunc
}

// Request describes one traversal.
type Request struct {
	// Framework names the graph, e.g. "react".
	Framework string

	// BaseURL is the traversal root. Only URLs under it are followed.
	BaseURL string

	// Depth is the maximum link distance from the root. Zero crawls the
	// root alone.
	Depth int

	// Patterns are substrings a link must contain to be followed.
	// Empty means DefaultLinkPatterns.
	Patterns []string

	// PageBound caps how many pages are fetched. Zero fetches nothing
	// and yields an empty graph.
	PageBound int
}

// Validate returns an error if the request is malformed.
func (r Request) Validate() error {
	if r.Framework == "" {
		return docgraph.Errorf(docgraph.EINVALID, "framework name is required")
	}
	if r.Depth < 0 {
		return docgraph.Errorf(docgraph.EINVALID, "depth must be non-negative")
	}
	if r.PageBound < 0 {
		return docgraph.Errorf(docgraph.EINVALID, "page bound must be non-negative")
	}
	return nil
}

// Extend traverses the site and returns the assembled knowledge graph.
//
// Pages are fetched level by level: one frontier level is fetched
// concurrently (bounded by Concurrency), then the results are folded into
// the graph sequentially in frontier order, so the same site yields the
// same graph regardless of concurrency. Links are followed only from
// pages shallower than the depth bound; edges are recorded for every
// eligible link at discovery, whether or not the target is ever fetched.
//
// On cancellation the partial graph is returned together with the context
// error, and nothing is persisted. A store failure after a complete
// traversal returns the finished graph with an EUNAVAILABLE error, so the
// caller can still use or export what was built.
func (t *Traverser) Extend(ctx context.Context, req Request) (*docgraph.KnowledgeGraph, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	filter, err := docgraph.NewLinkFilter(req.BaseURL, req.Patterns)
	if err != nil {
		return nil, err
	}

	frontier := NewFrontier(req.BaseURL, req.Depth, req.PageBound)
	asm := NewAssembler(req.Framework, req.BaseURL)

	processed := 0
	for {
		if err := ctx.Err(); err != nil {
			return asm.Finalize(), err
		}
		level := frontier.NextLevel()
		if len(level) == 0 {
			break
		}

		results, fetchErr := t.fetchLevel(ctx, level)

		for i, entry := range level {
			res := results[i]
			if res == nil {
				// Fetch aborted by cancellation; the loop condition
				// surfaces the context error on the next pass.
				continue
			}
			processed++
			t.report(docgraph.CrawlProgress{
				URL:       entry.URL,
				Depth:     entry.Depth,
				Completed: processed,
				Pending:   frontier.Len() + len(level) - i - 1,
				Err:       resultError(res),
			})
			if !res.Succeeded {
				continue
			}
			asm.RecordNode(entry, res)
			if entry.Depth >= req.Depth {
				continue
			}
			for _, link := range res.Links {
				if !filter.Eligible(link) {
					continue
				}
				asm.RecordEdge(entry.URL, link)
				frontier.Offer(link, entry.Depth+1)
			}
		}

		if fetchErr != nil {
			// Cancellation or an invalid request surfaced by a worker.
			// Completed results above are already folded in.
			return asm.Finalize(), fetchErr
		}
	}

	graph := asm.Finalize()
	if t.Store != nil {
		if err := t.Store.SaveGraph(ctx, graph); err != nil {
			return graph, docgraph.Errorf(docgraph.EUNAVAILABLE, "graph built but not persisted: %s", docgraph.ErrorMessage(err))
		}
	}
	return graph, nil
}

// fetchLevel fetches one frontier level concurrently in structured mode.
// The returned slice is parallel to level; entries whose fetch was cut off
// are nil. The error is the first worker error, which only cancellation or
// an invalid request can produce; per-page failures live in the results.
func (t *Traverser) fetchLevel(ctx context.Context, level []Entry) ([]*docgraph.PageResult, error) {
	results := make([]*docgraph.PageResult, len(level))

	g, gctx := errgroup.WithContext(ctx)
	concurrency := t.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	g.SetLimit(concurrency)

	for i, entry := range level {
		g.Go(func() error {
			if t.RateLimiter != nil {
				if host := urlHost(entry.URL); host != "" {
					if err := t.RateLimiter.Wait(gctx, host); err != nil {
						return err
					}
				}
			}
			res, err := t.Pages.FetchPage(gctx, entry.URL, docgraph.ModeStructured)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	return results, g.Wait()
}

func (t *Traverser) report(p docgraph.CrawlProgress) {
	if t.Progress != nil {
		t.Progress(p)
	}
}

// resultError converts a failed result's message into an error for
// progress reporting. Successful results return nil.
func resultError(res *docgraph.PageResult) error {
	if res.Succeeded || res.Error == "" {
		return nil
	}
	return errors.New(res.Error)
}

// urlHost extracts the host for rate limiting. Unparseable URLs return
// an empty host and skip limiting; the fetch itself will report them.
func urlHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
