package main

import (
	"fmt"

	"github.com/fwojciec/docgraph"
	"github.com/fwojciec/docgraph/crawl"
)

// Run executes the extend command.
func (c *ExtendCmd) Run(deps *Dependencies) error {
	deps.Traverser.Progress = func(p docgraph.CrawlProgress) {
		if p.Err != nil {
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", crawl.TruncateURL(p.URL, 80), p.Err)
			return
		}
		fmt.Fprintf(deps.Stdout, "  [%d] %s (depth %d)\n", p.Completed, crawl.TruncateURL(p.URL, 80), p.Depth)
	}

	graph, err := deps.Traverser.Extend(deps.Ctx, crawl.Request{
		Framework: c.Framework,
		BaseURL:   c.URL,
		Depth:     c.Depth,
		Patterns:  c.Pattern,
		PageBound: c.Pages,
	})
	if err != nil {
		// A store failure still yields a usable graph; report it but show
		// the summary so the work is not lost silently.
		fmt.Fprintf(deps.Stderr, "error: %s\n", docgraph.ErrorMessage(err))
		if graph == nil || docgraph.ErrorCode(err) != docgraph.EUNAVAILABLE {
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Graph %q: %d pages, %d references\n",
		graph.Framework, len(graph.Nodes), len(graph.Relationships))

	if deps.Tokens != nil {
		tokens, tokErr := deps.Tokens.CountTokens(deps.Ctx, docgraph.FormatGraphContext(graph))
		if tokErr == nil {
			fmt.Fprintf(deps.Stdout, "Context size: %s\n", crawl.FormatTokens(tokens))
		}
	}
	return err
}
