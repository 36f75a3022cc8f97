package main

import (
	"fmt"

	"github.com/fwojciec/docgraph"
)

// Run executes the discover command.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	filter, err := docgraph.CompileURLFilter(c.Filter, c.Exclude)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docgraph.ErrorMessage(err))
		return err
	}

	urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.URL, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docgraph.ErrorMessage(err))
		return err
	}

	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}
	return nil
}
