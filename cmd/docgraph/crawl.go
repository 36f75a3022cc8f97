package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/docgraph"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	res, err := deps.Pages.FetchPage(deps.Ctx, c.URL, docgraph.ExtractMode(c.Mode))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docgraph.ErrorMessage(err))
		return err
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(data))

	if !res.Succeeded {
		fmt.Fprintf(deps.Stderr, "error: fetch failed: %s\n", res.Error)
		return docgraph.Errorf(docgraph.EINTERNAL, "fetch failed: %s", res.Error)
	}
	return nil
}
