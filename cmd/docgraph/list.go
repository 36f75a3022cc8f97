package main

import (
	"fmt"

	"github.com/fwojciec/docgraph"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	summaries, err := deps.Graphs.ListGraphs(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docgraph.ErrorMessage(err))
		return err
	}

	if len(summaries) == 0 {
		fmt.Fprintln(deps.Stdout, "No graphs found. Use 'docgraph extend' to build one.")
		return nil
	}

	for _, s := range summaries {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d pages, %d references\n",
			s.Framework, s.BaseURL, s.NodeCount, s.EdgeCount)
	}

	return nil
}
