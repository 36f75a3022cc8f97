package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/docgraph"
)

// Run executes the graph command.
func (c *GraphCmd) Run(deps *Dependencies) error {
	graph, err := deps.Graphs.LoadGraph(deps.Ctx, c.Framework)
	if err != nil {
		// A framework that was never crawled has an empty graph, not an
		// error; the caller can tell from the zero counts.
		if docgraph.ErrorCode(err) != docgraph.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docgraph.ErrorMessage(err))
			return err
		}
		graph = docgraph.NewKnowledgeGraph(c.Framework, "")
	}

	if c.Context {
		fmt.Fprintln(deps.Stdout, docgraph.FormatGraphContext(graph))
		return nil
	}

	data, err := json.MarshalIndent(graph, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(data))
	return nil
}
