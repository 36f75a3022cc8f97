package main

import (
	"fmt"

	"github.com/fwojciec/docgraph"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, docgraph.AnalysisPrompt(c.Framework, c.URL))
	return nil
}
