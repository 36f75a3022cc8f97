package main

import (
	"fmt"

	"github.com/fwojciec/docgraph"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return docgraph.Errorf(docgraph.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Graphs.DeleteGraph(deps.Ctx, c.Framework); err != nil {
		if docgraph.ErrorCode(err) == docgraph.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: graph %q not found. Use 'docgraph list' to see stored graphs.\n", c.Framework)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docgraph.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted graph %q\n", c.Framework)
	return nil
}
