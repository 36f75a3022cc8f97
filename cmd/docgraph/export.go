package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/docgraph"
	"github.com/fwojciec/docgraph/fs"
)

// newGraphWriter builds the filesystem writer for the export command.
func newGraphWriter(dir string) docgraph.GraphWriter {
	return fs.NewWriter(dir)
}

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	graph, err := deps.Graphs.LoadGraph(deps.Ctx, c.Framework)
	if err != nil {
		if docgraph.ErrorCode(err) == docgraph.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: graph %q not found. Use 'docgraph list' to see stored graphs.\n", c.Framework)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docgraph.ErrorMessage(err))
		}
		return err
	}

	if err := deps.Writer.WriteGraph(deps.Ctx, graph); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docgraph.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported graph %q to %s\n",
		c.Framework, filepath.Join(c.Dir, fs.GraphFileName(c.Framework)))
	return nil
}
