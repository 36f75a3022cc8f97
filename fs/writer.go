// Package fs exports knowledge graphs to the local filesystem.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docgraph"
)

// GraphFileName returns the export file name for a framework.
// Example: "FastAPI 0.1" → fastapi-0-1.json
func GraphFileName(framework string) string {
	var sb strings.Builder
	prevHyphen := false
	for _, r := range strings.ToLower(framework) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}
	name := strings.TrimSuffix(sb.String(), "-")
	if name == "" {
		name = "graph"
	}
	return name + ".json"
}

// Ensure Writer implements docgraph.GraphWriter at compile time.
var _ docgraph.GraphWriter = (*Writer)(nil)

// Writer exports knowledge graphs as JSON files in a directory.
// Writes are atomic: the graph is written to a temporary file in the same
// directory and renamed into place, so a reader never sees a partial export.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// Path returns the file path a graph would be exported to.
func (w *Writer) Path(graph *docgraph.KnowledgeGraph) string {
	return filepath.Join(w.baseDir, GraphFileName(graph.Framework))
}

// WriteGraph exports a graph to disk as pretty-printed JSON.
func (w *Writer) WriteGraph(ctx context.Context, graph *docgraph.KnowledgeGraph) error {
	if err := graph.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(graph, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(w.baseDir, ".graph-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), w.Path(graph))
}
