package mock

import (
	"context"

	"github.com/fwojciec/docgraph"
)

var _ docgraph.GraphStore = (*GraphStore)(nil)

// GraphStore is a mock implementation of docgraph.GraphStore.
type GraphStore struct {
	SaveGraphFn   func(ctx context.Context, graph *docgraph.KnowledgeGraph) error
	LoadGraphFn   func(ctx context.Context, framework string) (*docgraph.KnowledgeGraph, error)
	DeleteGraphFn func(ctx context.Context, framework string) error
	ListGraphsFn  func(ctx context.Context) ([]*docgraph.GraphSummary, error)
}

func (s *GraphStore) SaveGraph(ctx context.Context, graph *docgraph.KnowledgeGraph) error {
	return s.SaveGraphFn(ctx, graph)
}

func (s *GraphStore) LoadGraph(ctx context.Context, framework string) (*docgraph.KnowledgeGraph, error) {
	return s.LoadGraphFn(ctx, framework)
}

func (s *GraphStore) DeleteGraph(ctx context.Context, framework string) error {
	return s.DeleteGraphFn(ctx, framework)
}

func (s *GraphStore) ListGraphs(ctx context.Context) ([]*docgraph.GraphSummary, error) {
	return s.ListGraphsFn(ctx)
}

var _ docgraph.GraphWriter = (*GraphWriter)(nil)

// GraphWriter is a mock implementation of docgraph.GraphWriter.
type GraphWriter struct {
	WriteGraphFn func(ctx context.Context, graph *docgraph.KnowledgeGraph) error
}

func (w *GraphWriter) WriteGraph(ctx context.Context, graph *docgraph.KnowledgeGraph) error {
	return w.WriteGraphFn(ctx, graph)
}
