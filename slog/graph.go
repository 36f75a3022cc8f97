package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docgraph"
)

// Ensure LoggingGraphStore implements docgraph.GraphStore.
var _ docgraph.GraphStore = (*LoggingGraphStore)(nil)

// LoggingGraphStore wraps a GraphStore with logging.
type LoggingGraphStore struct {
	next   docgraph.GraphStore
	logger *slog.Logger
}

// NewLoggingGraphStore creates a new LoggingGraphStore.
func NewLoggingGraphStore(next docgraph.GraphStore, logger *slog.Logger) *LoggingGraphStore {
	return &LoggingGraphStore{next: next, logger: logger}
}

// SaveGraph delegates to the wrapped store and logs the operation.
func (s *LoggingGraphStore) SaveGraph(ctx context.Context, graph *docgraph.KnowledgeGraph) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save graph",
			"framework", graph.Framework,
			"nodes", len(graph.Nodes),
			"edges", len(graph.Relationships),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveGraph(ctx, graph)
}

// LoadGraph delegates to the wrapped store and logs the operation.
func (s *LoggingGraphStore) LoadGraph(ctx context.Context, framework string) (graph *docgraph.KnowledgeGraph, err error) {
	defer func(begin time.Time) {
		nodes := 0
		if graph != nil {
			nodes = len(graph.Nodes)
		}
		s.logger.Info("load graph",
			"framework", framework,
			"nodes", nodes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.LoadGraph(ctx, framework)
}

// DeleteGraph delegates to the wrapped store and logs the operation.
func (s *LoggingGraphStore) DeleteGraph(ctx context.Context, framework string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete graph",
			"framework", framework,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteGraph(ctx, framework)
}

// ListGraphs delegates to the wrapped store and logs the operation.
func (s *LoggingGraphStore) ListGraphs(ctx context.Context) (summaries []*docgraph.GraphSummary, err error) {
	defer func(begin time.Time) {
		s.logger.Info("list graphs",
			"count", len(summaries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListGraphs(ctx)
}
