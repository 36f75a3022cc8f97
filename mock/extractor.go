package mock

import (
	"context"

	"github.com/fwojciec/docgraph"
)

var _ docgraph.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docgraph.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*docgraph.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*docgraph.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ docgraph.StructuredExtractor = (*StructuredExtractor)(nil)

// StructuredExtractor is a mock implementation of docgraph.StructuredExtractor.
type StructuredExtractor struct {
	ExtractStructureFn func(ctx context.Context, url, markdown string) (*docgraph.PageStructure, error)
}

func (e *StructuredExtractor) ExtractStructure(ctx context.Context, url, markdown string) (*docgraph.PageStructure, error) {
	return e.ExtractStructureFn(ctx, url, markdown)
}
