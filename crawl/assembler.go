package crawl

import (
	"github.com/fwojciec/docgraph"
)

// Assembler folds page results into a knowledge graph. Nodes are recorded
// for successful fetches only; edges are recorded at link discovery time,
// so an edge may point at a URL that never becomes a node.
//
// The assembler is not safe for concurrent use: the traverser folds
// results from one goroutine, in frontier order, which is what makes
// graph assembly deterministic.
type Assembler struct {
	graph *docgraph.KnowledgeGraph
	done  bool
}

// NewAssembler returns an assembler building an empty graph for framework
// rooted at baseURL.
func NewAssembler(framework, baseURL string) *Assembler {
	return &Assembler{
		graph: docgraph.NewKnowledgeGraph(framework, baseURL),
	}
}

// RecordNode adds a node for a successfully fetched page. Failed results
// and nil results are ignored. If a node already exists for the URL the
// first one wins; the frontier's claim semantics make a second call for
// the same URL a caller bug rather than a crawl condition.
func (a *Assembler) RecordNode(entry Entry, res *docgraph.PageResult) {
	if a.done || res == nil || !res.Succeeded {
		return
	}
	if _, exists := a.graph.Nodes[entry.URL]; exists {
		return
	}

	node := &docgraph.GraphNode{
		URL:   entry.URL,
		Title: res.Title,
		Depth: entry.Depth,
	}
	if s := res.Structure; s != nil {
		node.Concepts = s.Concepts
		node.APISurface = s.APISurface
		node.CodeSamples = s.CodeSamples
		node.Dependencies = s.Dependencies
	}
	a.graph.Nodes[entry.URL] = node
}

// RecordEdge appends a reference relationship from one URL to another.
// Edges are append-only and duplicates are allowed: a page that links to
// the same target twice references it twice.
func (a *Assembler) RecordEdge(from, to string) {
	if a.done {
		return
	}
	a.graph.Relationships = append(a.graph.Relationships, docgraph.GraphEdge{
		From: from,
		To:   to,
		Type: docgraph.RelationReferences,
	})
}

// Finalize returns the assembled graph and seals the assembler; further
// Record calls are no-ops.
func (a *Assembler) Finalize() *docgraph.KnowledgeGraph {
	a.done = true
	return a.graph
}
