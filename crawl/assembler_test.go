package crawl_test

import (
	"testing"

	"github.com/fwojciec/docgraph"
	"github.com/fwojciec/docgraph/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func successResult(url, title string) *docgraph.PageResult {
	return &docgraph.PageResult{
		URL:       url,
		Mode:      docgraph.ModeStructured,
		Title:     title,
		Succeeded: true,
		Structure: &docgraph.PageStructure{
			Title:    title,
			Concepts: []string{"concept"},
		},
	}
}

func TestAssembler_RecordNode_success(t *testing.T) {
	t.Parallel()

	asm := crawl.NewAssembler("react", "https://react.dev/learn")
	entry := crawl.Entry{URL: "https://react.dev/learn", Depth: 0}

	asm.RecordNode(entry, successResult(entry.URL, "Quick Start"))
	graph := asm.Finalize()

	require.Len(t, graph.Nodes, 1)
	node := graph.Nodes[entry.URL]
	require.NotNil(t, node)
	assert.Equal(t, "Quick Start", node.Title)
	assert.Equal(t, []string{"concept"}, node.Concepts)
	assert.Equal(t, 0, node.Depth)
}

func TestAssembler_RecordNode_ignores_failures(t *testing.T) {
	t.Parallel()

	asm := crawl.NewAssembler("react", "https://react.dev/learn")

	asm.RecordNode(crawl.Entry{URL: "https://react.dev/broken", Depth: 1}, &docgraph.PageResult{
		URL:   "https://react.dev/broken",
		Error: "HTTP 500",
	})
	asm.RecordNode(crawl.Entry{URL: "https://react.dev/nil", Depth: 1}, nil)

	graph := asm.Finalize()
	assert.Empty(t, graph.Nodes)
}

func TestAssembler_RecordNode_first_write_wins(t *testing.T) {
	t.Parallel()

	asm := crawl.NewAssembler("react", "https://react.dev/learn")
	entry := crawl.Entry{URL: "https://react.dev/learn", Depth: 0}

	asm.RecordNode(entry, successResult(entry.URL, "First"))
	asm.RecordNode(entry, successResult(entry.URL, "Second"))

	graph := asm.Finalize()
	require.Len(t, graph.Nodes, 1)
	assert.Equal(t, "First", graph.Nodes[entry.URL].Title)
}

func TestAssembler_RecordEdge_appends_in_order_and_allows_duplicates(t *testing.T) {
	t.Parallel()

	asm := crawl.NewAssembler("react", "https://react.dev/learn")

	asm.RecordEdge("https://react.dev/learn", "https://react.dev/learn/a")
	asm.RecordEdge("https://react.dev/learn", "https://react.dev/learn/b")
	asm.RecordEdge("https://react.dev/learn", "https://react.dev/learn/a")

	graph := asm.Finalize()
	require.Len(t, graph.Relationships, 3)
	assert.Equal(t, "https://react.dev/learn/a", graph.Relationships[0].To)
	assert.Equal(t, "https://react.dev/learn/b", graph.Relationships[1].To)
	assert.Equal(t, "https://react.dev/learn/a", graph.Relationships[2].To)
	for _, edge := range graph.Relationships {
		assert.Equal(t, docgraph.RelationReferences, edge.Type)
	}
}

func TestAssembler_Finalize_seals_the_graph(t *testing.T) {
	t.Parallel()

	asm := crawl.NewAssembler("react", "https://react.dev/learn")
	graph := asm.Finalize()

	asm.RecordNode(crawl.Entry{URL: "https://react.dev/late", Depth: 0},
		successResult("https://react.dev/late", "Late"))
	asm.RecordEdge("https://react.dev/late", "https://react.dev/later")

	assert.Empty(t, graph.Nodes)
	assert.Empty(t, graph.Relationships)
}

func TestAssembler_empty_graph_shape(t *testing.T) {
	t.Parallel()

	graph := crawl.NewAssembler("react", "https://react.dev/learn").Finalize()

	assert.Equal(t, "react", graph.Framework)
	assert.Equal(t, "https://react.dev/learn", graph.BaseURL)
	assert.NotNil(t, graph.Nodes)
	assert.NotNil(t, graph.Relationships)
}
