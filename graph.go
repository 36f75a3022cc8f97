package docgraph

import "context"

// RelationReferences is the relationship type recorded by a traversal:
// the source page's content links to the target URL.
const RelationReferences = "references"

// APIEntry describes one element of a page's documented API surface,
// such as a function, method, class, or configuration option.
type APIEntry struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// GraphNode is one successfully fetched page in a knowledge graph.
// A node is created at most once per distinct URL within a traversal and
// is never mutated afterwards.
type GraphNode struct {
	URL          string     `json:"url"`
	Title        string     `json:"title"`
	Concepts     []string   `json:"concepts,omitempty"`
	APISurface   []APIEntry `json:"api_surface,omitempty"`
	CodeSamples  []string   `json:"code_samples,omitempty"`
	Dependencies []string   `json:"dependencies,omitempty"`

	// Depth is the link distance from the traversal root. The root is 0.
	Depth int `json:"depth"`
}

// GraphEdge records that the page at From references the URL at To.
// To may have no corresponding node: the target can lie beyond the page
// bound, or its fetch may have failed.
type GraphEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"`
}

// KnowledgeGraph is the artifact of one traversal: the pages visited,
// keyed by URL, and the reference relationships discovered between them.
type KnowledgeGraph struct {
	Framework     string                `json:"framework"`
	BaseURL       string                `json:"base_url"`
	Nodes         map[string]*GraphNode `json:"nodes"`
	Relationships []GraphEdge           `json:"relationships"`
}

// NewKnowledgeGraph returns an empty graph for a framework rooted at baseURL.
func NewKnowledgeGraph(framework, baseURL string) *KnowledgeGraph {
	return &KnowledgeGraph{
		Framework:     framework,
		BaseURL:       baseURL,
		Nodes:         make(map[string]*GraphNode),
		Relationships: []GraphEdge{},
	}
}

// Validate returns an error if the graph is missing required fields.
func (g *KnowledgeGraph) Validate() error {
	if g.Framework == "" {
		return Errorf(EINVALID, "framework name is required")
	}
	if g.BaseURL == "" {
		return Errorf(EINVALID, "base URL is required")
	}
	return nil
}

// GraphStore persists knowledge graphs across process restarts.
type GraphStore interface {
	// SaveGraph stores the graph, replacing any previously stored graph
	// for the same framework. Replacement is atomic: a concurrent reader
	// sees either the old graph or the new one, never a mixture.
	SaveGraph(ctx context.Context, graph *KnowledgeGraph) error

	// LoadGraph returns the stored graph for a framework.
	// Returns ENOTFOUND if no graph has been stored under that name.
	LoadGraph(ctx context.Context, framework string) (*KnowledgeGraph, error)

	// DeleteGraph removes a stored graph and all its nodes and edges.
	// Returns ENOTFOUND if no graph has been stored under that name.
	DeleteGraph(ctx context.Context, framework string) error

	// ListGraphs returns summaries of all stored graphs, ordered by
	// framework name.
	ListGraphs(ctx context.Context) ([]*GraphSummary, error)
}

// GraphSummary describes a stored graph without loading its contents.
type GraphSummary struct {
	Framework string `json:"framework"`
	BaseURL   string `json:"base_url"`
	NodeCount int    `json:"node_count"`
	EdgeCount int    `json:"edge_count"`
	UpdatedAt string `json:"updated_at"`
}

// GraphWriter exports a knowledge graph outside the store, e.g. to a file.
type GraphWriter interface {
	WriteGraph(ctx context.Context, graph *KnowledgeGraph) error
}
