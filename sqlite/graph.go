package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/fwojciec/docgraph"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docgraph.GraphStore = (*GraphService)(nil)

// GraphService implements docgraph.GraphStore using SQLite.
//
// SaveGraph replaces the stored graph for a framework inside one
// transaction, so a reader sees either the previous graph or the new one,
// never a mixture.
type GraphService struct {
	db *DB
}

// NewGraphService creates a new GraphService.
func NewGraphService(db *DB) *GraphService {
	return &GraphService{db: db}
}

// SaveGraph stores the graph, replacing any previously stored graph for the
// same framework.
func (s *GraphService) SaveGraph(ctx context.Context, graph *docgraph.KnowledgeGraph) error {
	if err := graph.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	// Cascades to graph_nodes and graph_edges.
	if _, err := tx.ExecContext(ctx, "DELETE FROM graphs WHERE framework = ?", graph.Framework); err != nil {
		return fmt.Errorf("replace graph: %w", err)
	}

	id := uuid.New().String()
	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO graphs (id, framework, base_url, updated_at)
		VALUES (?, ?, ?, ?)
	`, id, graph.Framework, graph.BaseURL, now); err != nil {
		return fmt.Errorf("insert graph: %w", err)
	}

	// Nodes are stored in a stable order so repeated saves of the same
	// graph produce identical rows.
	urls := make([]string, 0, len(graph.Nodes))
	for url := range graph.Nodes {
		urls = append(urls, url)
	}
	sort.Strings(urls)

	for _, url := range urls {
		node := graph.Nodes[url]
		concepts, err := json.Marshal(node.Concepts)
		if err != nil {
			return fmt.Errorf("encode concepts for %s: %w", url, err)
		}
		apiSurface, err := json.Marshal(node.APISurface)
		if err != nil {
			return fmt.Errorf("encode api surface for %s: %w", url, err)
		}
		codeSamples, err := json.Marshal(node.CodeSamples)
		if err != nil {
			return fmt.Errorf("encode code samples for %s: %w", url, err)
		}
		dependencies, err := json.Marshal(node.Dependencies)
		if err != nil {
			return fmt.Errorf("encode dependencies for %s: %w", url, err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO graph_nodes (graph_id, url, title, concepts, api_surface, code_samples, dependencies, depth)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, id, node.URL, node.Title, string(concepts), string(apiSurface),
			string(codeSamples), string(dependencies), node.Depth); err != nil {
			return fmt.Errorf("insert node %s: %w", url, err)
		}
	}

	// Edge order and multiplicity are part of the graph; position keeps
	// both across the round trip.
	for i, edge := range graph.Relationships {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO graph_edges (graph_id, position, from_url, to_url, relation)
			VALUES (?, ?, ?, ?, ?)
		`, id, i, edge.From, edge.To, edge.Type); err != nil {
			return fmt.Errorf("insert edge %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// LoadGraph returns the stored graph for a framework.
// Returns ENOTFOUND if no graph has been stored under that name.
func (s *GraphService) LoadGraph(ctx context.Context, framework string) (*docgraph.KnowledgeGraph, error) {
	var id, baseURL string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, base_url FROM graphs WHERE framework = ?
	`, framework).Scan(&id, &baseURL)
	if err == sql.ErrNoRows {
		return nil, docgraph.Errorf(docgraph.ENOTFOUND, "no graph stored for framework %q", framework)
	}
	if err != nil {
		return nil, err
	}

	graph := docgraph.NewKnowledgeGraph(framework, baseURL)

	rows, err := s.db.QueryContext(ctx, `
		SELECT url, title, concepts, api_surface, code_samples, dependencies, depth
		FROM graph_nodes
		WHERE graph_id = ?
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var node docgraph.GraphNode
		var concepts, apiSurface, codeSamples, dependencies string
		if err := rows.Scan(&node.URL, &node.Title, &concepts, &apiSurface,
			&codeSamples, &dependencies, &node.Depth); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(concepts), &node.Concepts); err != nil {
			return nil, fmt.Errorf("decode concepts for %s: %w", node.URL, err)
		}
		if err := json.Unmarshal([]byte(apiSurface), &node.APISurface); err != nil {
			return nil, fmt.Errorf("decode api surface for %s: %w", node.URL, err)
		}
		if err := json.Unmarshal([]byte(codeSamples), &node.CodeSamples); err != nil {
			return nil, fmt.Errorf("decode code samples for %s: %w", node.URL, err)
		}
		if err := json.Unmarshal([]byte(dependencies), &node.Dependencies); err != nil {
			return nil, fmt.Errorf("decode dependencies for %s: %w", node.URL, err)
		}
		graph.Nodes[node.URL] = &node
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	edgeRows, err := s.db.QueryContext(ctx, `
		SELECT from_url, to_url, relation
		FROM graph_edges
		WHERE graph_id = ?
		ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer edgeRows.Close()

	for edgeRows.Next() {
		var edge docgraph.GraphEdge
		if err := edgeRows.Scan(&edge.From, &edge.To, &edge.Type); err != nil {
			return nil, err
		}
		graph.Relationships = append(graph.Relationships, edge)
	}

	return graph, edgeRows.Err()
}

// DeleteGraph removes a stored graph and all its nodes and edges.
func (s *GraphService) DeleteGraph(ctx context.Context, framework string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM graphs WHERE framework = ?", framework)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return docgraph.Errorf(docgraph.ENOTFOUND, "no graph stored for framework %q", framework)
	}
	return nil
}

// ListGraphs returns summaries of all stored graphs, ordered by framework name.
func (s *GraphService) ListGraphs(ctx context.Context) ([]*docgraph.GraphSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.framework, g.base_url, g.updated_at,
			(SELECT COUNT(*) FROM graph_nodes n WHERE n.graph_id = g.id),
			(SELECT COUNT(*) FROM graph_edges e WHERE e.graph_id = g.id)
		FROM graphs g
		ORDER BY g.framework ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*docgraph.GraphSummary
	for rows.Next() {
		var s docgraph.GraphSummary
		if err := rows.Scan(&s.Framework, &s.BaseURL, &s.UpdatedAt, &s.NodeCount, &s.EdgeCount); err != nil {
			return nil, err
		}
		summaries = append(summaries, &s)
	}

	return summaries, rows.Err()
}
