package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fwojciec/docgraph"
	main "github.com/fwojciec/docgraph/cmd/docgraph"
	"github.com/fwojciec/docgraph/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedGraph() *docgraph.KnowledgeGraph {
	g := docgraph.NewKnowledgeGraph("fastapi", "https://fastapi.tiangolo.com/")
	g.Nodes["https://fastapi.tiangolo.com/"] = &docgraph.GraphNode{
		URL:      "https://fastapi.tiangolo.com/",
		Title:    "FastAPI",
		Concepts: []string{"ASGI"},
	}
	return g
}

func TestGraphCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints the stored graph as JSON", func(t *testing.T) {
		t.Parallel()

		graphs := &mock.GraphStore{
			LoadGraphFn: func(_ context.Context, framework string) (*docgraph.KnowledgeGraph, error) {
				return storedGraph(), nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Graphs: graphs,
		}

		cmd := &main.GraphCmd{Framework: "fastapi"}

		err := cmd.Run(deps)

		require.NoError(t, err)

		var got docgraph.KnowledgeGraph
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		assert.Equal(t, "fastapi", got.Framework)
		assert.Len(t, got.Nodes, 1)
	})

	t.Run("unknown framework yields an empty graph", func(t *testing.T) {
		t.Parallel()

		graphs := &mock.GraphStore{
			LoadGraphFn: func(_ context.Context, framework string) (*docgraph.KnowledgeGraph, error) {
				return nil, docgraph.Errorf(docgraph.ENOTFOUND, "no graph stored for framework %q", framework)
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Graphs: graphs,
		}

		cmd := &main.GraphCmd{Framework: "unknown"}

		err := cmd.Run(deps)

		require.NoError(t, err)

		var got docgraph.KnowledgeGraph
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		assert.Equal(t, "unknown", got.Framework)
		assert.Empty(t, got.Nodes)
		assert.Empty(t, got.Relationships)
	})

	t.Run("renders LLM context with --context", func(t *testing.T) {
		t.Parallel()

		graphs := &mock.GraphStore{
			LoadGraphFn: func(_ context.Context, framework string) (*docgraph.KnowledgeGraph, error) {
				return storedGraph(), nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Graphs: graphs,
		}

		cmd := &main.GraphCmd{Framework: "fastapi", Context: true}

		err := cmd.Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "# fastapi knowledge graph")
		assert.Contains(t, output, "## FastAPI")
	})

	t.Run("propagates store failures", func(t *testing.T) {
		t.Parallel()

		graphs := &mock.GraphStore{
			LoadGraphFn: func(_ context.Context, framework string) (*docgraph.KnowledgeGraph, error) {
				return nil, docgraph.Errorf(docgraph.EINTERNAL, "database corrupt")
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Graphs: graphs,
		}

		cmd := &main.GraphCmd{Framework: "fastapi"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "database corrupt")
	})
}
