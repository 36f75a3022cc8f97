//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fwojciec/docgraph/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestStructuredExtractor_Integration_ExtractsStructure(t *testing.T) {
	t.Parallel()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	require.NoError(t, err)

	extractor := gemini.NewStructuredExtractor(client)

	markdown := "# FastAPI\n\n" +
		"FastAPI is a modern web framework for building APIs with Python.\n\n" +
		"## Installation\n\n" +
		"```\npip install fastapi\n```\n\n" +
		"## First Steps\n\n" +
		"Create an application with `FastAPI()`:\n\n" +
		"```python\nfrom fastapi import FastAPI\napp = FastAPI()\n```\n"

	structure, err := extractor.ExtractStructure(ctx, "https://fastapi.tiangolo.com/", markdown)

	require.NoError(t, err)
	assert.NotEmpty(t, structure.Title)
	assert.NotEmpty(t, structure.Concepts)
	assert.NotEmpty(t, structure.CodeSamples)
}
