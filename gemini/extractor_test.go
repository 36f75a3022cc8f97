package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docgraph"
	"github.com/fwojciec/docgraph/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredExtractor_ReturnsErrorWhenURLEmpty(t *testing.T) {
	t.Parallel()

	extractor := gemini.NewStructuredExtractor(nil) // nil client ok for this test

	_, err := extractor.ExtractStructure(context.Background(), "", "# Docs")

	require.Error(t, err)
	assert.Equal(t, docgraph.EINVALID, docgraph.ErrorCode(err))
	assert.Contains(t, docgraph.ErrorMessage(err), "URL required")
}

func TestStructuredExtractor_ReturnsErrorWhenContentEmpty(t *testing.T) {
	t.Parallel()

	extractor := gemini.NewStructuredExtractor(nil)

	_, err := extractor.ExtractStructure(context.Background(), "https://ex.org/docs", "")

	require.Error(t, err)
	assert.Equal(t, docgraph.EINVALID, docgraph.ErrorCode(err))
	assert.Contains(t, docgraph.ErrorMessage(err), "content required")
}

func TestBuildExtractionConfig_ConstrainsResponseToJSON(t *testing.T) {
	t.Parallel()

	config := gemini.BuildExtractionConfig()

	assert.Equal(t, "application/json", config.ResponseMIMEType)
	require.NotNil(t, config.ResponseSchema)
	assert.Contains(t, config.ResponseSchema.Properties, "title")
	assert.Contains(t, config.ResponseSchema.Properties, "concepts")
	assert.Contains(t, config.ResponseSchema.Properties, "api_surface")
	assert.Contains(t, config.ResponseSchema.Properties, "code_samples")
	assert.Contains(t, config.ResponseSchema.Properties, "dependencies")
}

func TestBuildExtractionConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildExtractionConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "documentation analyst")
}

func TestBuildExtractionPrompt_ContainsPageContent(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildExtractionPrompt("https://ex.org/docs", "# Getting Started\n\npip install fastapi")

	assert.Contains(t, prompt, "<source>https://ex.org/docs</source>")
	assert.Contains(t, prompt, "# Getting Started")
	assert.Contains(t, prompt, "pip install fastapi")
}

func TestBuildExtractionPrompt_DoesNotContainSystemInstruction(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildExtractionPrompt("https://ex.org/docs", "content")

	assert.NotContains(t, prompt, "documentation analyst")
}
