package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/docgraph"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure StructuredExtractor implements docgraph.StructuredExtractor at compile time.
var _ docgraph.StructuredExtractor = (*StructuredExtractor)(nil)

// StructuredExtractor implements docgraph.StructuredExtractor using Google
// Gemini with a JSON response schema, so the model's output parses directly
// into a docgraph.PageStructure.
type StructuredExtractor struct {
	client *genai.Client
}

// NewStructuredExtractor creates a new StructuredExtractor.
func NewStructuredExtractor(client *genai.Client) *StructuredExtractor {
	return &StructuredExtractor{client: client}
}

// ExtractStructure extracts structured knowledge from a documentation page's
// markdown content.
func (e *StructuredExtractor) ExtractStructure(ctx context.Context, url, markdown string) (*docgraph.PageStructure, error) {
	if url == "" {
		return nil, docgraph.Errorf(docgraph.EINVALID, "page URL required")
	}
	if markdown == "" {
		return nil, docgraph.Errorf(docgraph.EINVALID, "page content required")
	}

	prompt := BuildExtractionPrompt(url, markdown)
	config := BuildExtractionConfig()

	result, err := e.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, docgraph.Errorf(docgraph.EINTERNAL, "gemini returned nil result")
	}

	var structure docgraph.PageStructure
	if err := json.Unmarshal([]byte(result.Text()), &structure); err != nil {
		return nil, docgraph.Errorf(docgraph.EINTERNAL, "gemini returned malformed structure: %s", err)
	}
	return &structure, nil
}

// BuildExtractionConfig returns the GenerateContentConfig for structured
// extraction calls. The response schema constrains the model to valid
// PageStructure JSON.
func BuildExtractionConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a documentation analyst. Extract structured knowledge from the documentation page provided. Report only what the page actually documents; do not invent entries.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title": {
					Type:        genai.TypeString,
					Description: "The page's title.",
				},
				"concepts": {
					Type:        genai.TypeArray,
					Description: "Key concepts the page explains.",
					Items:       &genai.Schema{Type: genai.TypeString},
				},
				"api_surface": {
					Type:        genai.TypeArray,
					Description: "Functions, classes, methods, or options the page documents.",
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"name":        {Type: genai.TypeString},
							"description": {Type: genai.TypeString},
						},
						Required: []string{"name"},
					},
				},
				"code_samples": {
					Type:        genai.TypeArray,
					Description: "Code examples shown on the page, verbatim.",
					Items:       &genai.Schema{Type: genai.TypeString},
				},
				"dependencies": {
					Type:        genai.TypeArray,
					Description: "Installation or dependency requirements the page mentions.",
					Items:       &genai.Schema{Type: genai.TypeString},
				},
			},
			Required: []string{"title", "concepts", "api_surface", "code_samples", "dependencies"},
		},
	}
}

// BuildExtractionPrompt builds the user prompt containing the page content.
func BuildExtractionPrompt(url, markdown string) string {
	var sb strings.Builder
	sb.WriteString("<page>\n")
	fmt.Fprintf(&sb, "<source>%s</source>\n", url)
	fmt.Fprintf(&sb, "<content>%s</content>\n", markdown)
	sb.WriteString("</page>\n\n")
	sb.WriteString("Extract the structured knowledge from this documentation page.")
	return sb.String()
}
