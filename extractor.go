package docgraph

import "context"

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// The title comes from page metadata (meta tags, JSON+LD, etc.).
	// The content HTML has boilerplate removed but preserves structure.
	Extract(html string) (*ExtractResult, error)
}

// StructuredExtractor derives structured knowledge from a page's markdown.
type StructuredExtractor interface {
	// ExtractStructure analyzes markdown content and returns the page's
	// title, concepts, API surface, code samples, and dependencies.
	// The url identifies the page for context; it is not fetched.
	ExtractStructure(ctx context.Context, url, markdown string) (*PageStructure, error)
}
