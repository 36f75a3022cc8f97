package readability

import (
	"strings"

	"github.com/fwojciec/docgraph"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements docgraph.Extractor at compile time.
var _ docgraph.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*docgraph.ExtractResult, error) {
	if rawHTML == "" {
		return nil, docgraph.Errorf(docgraph.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &docgraph.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
