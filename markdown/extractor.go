// Package markdown provides a heuristic structured extractor that works
// without a language model, deriving a page's structure from its markdown:
// headings become concepts, fenced code blocks become code samples, and
// install commands become dependencies. It is the fallback when no LLM
// backend is configured.
package markdown

import (
	"context"
	"strings"

	"github.com/fwojciec/docgraph"
)

// Heading depth treated as a concept. Deeper headings are usually
// sub-points of the same concept rather than concepts of their own.
const maxConceptLevel = 3

// installPrefixes identify shell commands that declare dependencies.
var installPrefixes = []string{
	"pip install",
	"pip3 install",
	"npm install",
	"npm i ",
	"yarn add",
	"pnpm add",
	"go get",
	"cargo add",
	"gem install",
	"uv add",
	"uv pip install",
	"poetry add",
	"brew install",
	"apt install",
	"apt-get install",
}

// Ensure StructuredExtractor implements docgraph.StructuredExtractor at compile time.
var _ docgraph.StructuredExtractor = (*StructuredExtractor)(nil)

// StructuredExtractor derives a PageStructure from markdown using
// heuristics alone.
type StructuredExtractor struct{}

// NewStructuredExtractor creates a new StructuredExtractor.
func NewStructuredExtractor() *StructuredExtractor {
	return &StructuredExtractor{}
}

// ExtractStructure extracts structured knowledge from a page's markdown.
func (e *StructuredExtractor) ExtractStructure(_ context.Context, url, markdown string) (*docgraph.PageStructure, error) {
	if url == "" {
		return nil, docgraph.Errorf(docgraph.EINVALID, "page URL required")
	}
	if markdown == "" {
		return nil, docgraph.Errorf(docgraph.EINVALID, "page content required")
	}

	sections := docgraph.ExtractSections(markdown)
	blocks := docgraph.ExtractCodeBlocks(markdown)

	structure := &docgraph.PageStructure{
		Title:        pageTitle(sections),
		Concepts:     []string{},
		APISurface:   []docgraph.APIEntry{},
		CodeSamples:  []string{},
		Dependencies: []string{},
	}

	seenConcepts := make(map[string]bool)
	for _, s := range sections {
		if s.Level == 1 {
			continue // the page title is not a concept
		}
		if s.Level > maxConceptLevel {
			continue
		}
		if entry, ok := apiEntry(s.Title); ok {
			structure.APISurface = append(structure.APISurface, entry)
			continue
		}
		if !seenConcepts[s.Title] {
			seenConcepts[s.Title] = true
			structure.Concepts = append(structure.Concepts, s.Title)
		}
	}

	seenDeps := make(map[string]bool)
	for _, b := range blocks {
		code := strings.TrimSpace(b.Code)
		if code == "" {
			continue
		}
		if deps := installCommands(code); len(deps) > 0 {
			for _, dep := range deps {
				if !seenDeps[dep] {
					seenDeps[dep] = true
					structure.Dependencies = append(structure.Dependencies, dep)
				}
			}
			continue
		}
		structure.CodeSamples = append(structure.CodeSamples, code)
	}

	return structure, nil
}

// pageTitle returns the first H1, or an empty string when the page has none.
func pageTitle(sections []docgraph.Section) string {
	for _, s := range sections {
		if s.Level == 1 {
			return s.Title
		}
	}
	return ""
}

// apiEntry reports whether a heading names an API element rather than a
// prose topic. Call signatures ("FastAPI()"), dotted or double-colon paths
// ("app.get", "Router::new"), and backtick-quoted identifiers all qualify.
func apiEntry(title string) (docgraph.APIEntry, bool) {
	name := strings.Trim(title, "`")
	quoted := name != title

	signature := strings.Contains(name, "(") && strings.Contains(name, ")")
	pathlike := !strings.Contains(name, " ") &&
		(strings.Contains(name, ".") || strings.Contains(name, "::"))

	if quoted || signature || pathlike {
		return docgraph.APIEntry{Name: name}, true
	}
	return docgraph.APIEntry{}, false
}

// installCommands returns the dependency-declaring commands in a code
// block, one per line. A block mixing install commands with other lines is
// treated as a shell transcript and only the install lines are kept.
func installCommands(code string) []string {
	var cmds []string
	for _, line := range strings.Split(code, "\n") {
		cmd := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "$"))
		cmd = strings.TrimSpace(cmd)
		for _, prefix := range installPrefixes {
			if strings.HasPrefix(cmd, prefix) {
				cmds = append(cmds, cmd)
				break
			}
		}
	}
	return cmds
}
