package docgraph

import (
	"context"
	"time"
)

// ExtractMode selects what a page fetch returns.
type ExtractMode string

// Extraction modes.
const (
	// ModeMarkdown returns the page's main content converted to markdown.
	ModeMarkdown ExtractMode = "markdown"

	// ModeStructured returns structured knowledge extracted from the
	// page: title, concepts, API surface, code samples, dependencies.
	ModeStructured ExtractMode = "structured"

	// ModeLinks returns only the page's outbound links.
	ModeLinks ExtractMode = "links"
)

// Valid reports whether m is a known extraction mode.
func (m ExtractMode) Valid() bool {
	switch m {
	case ModeMarkdown, ModeStructured, ModeLinks:
		return true
	}
	return false
}

// PageStructure is the structured knowledge extracted from one page.
type PageStructure struct {
	Title        string     `json:"title"`
	Concepts     []string   `json:"concepts"`
	APISurface   []APIEntry `json:"api_surface"`
	CodeSamples  []string   `json:"code_samples"`
	Dependencies []string   `json:"dependencies"`
}

// PageMeta carries fetch metadata alongside a page result.
type PageMeta struct {
	FetchedAt   time.Time `json:"fetched_at"`
	ContentHash string    `json:"content_hash,omitempty"`
	WordCount   int       `json:"word_count,omitempty"`
	Outline     []Section `json:"outline,omitempty"`
}

// PageResult is the normalized outcome of fetching one page.
// Exactly one of Content, Structure, or Links is populated according to
// Mode. A failed fetch is a result with Succeeded false and Error set,
// never a Go error, so a single bad page cannot abort a traversal.
type PageResult struct {
	URL       string         `json:"url"`
	Mode      ExtractMode    `json:"mode"`
	Title     string         `json:"title,omitempty"`
	Content   string         `json:"content,omitempty"` // Markdown
	Structure *PageStructure `json:"structure,omitempty"`
	Links     []string       `json:"links,omitempty"`
	Meta      PageMeta       `json:"metadata"`
	Succeeded bool           `json:"success"`
	Error     string         `json:"error,omitempty"`
}

// PageService fetches a single page in a requested extraction mode.
// Implementations resolve relative links to absolute URLs before returning
// them, and report per-page failures in the result rather than as an error.
// The error return is reserved for cancellation and invalid requests.
type PageService interface {
	FetchPage(ctx context.Context, url string, mode ExtractMode) (*PageResult, error)
}

// CrawlProgress reports traversal progress as pages complete.
type CrawlProgress struct {
	URL       string
	Depth     int
	Completed int // pages processed so far
	Pending   int // frontier entries awaiting processing
	Err       error
}

// CrawlProgressFunc is called as pages are processed during a traversal.
type CrawlProgressFunc func(CrawlProgress)
