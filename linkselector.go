package docgraph

// LinkSelector extracts outbound links from HTML.
type LinkSelector interface {
	// ExtractLinks parses HTML and returns the page's outbound links in
	// document order, resolved to absolute URLs against baseURL.
	// Repeated targets are preserved: repetition in the source matters to
	// callers that record reference edges. Non-HTTP links (mailto:,
	// javascript:, tel:) are skipped.
	ExtractLinks(html string, baseURL string) ([]string, error)
}
