// Package goquery provides a CSS-selector based implementation of
// docgraph.LinkSelector.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docgraph"
)

// Ensure Selector implements docgraph.LinkSelector at compile time.
var _ docgraph.LinkSelector = (*Selector)(nil)

// Selector extracts anchor links from HTML documents. It returns every
// http(s) link in document order, resolved to an absolute URL, with
// repeated targets preserved: callers that record reference edges care
// about each occurrence, and callers that only want distinct URLs can
// deduplicate themselves. Scoping decisions (same host, path prefix,
// patterns) belong to docgraph.LinkFilter, not here.
type Selector struct{}

// NewSelector creates a new Selector.
func NewSelector() *Selector {
	return &Selector{}
}

// ExtractLinks parses HTML and returns the page's outbound links resolved
// against baseURL. Self-referential links (anchor-only, or the page linking
// to itself) and non-HTTP schemes (javascript:, mailto:, tel:, data:) are
// skipped.
func (s *Selector) ExtractLinks(html string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, docgraph.Errorf(docgraph.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docgraph.Errorf(docgraph.EINVALID, "failed to parse HTML: %v", err)
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		if isNonHTTPLink(href) {
			return
		}
		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		links = append(links, resolved)
	})

	return links, nil
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed, if the resolved URL is
// not http(s), or if it is self-referential (same page after stripping the
// fragment). Fragments on other pages are kept: they identify a section of
// the target and are preserved in edge records.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}

	noFragment := *resolved
	noFragment.Fragment = ""
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if noFragment.String() == baseNoFragment.String() {
		return ""
	}
	return resolved.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
