package docgraph

import (
	"net/url"
	"strings"
)

// DefaultLinkPatterns returns the substring patterns applied when a
// traversal does not specify its own. They narrow crawling to pages that
// typically carry documentation content rather than marketing shells.
func DefaultLinkPatterns() []string {
	return []string{"/api/", "/guide/", "/docs/", "/reference/", "/tutorial/"}
}

// LinkFilter decides whether a discovered URL is eligible for traversal.
//
// A link is eligible when it stays under the base URL (same scheme and
// host, path prefix; query and fragment are ignored for scoping) and at
// least one pattern occurs in the link as a plain substring. The base URL
// itself is always eligible regardless of patterns, so a traversal root
// like https://example.org/docs is never excluded by a pattern set that
// only matches deeper paths.
type LinkFilter struct {
	normBase string
	patterns []string
}

// NewLinkFilter builds a filter scoped to baseURL.
// An empty patterns slice falls back to DefaultLinkPatterns.
// Returns EINVALID if baseURL is not an absolute http(s) URL.
func NewLinkFilter(baseURL string, patterns []string) (*LinkFilter, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid base URL %q: %v", baseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, Errorf(EINVALID, "base URL must be absolute http(s): %q", baseURL)
	}
	if len(patterns) == 0 {
		patterns = DefaultLinkPatterns()
	}
	return &LinkFilter{
		normBase: normalizeURL(u),
		patterns: patterns,
	}, nil
}

// Eligible reports whether link may be fetched by a traversal scoped to
// the filter's base URL. Unparseable links are ineligible.
func (f *LinkFilter) Eligible(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	norm := normalizeURL(u)
	if norm == f.normBase {
		return true
	}
	if !strings.HasPrefix(norm, f.normBase) {
		return false
	}
	for _, p := range f.patterns {
		if strings.Contains(link, p) {
			return true
		}
	}
	return false
}

// normalizeURL reduces a URL to its scheme, host, and path. Query and
// fragment never affect traversal scope; two links differing only in query
// or fragment normalize identically.
func normalizeURL(u *url.URL) string {
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host) + u.EscapedPath()
}
