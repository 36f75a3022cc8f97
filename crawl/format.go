package crawl

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ContentHash returns a hex-encoded xxhash of the content. It identifies
// page content across refreshes without storing the content itself.
func ContentHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		// Too short for "..." prefix, just return dots
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatTokens formats a token count in human-readable form.
func FormatTokens(tokens int) string {
	switch {
	case tokens >= 1_000_000:
		return fmt.Sprintf("%.1fM tokens", float64(tokens)/1_000_000)
	case tokens >= 1_000:
		return fmt.Sprintf("%.1fk tokens", float64(tokens)/1_000)
	default:
		return fmt.Sprintf("%d tokens", tokens)
	}
}
