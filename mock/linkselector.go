package mock

import "github.com/fwojciec/docgraph"

var _ docgraph.LinkSelector = (*LinkSelector)(nil)

// LinkSelector is a mock implementation of docgraph.LinkSelector.
type LinkSelector struct {
	ExtractLinksFn func(html string, baseURL string) ([]string, error)
}

func (s *LinkSelector) ExtractLinks(html string, baseURL string) ([]string, error) {
	return s.ExtractLinksFn(html, baseURL)
}
