package mock

import "github.com/fwojciec/docgraph"

var _ docgraph.Converter = (*Converter)(nil)

// Converter is a mock implementation of docgraph.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
