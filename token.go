package docgraph

import "context"

// TokenCounter counts tokens in text for a specific model.
// Traversals use it to report how much of a model's context window a
// serialized graph will occupy.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
