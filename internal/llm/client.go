// Package llm wraps the chat completion providers used as an alternative
// property-ranking backend.
package llm

import (
	"context"
)

// LLMClient returns the model's text reply to a single user prompt.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
