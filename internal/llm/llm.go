// Package llm abstracts the external completion API behind a single
// provider interface so the generation handlers do not depend on any one
// client library.
package llm

import "context"

// Options selects the model and sampling parameters for one completion.
type Options struct {
	Model       string
	MaxTokens   int64
	Temperature float64
}

// Provider issues one synchronous, non-streaming completion from a system
// and user message pair.
type Provider interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string, opts Options) (string, error)
}
