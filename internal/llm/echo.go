package llm

import (
	"context"
	"fmt"
)

// EchoProvider is a canned Provider for local development runs. It returns a
// fixed markdown response embedding the user prompt instead of calling out.
type EchoProvider struct{}

func NewEchoProvider() *EchoProvider {
	return &EchoProvider{}
}

func (e *EchoProvider) Generate(ctx context.Context, systemPrompt, userPrompt string, opts Options) (string, error) {
	return fmt.Sprintf("# Generated Content\n\nThis is a locally generated placeholder response.\n\n**Request:** %s\n", userPrompt), nil
}
