package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	// DefaultBaseURL is Groq's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	// DefaultModel matches the model the frontend was built against.
	DefaultModel = "llama-3.3-70b-versatile"

	requestTimeout = 50 * time.Second
)

// GroqClient implements Provider against Groq's chat completion API.
type GroqClient struct {
	client openai.Client
	model  string
}

func NewGroqClient(apiKey, baseURL, model string) *GroqClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &GroqClient{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
		),
		model: model,
	}
}

func (c *GroqClient) Generate(ctx context.Context, systemPrompt, userPrompt string, opts Options) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if len(systemPrompt) > 0 {
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	messages = append(messages, openai.UserMessage(userPrompt))

	model := opts.Model
	if model == "" {
		model = c.model
	}

	chatOpts := openai.ChatCompletionNewParams{
		Messages:    messages,
		Model:       model,
		Temperature: openai.Float(opts.Temperature),
	}
	if opts.MaxTokens > 0 {
		chatOpts.MaxTokens = openai.Int(opts.MaxTokens)
	}

	res, err := c.client.Chat.Completions.New(ctx, chatOpts)
	if err != nil {
		slog.Error("groq error: chat completions failed", "model", model, "error", err)
		return "", fmt.Errorf("completion failed: %w", err)
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	return res.Choices[0].Message.Content, nil
}
