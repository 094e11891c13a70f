// internal/narrative/openai/openai.go
package openai

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/smaquant/smaquant/internal/backtest"
	"github.com/smaquant/smaquant/internal/core"
	"github.com/smaquant/smaquant/internal/narrative"
)

// Generator produces summaries via the OpenAI API.
type Generator struct {
	client *openai.Client
	model  string
}

// New creates a new OpenAI generator.
func New(apiKey, model string) (*Generator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key required")
	}
	if model == "" {
		model = "gpt-4o"
	}
	client := openai.NewClient(apiKey)
	return &Generator{client: client, model: model}, nil
}

// Name returns the generator name.
func (g *Generator) Name() string {
	return "openai"
}

// Summarize sends the report pair to the OpenAI API.
func (g *Generator) Summarize(ctx context.Context, result *backtest.Result) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:     g.model,
		MaxTokens: 1024,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: narrative.SystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: narrative.BuildPrompt(result),
			},
		},
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", core.WrapError(core.ErrNarrativeFailed, err)
	}

	if len(resp.Choices) == 0 {
		return "", core.WrapError(core.ErrNarrativeFailed, fmt.Errorf("empty response"))
	}
	return resp.Choices[0].Message.Content, nil
}
