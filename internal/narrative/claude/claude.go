// internal/narrative/claude/claude.go
package claude

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/smaquant/smaquant/internal/backtest"
	"github.com/smaquant/smaquant/internal/core"
	"github.com/smaquant/smaquant/internal/narrative"
)

// Generator produces summaries via the Anthropic API.
type Generator struct {
	client anthropic.Client
	model  string
}

// New creates a new Claude generator.
func New(apiKey, model string) (*Generator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key required")
	}
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &Generator{client: client, model: model}, nil
}

// Name returns the generator name.
func (g *Generator) Name() string {
	return "claude"
}

// Summarize sends the report pair to the Claude API.
func (g *Generator) Summarize(ctx context.Context, result *backtest.Result) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: narrative.SystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(narrative.BuildPrompt(result))),
		},
	}

	resp, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return "", core.WrapError(core.ErrNarrativeFailed, err)
	}

	if len(resp.Content) == 0 || resp.Content[0].Type != "text" {
		return "", core.WrapError(core.ErrNarrativeFailed, fmt.Errorf("empty response"))
	}
	return resp.Content[0].Text, nil
}
