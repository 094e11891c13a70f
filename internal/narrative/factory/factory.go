// internal/narrative/factory/factory.go
package factory

import (
	"fmt"

	"github.com/smaquant/smaquant/internal/config"
	"github.com/smaquant/smaquant/internal/narrative"
	"github.com/smaquant/smaquant/internal/narrative/claude"
	"github.com/smaquant/smaquant/internal/narrative/openai"
)

// New creates a narrative generator based on configuration. LLM-backed
// generators fall back to the rule generator when the API call fails.
func New(cfg config.NarrativeConfig) (narrative.Generator, error) {
	switch cfg.Provider {
	case "", "rule":
		return narrative.NewRule(), nil
	case "claude":
		g, err := claude.New(cfg.Claude.APIKey, cfg.Claude.Model)
		if err != nil {
			return nil, err
		}
		return narrative.WithFallback(g, narrative.NewRule()), nil
	case "openai":
		g, err := openai.New(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		if err != nil {
			return nil, err
		}
		return narrative.WithFallback(g, narrative.NewRule()), nil
	default:
		return nil, fmt.Errorf("unknown narrative provider: %s", cfg.Provider)
	}
}
