// internal/narrative/factory/factory_test.go
package factory

import (
	"testing"

	"github.com/smaquant/smaquant/internal/config"
)

func TestNew_DefaultsToRule(t *testing.T) {
	g, err := New(config.NarrativeConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Name() != "rule" {
		t.Errorf("expected rule generator, got %s", g.Name())
	}
}

func TestNew_Rule(t *testing.T) {
	g, err := New(config.NarrativeConfig{Provider: "rule"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Name() != "rule" {
		t.Errorf("expected rule generator, got %s", g.Name())
	}
}

func TestNew_ClaudeWithFallback(t *testing.T) {
	cfg := config.NarrativeConfig{
		Provider: "claude",
		Claude: config.ClaudeConfig{
			APIKey: "test-key",
			Model:  "claude-3-sonnet",
		},
	}

	g, err := New(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Name() != "claude+rule" {
		t.Errorf("expected claude+rule generator, got %s", g.Name())
	}
}

func TestNew_OpenAIWithFallback(t *testing.T) {
	cfg := config.NarrativeConfig{
		Provider: "openai",
		OpenAI: config.OpenAIConfig{
			APIKey: "test-key",
			Model:  "gpt-4",
		},
	}

	g, err := New(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Name() != "openai+rule" {
		t.Errorf("expected openai+rule generator, got %s", g.Name())
	}
}

func TestNew_Unknown(t *testing.T) {
	_, err := New(config.NarrativeConfig{Provider: "oracle"})
	if err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNew_ClaudeMissingKey(t *testing.T) {
	_, err := New(config.NarrativeConfig{Provider: "claude"})
	if err == nil {
		t.Error("expected error for missing API key")
	}
}
