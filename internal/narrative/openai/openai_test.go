// internal/narrative/openai/openai_test.go
package openai

import (
	"testing"

	"github.com/smaquant/smaquant/internal/narrative"
)

func TestGenerator_ImplementsInterface(t *testing.T) {
	var _ narrative.Generator = (*Generator)(nil)
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New("", "model")
	if err == nil {
		t.Error("expected error for empty API key")
	}
}
