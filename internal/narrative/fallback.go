// internal/narrative/fallback.go
package narrative

import (
	"context"
	"fmt"

	"github.com/smaquant/smaquant/internal/backtest"
)

// Fallback tries a primary generator and falls back to a backup when the
// primary fails. LLM-backed generators are wrapped with the rule generator
// so a summary is always produced.
type Fallback struct {
	primary Generator
	backup  Generator
}

// WithFallback chains two generators.
func WithFallback(primary, backup Generator) *Fallback {
	return &Fallback{primary: primary, backup: backup}
}

// Name returns the combined generator name.
func (f *Fallback) Name() string {
	return fmt.Sprintf("%s+%s", f.primary.Name(), f.backup.Name())
}

// Summarize delegates to the primary, then the backup.
func (f *Fallback) Summarize(ctx context.Context, result *backtest.Result) (string, error) {
	text, err := f.primary.Summarize(ctx, result)
	if err == nil {
		return text, nil
	}
	return f.backup.Summarize(ctx, result)
}
