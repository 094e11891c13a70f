// internal/storage/archive/results.go
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/smaquant/smaquant/internal/backtest"
	"github.com/smaquant/smaquant/internal/core"
)

// Results archives completed backtest results as JSON documents.
// Paths follow backtests/<SYMBOL>/<uuid>.json on any Storage backend.
type Results struct {
	store Storage
}

// NewResults creates a result archive over the given backend.
func NewResults(store Storage) *Results {
	return &Results{store: store}
}

// SaveResult persists the result and returns its archive path.
func (r *Results) SaveResult(ctx context.Context, result *backtest.Result) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding result: %w", err)
	}

	path := fmt.Sprintf("backtests/%s/%s.json",
		strings.ToUpper(result.Request.Symbol), uuid.NewString())

	if err := r.store.Write(ctx, path, data); err != nil {
		return "", fmt.Errorf("writing result: %w", err)
	}
	return path, nil
}

// LoadResult reads a previously archived result.
func (r *Results) LoadResult(ctx context.Context, path string) (*backtest.Result, error) {
	data, err := r.store.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("reading result: %w", err)
	}

	var result backtest.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, core.WrapError(core.ErrMalformedData, err)
	}
	return &result, nil
}

// ListResults returns the archive paths for a symbol, or for all
// symbols when symbol is empty.
func (r *Results) ListResults(ctx context.Context, symbol string) ([]string, error) {
	prefix := "backtests"
	if symbol != "" {
		prefix = "backtests/" + strings.ToUpper(symbol)
	}
	return r.store.List(ctx, prefix)
}
