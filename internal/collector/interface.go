package collector

import (
	"context"
	"time"

	"github.com/smaquant/smaquant/internal/core"
)

// Provider supplies an ordered daily close series for a symbol and date
// range. Implementations own the only I/O-bound, failure-prone step of a
// backtest; the engine downstream treats their output as read-only input.
//
// FetchDailyHistory returns the series ascending by date. An empty result
// means the provider genuinely had no data for the range; implementations
// must not invent placeholder bars.
type Provider interface {
	Name() string
	FetchDailyHistory(ctx context.Context, symbol string, start, end time.Time) ([]core.PricePoint, error)
}
