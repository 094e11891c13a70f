// Package backtest orchestrates the SMA crossover pipeline: price series
// in, signal and return series through, two performance reports out.
package backtest

import (
	"context"
	"time"

	"github.com/smaquant/smaquant/internal/collector"
	"github.com/smaquant/smaquant/internal/core"
	"github.com/smaquant/smaquant/internal/perf"
	"github.com/smaquant/smaquant/internal/returns"
	"github.com/smaquant/smaquant/internal/signal"
	"go.uber.org/zap"
)

// Backtester runs crossover backtests against historical data.
type Backtester struct {
	provider collector.Provider
	logger   *zap.Logger
}

// New creates a Backtester with the given price provider.
func New(provider collector.Provider, logger ...*zap.Logger) *Backtester {
	l := zap.NewNop()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &Backtester{provider: provider, logger: l}
}

// Run executes one backtest. Parameter validation happens before any
// I/O; provider output is validated before any computation. The engine
// itself is pure and single-threaded; only the fetch can block, so the
// context is checked between pipeline stages.
func (b *Backtester) Run(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prices, err := b.provider.FetchDailyHistory(ctx, req.Symbol, req.Start, req.End)
	if err != nil {
		return nil, err
	}
	if err := core.ValidateSeries(prices); err != nil {
		return nil, err
	}

	b.logger.Debug("price history fetched",
		zap.String("symbol", req.Symbol),
		zap.String("provider", b.provider.Name()),
		zap.Int("bars", len(prices)),
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sig, err := signal.Compute(prices, req.ShortWindow, req.LongWindow)
	if err != nil {
		return nil, err
	}

	daily, strategy := returns.Compute(prices, sig.Position)

	records := make([]Record, len(prices))
	for i, p := range prices {
		records[i] = Record{
			Date:           p.Date,
			Close:          p.Close,
			ShortSMA:       sig.ShortSMA[i],
			LongSMA:        sig.LongSMA[i],
			Signal:         sig.Signal[i],
			Position:       sig.Position[i],
			DailyReturn:    daily[i],
			StrategyReturn: strategy[i],
		}
	}

	result := &Result{
		Request:  req,
		Records:  records,
		Markers:  signal.Crossovers(sig.Signal),
		BuyHold:  perf.Analyze(daily, "Buy & Hold"),
		Strategy: perf.Analyze(strategy, req.StrategyLabel()),
		RanAt:    time.Now().UTC(),
	}

	b.logger.Info("backtest complete",
		zap.String("symbol", req.Symbol),
		zap.Int("bars", len(prices)),
		zap.Int("crossovers", len(result.Markers)),
	)

	return result, nil
}
