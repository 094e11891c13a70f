// internal/storage/archive/results_test.go
package archive

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/smaquant/smaquant/internal/backtest"
	"github.com/smaquant/smaquant/internal/core"
)

func sampleResult() *backtest.Result {
	day := func(d int) time.Time {
		return time.Date(2024, 1, 1+d, 0, 0, 0, 0, time.UTC)
	}
	return &backtest.Result{
		Request: backtest.Request{
			Symbol:      "aapl",
			Start:       day(0),
			End:         day(2),
			ShortWindow: 2,
			LongWindow:  3,
		},
		Records: []backtest.Record{
			{Date: day(0), Close: 100, ShortSMA: math.NaN(), LongSMA: math.NaN(), DailyReturn: math.NaN(), StrategyReturn: math.NaN()},
			{Date: day(1), Close: 101, ShortSMA: 100.5, LongSMA: math.NaN(), DailyReturn: 0.01, StrategyReturn: 0},
			{Date: day(2), Close: 102, ShortSMA: 101.5, LongSMA: 101, Signal: core.Long, Position: core.Long, DailyReturn: 0.0099, StrategyReturn: 0.0099},
		},
		RanAt: time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestResults_SaveAndLoad(t *testing.T) {
	fs, err := NewLocalFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalFS: %v", err)
	}
	results := NewResults(fs)
	ctx := context.Background()

	path, err := results.SaveResult(ctx, sampleResult())
	if err != nil {
		t.Fatalf("SaveResult: %v", err)
	}
	if !strings.HasPrefix(path, "backtests/AAPL/") || !strings.HasSuffix(path, ".json") {
		t.Errorf("unexpected archive path %q", path)
	}

	loaded, err := results.LoadResult(ctx, path)
	if err != nil {
		t.Fatalf("LoadResult: %v", err)
	}
	if loaded.Request.Symbol != "aapl" {
		t.Errorf("symbol did not round-trip: %q", loaded.Request.Symbol)
	}
	if len(loaded.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(loaded.Records))
	}
	if !math.IsNaN(loaded.Records[0].ShortSMA) {
		t.Error("expected warm-up SMA to come back as NaN")
	}
	if loaded.Records[2].Position != core.Long {
		t.Error("position did not round-trip")
	}
}

func TestResults_ListBySymbol(t *testing.T) {
	fs, _ := NewLocalFS(t.TempDir())
	results := NewResults(fs)
	ctx := context.Background()

	res := sampleResult()
	if _, err := results.SaveResult(ctx, res); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}
	if _, err := results.SaveResult(ctx, res); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}

	other := sampleResult()
	other.Request.Symbol = "MSFT"
	if _, err := results.SaveResult(ctx, other); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}

	paths, err := results.ListResults(ctx, "AAPL")
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if len(paths) != 2 {
		t.Errorf("expected 2 AAPL results, got %d", len(paths))
	}

	all, err := results.ListResults(ctx, "")
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 results in total, got %d", len(all))
	}
}

func TestResults_LoadMalformed(t *testing.T) {
	fs, _ := NewLocalFS(t.TempDir())
	results := NewResults(fs)
	ctx := context.Background()

	fs.Write(ctx, "backtests/AAPL/bad.json", []byte("{not json"))

	_, err := results.LoadResult(ctx, "backtests/AAPL/bad.json")
	if err == nil {
		t.Fatal("expected error for malformed archive")
	}
}
