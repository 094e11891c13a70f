package backtest

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/smaquant/smaquant/internal/core"
	"github.com/smaquant/smaquant/internal/perf"
	"github.com/smaquant/smaquant/internal/signal"
)

// Request describes one backtest run.
type Request struct {
	Symbol      string    `json:"symbol"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	ShortWindow int       `json:"short_window"`
	LongWindow  int       `json:"long_window"`
}

// Validate rejects malformed parameters before any data is fetched.
func (r Request) Validate() error {
	if r.Symbol == "" {
		return core.WrapError(core.ErrConfigMissing, fmt.Errorf("symbol is required"))
	}
	if r.ShortWindow <= 0 || r.LongWindow <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("windows must be positive, got %d/%d", r.ShortWindow, r.LongWindow))
	}
	if r.ShortWindow >= r.LongWindow {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("short window %d must be smaller than long window %d", r.ShortWindow, r.LongWindow))
	}
	if r.End.Before(r.Start) {
		return core.WrapError(core.ErrConfigInvalid, fmt.Errorf("end date before start date"))
	}
	return nil
}

// StrategyLabel is the report label for the crossover strategy.
func (r Request) StrategyLabel() string {
	return fmt.Sprintf("SMA (%d/%d) Strategy", r.ShortWindow, r.LongWindow)
}

// Record is the augmented per-date row exposed to the presentation layer
// for charting. Undefined values (SMA warm-up, the first return) are NaN
// in memory and null in JSON.
type Record struct {
	Date           time.Time     `json:"date"`
	Close          float64       `json:"close"`
	ShortSMA       float64       `json:"short_sma"`
	LongSMA        float64       `json:"long_sma"`
	Signal         core.Position `json:"signal"`
	Position       core.Position `json:"position"`
	DailyReturn    float64       `json:"daily_return"`
	StrategyReturn float64       `json:"strategy_return"`
}

// MarshalJSON renders NaN fields as null so records survive JSON encoding.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date           time.Time `json:"date"`
		Close          float64   `json:"close"`
		ShortSMA       *float64  `json:"short_sma"`
		LongSMA        *float64  `json:"long_sma"`
		Signal         int       `json:"signal"`
		Position       int       `json:"position"`
		DailyReturn    *float64  `json:"daily_return"`
		StrategyReturn *float64  `json:"strategy_return"`
	}{
		Date:           r.Date,
		Close:          r.Close,
		ShortSMA:       nullable(r.ShortSMA),
		LongSMA:        nullable(r.LongSMA),
		Signal:         int(r.Signal),
		Position:       int(r.Position),
		DailyReturn:    nullable(r.DailyReturn),
		StrategyReturn: nullable(r.StrategyReturn),
	})
}

// UnmarshalJSON restores null fields to NaN so archived results round-trip.
func (r *Record) UnmarshalJSON(data []byte) error {
	var aux struct {
		Date           time.Time `json:"date"`
		Close          float64   `json:"close"`
		ShortSMA       *float64  `json:"short_sma"`
		LongSMA        *float64  `json:"long_sma"`
		Signal         int       `json:"signal"`
		Position       int       `json:"position"`
		DailyReturn    *float64  `json:"daily_return"`
		StrategyReturn *float64  `json:"strategy_return"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Date = aux.Date
	r.Close = aux.Close
	r.ShortSMA = deref(aux.ShortSMA)
	r.LongSMA = deref(aux.LongSMA)
	r.Signal = core.Position(aux.Signal)
	r.Position = core.Position(aux.Position)
	r.DailyReturn = deref(aux.DailyReturn)
	r.StrategyReturn = deref(aux.StrategyReturn)
	return nil
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func deref(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

// Result holds the complete backtest output: the per-date record set,
// the crossover markers and one performance report per return series.
type Result struct {
	Request  Request            `json:"request"`
	Records  []Record           `json:"records"`
	Markers  []signal.Crossover `json:"markers"`
	BuyHold  perf.Report        `json:"buy_hold"`
	Strategy perf.Report        `json:"strategy"`
	RanAt    time.Time          `json:"ran_at"`
}
