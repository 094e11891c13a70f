// Package perf reduces a daily-return series to a fixed report of
// performance statistics comparing a strategy against its baseline.
package perf

import (
	"fmt"
	"math"
	"strings"

	"github.com/smaquant/smaquant/internal/returns"
)

// TradingDays is the annualization convention: trading days per year.
const TradingDays = 252

// Report is an immutable value object holding the five performance
// statistics for one return series. When Insufficient is set the numeric
// fields are meaningless and must not be formatted as results.
type Report struct {
	Label                string  `json:"label"`
	Insufficient         bool    `json:"insufficient,omitempty"`
	CumulativeReturn     float64 `json:"cumulative_return"`
	AnnualizedReturn     float64 `json:"annualized_return"`
	AnnualizedVolatility float64 `json:"annualized_volatility"`
	SharpeRatio          float64 `json:"sharpe_ratio"`
	MaxDrawdown          float64 `json:"max_drawdown"`
}

// Analyze reduces a return series to a Report. NaN entries (the undefined
// leading return) are dropped before analysis. Fewer than two usable
// observations yield an Insufficient report rather than numbers; nothing
// is substituted with silently-wrong zeros.
func Analyze(series []float64, label string) Report {
	rets := returns.Defined(series)
	if len(rets) < 2 {
		return Report{Label: label, Insufficient: true}
	}

	cumulative := 1.0
	for _, r := range rets {
		cumulative *= 1 + r
	}
	cumulativeReturn := cumulative - 1

	// Sub-year series are reported raw: extrapolating a partial year to
	// an annual figure is considered misleading. The cutoff is a literal
	// row count, not a calendar-aware trading year.
	n := len(rets)
	annualizedReturn := cumulativeReturn
	if n > TradingDays {
		annualizedReturn = math.Pow(1+cumulativeReturn, TradingDays/float64(n)) - 1
	}

	annualizedVolatility := stdDev(rets) * math.Sqrt(TradingDays)

	// Zero volatility means no Sharpe signal, not an infinite one.
	sharpe := 0.0
	if annualizedVolatility != 0 {
		sharpe = annualizedReturn / annualizedVolatility
	}

	return Report{
		Label:                label,
		CumulativeReturn:     cumulativeReturn,
		AnnualizedReturn:     annualizedReturn,
		AnnualizedVolatility: annualizedVolatility,
		SharpeRatio:          sharpe,
		MaxDrawdown:          maxDrawdown(rets),
	}
}

// stdDev is the sample standard deviation (n-1 denominator).
func stdDev(rets []float64) float64 {
	var sum float64
	for _, r := range rets {
		sum += r
	}
	mean := sum / float64(len(rets))

	var variance float64
	for _, r := range rets {
		variance += (r - mean) * (r - mean)
	}
	return math.Sqrt(variance / float64(len(rets)-1))
}

// maxDrawdown walks the cumulative wealth curve and returns the worst
// peak-to-trough decline as a non-positive number. A flat or monotonically
// rising curve yields 0.
func maxDrawdown(rets []float64) float64 {
	wealth := 1.0
	peak := math.Inf(-1)
	worst := 0.0

	for _, r := range rets {
		wealth *= 1 + r
		if wealth > peak {
			peak = wealth
		}
		dd := (wealth - peak) / peak
		if dd < worst {
			worst = dd
		}
	}

	return worst
}

const rule = "========================================"

// String renders the report as the fixed text block shown on the
// dashboard and in CLI output.
func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Performance Report - %s\n", r.Label)
	b.WriteString(rule + "\n")
	if r.Insufficient {
		b.WriteString("Not enough data for calculation.\n")
		b.WriteString(rule)
		return b.String()
	}
	fmt.Fprintf(&b, "Cumulative Return     : %.2f%%\n", r.CumulativeReturn*100)
	fmt.Fprintf(&b, "Annualized Return     : %.2f%%\n", r.AnnualizedReturn*100)
	fmt.Fprintf(&b, "Annualized Volatility : %.2f%%\n", r.AnnualizedVolatility*100)
	fmt.Fprintf(&b, "Sharpe Ratio          : %.2f\n", r.SharpeRatio)
	fmt.Fprintf(&b, "Max Drawdown          : %.2f%%\n", r.MaxDrawdown*100)
	b.WriteString(rule)
	return b.String()
}
