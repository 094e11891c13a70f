// Package returns computes daily percentage returns for a price series
// and for the signal-gated strategy built on top of it.
package returns

import (
	"math"

	"github.com/smaquant/smaquant/internal/core"
)

// Compute derives the baseline and strategy return series. Both outputs
// align one-to-one with prices. The first element is NaN (no prior close)
// and propagates as-is; downstream consumers drop it.
//
// The strategy earns the full daily return while long and exactly zero
// while flat. There is no short exposure, leverage, or entry/exit cost.
func Compute(prices []core.PricePoint, position []core.Position) (daily, strategy []float64) {
	daily = make([]float64, len(prices))
	strategy = make([]float64, len(prices))
	if len(prices) == 0 {
		return daily, strategy
	}

	daily[0] = math.NaN()
	strategy[0] = math.NaN()

	for i := 1; i < len(prices); i++ {
		daily[i] = prices[i].Close/prices[i-1].Close - 1
		strategy[i] = daily[i] * float64(position[i])
	}

	return daily, strategy
}

// Defined filters out NaN entries, returning only the usable observations.
func Defined(series []float64) []float64 {
	out := make([]float64, 0, len(series))
	for _, r := range series {
		if !math.IsNaN(r) {
			out = append(out, r)
		}
	}
	return out
}
