package signal

import (
	"fmt"

	"github.com/smaquant/smaquant/internal/core"
	"github.com/smaquant/smaquant/internal/indicator"
)

// Series holds the per-bar output of the dual-SMA signal engine. All
// slices are aligned one-to-one with the input price series. The SMA
// columns hold NaN during their warm-up; Signal and Position are fully
// defined at every index.
type Series struct {
	ShortSMA []float64
	LongSMA  []float64
	Signal   []core.Position
	Position []core.Position
}

// Compute derives the two rolling means, the binary long/flat signal and
// the forward-filled position series from a daily price series.
//
// The signal is Long only while the short SMA is strictly above the long
// SMA; equality yields Flat. Position is an explicit fold over the signal:
// once both SMAs exist the position takes the signal value, and before
// that it stays at the last computed signal, defaulting to Flat. The
// warm-up period therefore collapses to Flat rather than staying
// undefined.
func Compute(prices []core.PricePoint, shortWindow, longWindow int) (*Series, error) {
	if shortWindow <= 0 || longWindow <= 0 {
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("windows must be positive, got %d/%d", shortWindow, longWindow))
	}
	if shortWindow >= longWindow {
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("short window %d must be smaller than long window %d", shortWindow, longWindow))
	}

	closes := core.Closes(prices)

	s := &Series{
		ShortSMA: indicator.SMA(closes, shortWindow),
		LongSMA:  indicator.SMA(closes, longWindow),
		Signal:   make([]core.Position, len(prices)),
		Position: make([]core.Position, len(prices)),
	}

	last := core.Flat
	for i := range prices {
		if indicator.Defined(s.ShortSMA[i]) && indicator.Defined(s.LongSMA[i]) {
			if s.ShortSMA[i] > s.LongSMA[i] {
				s.Signal[i] = core.Long
			} else {
				s.Signal[i] = core.Flat
			}
			last = s.Signal[i]
		} else {
			s.Signal[i] = core.Flat
		}
		s.Position[i] = last
	}

	return s, nil
}
