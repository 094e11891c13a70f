package signal

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/smaquant/smaquant/internal/core"
)

func series(closes ...float64) []core.PricePoint {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prices := make([]core.PricePoint, len(closes))
	for i, c := range closes {
		prices[i] = core.PricePoint{Date: base.AddDate(0, 0, i), Close: c}
	}
	return prices
}

func TestCompute_Lengths(t *testing.T) {
	prices := series(10, 11, 12, 13, 14, 15, 16, 17)

	s, err := Compute(prices, 2, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n := len(prices)
	if len(s.ShortSMA) != n || len(s.LongSMA) != n || len(s.Signal) != n || len(s.Position) != n {
		t.Errorf("all series must align with prices: %d/%d/%d/%d want %d",
			len(s.ShortSMA), len(s.LongSMA), len(s.Signal), len(s.Position), n)
	}
}

func TestCompute_BadWindows(t *testing.T) {
	prices := series(10, 11, 12)

	for _, tc := range []struct{ short, long int }{
		{5, 5},   // equal
		{10, 5},  // inverted
		{0, 5},   // non-positive short
		{-1, 5},  // negative short
		{3, 0},   // non-positive long
	} {
		if _, err := Compute(prices, tc.short, tc.long); !errors.Is(err, core.ErrConfigInvalid) {
			t.Errorf("Compute(%d, %d): got %v, want ErrConfigInvalid", tc.short, tc.long, err)
		}
	}
}

func TestCompute_WarmUpIsFlat(t *testing.T) {
	prices := series(10, 20, 30, 40, 50, 60)

	s, err := Compute(prices, 2, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Long SMA is undefined before index 3, so the first three bars have
	// no crossover information at all.
	for i := 0; i < 3; i++ {
		if s.Signal[i] != core.Flat {
			t.Errorf("signal[%d] = %v, want Flat during warm-up", i, s.Signal[i])
		}
		if s.Position[i] != core.Flat {
			t.Errorf("position[%d] = %v, want Flat during warm-up", i, s.Position[i])
		}
	}
	for i := 0; i < 1; i++ {
		if !math.IsNaN(s.ShortSMA[i]) {
			t.Errorf("short sma[%d] should be NaN", i)
		}
	}
	for i := 0; i < 3; i++ {
		if !math.IsNaN(s.LongSMA[i]) {
			t.Errorf("long sma[%d] should be NaN", i)
		}
	}
}

func TestCompute_StrictInequality(t *testing.T) {
	// Constant prices keep both SMAs equal everywhere; equality must
	// yield Flat, not Long.
	prices := series(100, 100, 100, 100, 100, 100)

	s, err := Compute(prices, 2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, sig := range s.Signal {
		if sig != core.Flat {
			t.Errorf("signal[%d] = %v, want Flat when SMAs are equal", i, sig)
		}
	}
	for i, pos := range s.Position {
		if pos != core.Flat {
			t.Errorf("position[%d] = %v, want Flat when SMAs are equal", i, pos)
		}
	}
}

func TestCompute_GoldenCross(t *testing.T) {
	// Declining prices with a sharp spike at the end: the short SMA
	// crosses above the long SMA on the last bar.
	prices := series(100, 95, 90, 85, 80, 120)

	s, err := Compute(prices, 2, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	last := len(prices) - 1
	// currFast = (80+120)/2 = 100, currSlow = (90+85+80+120)/4 = 93.75
	if s.Signal[last] != core.Long {
		t.Errorf("expected Long on the spike bar, got %v", s.Signal[last])
	}
	if s.Signal[last-1] != core.Flat {
		t.Errorf("expected Flat before the spike, got %v", s.Signal[last-1])
	}
	if s.Position[last] != core.Long {
		t.Errorf("position should follow the signal, got %v", s.Position[last])
	}
}

func TestCompute_PositionValuesBinary(t *testing.T) {
	prices := series(100, 95, 90, 85, 80, 120, 130, 60, 55, 50)

	s, err := Compute(prices, 2, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, pos := range s.Position {
		if pos != core.Flat && pos != core.Long {
			t.Errorf("position[%d] = %v, want 0 or 1", i, pos)
		}
	}
}

func TestCompute_WindowLargerThanSeries(t *testing.T) {
	// Long SMA never defined: signal and position stay Flat throughout.
	prices := series(10, 11, 12)

	s, err := Compute(prices, 2, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range prices {
		if s.Signal[i] != core.Flat || s.Position[i] != core.Flat {
			t.Errorf("bar %d: expected all Flat with undefined long SMA", i)
		}
	}
}
