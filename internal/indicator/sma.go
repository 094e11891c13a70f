package indicator

import "math"

// SMA calculates a rolling Simple Moving Average over a trailing window.
// The result is aligned one-to-one with the input: indices before the
// window is full (i < window-1) hold NaN. A window larger than the input
// yields an all-NaN series.
func SMA(values []float64, window int) []float64 {
	result := make([]float64, len(values))
	for i := range result {
		result[i] = math.NaN()
	}
	if window <= 0 || window > len(values) {
		return result
	}

	// Seed the first full window, then roll.
	var sum float64
	for i := 0; i < window; i++ {
		sum += values[i]
	}
	result[window-1] = sum / float64(window)

	for i := window; i < len(values); i++ {
		sum = sum - values[i-window] + values[i]
		result[i] = sum / float64(window)
	}

	return result
}

// Defined reports whether the indicator has a value at the given index.
func Defined(v float64) bool {
	return !math.IsNaN(v)
}
