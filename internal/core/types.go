package core

import (
	"fmt"
	"time"
)

// Position is the binary exposure state of the strategy.
type Position int8

const (
	Flat Position = 0
	Long Position = 1
)

func (p Position) String() string {
	if p == Long {
		return "long"
	}
	return "flat"
}

// Action labels a crossover event derived from signal transitions.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
)

// PricePoint is a single daily close observation for an instrument.
// Immutable once retrieved; a series of these is owned by the caller.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// IsValid checks the price point has required fields.
func (p PricePoint) IsValid() bool {
	return !p.Date.IsZero() && p.Close > 0
}

// Closes extracts the close column from a price series.
func Closes(prices []PricePoint) []float64 {
	closes := make([]float64, len(prices))
	for i, p := range prices {
		closes[i] = p.Close
	}
	return closes
}

// ValidateSeries checks the provider contract for a daily price series:
// non-empty, strictly ascending dates, positive closes. An empty series
// maps to ErrNoData, everything else to ErrMalformedData, so callers can
// tell "nothing returned" apart from bad payloads.
func ValidateSeries(prices []PricePoint) error {
	if len(prices) == 0 {
		return ErrNoData
	}
	for i, p := range prices {
		if p.Close <= 0 {
			return WrapError(ErrMalformedData,
				fmt.Errorf("non-positive close %v at index %d", p.Close, i))
		}
		if i > 0 && !prices[i-1].Date.Before(p.Date) {
			return WrapError(ErrMalformedData,
				fmt.Errorf("dates not strictly ascending at index %d", i))
		}
	}
	return nil
}
