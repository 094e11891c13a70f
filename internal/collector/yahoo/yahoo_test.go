package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/smaquant/smaquant/internal/collector"
	"github.com/smaquant/smaquant/internal/core"
)

func TestYahoo_ImplementsProvider(t *testing.T) {
	var _ collector.Provider = (*Yahoo)(nil)
}

func TestYahoo_Name(t *testing.T) {
	y := New()
	if y.Name() != "yahoo" {
		t.Errorf("expected 'yahoo', got '%s'", y.Name())
	}
}

func TestYahoo_ToYahooSymbol(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"AAPL", "AAPL"},
		{"0700.HK", "0700.HK"},
		{"600519.SH", "600519.SS"}, // Shanghai -> SS for Yahoo
		{"000001.SZ", "000001.SZ"},
	}

	y := New()
	for _, tc := range tests {
		got := y.toYahooSymbol(tc.input)
		if got != tc.expected {
			t.Errorf("toYahooSymbol(%s) = %s, want %s", tc.input, got, tc.expected)
		}
	}
}

func TestYahoo_RejectsBadSymbol(t *testing.T) {
	y := New()
	_, err := y.FetchDailyHistory(context.Background(), "not a symbol!", time.Now().AddDate(0, -1, 0), time.Now())
	if !errors.Is(err, core.ErrMalformedData) {
		t.Errorf("got %v, want ErrMalformedData", err)
	}
}

func TestYahoo_FetchDailyHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// Second close is null and must be skipped.
		w.Write([]byte(`{"chart":{"result":[{
			"timestamp":[1704153600,1704240000,1704326400],
			"indicators":{"quote":[{"close":[185.5,null,184.25]}]}
		}]}}`))
	}))
	defer srv.Close()

	y := New(WithBaseURL(srv.URL))
	prices, err := y.FetchDailyHistory(context.Background(), "AAPL",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(prices) != 2 {
		t.Fatalf("expected 2 bars after skipping the null, got %d", len(prices))
	}
	if prices[0].Close != 185.5 || prices[1].Close != 184.25 {
		t.Errorf("unexpected closes: %v", prices)
	}
	if !prices[0].Date.Before(prices[1].Date) {
		t.Error("dates should ascend")
	}
}

func TestYahoo_EmptyResultIsNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"chart":{"result":[]}}`))
	}))
	defer srv.Close()

	y := New(WithBaseURL(srv.URL))
	_, err := y.FetchDailyHistory(context.Background(), "AAPL", time.Now().AddDate(0, -1, 0), time.Now())
	if !errors.Is(err, core.ErrNoData) {
		t.Errorf("got %v, want ErrNoData", err)
	}
}
