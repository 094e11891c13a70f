package perf

import (
	"math"
	"strings"
	"testing"
)

const tolerance = 1e-9

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestAnalyze_InsufficientData(t *testing.T) {
	for _, series := range [][]float64{
		nil,
		{},
		{0.05},
		{math.NaN(), 0.05}, // one defined value after dropping NaN
		{math.NaN(), math.NaN()},
	} {
		r := Analyze(series, "Strategy")
		if !r.Insufficient {
			t.Errorf("Analyze(%v): expected insufficient-data marker", series)
		}
	}
}

func TestAnalyze_AllZeroReturns(t *testing.T) {
	r := Analyze(repeat(0, 10), "Buy & Hold")

	if r.Insufficient {
		t.Fatal("ten observations are sufficient")
	}
	if r.CumulativeReturn != 0 {
		t.Errorf("CumulativeReturn = %f, want 0", r.CumulativeReturn)
	}
	if r.AnnualizedReturn != 0 {
		t.Errorf("AnnualizedReturn = %f, want 0", r.AnnualizedReturn)
	}
	if r.MaxDrawdown != 0 {
		t.Errorf("MaxDrawdown = %f, want 0", r.MaxDrawdown)
	}
	// Zero volatility takes the guarded Sharpe branch.
	if r.AnnualizedVolatility != 0 {
		t.Errorf("AnnualizedVolatility = %f, want 0", r.AnnualizedVolatility)
	}
	if r.SharpeRatio != 0 {
		t.Errorf("SharpeRatio = %f, want 0 on zero volatility", r.SharpeRatio)
	}
}

func TestAnalyze_DropsLeadingNaN(t *testing.T) {
	with := Analyze([]float64{math.NaN(), 0.01, 0.02, -0.01}, "s")
	without := Analyze([]float64{0.01, 0.02, -0.01}, "s")

	if math.Abs(with.CumulativeReturn-without.CumulativeReturn) > tolerance {
		t.Error("leading NaN must not affect the statistics")
	}
}

func TestAnalyze_CumulativeIsCompounded(t *testing.T) {
	r := Analyze([]float64{0.10, 0.10}, "s")

	// (1.10 * 1.10) - 1, not 0.20.
	want := 0.21
	if math.Abs(r.CumulativeReturn-want) > tolerance {
		t.Errorf("CumulativeReturn = %f, want %f", r.CumulativeReturn, want)
	}
}

func TestAnalyze_AnnualizationBoundary(t *testing.T) {
	// Exactly 252 observations: annualized == cumulative, no scaling.
	at := Analyze(repeat(0.001, 252), "s")
	if math.Abs(at.AnnualizedReturn-at.CumulativeReturn) > tolerance {
		t.Errorf("N=252: AnnualizedReturn = %f, want cumulative %f",
			at.AnnualizedReturn, at.CumulativeReturn)
	}

	// 253 observations: geometric annualization kicks in.
	over := Analyze(repeat(0.001, 253), "s")
	wantAnn := math.Pow(1+over.CumulativeReturn, 252.0/253.0) - 1
	if math.Abs(over.AnnualizedReturn-wantAnn) > tolerance {
		t.Errorf("N=253: AnnualizedReturn = %f, want %f", over.AnnualizedReturn, wantAnn)
	}
	if math.Abs(over.AnnualizedReturn-over.CumulativeReturn) < tolerance {
		t.Error("N=253 must not report the raw cumulative return")
	}
}

func TestAnalyze_Volatility(t *testing.T) {
	rets := []float64{0.01, -0.01, 0.02, -0.02}
	r := Analyze(rets, "s")

	// Sample standard deviation with mean 0:
	// sqrt((0.0001+0.0001+0.0004+0.0004)/3) * sqrt(252)
	wantStd := math.Sqrt(0.001 / 3)
	want := wantStd * math.Sqrt(252)
	if math.Abs(r.AnnualizedVolatility-want) > tolerance {
		t.Errorf("AnnualizedVolatility = %f, want %f", r.AnnualizedVolatility, want)
	}
}

func TestMaxDrawdown_MonotonicRise(t *testing.T) {
	r := Analyze(repeat(0.01, 20), "s")
	if r.MaxDrawdown != 0 {
		t.Errorf("MaxDrawdown = %f, want 0 for a rising curve", r.MaxDrawdown)
	}
}

func TestMaxDrawdown_KnownScenario(t *testing.T) {
	// wealth = [1.10, 0.88, 0.968]; peak stays 1.10
	// drawdown = [0, -0.20, -0.12] -> worst is -0.20
	r := Analyze([]float64{0.10, -0.20, 0.10}, "s")

	if math.Abs(r.MaxDrawdown-(-0.20)) > tolerance {
		t.Errorf("MaxDrawdown = %.12f, want -0.20", r.MaxDrawdown)
	}
}

func TestAnalyze_SharpeSign(t *testing.T) {
	r := Analyze([]float64{-0.01, -0.02, -0.01, -0.03}, "s")
	if r.SharpeRatio >= 0 {
		t.Errorf("SharpeRatio = %f, want negative for a losing series", r.SharpeRatio)
	}
}

func TestReport_String(t *testing.T) {
	r := Analyze([]float64{0.10, -0.20, 0.10}, "SMA Strategy")
	out := r.String()

	for _, want := range []string{
		"Performance Report - SMA Strategy",
		"Cumulative Return",
		"Sharpe Ratio",
		"Max Drawdown          : -20.00%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report output missing %q:\n%s", want, out)
		}
	}
}

func TestReport_String_Insufficient(t *testing.T) {
	r := Analyze([]float64{0.05}, "Buy & Hold")
	out := r.String()

	if !strings.Contains(out, "Not enough data for calculation.") {
		t.Errorf("expected placeholder text, got:\n%s", out)
	}
	if strings.Contains(out, "%") {
		t.Errorf("insufficient report must not format percentages:\n%s", out)
	}
}
