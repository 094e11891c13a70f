// internal/narrative/narrative.go
package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/smaquant/smaquant/internal/backtest"
	"github.com/smaquant/smaquant/internal/core"
)

// Generator turns a backtest result into a plain-language analysis summary.
type Generator interface {
	Name() string
	Summarize(ctx context.Context, result *backtest.Result) (string, error)
}

// Rule is the deterministic generator. It compares the strategy report
// against the buy-and-hold benchmark metric by metric and needs no
// external service.
type Rule struct{}

// NewRule creates the rule-based generator.
func NewRule() *Rule {
	return &Rule{}
}

// Name returns the generator name.
func (r *Rule) Name() string {
	return "rule"
}

// Summarize renders the four-point comparison in markdown.
func (r *Rule) Summarize(ctx context.Context, result *backtest.Result) (string, error) {
	if result == nil {
		return "", core.ErrNarrativeFailed
	}
	strat, bench := result.Strategy, result.BuyHold
	if strat.Insufficient || bench.Insufficient {
		return "Not enough data to compare the strategy against the benchmark.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "In this backtest, the **%s** is compared against a **%s** strategy:\n\n",
		strat.Label, bench.Label)

	fmt.Fprintf(&b, "1. **Cumulative Return**: strategy %s vs benchmark %s.\n",
		percent(strat.CumulativeReturn), percent(bench.CumulativeReturn))
	if strat.CumulativeReturn > bench.CumulativeReturn {
		b.WriteString("   The strategy **outperformed** the benchmark.\n")
	} else {
		b.WriteString("   The strategy **did not outperform** the benchmark.\n")
	}

	fmt.Fprintf(&b, "2. **Annualized Volatility**: strategy %s vs benchmark %s.\n",
		percent(strat.AnnualizedVolatility), percent(bench.AnnualizedVolatility))
	if strat.AnnualizedVolatility < bench.AnnualizedVolatility {
		b.WriteString("   The strategy showed **lower volatility**, suggesting a smoother ride with better risk control.\n")
	} else {
		b.WriteString("   The strategy showed **higher volatility**, indicating greater risk than the benchmark.\n")
	}

	fmt.Fprintf(&b, "3. **Sharpe Ratio**: strategy %.2f vs benchmark %.2f.\n",
		strat.SharpeRatio, bench.SharpeRatio)
	if strat.SharpeRatio > bench.SharpeRatio {
		b.WriteString("   After adjusting for risk, the strategy is **superior**: more return per unit of risk.\n")
	} else {
		b.WriteString("   After adjusting for risk, the strategy is **inferior** to the benchmark.\n")
	}

	fmt.Fprintf(&b, "4. **Max Drawdown**: strategy %s vs benchmark %s.\n",
		percent(strat.MaxDrawdown), percent(bench.MaxDrawdown))
	// Drawdowns are negative, so the value closer to zero is the better one.
	if strat.MaxDrawdown > bench.MaxDrawdown {
		b.WriteString("   The strategy demonstrated **better loss control** during downturns.\n")
	} else {
		b.WriteString("   The strategy's loss control during downturns was **not better** than the benchmark.\n")
	}

	return b.String(), nil
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// BuildPrompt renders the report pair as the user prompt shared by the
// LLM-backed generators.
func BuildPrompt(result *backtest.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Symbol: %s\n", result.Request.Symbol)
	fmt.Fprintf(&b, "Period: %s to %s\n",
		result.Request.Start.Format("2006-01-02"), result.Request.End.Format("2006-01-02"))
	fmt.Fprintf(&b, "Crossover events: %d\n\n", len(result.Markers))
	b.WriteString(result.BuyHold.String())
	b.WriteString("\n")
	b.WriteString(result.Strategy.String())
	return b.String()
}

// SystemPrompt instructs the LLM-backed generators.
const SystemPrompt = "You are a quantitative analyst. Given two performance " +
	"reports from an SMA crossover backtest, write a short plain-language " +
	"summary comparing the strategy against buy-and-hold. Cover cumulative " +
	"return, volatility, Sharpe ratio and max drawdown. Do not invent numbers."
