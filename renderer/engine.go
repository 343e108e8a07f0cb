package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/finplan"
)

// ProfileMarkdown renders the profile analysis and its suggested portfolio.
func ProfileMarkdown(p finplan.Profile, r finplan.Recommendation) string {
	var b strings.Builder
	name := p.Name
	if name == "" {
		name = "investor"
	}
	fmt.Fprintf(&b, "# Financial profile of %s\n\n", cell(name))
	fmt.Fprintln(&b, "| Item | Value |")
	fmt.Fprintln(&b, "|:---|:---|")
	fmt.Fprintf(&b, "| Age | %d |\n", p.Age)
	fmt.Fprintf(&b, "| Yearly income | %s |\n", amount(p.Income))
	fmt.Fprintf(&b, "| Goal | %s |\n", p.Goal)
	fmt.Fprintf(&b, "| Horizon | %d years |\n", p.Horizon)
	fmt.Fprintf(&b, "| Risk tolerance | %s |\n", p.Tolerance)
	fmt.Fprintf(&b, "\n## Suggested %s portfolio\n\n", r.Style)
	for _, s := range r.Suggestions {
		if len(s.Symbols) == 0 {
			fmt.Fprintf(&b, "- %s\n", s.Label)
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", s.Label, strings.Join(s.Symbols, ", "))
	}
	fmt.Fprintln(&b, "\n> These suggestions only depend on your horizon and risk tolerance. Ask an advisor for personal advice.")
	return b.String()
}

// ProjectionMarkdown renders a compounding projection.
func ProjectionMarkdown(in finplan.ProjectionInput, points []finplan.ProjectionPoint, s finplan.ProjectionSummary) string {
	var b strings.Builder
	contribution := finplan.M(in.Contribution, s.Final.Currency())
	fmt.Fprintf(&b, "# Compound interest: %s per year at %.2f%% (%s)\n\n", contribution, in.RatePct, in.Class)
	curve := make([]float64, len(points))
	for i, p := range points {
		curve[i] = p.Capital.AsFloat()
	}
	fmt.Fprintf(&b, "`%s`\n\n", Sparkline(curve))

	fmt.Fprintln(&b, "| Year | Capital |")
	fmt.Fprintln(&b, "|---:|---:|")
	for _, p := range points {
		fmt.Fprintf(&b, "| %d | %s |\n", p.Period, p.Capital)
	}
	fmt.Fprintf(&b, "\nFinal capital after %d years: **%s** (contributed %s, growth %s)\n", len(points), s.Final, s.Contributed, s.Growth.SignedString())
	return b.String()
}

// RiskMarkdown renders the risk statistics of a price series.
func RiskMarkdown(title string, r finplan.RiskSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Risk of %s\n\n", cell(title))
	writeRisk(&b, r)
	return b.String()
}

func writeRisk(b *strings.Builder, r finplan.RiskSummary) {
	vol, volOK := r.Volatility()
	v, varOK := r.VaR()
	ret, retOK := r.AnnualReturn()
	fmt.Fprintln(b, "| Statistic | Value |")
	fmt.Fprintln(b, "|:---|---:|")
	fmt.Fprintf(b, "| Returns observed | %d |\n", r.Observations)
	fmt.Fprintf(b, "| Annual volatility | %s |\n", percent(vol, volOK))
	fmt.Fprintf(b, "| VaR %.0f%% (daily) | %s |\n", r.Confidence*100, percent(v, varOK))
	fmt.Fprintf(b, "| Annualized mean return | %s |\n", percent(ret, retOK))
	if !r.Defined() {
		fmt.Fprintln(b, "\nNot enough prices to estimate the risk: at least three prices are needed.")
	}
}

// SimulationMarkdown renders Monte Carlo bands and terminal statistics.
func SimulationMarkdown(in finplan.MonteCarloInput, bands []finplan.Band, stats finplan.TerminalStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Monte Carlo: %d simulations over %d years\n\n", in.Simulations, in.Periods)
	fmt.Fprintf(&b, "Initial capital %s, monthly contribution %s, mean return %.2f%%, volatility %.2f%%.\n\n",
		amount(in.InitialCapital), amount(in.Contribution), in.MeanReturnPct, in.VolatilityPct)

	median := make([]float64, len(bands))
	for i, band := range bands {
		median[i] = band.P50
	}
	fmt.Fprintf(&b, "Median: `%s`\n\n", Sparkline(median))

	fmt.Fprintln(&b, "| Year | P10 | Median | P90 |")
	fmt.Fprintln(&b, "|---:|---:|---:|---:|")
	for _, band := range bands {
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", band.Period, amount(band.P10), amount(band.P50), amount(band.P90))
	}

	fmt.Fprint(&b, "\n## Final capital\n\n")
	fmt.Fprintln(&b, "| Statistic | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Invested | %s |\n", amount(stats.Invested))
	fmt.Fprintf(&b, "| Mean | %s |\n", amount(stats.Mean))
	fmt.Fprintf(&b, "| Pessimistic (P10) | %s |\n", amount(stats.P10))
	fmt.Fprintf(&b, "| Median | %s |\n", amount(stats.P50))
	fmt.Fprintf(&b, "| Optimistic (P90) | %s |\n", amount(stats.P90))
	fmt.Fprintf(&b, "| Probability to end below invested | %s |\n", percent(stats.ShortfallProbability, true))
	return b.String()
}
