package finplan

import (
	"context"

	"github.com/etnz/finplan/date"
)

// Comparison is the side-by-side view of one symbol over a window.
type Comparison struct {
	Lookup[*date.History[float64]]
	Start, End float64     // first and last close in the window
	Return     Percent     // End/Start - 1
	Risk       RiskSummary // risk over the same closes
}

// Compare looks up each symbol's history over 'window' and computes its return and risk.
//
// Symbols are compared in the given order; failed lookups are kept with their status.
func (p Policy) Compare(ctx context.Context, prov Provider, symbols []string, window date.Window) []Comparison {
	out := make([]Comparison, 0, len(symbols))
	for _, symbol := range symbols {
		c := Comparison{Lookup: LookupHistory(ctx, prov, symbol, window), Risk: RiskSummary{Confidence: p.VaRConfidence}}
		if c.OK() {
			_, c.Start = c.Value.First()
			_, c.End = c.Value.Latest()
			if c.Start != 0 {
				c.Return = Ratio(c.End/c.Start - 1)
			}
			c.Risk = p.EstimateRisk(c.Value.Series())
		}
		out = append(out, c)
	}
	return out
}
