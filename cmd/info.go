package cmd

import (
	"context"
	"flag"

	"github.com/etnz/finplan"
	"github.com/etnz/finplan/date"
	"github.com/etnz/finplan/renderer"
	"github.com/google/subcommands"
)

// infoCmd holds the flags for the 'info' subcommand.
type infoCmd struct {
	period string
}

func (*infoCmd) Name() string     { return "info" }
func (*infoCmd) Synopsis() string { return "display the details, chart and risk of a symbol" }
func (*infoCmd) Usage() string {
	return `fpl info [-period <window>] <symbol>

  Displays sector, price, market cap, P/E, dividend yield, 52 weeks range,
  and the chart and risk of the closes over the period (1mo, 6mo, 1y, 5y).
`
}

func (c *infoCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", "1y", "History period: 1mo, 6mo, 1y, 5y...")
}

func (c *infoCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("a symbol is required.")
	}
	window, err := date.ParseWindow(c.period)
	if err != nil {
		return usage("%v", err)
	}
	cfg, err := loadConfig()
	if err != nil {
		return fail("loading configuration", err)
	}
	p, err := newProvider(cfg)
	if err != nil {
		return fail("creating provider", err)
	}

	q := finplan.LookupQuote(ctx, p, f.Arg(0))
	if !q.OK() {
		return fail("quoting "+q.Symbol, q.Err)
	}
	h := finplan.LookupHistory(ctx, p, q.Symbol, window)
	var risk finplan.RiskSummary
	if h.OK() {
		risk = cfg.Policy.EstimateRisk(h.Value.Series())
	}
	printMarkdown(renderer.InfoMarkdown(q.Value, window, h, risk))
	return subcommands.ExitSuccess
}
