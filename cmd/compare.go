package cmd

import (
	"context"
	"flag"

	"github.com/etnz/finplan/date"
	"github.com/etnz/finplan/renderer"
	"github.com/google/subcommands"
)

// compareCmd holds the flags for the 'compare' subcommand.
type compareCmd struct {
	period string
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "compare the return and risk of several symbols" }
func (*compareCmd) Usage() string {
	return `fpl compare [-period <window>] <symbol> <symbol>...

  Compares side by side the return, volatility and VaR of funds or stocks over a period.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", "1y", "Comparison period: 1mo, 6mo, 1y, 5y...")
}

func (c *compareCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		return usage("at least two symbols are required.")
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
	printMarkdown(renderer.CompareMarkdown(window, cfg.Policy.Compare(ctx, p, f.Args(), window)))
	return subcommands.ExitSuccess
}
