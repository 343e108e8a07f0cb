package cmd

import (
	"context"
	"flag"
	"io"

	"github.com/etnz/finplan"
	"github.com/etnz/finplan/renderer"
	"github.com/google/subcommands"
)

// compoundCmd holds the flags for the 'compound' subcommand.
type compoundCmd struct {
	amount   float64
	rate     float64
	years    int
	class    string
	currency string
	csv      string
}

func (*compoundCmd) Name() string     { return "compound" }
func (*compoundCmd) Synopsis() string { return "project the compounding of a yearly contribution" }
func (*compoundCmd) Usage() string {
	return `fpl compound [-amount <amount>] [-rate <percent>] [-years <n>] [-class equity|bond|fund] [-csv <file>]

  Projects the capital accumulated by investing the same amount every year.
  The rate is scaled by the asset class multiplier of the policy.
`
}

func (c *compoundCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "amount", 1000, "Amount invested every year")
	f.Float64Var(&c.rate, "rate", 5, "Nominal annual rate, in percent")
	f.IntVar(&c.years, "years", 10, "Number of years")
	f.StringVar(&c.class, "class", "equity", "Asset class: equity, bond or fund")
	f.StringVar(&c.currency, "currency", finplan.DefaultCurrency, "Currency of the amount")
	f.StringVar(&c.csv, "csv", "", "Also export the projection as CSV to this file, '-' for the standard output")
}

func (c *compoundCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	class, err := finplan.ParseAssetClass(c.class)
	if err != nil {
		return fail("parsing asset class", err)
	}
	cfg, err := loadConfig()
	if err != nil {
		return fail("loading configuration", err)
	}

	in := finplan.ProjectionInput{Contribution: c.amount, RatePct: c.rate, Periods: c.years, Class: class, Currency: c.currency}
	points, err := cfg.Policy.ProjectCompounding(in)
	if err != nil {
		return fail("projecting", err)
	}
	if c.csv != "" {
		if err := writeCSV(c.csv, func(w io.Writer) error { return finplan.WriteProjectionCSV(w, points) }); err != nil {
			return fail("exporting projection", err)
		}
		if c.csv == "-" {
			return subcommands.ExitSuccess
		}
	}
	printMarkdown(renderer.ProjectionMarkdown(in, points, finplan.SummarizeProjection(in, points)))
	return subcommands.ExitSuccess
}
