package cmd

import (
	"context"
	"flag"
	"io"
	"math/rand/v2"

	"github.com/etnz/finplan"
	"github.com/etnz/finplan/date"
	"github.com/etnz/finplan/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

// simulateCmd holds the flags for the 'simulate' subcommand.
type simulateCmd struct {
	initial    float64
	monthly    float64
	years      int
	mean       float64
	volatility float64
	runs       int
	seed       uint64
	ticker     string
	period     string
	csv        string
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "simulate the capital growth with Monte Carlo" }
func (*simulateCmd) Usage() string {
	return `fpl simulate [-initial <amount>] [-monthly <amount>] [-years <n>] [-mean <percent>] [-volatility <percent>] [-runs <n>] [-seed <n>] [-csv <file>]
fpl simulate -ticker <symbol> [-period <window>] ...

  Simulates yearly returns drawn from a normal distribution and reports the
  10th, 50th and 90th percentiles of the capital every year.

  With -ticker, the mean return and the volatility are estimated from the
  history of the symbol over -period.
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.initial, "initial", 10000, "Initial capital")
	f.Float64Var(&c.monthly, "monthly", 500, "Monthly contribution")
	f.IntVar(&c.years, "years", 20, "Number of years")
	f.Float64Var(&c.mean, "mean", 6, "Mean annual return, in percent")
	f.Float64Var(&c.volatility, "volatility", 15, "Annual volatility, in percent")
	f.IntVar(&c.runs, "runs", 1000, "Number of simulations")
	f.Uint64Var(&c.seed, "seed", 0, "Random seed to replay a simulation, 0 picks one")
	f.StringVar(&c.ticker, "ticker", "", "Estimate mean and volatility from this symbol's history")
	f.StringVar(&c.period, "period", "5y", "History period used with -ticker")
	f.StringVar(&c.csv, "csv", "", "Also export the yearly percentiles as CSV to this file, '-' for the standard output")
}

func (c *simulateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return fail("loading configuration", err)
	}
	in := finplan.MonteCarloInput{
		InitialCapital: c.initial,
		Contribution:   c.monthly,
		Periods:        c.years,
		MeanReturnPct:  c.mean,
		VolatilityPct:  c.volatility,
		Simulations:    c.runs,
	}

	if c.ticker != "" {
		window, err := date.ParseWindow(c.period)
		if err != nil {
			return usage("%v", err)
		}
		p, err := newProvider(cfg)
		if err != nil {
			return fail("creating provider", err)
		}
		l := finplan.LookupHistory(ctx, p, c.ticker, window)
		if !l.OK() {
			return fail("getting history of "+l.Symbol, l.Err)
		}
		risk := cfg.Policy.EstimateRisk(l.Value.Series())
		mean, _ := risk.AnnualReturn()
		vol, ok := risk.Volatility()
		if !ok {
			return fail("estimating "+l.Symbol, finplan.ErrNoData)
		}
		in.MeanReturnPct, in.VolatilityPct = mean*100, vol*100
		log.Info().Str("symbol", l.Symbol).Float64("mean", in.MeanReturnPct).Float64("volatility", in.VolatilityPct).Msg("estimated from history")
	}

	seed := c.seed
	if seed == 0 {
		seed = rand.Uint64()
		log.Debug().Uint64("seed", seed).Msg("random seed")
	}
	runs, err := cfg.Policy.SimulateMonteCarlo(in, finplan.NewRand(seed))
	if err != nil {
		return fail("simulating", err)
	}
	bands := finplan.Bands(runs)
	if c.csv != "" {
		if err := writeCSV(c.csv, func(w io.Writer) error { return finplan.WriteBandsCSV(w, bands) }); err != nil {
			return fail("exporting simulation", err)
		}
		if c.csv == "-" {
			return subcommands.ExitSuccess
		}
	}
	printMarkdown(renderer.SimulationMarkdown(in, bands, cfg.Policy.Terminal(in, runs)))
	return subcommands.ExitSuccess
}
