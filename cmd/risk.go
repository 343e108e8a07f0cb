package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/finplan"
	"github.com/etnz/finplan/date"
	"github.com/etnz/finplan/renderer"
	"github.com/google/subcommands"
)

// riskCmd holds the flags for the 'risk' subcommand.
type riskCmd struct {
	prices string
	period string
}

func (*riskCmd) Name() string     { return "risk" }
func (*riskCmd) Synopsis() string { return "estimate the volatility and value at risk of a price series" }
func (*riskCmd) Usage() string {
	return `fpl risk [-period <window>] <symbol>
fpl risk -prices <p1,p2,...>

  Estimates the annualized volatility and the historical daily VaR from the
  closes of a symbol over a period (1mo, 6mo, 1y, 5y), or from prices given inline.
`
}

func (c *riskCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.prices, "prices", "", "Comma separated prices, oldest first, instead of a symbol")
	f.StringVar(&c.period, "period", "1y", "History period: 1mo, 6mo, 1y, 5y...")
}

func (c *riskCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return fail("loading configuration", err)
	}
	if c.prices != "" {
		prices, err := parsePrices(c.prices)
		if err != nil {
			return fail("parsing prices", err)
		}
		printMarkdown(renderer.RiskMarkdown("the given prices", cfg.Policy.EstimateRisk(prices)))
		return subcommands.ExitSuccess
	}

	if f.NArg() != 1 {
		return usage("a symbol or -prices is required.")
	}
	window, err := date.ParseWindow(c.period)
	if err != nil {
		return usage("%v", err)
	}
	p, err := newProvider(cfg)
	if err != nil {
		return fail("creating provider", err)
	}
	l := finplan.LookupHistory(ctx, p, f.Arg(0), window)
	if !l.OK() {
		return fail("getting history of "+l.Symbol, l.Err)
	}
	printMarkdown(renderer.RiskMarkdown(fmt.Sprintf("%s over %s", l.Symbol, window), cfg.Policy.EstimateRisk(l.Value.Series())))
	return subcommands.ExitSuccess
}

// parsePrices parses a comma separated list of prices.
func parsePrices(s string) ([]float64, error) {
	var prices []float64
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		p, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid price %q", finplan.ErrInvalidInput, field)
		}
		prices = append(prices, p)
	}
	return prices, nil
}
