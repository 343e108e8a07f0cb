package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/etnz/finplan"
	"github.com/etnz/finplan/date"
	"github.com/etnz/finplan/renderer"
	"github.com/google/subcommands"
)

// portfolioCmd is the top-level command for the session holdings.
type portfolioCmd struct{}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "manage the holdings of the session" }
func (*portfolioCmd) Usage() string {
	return `fpl portfolio <subcommand> <options>

  Subcommands: add, remove, refresh, show.
`
}
func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {}

func (c *portfolioCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	commander := subcommands.NewCommander(f, "portfolio")
	commander.Register(&portfolioAddCmd{}, "")
	commander.Register(&portfolioRemoveCmd{}, "")
	commander.Register(&portfolioRefreshCmd{}, "")
	commander.Register(&portfolioShowCmd{}, "")
	return commander.Execute(ctx, args...)
}

// portfolioAddCmd holds the flags for the 'portfolio add' subcommand.
type portfolioAddCmd struct {
	date string
}

func (*portfolioAddCmd) Name() string     { return "add" }
func (*portfolioAddCmd) Synopsis() string { return "add a holding bought at the current price" }
func (*portfolioAddCmd) Usage() string {
	return `fpl portfolio add [-d <date>] <symbol> <quantity>

  Quotes the symbol and adds it to the portfolio at the current price.
  The asset class (equity, bond, fund) is guessed from the quote.
`
}

func (c *portfolioAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Date the holding is added on")
}

func (c *portfolioAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return usage("a symbol and a quantity are required.")
	}
	quantity, err := strconv.ParseFloat(f.Arg(1), 64)
	if err != nil {
		return usage("invalid quantity %q", f.Arg(1))
	}
	on, err := date.Parse(c.date)
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
	s, err := openSession()
	if err != nil {
		return fail("opening session", err)
	}

	h, err := s.AddHolding(ctx, p, f.Arg(0), finplan.Q(quantity), on)
	if err != nil {
		return fail("adding holding", err)
	}
	if err := saveSession(s); err != nil {
		return fail("saving session", err)
	}
	fmt.Fprintf(stdout, "Added %s %s (%s) at %s\n", h.Quantity, h.Symbol, h.Class, h.PurchasePrice)
	return subcommands.ExitSuccess
}

// portfolioRemoveCmd implements the 'portfolio remove' subcommand.
type portfolioRemoveCmd struct{}

func (*portfolioRemoveCmd) Name() string     { return "remove" }
func (*portfolioRemoveCmd) Synopsis() string { return "remove every holding of a symbol" }
func (*portfolioRemoveCmd) Usage() string {
	return `fpl portfolio remove <symbol>
`
}
func (c *portfolioRemoveCmd) SetFlags(f *flag.FlagSet) {}

func (c *portfolioRemoveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("a symbol is required.")
	}
	s, err := openSession()
	if err != nil {
		return fail("opening session", err)
	}
	n := s.RemoveHolding(f.Arg(0))
	if n == 0 {
		fmt.Fprintf(os.Stderr, "Error: %s is not in the portfolio\n", finplan.NormalizeSymbol(f.Arg(0)))
		return subcommands.ExitFailure
	}
	if err := saveSession(s); err != nil {
		return fail("saving session", err)
	}
	fmt.Fprintf(stdout, "Removed %d holding(s) of %s\n", n, finplan.NormalizeSymbol(f.Arg(0)))
	return subcommands.ExitSuccess
}

// portfolioRefreshCmd implements the 'portfolio refresh' subcommand.
type portfolioRefreshCmd struct{}

func (*portfolioRefreshCmd) Name() string     { return "refresh" }
func (*portfolioRefreshCmd) Synopsis() string { return "update the current price of every holding" }
func (*portfolioRefreshCmd) Usage() string {
	return `fpl portfolio refresh

  Updates the current prices, then displays the portfolio. Holdings that
  cannot be quoted keep their previous price and are reported.
`
}
func (c *portfolioRefreshCmd) SetFlags(f *flag.FlagSet) {}

func (c *portfolioRefreshCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return fail("loading configuration", err)
	}
	p, err := newProvider(cfg)
	if err != nil {
		return fail("creating provider", err)
	}
	s, err := openSession()
	if err != nil {
		return fail("opening session", err)
	}
	lookups := s.Refresh(ctx, p)
	if err := saveSession(s); err != nil {
		return fail("saving session", err)
	}
	printMarkdown(renderer.PortfolioMarkdown(s.Valuations(), lookups))
	return subcommands.ExitSuccess
}

// portfolioShowCmd holds the flags for the 'portfolio show' subcommand.
type portfolioShowCmd struct {
	csv string
}

func (*portfolioShowCmd) Name() string     { return "show" }
func (*portfolioShowCmd) Synopsis() string { return "display the holdings, their value and the allocation" }
func (*portfolioShowCmd) Usage() string {
	return `fpl portfolio show [-csv <file>]

  Displays the holdings at their last known price, the total value and gain,
  and the allocation by asset class, per currency.
`
}

func (c *portfolioShowCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.csv, "csv", "", "Also export the holdings as CSV to this file, '-' for the standard output")
}

func (c *portfolioShowCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		return fail("opening session", err)
	}
	if c.csv != "" {
		if err := writeCSV(c.csv, func(w io.Writer) error { return finplan.WriteHoldingsCSV(w, s.Holdings) }); err != nil {
			return fail("exporting holdings", err)
		}
		if c.csv == "-" {
			return subcommands.ExitSuccess
		}
	}
	printMarkdown(renderer.PortfolioMarkdown(s.Valuations(), nil))
	return subcommands.ExitSuccess
}
