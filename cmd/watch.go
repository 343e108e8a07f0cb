package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/finplan"
	"github.com/etnz/finplan/date"
	"github.com/etnz/finplan/renderer"
	"github.com/google/subcommands"
)

// watchCmd is the top-level command for the session watchlist.
type watchCmd struct{}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "manage the watchlist of the session" }
func (*watchCmd) Usage() string {
	return `fpl watch <subcommand> <options>

  Subcommands: add, remove, show.
`
}
func (c *watchCmd) SetFlags(f *flag.FlagSet) {}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	commander := subcommands.NewCommander(f, "watch")
	commander.Register(&watchAddCmd{}, "")
	commander.Register(&watchRemoveCmd{}, "")
	commander.Register(&watchShowCmd{}, "")
	return commander.Execute(ctx, args...)
}

// watchAddCmd implements the 'watch add' subcommand.
type watchAddCmd struct{}

func (*watchAddCmd) Name() string     { return "add" }
func (*watchAddCmd) Synopsis() string { return "add symbols to the watchlist" }
func (*watchAddCmd) Usage() string {
	return `fpl watch add <symbol>...
`
}
func (c *watchAddCmd) SetFlags(f *flag.FlagSet) {}

func (c *watchAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return usage("at least one symbol is required.")
	}
	s, err := openSession()
	if err != nil {
		return fail("opening session", err)
	}
	for _, symbol := range f.Args() {
		added, err := s.Watch(symbol)
		if err != nil {
			return fail("watching", err)
		}
		if !added {
			fmt.Fprintf(stdout, "%s is already watched\n", finplan.NormalizeSymbol(symbol))
			continue
		}
		fmt.Fprintf(stdout, "Watching %s\n", finplan.NormalizeSymbol(symbol))
	}
	if err := saveSession(s); err != nil {
		return fail("saving session", err)
	}
	return subcommands.ExitSuccess
}

// watchRemoveCmd implements the 'watch remove' subcommand.
type watchRemoveCmd struct{}

func (*watchRemoveCmd) Name() string     { return "remove" }
func (*watchRemoveCmd) Synopsis() string { return "remove symbols from the watchlist" }
func (*watchRemoveCmd) Usage() string {
	return `fpl watch remove <symbol>...
`
}
func (c *watchRemoveCmd) SetFlags(f *flag.FlagSet) {}

func (c *watchRemoveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return usage("at least one symbol is required.")
	}
	s, err := openSession()
	if err != nil {
		return fail("opening session", err)
	}
	for _, symbol := range f.Args() {
		if !s.Unwatch(symbol) {
			fmt.Fprintf(stdout, "%s was not watched\n", finplan.NormalizeSymbol(symbol))
		}
	}
	if err := saveSession(s); err != nil {
		return fail("saving session", err)
	}
	return subcommands.ExitSuccess
}

// watchShowCmd holds the flags for the 'watch show' subcommand.
type watchShowCmd struct {
	period string
}

func (*watchShowCmd) Name() string     { return "show" }
func (*watchShowCmd) Synopsis() string { return "display the price and risk of every watched symbol" }
func (*watchShowCmd) Usage() string {
	return `fpl watch show [-period <window>]
`
}

func (c *watchShowCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", "1y", "History period used for the risk: 1mo, 6mo, 1y, 5y...")
}

func (c *watchShowCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	window, err := date.ParseWindow(c.period)
	if err != nil {
		return usage("%v", err)
	}
	s, err := openSession()
	if err != nil {
		return fail("opening session", err)
	}
	if len(s.Watchlist) == 0 {
		printMarkdown(renderer.WatchlistMarkdown(window, nil))
		return subcommands.ExitSuccess
	}
	cfg, err := loadConfig()
	if err != nil {
		return fail("loading configuration", err)
	}
	p, err := newProvider(cfg)
	if err != nil {
		return fail("creating provider", err)
	}
	printMarkdown(renderer.WatchlistMarkdown(window, cfg.Policy.WatchReport(ctx, p, s, window)))
	return subcommands.ExitSuccess
}
