package cmd

import (
	"context"
	"flag"
	"strings"

	"github.com/etnz/finplan/renderer"
	"github.com/google/subcommands"
)

// searchCmd implements the "search" command.
type searchCmd struct{}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search for securities on EODHD" }
func (*searchCmd) Usage() string {
	return `fpl search <search term>

  Searches for securities by name, ticker or ISIN via EOD Historical Data API,
  and prints the symbols to use with the other commands.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return usage("a search term is required.")
	}
	searchTerm := strings.Join(f.Args(), " ")

	cfg, err := loadConfig()
	if err != nil {
		return fail("loading configuration", err)
	}
	p, err := newProvider(cfg)
	if err != nil {
		return fail("creating provider", err)
	}
	results, err := p.Search(ctx, searchTerm)
	if err != nil {
		return fail("searching securities", err)
	}
	printMarkdown(renderer.SearchMarkdown(searchTerm, results))
	return subcommands.ExitSuccess
}
