// Command fpl is a personal financial planning toolkit.
//
// Shell completion is installed with:
//
//	COMP_INSTALL=1 fpl
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/finplan/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the command line for the shell completion.
func completion() *complete.Command {
	symbols := predict.Set(cmd.Suggestions())
	windows := predict.Set{"1mo", "6mo", "1y", "5y", "10y"}
	classes := predict.Set{"equity", "bond", "fund"}
	csv := predict.Files("*.csv")

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config":        predict.Files("*.yaml"),
			"session":       predict.Files("*.json"),
			"eodhd-api-key": predict.Nothing,
			"v":             predict.Nothing,
			"raw":           predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"profile": {Flags: map[string]complete.Predictor{
				"name":    predict.Something,
				"age":     predict.Something,
				"income":  predict.Something,
				"goal":    predict.Set{"retirement", "growth", "income", "short-term"},
				"horizon": predict.Something,
				"risk":    predict.Set{"low", "medium", "high"},
			}},
			"compound": {Flags: map[string]complete.Predictor{
				"amount":   predict.Something,
				"rate":     predict.Something,
				"years":    predict.Something,
				"class":    classes,
				"currency": predict.Set{"USD", "CAD", "EUR", "GBP"},
				"csv":      csv,
			}},
			"simulate": {Flags: map[string]complete.Predictor{
				"initial":    predict.Something,
				"monthly":    predict.Something,
				"years":      predict.Something,
				"mean":       predict.Something,
				"volatility": predict.Something,
				"runs":       predict.Something,
				"seed":       predict.Something,
				"ticker":     symbols,
				"period":     windows,
				"csv":        csv,
			}},
			"risk":    {Args: symbols, Flags: map[string]complete.Predictor{"prices": predict.Something, "period": windows}},
			"info":    {Args: symbols, Flags: map[string]complete.Predictor{"period": windows}},
			"compare": {Args: symbols, Flags: map[string]complete.Predictor{"period": windows}},
			"search":  {Args: predict.Something},
			"portfolio": {Sub: map[string]*complete.Command{
				"add":     {Args: symbols, Flags: map[string]complete.Predictor{"d": predict.Something}},
				"remove":  {Args: symbols},
				"refresh": {},
				"show":    {Flags: map[string]complete.Predictor{"csv": csv}},
			}},
			"watch": {Sub: map[string]*complete.Command{
				"add":    {Args: symbols},
				"remove": {Args: symbols},
				"show":   {Flags: map[string]complete.Predictor{"period": windows}},
			}},
		},
	}
}

func main() {
	name := path.Base(os.Args[0])
	completion().Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	cmd.ConfigureLogging()
	os.Exit(int(commander.Execute(context.Background())))
}
