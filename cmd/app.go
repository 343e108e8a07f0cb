// Package cmd implements the fpl command line application.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/finplan"
	"github.com/etnz/finplan/config"
	"github.com/etnz/finplan/eodhd"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&profileCmd{}, "planning")
	c.Register(&compoundCmd{}, "planning")
	c.Register(&simulateCmd{}, "planning")

	c.Register(&riskCmd{}, "market")
	c.Register(&infoCmd{}, "market")
	c.Register(&compareCmd{}, "market")
	c.Register(&searchCmd{}, "market")

	c.Register(&portfolioCmd{}, "session")
	c.Register(&watchCmd{}, "session")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile  = flag.String("config", "finplan.yaml", "Path to the configuration file")
	sessionFile = flag.String("session", filepath.Join(".finplan", "session.json"), "Path to the session file holding the portfolio and the watchlist")
	eodhdAPIKey = flag.String("eodhd-api-key", "", "EODHD API key to use for consuming EODHD.com API. This flag takes precedence over the "+config.APIKeyEnv+" environment variable and the configuration file. You can get one at https://eodhd.com/")
	verbose     = flag.Bool("v", false, "Log debug messages on stderr")
	raw         = flag.Bool("raw", false, "Print raw markdown instead of rendering it for the terminal")
)

// stdout receives the reports.
var stdout io.Writer = os.Stdout

// ConfigureLogging sets up the global logger, once the flags are parsed.
func ConfigureLogging() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// loadConfig reads the configuration file.
func loadConfig() (config.Config, error) {
	return config.Load(*configFile)
}

// newProvider returns the market data client. The api key flag takes precedence over the configuration.
func newProvider(cfg config.Config) (*eodhd.Client, error) {
	key := *eodhdAPIKey
	if key == "" {
		key = cfg.EODHD.APIKey
	}
	if key == "" {
		return nil, fmt.Errorf("EODHD API key is not set. Use -eodhd-api-key flag, %s environment variable or eodhd.api_key in %s", config.APIKeyEnv, *configFile)
	}
	return eodhd.New(key, cfg.EODHD.Options()...), nil
}

// openSession loads the session file, or returns an empty session if there is none yet.
func openSession() (*finplan.Session, error) {
	s, err := finplan.LoadSession(*sessionFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("path", *sessionFile).Msg("session does not exist, starting an empty one")
		return finplan.NewSession(), nil
	}
	return s, err
}

// saveSession writes the session file.
func saveSession(s *finplan.Session) error {
	return finplan.SaveSession(*sessionFile, s)
}

// printMarkdown prints md rendered for the terminal, or raw with -raw.
func printMarkdown(md string) {
	if *raw {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		log.Debug().Err(err).Msg("cannot create markdown renderer")
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		log.Debug().Err(err).Msg("cannot render markdown")
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}

// fail prints the error on stderr and returns the matching exit status.
func fail(doing string, err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", doing, err)
	if errors.Is(err, finplan.ErrInvalidInput) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

// usage prints a usage error on stderr.
func usage(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}

// writeCSV writes a CSV export to path, "-" is the standard output.
func writeCSV(path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info().Str("path", path).Msg("exported")
	return nil
}

// Suggestions returns the popular symbols of the configuration, used for completion.
func Suggestions() []string {
	cfg, err := loadConfig()
	if err != nil || len(cfg.Suggestions) == 0 {
		return config.DefaultSuggestions
	}
	return cfg.Suggestions
}
