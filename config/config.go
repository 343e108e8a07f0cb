// Package config reads the finplan configuration file.
//
// A configuration file is YAML:
//
//	eodhd:
//	  api_key: 67adc13417e148.00145034
//	  requests_per_second: 5
//	  burst: 5
//	  cache: true
//	policy:
//	  equity_multiplier: 1.2
//	  bond_multiplier: 0.8
//	  var_confidence: 0.95
//	suggestions: [AAPL, MSFT, VTI]
//
// Missing keys keep their default value.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"

	"github.com/etnz/finplan"
	"github.com/etnz/finplan/eodhd"
	"gopkg.in/yaml.v3"
)

// APIKeyEnv is the environment variable holding the EODHD API key. It takes precedence over the file.
const APIKeyEnv = "EODHD_API_KEY"

// Config is the content of a configuration file.
type Config struct {
	EODHD       EODHD          `yaml:"eodhd"`
	Policy      finplan.Policy `yaml:"policy"`
	Suggestions []string       `yaml:"suggestions"`
}

// EODHD configures the market data client.
type EODHD struct {
	APIKey            string  `yaml:"api_key"`
	BaseURL           string  `yaml:"base_url"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
	Cache             bool    `yaml:"cache"`
}

// DefaultSuggestions are popular symbols offered for completion.
var DefaultSuggestions = []string{"AAPL", "MSFT", "TSLA", "GOOGL", "AMZN", "VTI", "SPY", "XIC.TO", "QQQ"}

// Default returns the configuration used when there is no file.
func Default() Config {
	return Config{
		EODHD: EODHD{
			BaseURL:           eodhd.DefaultBaseURL,
			RequestsPerSecond: 5,
			Burst:             5,
			Cache:             true,
		},
		Policy:      finplan.DefaultPolicy(),
		Suggestions: DefaultSuggestions,
	}
}

// Decode reads a configuration on top of the defaults. Unknown keys are errors.
func Decode(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return c, nil
}

// Load reads the configuration file at path, then applies the environment.
//
// A missing file gives the defaults.
func Load(path string) (Config, error) {
	c := Default()
	f, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	default:
		defer f.Close()
		if c, err = Decode(f); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if key := os.Getenv(APIKeyEnv); key != "" {
		c.EODHD.APIKey = key
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	if err := c.Policy.Validate(); err != nil {
		return fmt.Errorf("invalid policy: %w", err)
	}
	if c.EODHD.RequestsPerSecond <= 0 {
		return fmt.Errorf("%w: eodhd.requests_per_second must be positive, got %v", finplan.ErrInvalidInput, c.EODHD.RequestsPerSecond)
	}
	if c.EODHD.Burst < 1 {
		return fmt.Errorf("%w: eodhd.burst must be at least 1, got %d", finplan.ErrInvalidInput, c.EODHD.Burst)
	}
	if u, err := url.Parse(c.EODHD.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: eodhd.base_url %q is not an absolute URL", finplan.ErrInvalidInput, c.EODHD.BaseURL)
	}
	return nil
}

// Options returns the eodhd client options matching the configuration.
func (c EODHD) Options() []eodhd.Option {
	opts := []eodhd.Option{
		eodhd.WithBaseURL(c.BaseURL),
		eodhd.WithRateLimit(c.RequestsPerSecond, c.Burst),
	}
	if !c.Cache {
		opts = append(opts, eodhd.WithCacheDir(""))
	}
	return opts
}
