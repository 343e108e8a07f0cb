// Package eodhd implements a finplan.Provider on top of the EOD Historical Data API.
//
// See https://eodhd.com/financial-apis/ for the API documentation.
package eodhd

import (
	"net/http"
	"os"
	"strings"

	"github.com/etnz/finplan/date"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the root of the EODHD API.
const DefaultBaseURL = "https://eodhd.com/api"

// DemoAPIKey is the key EODHD grants for a handful of symbols (AAPL.US, MCD.US, ...).
const DemoAPIKey = "demo"

// Client is an EODHD market data client.
//
// Quotes are fetched live. Histories and searches go through a disk cache
// that expires daily, fundamentals through one that expires weekly.
type Client struct {
	apiKey  string
	baseURL string

	base     http.RoundTripper
	limiter  *rate.Limiter
	cacheDir string
	today    func() date.Date

	live   *http.Client
	cached *http.Client // daily
	slow   *http.Client // weekly
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the API root, mostly for tests.
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") } }

// WithTransport sets the underlying transport.
func WithTransport(t http.RoundTripper) Option { return func(c *Client) { c.base = t } }

// WithRateLimit limits the requests sent over the network. Cache hits are not limited.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst) }
}

// WithCacheDir sets the disk cache folder. An empty dir disables the cache.
func WithCacheDir(dir string) Option { return func(c *Client) { c.cacheDir = dir } }

// New returns a Client using 'apiKey'.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:   apiKey,
		baseURL:  DefaultBaseURL,
		base:     http.DefaultTransport,
		cacheDir: os.TempDir(),
		today:    date.Today,
	}
	for _, opt := range opts {
		opt(c)
	}

	transport := c.base
	if c.limiter != nil {
		transport = &limitedTransport{base: transport, limiter: c.limiter}
	}
	c.live = &http.Client{Transport: transport}
	c.cached, c.slow = c.live, c.live
	if c.cacheDir != "" {
		c.cached = &http.Client{Transport: &diskCache{base: transport, dir: c.cacheDir, period: date.Daily, today: c.day}}
		c.slow = &http.Client{Transport: &diskCache{base: transport, dir: c.cacheDir, period: date.Weekly, today: c.day}}
	}
	return c
}

func (c *Client) day() date.Date { return c.today() }

// exchangeCurrencies maps EODHD exchange codes to their trading currency, used when fundamentals are not available.
var exchangeCurrencies = map[string]string{
	"US":    "USD",
	"TO":    "CAD",
	"V":     "CAD",
	"NEO":   "CAD",
	"LSE":   "GBP",
	"PA":    "EUR",
	"XETRA": "EUR",
	"F":     "EUR",
	"AS":    "EUR",
	"SW":    "CHF",
}

// ticker returns the EODHD ticker of a symbol: symbols without an exchange are US symbols.
func ticker(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if !strings.Contains(symbol, ".") {
		return symbol + ".US"
	}
	return symbol
}

// exchangeOf returns the exchange code of an EODHD ticker.
func exchangeOf(ticker string) string {
	_, exchange, _ := strings.Cut(ticker, ".")
	return exchange
}
