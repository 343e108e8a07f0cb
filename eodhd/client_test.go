package eodhd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/etnz/finplan"
	"github.com/etnz/finplan/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const appleFundamentals = `{
  "General": {"Code": "AAPL", "Type": "Common Stock", "Name": "Apple Inc", "Exchange": "NASDAQ", "CurrencyCode": "USD", "Sector": "Technology"},
  "Highlights": {"MarketCapitalization": 3250000000000, "PERatio": 33.2, "DividendYield": 0.0044},
  "Technicals": {"52WeekHigh": 237.23, "52WeekLow": 164.08}
}`

const xicFundamentals = `{
  "General": {"Code": "XIC", "Type": "ETF", "Name": "iShares Core S&P/TSX Capped Composite Index ETF", "CurrencyCode": "CAD"},
  "Technicals": {"52WeekHigh": 40.1, "52WeekLow": 31.5}
}`

const mcdHistory = `[
  {"date": "2025-01-02", "open": 290, "high": 292, "low": 288, "close": 290.5, "adjusted_close": 289.1, "volume": 1},
  {"date": "2025-01-03", "open": 291, "high": 293, "low": 289, "close": 292.0, "adjusted_close": 290.6, "volume": 1},
  {"date": "2025-01-06", "open": 292, "high": 294, "low": 290, "close": 291.0, "adjusted_close": 0, "volume": 1}
]`

// fakeEODHD serves canned payloads by path, and counts the requests it receives.
func fakeEODHD(t *testing.T, payloads map[string]string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Query().Get("api_token") != "secret" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		body, ok := payloads[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if strings.HasPrefix(body, "status:") {
			http.Error(w, body, http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newTestClient(srv *httptest.Server, opts ...Option) *Client {
	opts = append([]Option{WithBaseURL(srv.URL), WithCacheDir("")}, opts...)
	c := New("secret", opts...)
	c.today = func() date.Date { return date.New(2025, time.January, 10) }
	return c
}

func TestClientQuote(t *testing.T) {
	srv, _ := fakeEODHD(t, map[string]string{
		"/real-time/AAPL.US":    `{"code": "AAPL.US", "close": 212.49, "previousClose": 214.24}`,
		"/fundamentals/AAPL.US": appleFundamentals,
	})
	q, err := newTestClient(srv).Quote(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", q.Symbol)
	assert.Equal(t, 212.49, q.Price)
	assert.Equal(t, "Apple Inc", q.Name)
	assert.Equal(t, "Common Stock", q.QuoteType)
	assert.Equal(t, "Technology", q.Sector)
	assert.Equal(t, "USD", q.Currency)
	require.NotNil(t, q.MarketCap)
	assert.Equal(t, 3.25e12, *q.MarketCap)
	require.NotNil(t, q.TrailingPE)
	assert.Equal(t, 33.2, *q.TrailingPE)
	require.NotNil(t, q.High52)
	assert.Equal(t, 237.23, *q.High52)
	require.NotNil(t, q.Low52)
	assert.Equal(t, 164.08, *q.Low52)
	assert.Equal(t, finplan.Equity, finplan.Classify(q))
}

func TestClientQuoteETF(t *testing.T) {
	srv, _ := fakeEODHD(t, map[string]string{
		"/real-time/XIC.TO":    `{"code": "XIC.TO", "close": 38.2}`,
		"/fundamentals/XIC.TO": xicFundamentals,
	})
	q, err := newTestClient(srv).Quote(context.Background(), "XIC.TO")
	require.NoError(t, err)
	assert.Equal(t, "CAD", q.Currency)
	assert.Nil(t, q.MarketCap)
	assert.Nil(t, q.DividendYield)
	assert.Equal(t, finplan.Fund, finplan.Classify(q))
}

func TestClientQuoteWithoutFundamentals(t *testing.T) {
	srv, _ := fakeEODHD(t, map[string]string{
		"/real-time/MCD.US":    `{"code": "MCD.US", "close": "NA", "previousClose": 290.1}`,
		"/fundamentals/MCD.US": "status: forbidden",
	})
	q, err := newTestClient(srv).Quote(context.Background(), "MCD")
	require.NoError(t, err)
	assert.Equal(t, 290.1, q.Price)
	assert.Equal(t, "USD", q.Currency, "currency guessed from the exchange")
	assert.Empty(t, q.Name)
}

func TestClientQuoteErrors(t *testing.T) {
	srv, _ := fakeEODHD(t, map[string]string{
		"/real-time/NA.US":  `{"code": "NA.US", "close": "NA", "previousClose": "NA"}`,
		"/real-time/BAD.US": `{"code": `,
	})
	c := newTestClient(srv)

	_, err := c.Quote(context.Background(), "UNKNOWN")
	assert.ErrorIs(t, err, finplan.ErrNoData)
	_, err = c.Quote(context.Background(), "NA")
	assert.ErrorIs(t, err, finplan.ErrNoData)
	_, err = c.Quote(context.Background(), "BAD")
	assert.ErrorIs(t, err, finplan.ErrTransport)

	_, err = New("wrong", WithBaseURL(srv.URL), WithCacheDir("")).Quote(context.Background(), "AAPL")
	assert.ErrorIs(t, err, finplan.ErrTransport)
	assert.NotContains(t, err.Error(), "wrong", "api token must not leak in errors")
}

func TestClientTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	_, err := New("secret", WithBaseURL(srv.URL), WithCacheDir("")).History(context.Background(), "AAPL", date.OneYear)
	assert.ErrorIs(t, err, finplan.ErrTransport)
	assert.NotContains(t, err.Error(), "secret")
}

func TestClientHistory(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		switch r.URL.Path {
		case "/eod/MCD.US":
			_, _ = w.Write([]byte(mcdHistory))
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	defer srv.Close()
	c := newTestClient(srv)

	h, err := c.History(context.Background(), "MCD", date.OneMonth)
	require.NoError(t, err)
	assert.Contains(t, query, "from=2024-12-10")
	assert.Contains(t, query, "to=2025-01-10")
	assert.Equal(t, []float64{289.1, 290.6, 291.0}, h.Series(), "adjusted closes, or closes when not adjusted")
	day, _ := h.Latest()
	assert.Equal(t, date.New(2025, time.January, 6), day)

	_, err = c.History(context.Background(), "EMPTY", date.OneMonth)
	assert.ErrorIs(t, err, finplan.ErrNoData)
}

func TestClientDiskCache(t *testing.T) {
	srv, hits := fakeEODHD(t, map[string]string{"/eod/MCD.US": mcdHistory})
	c := New("secret", WithBaseURL(srv.URL), WithCacheDir(t.TempDir()))

	for range 3 {
		h, err := c.History(context.Background(), "MCD", date.OneYear)
		require.NoError(t, err)
		assert.Equal(t, 3, h.Len())
	}
	assert.Equal(t, int32(1), hits.Load(), "cached responses must not reach the server")
}

func TestClientFundamentalsCachedWeekly(t *testing.T) {
	srv, hits := fakeEODHD(t, map[string]string{
		"/real-time/AAPL.US":    `{"code": "AAPL.US", "close": 212.49}`,
		"/fundamentals/AAPL.US": appleFundamentals,
	})
	c := New("secret", WithBaseURL(srv.URL), WithCacheDir(t.TempDir()))

	// 2025-01-10 is a Friday: the fundamentals are fetched again on Monday only.
	for _, day := range []int{10, 11, 12, 13} {
		c.today = func() date.Date { return date.New(2025, time.January, day) }
		_, err := c.Quote(context.Background(), "AAPL")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(4+2), hits.Load(), "real-time quotes every day, fundamentals once a week")
}

func TestClientRateLimit(t *testing.T) {
	srv, _ := fakeEODHD(t, map[string]string{"/eod/MCD.US": mcdHistory})
	c := newTestClient(srv, WithRateLimit(0.001, 1))

	_, err := c.History(context.Background(), "MCD", date.OneYear)
	require.NoError(t, err, "the burst lets the first request through")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.History(ctx, "MCD", date.OneYear)
	assert.ErrorIs(t, err, finplan.ErrTransport)
}

func TestClientSearch(t *testing.T) {
	srv, _ := fakeEODHD(t, map[string]string{
		"/search/apple": `[
			{"Code": "AAPL", "Exchange": "US", "Name": "Apple Inc", "Type": "Common Stock", "Country": "USA", "Currency": "USD", "ISIN": "US0378331005", "previousClose": 212.49, "previousCloseDate": "2025-01-09"},
			{"Code": "APC", "Exchange": "XETRA", "Name": "Apple Inc", "Type": "Common Stock", "Country": "Germany", "Currency": "EUR", "ISIN": "US0378331005", "previousClose": 203.1, "previousCloseDate": "2025-01-09"}
		]`,
	})
	results, err := newTestClient(srv).Search(context.Background(), "apple")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "AAPL", results[0].Symbol())
	assert.Equal(t, "APC.XETRA", results[1].Symbol())
	assert.Equal(t, date.New(2025, time.January, 9), results[0].PreviousCloseDate)
}

func TestTicker(t *testing.T) {
	tests := map[string]string{
		"aapl":   "AAPL.US",
		"XIC.TO": "XIC.TO",
		" spy ":  "SPY.US",
	}
	for in, want := range tests {
		if got := ticker(in); got != want {
			t.Errorf("ticker(%q) = %q, want %q", in, got, want)
		}
	}
}
