package eodhd

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/finplan"
	"github.com/etnz/finplan/date"
	"github.com/rs/zerolog/log"
)

// This file contains functions to access the EODHD API.

func (c *Client) url(endpoint, path string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_token", c.apiKey)
	query.Set("fmt", "json")
	return fmt.Sprintf("%s/%s/%s?%s", c.baseURL, endpoint, url.PathEscape(path), query.Encode())
}

// Quote implements finplan.Provider.
//
// The price comes from the real-time endpoint and is required. Descriptive
// fields come from the fundamentals endpoint and are left empty if it cannot be read.
func (c *Client) Quote(ctx context.Context, symbol string) (finplan.Quote, error) {
	t := ticker(symbol)
	price, err := c.fetchRealTime(ctx, t)
	if err != nil {
		return finplan.Quote{}, fmt.Errorf("cannot quote %s: %w", symbol, err)
	}
	q := finplan.Quote{Symbol: symbol, Price: price, Currency: exchangeCurrencies[exchangeOf(t)]}

	if err := c.fetchFundamentals(ctx, t, &q); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return finplan.Quote{}, err
		}
		log.Warn().Str("symbol", symbol).Err(err).Msg("fundamentals not available")
	}
	return q, nil
}

// fetchRealTime returns the last price of a ticker.
func (c *Client) fetchRealTime(ctx context.Context, ticker string) (float64, error) {
	// https://eodhd.com/api/real-time/AAPL.US?api_token=demo&fmt=json
	// {"code":"AAPL.US","timestamp":1718395200,"gmtoffset":0,"open":213.85,"high":215.17,
	//  "low":211.3,"close":212.49,"volume":70122748,"previousClose":214.24,"change":-1.75,"change_p":-0.8168}
	//
	// Outside market data coverage, numbers are replaced by "NA".
	var content any
	if err := jwget(ctx, c.live, c.url("real-time", ticker, nil), &content); err != nil {
		return 0, err
	}
	if close, ok := jfloat(content, "$.close"); ok && close > 0 {
		return close, nil
	}
	if prev, ok := jfloat(content, "$.previousClose"); ok && prev > 0 {
		return prev, nil
	}
	return 0, fmt.Errorf("no price for %s: %w", ticker, finplan.ErrNoData)
}

// fetchFundamentals fills the descriptive fields of q.
func (c *Client) fetchFundamentals(ctx context.Context, ticker string, q *finplan.Quote) error {
	// https://eodhd.com/api/fundamentals/AAPL.US?api_token=demo&fmt=json
	// {
	//   "General": {"Code": "AAPL", "Type": "Common Stock", "Name": "Apple Inc", "Exchange": "NASDAQ",
	//               "CurrencyCode": "USD", "Sector": "Technology", ...},
	//   "Highlights": {"MarketCapitalization": 3250000000000, "PERatio": 33.2, "DividendYield": 0.0044, ...},
	//   "Technicals": {"52WeekHigh": 237.23, "52WeekLow": 164.08, ...},
	//   ...
	// }
	//
	// ETFs have no Highlights, and the payload is huge: jsonpath picks the few fields we need.
	var content any
	if err := jwget(ctx, c.slow, c.url("fundamentals", ticker, nil), &content); err != nil {
		return err
	}
	if s, ok := jstring(content, "$.General.Name"); ok {
		q.Name = s
	}
	if s, ok := jstring(content, "$.General.Type"); ok {
		q.QuoteType = s
	}
	if s, ok := jstring(content, "$.General.Sector"); ok {
		q.Sector = s
	}
	if s, ok := jstring(content, "$.General.CurrencyCode"); ok && s != "" {
		q.Currency = strings.ToUpper(s)
	}
	q.MarketCap = jpointer(content, "$.Highlights.MarketCapitalization")
	q.TrailingPE = jpointer(content, "$.Highlights.PERatio")
	q.DividendYield = jpointer(content, "$.Highlights.DividendYield")
	q.High52 = jpointer(content, `$.Technicals["52WeekHigh"]`)
	q.Low52 = jpointer(content, `$.Technicals["52WeekLow"]`)
	return nil
}

// History implements finplan.Provider. It returns the adjusted closes over the window ending today.
func (c *Client) History(ctx context.Context, symbol string, window date.Window) (*date.History[float64], error) {
	r := window.Range(c.today())
	h, err := c.fetchEOD(ctx, ticker(symbol), r.From, r.To)
	if err != nil {
		return nil, fmt.Errorf("cannot get %s history over %s: %w", symbol, window, err)
	}
	return h, nil
}

// fetchEOD returns the daily closes of a ticker between from and to, both included.
func (c *Client) fetchEOD(ctx context.Context, ticker string, from, to date.Date) (*date.History[float64], error) {
	// https://eodhd.com/api/eod/MCD.US?api_token=demo&fmt=json&from=2024-01-01&to=2024-02-01
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 667.705,
	//		"volume": 0
	//	  },
	type Info struct {
		Date          date.Date `json:"date"`
		Close         float64   `json:"close"`
		AdjustedClose float64   `json:"adjusted_close"`
	}

	query := url.Values{}
	query.Set("from", from.String())
	query.Set("to", to.String())
	content := make([]Info, 0)
	if err := jwget(ctx, c.cached, c.url("eod", ticker, query), &content); err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("no prices for %s between %s and %s: %w", ticker, from, to, finplan.ErrNoData)
	}

	h := new(date.History[float64])
	for _, info := range content {
		price := info.AdjustedClose
		if price <= 0 {
			price = info.Close
		}
		h.Append(info.Date, price)
	}
	return h, nil
}

// jvalue returns the first value matching path, jsonpath is never clear about
// whether it returns a list of 1 answer, or a single answer.
func jvalue(content any, path string) (any, bool) {
	v, err := jsonpath.Get(path, content)
	if err != nil {
		return nil, false
	}
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return nil, false
		}
		v = list[0]
	}
	return v, v != nil
}

func jstring(content any, path string) (string, bool) {
	v, ok := jvalue(content, path)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// jfloat reads a number, "NA" and other strings are not numbers.
func jfloat(content any, path string) (float64, bool) {
	v, ok := jvalue(content, path)
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

func jpointer(content any, path string) *float64 {
	f, ok := jfloat(content, path)
	if !ok {
		return nil
	}
	return &f
}
