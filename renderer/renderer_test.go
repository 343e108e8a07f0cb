package renderer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/etnz/finplan"
	"github.com/etnz/finplan/date"
	"github.com/etnz/finplan/eodhd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// table is the shape of a markdown table.
type table struct {
	columns int
	rows    int // excluding the header
}

// parseTables parses md as GitHub flavored markdown and returns its tables.
func parseTables(t *testing.T, md string) []table {
	t.Helper()
	source := []byte(md)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(source))

	var tables []table
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() != extast.KindTable {
			return ast.WalkContinue, nil
		}
		var tb table
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch c.Kind() {
			case extast.KindTableHeader:
				tb.columns = c.ChildCount()
			case extast.KindTableRow:
				tb.rows++
			}
		}
		tables = append(tables, tb)
		return ast.WalkSkipChildren, nil
	})
	require.NoError(t, err)
	return tables
}

func history(closes ...float64) *date.History[float64] {
	h := new(date.History[float64])
	for i, c := range closes {
		h.Append(date.New(2025, 1, 1).Add(i), c)
	}
	return h
}

func ptr(f float64) *float64 { return &f }

// stubProvider knows a single symbol, "UP".
type stubProvider struct{}

func (stubProvider) Quote(ctx context.Context, symbol string) (finplan.Quote, error) {
	return finplan.Quote{}, finplan.ErrNoData
}

func (stubProvider) History(ctx context.Context, symbol string, window date.Window) (*date.History[float64], error) {
	if symbol != "UP" {
		return nil, finplan.ErrNoData
	}
	return history(100, 110, 121), nil
}

func TestProjectionMarkdown(t *testing.T) {
	in := finplan.ProjectionInput{Contribution: 1000, RatePct: 5, Periods: 10, Class: finplan.Equity}
	points, err := finplan.ProjectCompounding(in)
	require.NoError(t, err)
	md := ProjectionMarkdown(in, points, finplan.SummarizeProjection(in, points))

	assert.Equal(t, []table{{columns: 2, rows: 10}}, parseTables(t, md))
	assert.Contains(t, md, "**$13,971.64**")
	assert.Contains(t, md, "$1,000.00 per year")
}

func TestRiskMarkdown(t *testing.T) {
	md := RiskMarkdown("prices", finplan.EstimateRisk([]float64{100}))
	assert.Equal(t, []table{{columns: 2, rows: 4}}, parseTables(t, md))
	assert.Equal(t, 3, strings.Count(md, NA))
	assert.Contains(t, md, "Not enough prices")

	md = RiskMarkdown("prices", finplan.EstimateRisk([]float64{100, 110, 99}))
	assert.NotContains(t, md, NA)
	assert.Contains(t, md, "-9.00%")
}

func TestSimulationMarkdown(t *testing.T) {
	in := finplan.MonteCarloInput{InitialCapital: 1000, Contribution: 100, Periods: 5, MeanReturnPct: 6, VolatilityPct: 10, Simulations: 50}
	runs, err := finplan.SimulateMonteCarlo(in, finplan.NewRand(3))
	require.NoError(t, err)
	md := SimulationMarkdown(in, finplan.Bands(runs), finplan.DefaultPolicy().Terminal(in, runs))
	assert.Equal(t, []table{{columns: 4, rows: 6}, {columns: 2, rows: 6}}, parseTables(t, md))
	assert.Contains(t, md, "| Invested | 7000.00 |")
}

func TestProfileMarkdown(t *testing.T) {
	p := finplan.Profile{Name: "Sam", Age: 40, Income: 72000, Goal: finplan.Retirement, Horizon: 25, Tolerance: finplan.MediumTolerance}
	r, err := p.Recommend()
	require.NoError(t, err)
	md := ProfileMarkdown(p, r)
	assert.Equal(t, []table{{columns: 2, rows: 5}}, parseTables(t, md))
	assert.Contains(t, md, "## Suggested balanced portfolio")
	assert.Contains(t, md, "- solid stocks: AAPL, MSFT")
	assert.Contains(t, md, "- bonds\n")
}

func TestPortfolioMarkdown(t *testing.T) {
	s := finplan.NewSession()
	s.Holdings = []finplan.Holding{
		{Symbol: "AAPL", Class: finplan.Equity, Quantity: finplan.Q(2), PurchasePrice: finplan.M(100, "USD"), CurrentPrice: finplan.M(150, "USD")},
		{Symbol: "VTI", Class: finplan.Fund, Quantity: finplan.Q(1), PurchasePrice: finplan.M(200, "USD"), CurrentPrice: finplan.M(200, "USD")},
		{Symbol: "ZAG.TO", Class: finplan.Fund, Quantity: finplan.Q(10), PurchasePrice: finplan.M(14, "CAD"), CurrentPrice: finplan.M(13, "CAD")},
	}
	failed := []finplan.Lookup[finplan.Quote]{
		{Symbol: "AAPL", Status: finplan.LookupOK},
		{Symbol: "VTI", Status: finplan.LookupFailed, Err: fmt.Errorf("timeout: %w", finplan.ErrTransport)},
	}
	md := PortfolioMarkdown(s.Valuations(), failed)

	assert.Equal(t, []table{
		{columns: 7, rows: 2}, {columns: 4, rows: 1}, // CAD
		{columns: 7, rows: 3}, {columns: 4, rows: 2}, // USD
	}, parseTables(t, md))
	assert.Contains(t, md, "## Holdings in CAD")
	assert.Contains(t, md, "- VTI: failed: timeout")
	assert.NotContains(t, md, "- AAPL")
	assert.Contains(t, md, "**$500.00**")
}

func TestPortfolioMarkdownEmpty(t *testing.T) {
	md := PortfolioMarkdown(nil, nil)
	assert.Contains(t, md, "The portfolio is empty")
	assert.NotContains(t, md, "not refreshed")
}

func TestWatchlistMarkdown(t *testing.T) {
	prices := []float64{100, 110, 99}
	rows := []finplan.WatchRow{
		{
			Lookup: finplan.Lookup[*date.History[float64]]{Symbol: "SPY", Status: finplan.LookupOK, Value: history(prices...)},
			Price:  99,
			Risk:   finplan.EstimateRisk(prices),
		},
		{
			Lookup: finplan.Lookup[*date.History[float64]]{Symbol: "GONE", Status: finplan.LookupEmpty, Err: finplan.ErrNoData},
		},
	}
	md := WatchlistMarkdown(date.OneYear, rows)
	assert.Equal(t, []table{{columns: 5, rows: 2}}, parseTables(t, md))
	assert.Contains(t, md, "| SPY | 99.00 |")
	assert.Contains(t, md, "| GONE | N/A | N/A | N/A | no data: no data available |")

	assert.Contains(t, WatchlistMarkdown(date.OneYear, nil), "watchlist is empty")
}

func TestInfoMarkdown(t *testing.T) {
	q := finplan.Quote{Symbol: "AAPL", Name: "Apple Inc", QuoteType: "Common Stock", Sector: "Technology", Currency: "USD", Price: 212.49, MarketCap: ptr(3.25e12), TrailingPE: ptr(33.2)}
	prices := []float64{200, 205, 210, 212.49}
	h := finplan.Lookup[*date.History[float64]]{Symbol: "AAPL", Status: finplan.LookupOK, Value: history(prices...)}
	md := InfoMarkdown(q, date.SixMonths, h, finplan.EstimateRisk(prices))

	assert.Equal(t, []table{{columns: 2, rows: 9}, {columns: 2, rows: 4}}, parseTables(t, md))
	assert.Contains(t, md, "# Apple Inc (AAPL)")
	assert.Contains(t, md, "| Market cap | 3.25T |")
	assert.Contains(t, md, "| Dividend yield | N/A |")
	assert.Contains(t, md, "## Last 6mo")

	failed := finplan.Lookup[*date.History[float64]]{Symbol: "AAPL", Status: finplan.LookupFailed, Err: errors.New("boom")}
	md = InfoMarkdown(q, date.SixMonths, failed, finplan.RiskSummary{})
	assert.Len(t, parseTables(t, md), 1)
	assert.Contains(t, md, "History N/A (failed: boom)")
}

func TestCompareMarkdown(t *testing.T) {
	rows := finplan.DefaultPolicy().Compare(context.Background(), stubProvider{}, []string{"UP", "MISSING"}, date.OneYear)
	md := CompareMarkdown(date.OneYear, rows)
	assert.Equal(t, []table{{columns: 6, rows: 2}}, parseTables(t, md))
	assert.Contains(t, md, "| UP | 100.00 | 121.00 | +21.00% |")
	assert.Contains(t, md, "- MISSING: no data")
}

func TestSearchMarkdown(t *testing.T) {
	md := SearchMarkdown("apple", []eodhd.SearchResult{
		{Code: "AAPL", Exchange: "US", Name: "Apple | Inc", Type: "Common Stock", Currency: "USD", PreviousClose: 212.49},
	})
	assert.Equal(t, []table{{columns: 7, rows: 1}}, parseTables(t, md))
	assert.Contains(t, md, `Apple \| Inc`)
	assert.Contains(t, SearchMarkdown("zzz", nil), "No results found.")
}

func TestSparkline(t *testing.T) {
	tests := []struct {
		values []float64
		want   string
	}{
		{nil, ""},
		{[]float64{0, 1, 2, 3, 4, 5, 6, 7}, "▁▂▃▄▅▆▇█"},
		{[]float64{3, 3, 3}, "▁▁▁"},
		{[]float64{10, 0}, "█▁"},
	}
	for _, tt := range tests {
		if got := Sparkline(tt.values); got != tt.want {
			t.Errorf("Sparkline(%v) = %q, want %q", tt.values, got, tt.want)
		}
	}
}

func TestSample(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	assert.Equal(t, []float64{0, 5, 10}, sample(values, 3))
	assert.Equal(t, values, sample(values, 20))
}
