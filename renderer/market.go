package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/finplan"
	"github.com/etnz/finplan/date"
	"github.com/etnz/finplan/eodhd"
)

// PortfolioMarkdown renders the session holdings, one section per currency.
//
// Failed refreshes, if any, are listed first.
func PortfolioMarkdown(valuations []finplan.Valuation, refreshed []finplan.Lookup[finplan.Quote]) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Portfolio\n\n")
	writeFailures(&b, refreshed, "Prices not refreshed, previous prices are kept:")
	if len(valuations) == 0 {
		fmt.Fprintln(&b, "The portfolio is empty. Add a holding with `fpl portfolio add <symbol> <quantity>`.")
		return b.String()
	}
	for _, v := range valuations {
		fmt.Fprintf(&b, "## Holdings in %s\n\n", v.Currency)
		fmt.Fprintln(&b, "| Symbol | Class | Quantity | Purchase | Price | Value | Gain |")
		fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|")
		for _, h := range v.Holdings {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
				h.Symbol,
				h.Class,
				h.Quantity,
				h.PurchasePrice,
				h.CurrentPrice,
				h.Value(),
				h.Gain().SignedString(),
			)
		}
		fmt.Fprintf(&b, "| **Total** | | | %s | | **%s** | %s |\n\n", v.Cost, v.Value, v.Gain.SignedString())

		fmt.Fprintln(&b, "| Class | Value | Weight | |")
		fmt.Fprintln(&b, "|:---|---:|---:|:---|")
		for _, a := range v.Allocation {
			bar := strings.Repeat("█", int(float64(a.Weight)/5+0.5))
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", a.Class, a.Value, a.Weight, bar)
		}
		fmt.Fprintln(&b)
	}
	return b.String()
}

// writeFailures lists the lookups that did not succeed, after a title.
func writeFailures[T any](w io.Writer, lookups []finplan.Lookup[T], title string) {
	ConditionalBlock(w, func(w io.Writer) bool {
		fmt.Fprintf(w, "%s\n\n", title)
		failed := false
		for _, l := range lookups {
			if l.OK() {
				continue
			}
			failed = true
			fmt.Fprintf(w, "- %s: %s\n", l.Symbol, reason(l))
		}
		fmt.Fprintln(w)
		return failed
	})
}

// WatchlistMarkdown renders the watchlist report.
func WatchlistMarkdown(window date.Window, rows []finplan.WatchRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Watchlist (%s)\n\n", window)
	if len(rows) == 0 {
		fmt.Fprintln(&b, "The watchlist is empty. Watch a symbol with `fpl watch add <symbol>`.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Symbol | Price | Volatility | VaR | Trend |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|:---|")
	for _, r := range rows {
		if !r.OK() {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", r.Symbol, NA, NA, NA, cell(reason(r.Lookup)))
			continue
		}
		vol, volOK := r.Risk.Volatility()
		v, varOK := r.Risk.VaR()
		fmt.Fprintf(&b, "| %s | %s | %s | %s | `%s` |\n",
			r.Symbol,
			amount(r.Price),
			percent(vol, volOK),
			percent(v, varOK),
			Sparkline(sample(r.Value.Series(), 20)),
		)
	}
	return b.String()
}

// InfoMarkdown renders the details of a quote, and the risk and chart of its history.
func InfoMarkdown(q finplan.Quote, window date.Window, history finplan.Lookup[*date.History[float64]], risk finplan.RiskSummary) string {
	var b strings.Builder
	title := q.Symbol
	if q.Name != "" {
		title = fmt.Sprintf("%s (%s)", q.Name, q.Symbol)
	}
	fmt.Fprintf(&b, "# %s\n\n", cell(title))
	fmt.Fprintln(&b, "| Item | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Class | %s |\n", finplan.Classify(q))
	fmt.Fprintf(&b, "| Type | %s |\n", orNA(q.QuoteType))
	fmt.Fprintf(&b, "| Sector | %s |\n", orNA(q.Sector))
	fmt.Fprintf(&b, "| Price | %s |\n", finplan.M(q.Price, q.Currency))
	fmt.Fprintf(&b, "| Market cap | %s |\n", bigNumber(q.MarketCap))
	fmt.Fprintf(&b, "| Trailing P/E | %s |\n", optional(q.TrailingPE, "%.2f"))
	fmt.Fprintf(&b, "| Dividend yield | %s |\n", optionalPercent(q.DividendYield))
	fmt.Fprintf(&b, "| 52 weeks low | %s |\n", optional(q.Low52, "%.2f"))
	fmt.Fprintf(&b, "| 52 weeks high | %s |\n", optional(q.High52, "%.2f"))

	fmt.Fprintf(&b, "\n## Last %s\n\n", window)
	if !history.OK() {
		fmt.Fprintf(&b, "History %s (%s).\n", NA, reason(history))
		return b.String()
	}
	first, start := history.Value.First()
	last, end := history.Value.Latest()
	fmt.Fprintf(&b, "`%s`\n\n", Sparkline(sample(history.Value.Series(), 60)))
	fmt.Fprintf(&b, "From %.2f on %s to %.2f on %s.\n\n", start, first, end, last)
	writeRisk(&b, risk)
	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return NA
	}
	return cell(s)
}

// CompareMarkdown renders the side by side comparison of several symbols.
func CompareMarkdown(window date.Window, rows []finplan.Comparison) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Comparison over %s\n\n", window)
	fmt.Fprintln(&b, "| Symbol | Start | End | Return | Volatility | VaR |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|")
	for _, c := range rows {
		if !c.OK() {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n", c.Symbol, NA, NA, NA, NA, NA)
			continue
		}
		vol, volOK := c.Risk.Volatility()
		v, varOK := c.Risk.VaR()
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			c.Symbol,
			amount(c.Start),
			amount(c.End),
			c.Return.SignedString(),
			percent(vol, volOK),
			percent(v, varOK),
		)
	}
	fmt.Fprintln(&b)
	writeFailures(&b, lookups(rows), "Unavailable:")
	return b.String()
}

func lookups(rows []finplan.Comparison) []finplan.Lookup[*date.History[float64]] {
	out := make([]finplan.Lookup[*date.History[float64]], len(rows))
	for i, r := range rows {
		out[i] = r.Lookup
	}
	return out
}

// SearchMarkdown renders symbol search results.
func SearchMarkdown(term string, results []eodhd.SearchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Search results for %q\n\n", term)
	if len(results) == 0 {
		fmt.Fprintln(&b, "No results found.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Symbol | Name | Type | Country | Currency | ISIN | Prev. close |")
	fmt.Fprintln(&b, "|:---|:---|:---|:---|:---|:---|---:|")
	for _, r := range results {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %.2f |\n",
			r.Symbol(),
			cell(r.Name),
			cell(r.Type),
			cell(r.Country),
			r.Currency,
			r.ISIN,
			r.PreviousClose,
		)
	}
	return b.String()
}
