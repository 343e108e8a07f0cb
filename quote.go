package finplan

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/finplan/date"
)

// Quote is the descriptive and pricing information of a security.
//
// Optional fields are nil when the provider does not know them.
type Quote struct {
	Symbol    string
	Name      string
	Sector    string
	QuoteType string
	Currency  string
	Price     float64 // last close

	MarketCap     *float64
	TrailingPE    *float64
	DividendYield *float64 // as a fraction
	Low52, High52 *float64
}

// Provider is a source of market data.
//
// Errors wrap ErrNoData when the symbol is unknown or has no data, and
// ErrTransport when the provider could not be reached.
type Provider interface {
	Quote(ctx context.Context, symbol string) (Quote, error)
	History(ctx context.Context, symbol string, window date.Window) (*date.History[float64], error)
}

// NormalizeSymbol returns the canonical form of a user-entered symbol.
func NormalizeSymbol(symbol string) string { return strings.ToUpper(strings.TrimSpace(symbol)) }

// LookupStatus is the outcome of a market data lookup.
type LookupStatus int

const (
	LookupOK     LookupStatus = iota // data available
	LookupEmpty                      // unknown symbol or no data
	LookupFailed                     // transport or provider failure
)

func (s LookupStatus) String() string {
	switch s {
	case LookupOK:
		return "ok"
	case LookupEmpty:
		return "no data"
	default:
		return "failed"
	}
}

// Lookup is the explicit result of a market data lookup: callers decide what
// to do with empty data or failures instead of having them suppressed.
type Lookup[T any] struct {
	Symbol string
	Status LookupStatus
	Value  T
	Err    error
}

// OK reports whether the lookup succeeded.
func (l Lookup[T]) OK() bool { return l.Status == LookupOK }

func statusOf(err error) LookupStatus {
	switch {
	case err == nil:
		return LookupOK
	case errors.Is(err, ErrNoData):
		return LookupEmpty
	default:
		return LookupFailed
	}
}

// LookupQuote fetches the quote of a symbol. A quote without a price counts as empty.
func LookupQuote(ctx context.Context, p Provider, symbol string) Lookup[Quote] {
	symbol = NormalizeSymbol(symbol)
	q, err := p.Quote(ctx, symbol)
	if err == nil && !(q.Price > 0) {
		err = fmt.Errorf("no price for %s: %w", symbol, ErrNoData)
	}
	return Lookup[Quote]{Symbol: symbol, Status: statusOf(err), Value: q, Err: err}
}

// LookupHistory fetches the closing prices of a symbol over a window. An empty history counts as empty.
func LookupHistory(ctx context.Context, p Provider, symbol string, window date.Window) Lookup[*date.History[float64]] {
	symbol = NormalizeSymbol(symbol)
	h, err := p.History(ctx, symbol, window)
	if err == nil && (h == nil || h.Len() == 0) {
		err = fmt.Errorf("no history for %s over %s: %w", symbol, window, ErrNoData)
	}
	return Lookup[*date.History[float64]]{Symbol: symbol, Status: statusOf(err), Value: h, Err: err}
}
