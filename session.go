package finplan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/etnz/finplan/date"
	"github.com/rs/zerolog/log"
)

// Holding is a position in the session portfolio.
type Holding struct {
	Symbol        string     `json:"symbol"`
	Class         AssetClass `json:"class"`
	Quantity      Quantity   `json:"quantity"`
	PurchasePrice Money      `json:"purchase_price"`
	CurrentPrice  Money      `json:"current_price"`
	AddedOn       date.Date  `json:"added_on"`
}

// Value returns the market value of the holding.
func (h Holding) Value() Money { return h.CurrentPrice.Mul(h.Quantity) }

// Cost returns the purchase value of the holding.
func (h Holding) Cost() Money { return h.PurchasePrice.Mul(h.Quantity) }

// Gain returns the unrealized profit or loss.
func (h Holding) Gain() Money { return h.Value().Sub(h.Cost()) }

// Session is the record owned by one interactive user: a portfolio of
// holdings and a watchlist. It is never shared; commands load it, pass it
// explicitly, and save it back.
type Session struct {
	Holdings  []Holding `json:"holdings"`
	Watchlist []string  `json:"watchlist"`
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{Holdings: []Holding{}, Watchlist: []string{}}
}

// DecodeSession reads a session in JSON.
func DecodeSession(r io.Reader) (*Session, error) {
	s := NewSession()
	if err := json.NewDecoder(r).Decode(s); err != nil {
		return nil, fmt.Errorf("cannot decode session: %w", err)
	}
	return s, nil
}

// EncodeSession writes a session in indented JSON.
func EncodeSession(w io.Writer, s *Session) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// LoadSession reads a session file. A missing file returns an error wrapping fs.ErrNotExist.
func LoadSession(path string) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeSession(f)
}

// SaveSession writes a session file, creating its folder if needed.
func SaveSession(path string, s *Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := EncodeSession(f, s); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// AddHolding quotes a symbol and appends a holding bought at the current price.
//
// A symbol without data is an error: nothing is added.
func (s *Session) AddHolding(ctx context.Context, p Provider, symbol string, quantity Quantity, on date.Date) (Holding, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return Holding{}, fmt.Errorf("%w: empty symbol", ErrInvalidInput)
	}
	if quantity.IsNegative() {
		return Holding{}, fmt.Errorf("%w: quantity must be non-negative, got %s", ErrInvalidInput, quantity)
	}
	l := LookupQuote(ctx, p, symbol)
	if !l.OK() {
		return Holding{}, fmt.Errorf("cannot add %s: %w", symbol, l.Err)
	}
	price := M(l.Value.Price, l.Value.Currency)
	h := Holding{
		Symbol:        symbol,
		Class:         Classify(l.Value),
		Quantity:      quantity,
		PurchasePrice: price,
		CurrentPrice:  price,
		AddedOn:       on,
	}
	s.Holdings = append(s.Holdings, h)
	return h, nil
}

// RemoveHolding removes every holding of a symbol and returns how many were removed.
func (s *Session) RemoveHolding(symbol string) int {
	symbol = NormalizeSymbol(symbol)
	before := len(s.Holdings)
	s.Holdings = slices.DeleteFunc(s.Holdings, func(h Holding) bool { return h.Symbol == symbol })
	return before - len(s.Holdings)
}

// Refresh updates the current price of every holding, one lookup per symbol.
//
// Holdings whose lookup did not succeed keep their previous price; the
// returned lookups let the caller report them.
func (s *Session) Refresh(ctx context.Context, p Provider) []Lookup[Quote] {
	var results []Lookup[Quote]
	seen := make(map[string]Lookup[Quote])
	for i, h := range s.Holdings {
		l, ok := seen[h.Symbol]
		if !ok {
			l = LookupQuote(ctx, p, h.Symbol)
			seen[h.Symbol] = l
			results = append(results, l)
		}
		if !l.OK() {
			log.Debug().Str("symbol", h.Symbol).Err(l.Err).Msg("price not refreshed")
			continue
		}
		s.Holdings[i].CurrentPrice = M(l.Value.Price, h.CurrentPrice.Currency())
	}
	return results
}

// Allocation is the share of an asset class in a valuation.
type Allocation struct {
	Class  AssetClass
	Value  Money
	Weight Percent
}

// Valuation is the valuation of the holdings quoted in one currency.
//
// Holdings in different currencies are never summed together: there is no FX conversion.
type Valuation struct {
	Currency   string
	Holdings   []Holding
	Value      Money
	Cost       Money
	Gain       Money
	Allocation []Allocation // one entry per class held, in AssetClasses order
}

// Valuations groups holdings by currency, sorted by currency code.
func (s *Session) Valuations() []Valuation {
	index := make(map[string]*Valuation)
	var currencies []string
	for _, h := range s.Holdings {
		c := h.CurrentPrice.Currency()
		v, ok := index[c]
		if !ok {
			v = &Valuation{Currency: c, Value: M(0, c), Cost: M(0, c), Gain: M(0, c)}
			index[c] = v
			currencies = append(currencies, c)
		}
		v.Holdings = append(v.Holdings, h)
		v.Value = v.Value.Add(h.Value())
		v.Cost = v.Cost.Add(h.Cost())
		v.Gain = v.Gain.Add(h.Gain())
	}
	slices.Sort(currencies)

	valuations := make([]Valuation, 0, len(currencies))
	for _, c := range currencies {
		v := index[c]
		v.Allocation = allocate(v.Holdings, v.Value)
		valuations = append(valuations, *v)
	}
	return valuations
}

func allocate(holdings []Holding, total Money) []Allocation {
	var allocations []Allocation
	for _, class := range AssetClasses {
		value := M(0, total.Currency())
		held := false
		for _, h := range holdings {
			if h.Class == class {
				value = value.Add(h.Value())
				held = true
			}
		}
		if !held {
			continue
		}
		var weight Percent
		if total.IsPositive() {
			weight = Ratio(value.Ratio(total))
		}
		allocations = append(allocations, Allocation{Class: class, Value: value, Weight: weight})
	}
	return allocations
}

// Watch adds a symbol to the watchlist. It returns false if the symbol was already watched.
func (s *Session) Watch(symbol string) (bool, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return false, fmt.Errorf("%w: empty symbol", ErrInvalidInput)
	}
	if slices.Contains(s.Watchlist, symbol) {
		return false, nil
	}
	s.Watchlist = append(s.Watchlist, symbol)
	return true, nil
}

// Unwatch removes a symbol from the watchlist. It returns false if the symbol was not watched.
func (s *Session) Unwatch(symbol string) bool {
	symbol = NormalizeSymbol(symbol)
	i := slices.Index(s.Watchlist, symbol)
	if i < 0 {
		return false
	}
	s.Watchlist = slices.Delete(s.Watchlist, i, i+1)
	return true
}

// WatchRow is the line of the watchlist report for one symbol.
type WatchRow struct {
	Lookup[*date.History[float64]]
	Price float64 // last close, meaningful only if the lookup is OK
	Risk  RiskSummary
}

// WatchReport looks up the history of every watched symbol over 'window' and
// computes its last price and risk.
func (p Policy) WatchReport(ctx context.Context, prov Provider, s *Session, window date.Window) []WatchRow {
	rows := make([]WatchRow, 0, len(s.Watchlist))
	for _, symbol := range s.Watchlist {
		row := WatchRow{Lookup: LookupHistory(ctx, prov, symbol, window), Risk: RiskSummary{Confidence: p.VaRConfidence}}
		if row.OK() {
			_, row.Price = row.Value.Latest()
			row.Risk = p.EstimateRisk(row.Value.Series())
		}
		rows = append(rows, row)
	}
	return rows
}
