package finplan

import (
	"fmt"
	"strings"
)

// AssetClass is the coarse category of a holding.
type AssetClass int

const (
	Equity AssetClass = iota
	Bond
	Fund
)

// AssetClasses lists all the classes, in display order.
var AssetClasses = []AssetClass{Equity, Bond, Fund}

func (c AssetClass) String() string {
	switch c {
	case Equity:
		return "equity"
	case Bond:
		return "bond"
	case Fund:
		return "fund"
	default:
		return fmt.Sprintf("AssetClass(%d)", int(c))
	}
}

// ParseAssetClass parses an asset class, accepting a few common aliases.
func ParseAssetClass(s string) (AssetClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "equity", "equities", "stock", "stocks", "actions":
		return Equity, nil
	case "bond", "bonds", "obligations":
		return Bond, nil
	case "fund", "funds", "etf", "fnb":
		return Fund, nil
	default:
		return Equity, fmt.Errorf("%w: unknown asset class %q, want equity, bond or fund", ErrInvalidInput, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c AssetClass) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *AssetClass) UnmarshalText(text []byte) error {
	v, err := ParseAssetClass(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Classify guesses the asset class of a quoted security from its descriptive fields.
//
// Exchange traded and mutual funds are funds. Financial services issuers and
// anything named as a bond are bonds. Everything else is equity.
func Classify(q Quote) AssetClass {
	kind := strings.ToUpper(q.QuoteType)
	name := strings.ToUpper(q.Name)
	switch {
	case strings.Contains(kind, "ETF") || strings.Contains(name, "ETF"),
		strings.Contains(kind, "FUND"):
		return Fund
	case q.Sector == "Financial Services" || strings.Contains(name, "BOND"):
		return Bond
	default:
		return Equity
	}
}
