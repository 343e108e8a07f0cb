package finplan

import (
	"fmt"
	"math"
)

// DefaultCurrency is used when an input does not name a currency.
const DefaultCurrency = "USD"

// CapitalDigits is the number of fractional digits kept on projected capital.
const CapitalDigits = 2

// Policy holds the fixed constants of the projection engine.
//
// They are policy, not derived values: the multipliers scale the nominal rate
// for growth-oriented or fixed-income-oriented classes.
type Policy struct {
	EquityMultiplier float64 `yaml:"equity_multiplier"`
	BondMultiplier   float64 `yaml:"bond_multiplier"`
	FundMultiplier   float64 `yaml:"fund_multiplier"`

	// PeriodsPerYear is the sampling frequency assumed for price series (252 trading days).
	PeriodsPerYear int `yaml:"periods_per_year"`
	// VaRConfidence is the confidence level of the historical VaR (0.95 gives the 5th percentile).
	VaRConfidence float64 `yaml:"var_confidence"`
	// ContributionsPerPeriod scales the Monte Carlo contribution, given monthly, to a yearly period.
	ContributionsPerPeriod float64 `yaml:"contributions_per_period"`
}

// DefaultPolicy returns the standard constants.
func DefaultPolicy() Policy {
	return Policy{
		EquityMultiplier:       1.2,
		BondMultiplier:         0.8,
		FundMultiplier:         0.8,
		PeriodsPerYear:         252,
		VaRConfidence:          0.95,
		ContributionsPerPeriod: 12,
	}
}

// Multiplier returns the rate adjustment for an asset class.
func (p Policy) Multiplier(c AssetClass) float64 {
	switch c {
	case Equity:
		return p.EquityMultiplier
	case Bond:
		return p.BondMultiplier
	default:
		return p.FundMultiplier
	}
}

// Validate checks that the policy constants are usable.
func (p Policy) Validate() error {
	for name, m := range map[string]float64{
		"equity_multiplier": p.EquityMultiplier,
		"bond_multiplier":   p.BondMultiplier,
		"fund_multiplier":   p.FundMultiplier,
	} {
		if m < 0 || !finite(m) {
			return fmt.Errorf("%w: %s must be a non-negative number, got %v", ErrInvalidInput, name, m)
		}
	}
	if p.PeriodsPerYear <= 0 {
		return fmt.Errorf("%w: periods_per_year must be positive, got %d", ErrInvalidInput, p.PeriodsPerYear)
	}
	if !(p.VaRConfidence > 0 && p.VaRConfidence < 1) {
		return fmt.Errorf("%w: var_confidence must be in (0,1), got %v", ErrInvalidInput, p.VaRConfidence)
	}
	if p.ContributionsPerPeriod < 0 || !finite(p.ContributionsPerPeriod) {
		return fmt.Errorf("%w: contributions_per_period must be non-negative, got %v", ErrInvalidInput, p.ContributionsPerPeriod)
	}
	return nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
