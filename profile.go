package finplan

import (
	"fmt"
	"strings"
)

// Tolerance is an investor's risk tolerance.
type Tolerance int

const (
	LowTolerance Tolerance = iota
	MediumTolerance
	HighTolerance
)

func (t Tolerance) String() string {
	switch t {
	case LowTolerance:
		return "low"
	case MediumTolerance:
		return "medium"
	case HighTolerance:
		return "high"
	default:
		return fmt.Sprintf("Tolerance(%d)", int(t))
	}
}

// ParseTolerance parses "low", "medium" or "high".
func ParseTolerance(s string) (Tolerance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "faible":
		return LowTolerance, nil
	case "medium", "moyenne":
		return MediumTolerance, nil
	case "high", "elevee", "élevée":
		return HighTolerance, nil
	}
	return 0, fmt.Errorf("%w: unknown risk tolerance %q, want low, medium or high", ErrInvalidInput, s)
}

// Goal is an investment goal.
type Goal string

const (
	Retirement    Goal = "retirement"
	CapitalGrowth Goal = "growth"
	StableIncome  Goal = "income"
	ShortTerm     Goal = "short-term"
)

// Goals lists the known goals.
var Goals = []Goal{Retirement, CapitalGrowth, StableIncome, ShortTerm}

// ParseGoal parses a goal name.
func ParseGoal(s string) (Goal, error) {
	g := Goal(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Goals {
		if g == known {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: unknown goal %q, want one of %v", ErrInvalidInput, s, Goals)
}

// Profile is the financial profile of an investor.
type Profile struct {
	Name      string
	Age       int
	Income    float64 // yearly
	Goal      Goal
	Horizon   int // in years
	Tolerance Tolerance
}

// Profile limits.
const (
	MinAge     = 18
	MinHorizon = 1
	MaxHorizon = 50
)

// Validate checks the profile bounds.
func (p Profile) Validate() error {
	if p.Age < MinAge {
		return fmt.Errorf("%w: age must be at least %d, got %d", ErrInvalidInput, MinAge, p.Age)
	}
	if !finite(p.Income) || p.Income < 0 {
		return fmt.Errorf("%w: income must be non-negative, got %v", ErrInvalidInput, p.Income)
	}
	if p.Horizon < MinHorizon || p.Horizon > MaxHorizon {
		return fmt.Errorf("%w: horizon must be between %d and %d years, got %d", ErrInvalidInput, MinHorizon, MaxHorizon, p.Horizon)
	}
	if p.Tolerance < LowTolerance || p.Tolerance > HighTolerance {
		return fmt.Errorf("%w: invalid tolerance %v", ErrInvalidInput, p.Tolerance)
	}
	return nil
}

// Suggestion is a group of holdings within a portfolio style.
type Suggestion struct {
	Label   string
	Symbols []string
}

// Recommendation is the portfolio style suggested for a profile.
type Recommendation struct {
	Style       string // defensive, balanced or dynamic
	Suggestions []Suggestion
}

// Recommend suggests a portfolio style from the risk tolerance.
func (p Profile) Recommend() (Recommendation, error) {
	if err := p.Validate(); err != nil {
		return Recommendation{}, err
	}
	switch p.Tolerance {
	case LowTolerance:
		return Recommendation{Style: "defensive", Suggestions: []Suggestion{
			{Label: "bond ETFs", Symbols: []string{"ZAG"}},
			{Label: "stable stocks", Symbols: []string{"BCE", "ENB"}},
			{Label: "dividend ETFs", Symbols: []string{"VDY"}},
		}}, nil
	case MediumTolerance:
		return Recommendation{Style: "balanced", Suggestions: []Suggestion{
			{Label: "diversified ETFs", Symbols: []string{"VGRO"}},
			{Label: "solid stocks", Symbols: []string{"AAPL", "MSFT"}},
			{Label: "bonds"},
		}}, nil
	default:
		return Recommendation{Style: "dynamic", Suggestions: []Suggestion{
			{Label: "tech", Symbols: []string{"TSLA", "NVDA"}},
			{Label: "growth", Symbols: []string{"ARKK"}},
			{Label: "crypto or emerging markets"},
		}}, nil
	}
}
