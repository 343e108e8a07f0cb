package finplan

import "fmt"

// ProjectionInput is a request to the Compounding Projector.
type ProjectionInput struct {
	Contribution float64    // amount invested at the start of every period, >= 0
	RatePct      float64    // nominal annual rate, in percent
	Periods      int        // number of yearly periods, >= 1
	Class        AssetClass // scales the rate with the policy multiplier
	Currency     string     // currency of the contribution, DefaultCurrency if empty
}

// ProjectionPoint is the capital accumulated at the end of a period.
type ProjectionPoint struct {
	Period  int
	Capital Money
}

// ProjectCompounding projects the compounding of a periodic contribution with the default policy.
func ProjectCompounding(in ProjectionInput) ([]ProjectionPoint, error) {
	return DefaultPolicy().ProjectCompounding(in)
}

// ProjectCompounding returns exactly in.Periods points, ordered by period starting at 1.
//
// Each period adds the contribution then compounds at the adjusted rate:
//
//	capital = (capital + contribution) × (1 + rate/100 × multiplier)
//
// Emitted capital is rounded to CapitalDigits; the recurrence itself keeps full precision.
func (p Policy) ProjectCompounding(in ProjectionInput) ([]ProjectionPoint, error) {
	if in.Periods <= 0 {
		return nil, fmt.Errorf("%w: periods must be positive, got %d", ErrInvalidInput, in.Periods)
	}
	if in.Contribution < 0 || !finite(in.Contribution) {
		return nil, fmt.Errorf("%w: contribution must be a non-negative amount, got %v", ErrInvalidInput, in.Contribution)
	}
	if !finite(in.RatePct) {
		return nil, fmt.Errorf("%w: rate must be a number, got %v", ErrInvalidInput, in.RatePct)
	}
	currency := in.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	adjusted := in.RatePct / 100 * p.Multiplier(in.Class)
	points := make([]ProjectionPoint, 0, in.Periods)
	capital := 0.0
	for period := 1; period <= in.Periods; period++ {
		capital = (capital + in.Contribution) * (1 + adjusted)
		points = append(points, ProjectionPoint{
			Period:  period,
			Capital: M(capital, currency).Round(CapitalDigits),
		})
	}
	return points, nil
}

// ProjectionSummary sums up a projection for display.
type ProjectionSummary struct {
	Final       Money // capital after the last period
	Contributed Money // total of contributions
	Growth      Money // Final - Contributed
}

// SummarizeProjection computes the summary of points produced from 'in'.
func SummarizeProjection(in ProjectionInput, points []ProjectionPoint) ProjectionSummary {
	currency := in.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	s := ProjectionSummary{
		Final:       M(0, currency),
		Contributed: M(in.Contribution, currency).Mul(Q(len(points))).Round(CapitalDigits),
	}
	if len(points) > 0 {
		s.Final = points[len(points)-1].Capital
	}
	s.Growth = s.Final.Sub(s.Contributed)
	return s
}
