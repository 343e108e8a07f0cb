package finplan

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// RiskSummary holds the risk statistics of a return series.
//
// The statistics are either all defined or all undefined: callers must
// distinguish "no signal" from "zero risk" with Defined.
type RiskSummary struct {
	Observations int     // number of returns used
	Confidence   float64 // VaR confidence level

	defined      bool
	volatility   float64
	valueAtRisk  float64
	annualReturn float64
}

// Defined reports whether enough observations were available.
func (r RiskSummary) Defined() bool { return r.defined }

// Volatility returns the annualized volatility, as a fraction.
func (r RiskSummary) Volatility() (float64, bool) { return r.volatility, r.defined }

// VaR returns the historical VaR: the (1-confidence) quantile of period returns, as a raw fraction.
func (r RiskSummary) VaR() (float64, bool) { return r.valueAtRisk, r.defined }

// AnnualReturn returns the mean period return scaled to a year, as a fraction.
func (r RiskSummary) AnnualReturn() (float64, bool) { return r.annualReturn, r.defined }

// SimpleReturns computes (p[i] - p[i-1]) / p[i-1] for consecutive prices.
func SimpleReturns(prices []float64) ([]float64, error) {
	if len(prices) < 2 {
		return nil, nil
	}
	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		prev, cur := prices[i-1], prices[i]
		if !finite(prev) || !finite(cur) {
			return nil, fmt.Errorf("%w: non finite price at %d", ErrInvalidInput, i)
		}
		if prev == 0 {
			return nil, fmt.Errorf("%w: zero price at %d", ErrInvalidInput, i-1)
		}
		returns = append(returns, (cur-prev)/prev)
	}
	return returns, nil
}

// EstimateRisk estimates risk with the default policy.
func EstimateRisk(prices []float64) RiskSummary {
	return DefaultPolicy().EstimateRisk(prices)
}

// EstimateRisk computes the annualized volatility and historical VaR of a price series.
//
// It never fails: fewer than two returns, or prices that cannot produce
// returns, give an undefined summary.
func (p Policy) EstimateRisk(prices []float64) RiskSummary {
	summary := RiskSummary{Confidence: p.VaRConfidence}
	returns, err := SimpleReturns(prices)
	summary.Observations = len(returns)
	if err != nil || len(returns) < 2 {
		return summary
	}

	periods := float64(p.PeriodsPerYear)
	// rounding strips the float noise of 1-0.95 so that the quantile is exactly 0.05.
	q := math.Round((1-p.VaRConfidence)*1e12) / 1e12

	summary.volatility = stat.StdDev(returns, nil) * math.Sqrt(periods)
	summary.valueAtRisk = Percentile(returns, q)
	summary.annualReturn = stat.Mean(returns, nil) * periods
	summary.defined = true
	return summary
}

// Percentile returns the q-quantile (0 <= q <= 1) of values using linear
// interpolation between closest ranks. values is left untouched.
//
// It panics if values is empty.
func Percentile(values []float64, q float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return percentileSorted(sorted, q)
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		panic("percentile of an empty series")
	}
	h := q * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo < 0 {
		lo = 0
	}
	if hi > len(sorted)-1 {
		hi = len(sorted) - 1
	}
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}
